package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pesapots/backend/internal/models"
)

// Snapshot normalizes a local cache document. Every collection passes through
// the same normalizers as backend data, so documents written by older
// versions with target/saved pots or signed amounts are accepted.
//
// The returned error joins all malformed records and unreadable lists. It is
// only fatal when it wraps ErrInvalidDocument.
func Snapshot(body []byte) (models.Snapshot, error) {
	snapshot := models.Snapshot{
		Transactions:   []models.Transaction{},
		Budgets:        []models.Budget{},
		Pots:           []models.SavingsGoal{},
		RecurringBills: []models.RecurringBill{},
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return snapshot, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return snapshot, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	var errs []error
	list := func(key string) []RawRecord {
		raws, err := Decode(doc[key])
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return nil
		}
		return raws
	}

	var err error
	if snapshot.Transactions, err = Transactions(list("transactions")); err != nil {
		errs = append(errs, err)
	}
	if snapshot.Budgets, err = Budgets(list("budgets")); err != nil {
		errs = append(errs, err)
	}
	if snapshot.Pots, err = SavingsGoals(list("pots")); err != nil {
		errs = append(errs, err)
	}
	if snapshot.RecurringBills, err = RecurringBills(list("recurringBills")); err != nil {
		errs = append(errs, err)
	}

	if raw, ok := doc["savingsAccount"]; ok {
		if record, err := DecodeOne(raw); err == nil && record != nil {
			account, err := SavingsAccount(record)
			if err != nil {
				errs = append(errs, err)
			} else {
				snapshot.SavingsAccount = &account
			}
		}
	}

	if raw, ok := doc["savedAt"]; ok {
		var savedAt time.Time
		if json.Unmarshal(raw, &savedAt) == nil {
			snapshot.SavedAt = savedAt
		}
	}

	return snapshot, errors.Join(errs...)
}
