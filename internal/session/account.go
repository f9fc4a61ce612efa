package session

import (
	"context"
	"fmt"

	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"golang.org/x/exp/slices"
)

// SavingsAccount returns the savings account. ok is false until it was
// loaded.
func (s *Service) SavingsAccount() (account models.SavingsAccount, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		return models.SavingsAccount{}, false
	}
	return *s.account, true
}

// UpdateSavingsAccount changes the settings of the savings account. The
// balance only changes through allocations.
func (s *Service) UpdateSavingsAccount(ctx context.Context, input normalize.RawRecord) (models.SavingsAccount, error) {
	fields := normalize.Fields(normalize.KindSavingsAccount, input)
	if len(fields) == 0 {
		account, _ := s.SavingsAccount()
		return account, nil
	}

	patch, err := normalize.SavingsAccount(input)
	if err != nil {
		return models.SavingsAccount{}, fmt.Errorf("%w: %w", models.ErrInvalidInput, err)
	}

	payload, err := backend.Payload(backend.KindSavingsAccount, patch, fields)
	if err != nil {
		return models.SavingsAccount{}, err
	}

	raw, err := s.backend.Update(ctx, backend.KindSavingsAccount, "", payload)
	if err != nil {
		return models.SavingsAccount{}, err
	}

	updated, err := normalize.SavingsAccount(raw)
	if err != nil {
		s.dropped(normalize.KindSavingsAccount, err)
		return models.SavingsAccount{}, err
	}

	account, _ := s.SavingsAccount()
	returned := normalize.Fields(normalize.KindSavingsAccount, raw)
	if slices.Contains(returned, "balance") {
		account.Balance = updated.Balance
	}
	if slices.Contains(returned, "autoSavePercentage") {
		account.AutoSavePercentage = updated.AutoSavePercentage
	} else if slices.Contains(fields, "autoSavePercentage") {
		account.AutoSavePercentage = patch.AutoSavePercentage
	}

	s.setAccount(ctx, account)
	return account, nil
}

// setAccount replaces the savings account.
func (s *Service) setAccount(ctx context.Context, account models.SavingsAccount) {
	s.mu.Lock()
	s.account = &account
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.publish(ctx, normalize.KindSavingsAccount, "update", "")
}
