package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/pesapots/backend/internal/reconcile"
	"github.com/rs/zerolog/log"
)

// Load restores the session from its store. A missing document leaves the
// session empty. Records of the document that cannot be normalized are
// dropped.
func (s *Service) Load(ctx context.Context) error {
	data, err := s.store.Load(ctx, s.cacheKey)
	if errors.Is(err, models.ErrResourceNotFound) {
		log.Debug().Str("key", s.cacheKey).Msg("no cached session")
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.restore(ctx, data)
	return err
}

// Export returns the session document.
func (s *Service) Export() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// Import replaces the local collections with a session document. The backend
// is not changed.
func (s *Service) Import(ctx context.Context, data []byte) ([]Result, error) {
	return s.restore(ctx, data)
}

// Clear empties all collections and deletes the stored document.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.replaceLocked(ctx, models.Snapshot{})
	s.account = nil
	s.mu.Unlock()

	if err := s.store.Delete(ctx, s.cacheKey); err != nil {
		return err
	}

	for _, name := range []string{s.transactions.name, s.budgets.name, s.goals.name, s.bills.name} {
		s.publish(ctx, name, "clear", "")
	}
	return nil
}

// restore applies a session document. Malformed records and unreadable lists
// are dropped and reported, a document that is not an object is an error.
func (s *Service) restore(ctx context.Context, data []byte) ([]Result, error) {
	snapshot, err := normalize.Snapshot(data)
	if errors.Is(err, normalize.ErrInvalidDocument) {
		return nil, err
	}

	var dropped map[string][]string
	if err != nil {
		dropped = droppedByKind(err)
		for kind, r := range dropped {
			malformedRecords.WithLabelValues(kind).Add(float64(len(r)))
		}
		log.Warn().Err(err).Msg("dropped malformed records from session document")
	}

	s.mu.Lock()
	s.replaceLocked(ctx, snapshot)
	// The document replaces the whole local state, a document without an
	// account clears it until the next refresh
	s.account = nil
	if snapshot.SavingsAccount != nil {
		account := *snapshot.SavingsAccount
		s.account = &account
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	results := []Result{
		{Collection: s.transactions.name, Received: len(snapshot.Transactions), Applied: true, Dropped: dropped[s.transactions.name]},
		{Collection: s.budgets.name, Received: len(snapshot.Budgets), Applied: true, Dropped: dropped[s.budgets.name]},
		{Collection: s.goals.name, Received: len(snapshot.Pots), Applied: true, Dropped: dropped[s.goals.name]},
		{Collection: s.bills.name, Received: len(snapshot.RecurringBills), Applied: true, Dropped: dropped[s.bills.name]},
	}
	for i := range results {
		results[i].Received += len(results[i].Dropped)
	}

	for _, r := range results {
		s.publish(ctx, r.Collection, "replace_all", "")
	}
	return results, nil
}

// replaceLocked replaces all collections. It must be called with s.mu held.
func (s *Service) replaceLocked(ctx context.Context, snapshot models.Snapshot) {
	_ = s.transactions.collection.Apply(reconcile.ReplaceAll[models.Transaction]{Entities: snapshot.Transactions})
	_ = s.budgets.collection.Apply(reconcile.ReplaceAll[models.Budget]{Entities: snapshot.Budgets})
	_ = s.goals.collection.Apply(reconcile.ReplaceAll[models.SavingsGoal]{Entities: snapshot.Pots})
	_ = s.bills.collection.Apply(reconcile.ReplaceAll[models.RecurringBill]{Entities: snapshot.RecurringBills})

	for _, name := range []string{s.transactions.name, s.budgets.name, s.goals.name, s.bills.name} {
		reconcileOperations.WithLabelValues(name, "replace_all", "applied").Inc()
	}
}

// droppedByKind groups the reasons of malformed records by collection.
func droppedByKind(err error) map[string][]string {
	out := map[string][]string{}

	var walk func(error)
	walk = func(err error) {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range joined.Unwrap() {
				walk(e)
			}
			return
		}

		var m *normalize.MalformedRecordError
		if errors.As(err, &m) {
			out[m.Kind] = append(out[m.Kind], m.Error())
		}
	}
	walk(err)

	return out
}
