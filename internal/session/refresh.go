package session

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/pesapots/backend/internal/reconcile"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result reports how a list of records was applied to a collection.
type Result struct {
	Collection string   `json:"collection" example:"budget"` // Name of the collection
	Received   int      `json:"received" example:"12"`       // Number of records received
	Applied    bool     `json:"applied" example:"true"`      // Is false when a newer response had already been applied
	Dropped    []string `json:"dropped,omitempty"`           // Reasons for records that were dropped
}

// Refresh fetches a collection from the backend and replaces the local copy.
// query is passed on to the backend.
//
// When a refresh of the same collection that was started later has already
// been applied, the response is discarded and Applied is false.
func (s *Service) Refresh(ctx context.Context, kind backend.Kind, query url.Values) (Result, error) {
	switch kind {
	case backend.KindTransactions:
		return refresh(ctx, s, s.transactions, query)
	case backend.KindBudgets:
		return refresh(ctx, s, s.budgets, query)
	case backend.KindGoals:
		return refresh(ctx, s, s.goals, query)
	case backend.KindBills:
		return refresh(ctx, s, s.bills, query)
	case backend.KindSavingsAccount:
		return s.RefreshSavingsAccount(ctx)
	}

	return Result{}, models.NotFound("collection", string(kind))
}

// RefreshAll refreshes all collections concurrently. Collections that fail do
// not stop the others, all errors are returned.
func (s *Service) RefreshAll(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(backend.Kinds))

	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)

	for i, kind := range backend.Kinds {
		g.Go(func() error {
			result, err := s.Refresh(ctx, kind, nil)
			results[i] = result
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return results, errors.Join(errs...)
}

func refresh[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], query url.Values) (Result, error) {
	result := Result{Collection: r.name}
	token := r.sequencer.Next()

	raws, err := s.backend.List(ctx, r.kind, query)
	if err != nil {
		return result, err
	}

	items, dropped := r.many(raws)
	s.dropped(r.name, dropped)
	result.Received = len(raws)
	result.Dropped = reasons(dropped)

	s.mu.Lock()
	if !r.sequencer.Accept(token) {
		s.mu.Unlock()
		s.stale(r.name)
		return result, nil
	}

	err = apply(ctx, s, r, reconcile.ReplaceAll[T]{Entities: items})
	s.mu.Unlock()

	if err != nil {
		return result, err
	}

	result.Applied = true
	s.publish(ctx, r.name, reconcile.ReplaceAll[T]{}.Name(), "")
	return result, nil
}

// RefreshSavingsAccount fetches the savings account from the backend.
func (s *Service) RefreshSavingsAccount(ctx context.Context) (Result, error) {
	result := Result{Collection: normalize.KindSavingsAccount}
	token := s.accountTokens.Next()

	raw, err := s.backend.Get(ctx, backend.KindSavingsAccount, "")
	if err != nil {
		return result, err
	}
	result.Received = 1

	account, err := normalize.SavingsAccount(raw)
	if err != nil {
		s.dropped(normalize.KindSavingsAccount, err)
		result.Dropped = reasons(err)
		return result, nil
	}

	s.mu.Lock()
	if !s.accountTokens.Accept(token) {
		s.mu.Unlock()
		s.stale(normalize.KindSavingsAccount)
		return result, nil
	}

	s.account = &account
	s.persistLocked(ctx)
	s.mu.Unlock()

	result.Applied = true
	s.publish(ctx, normalize.KindSavingsAccount, "update", "")
	return result, nil
}

func (s *Service) stale(collection string) {
	staleResponses.WithLabelValues(collection).Inc()
	log.Debug().Str("collection", collection).Msg("discarded superseded response")
}
