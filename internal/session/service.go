// Package session keeps the state of one user session: a mirror of the
// collections of the backend, reconciled with every response.
//
// All reads and mutations of the collections are serialized by the Service.
// Backend calls happen outside of that critical section, their results are
// applied atomically or not at all.
package session

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/events"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/pesapots/backend/internal/reconcile"
	"github.com/pesapots/backend/internal/store"
	"github.com/pesapots/backend/internal/types"
)

// DefaultCacheKey is the key the session document is stored under.
const DefaultCacheKey = "personal-finance-app-data"

// Backend is the authoritative API. It is implemented by *backend.Client.
type Backend interface {
	List(ctx context.Context, kind backend.Kind, query url.Values) ([]normalize.RawRecord, error)
	Get(ctx context.Context, kind backend.Kind, id string) (normalize.RawRecord, error)
	Create(ctx context.Context, kind backend.Kind, payload any) (normalize.RawRecord, error)
	Update(ctx context.Context, kind backend.Kind, id string, patch any) (normalize.RawRecord, error)
	Delete(ctx context.Context, kind backend.Kind, id string) error
	Action(ctx context.Context, kind backend.Kind, id, action string, payload any) (normalize.RawRecord, error)
}

// Options configure a Service. Only Backend is required.
type Options struct {
	Backend   Backend
	Store     store.Store      // Defaults to an in-memory store
	Publisher events.Publisher // Defaults to events.Noop
	Clock     Clock            // Defaults to SystemClock
	CacheKey  string           // Defaults to DefaultCacheKey
}

// Service is the state container of a session.
type Service struct {
	backend   Backend
	store     store.Store
	publisher events.Publisher
	clock     Clock
	cacheKey  string

	mu            sync.Mutex
	transactions  *resource[models.Transaction]
	budgets       *resource[models.Budget]
	goals         *resource[models.SavingsGoal]
	bills         *resource[models.RecurringBill]
	account       *models.SavingsAccount
	accountTokens reconcile.Sequencer
}

// New returns a Service with empty collections.
func New(opts Options) *Service {
	s := &Service{
		backend:   opts.Backend,
		store:     opts.Store,
		publisher: opts.Publisher,
		clock:     opts.Clock,
		cacheKey:  opts.CacheKey,
	}

	if s.store == nil {
		s.store = store.NewMemory()
	}
	if s.publisher == nil {
		s.publisher = events.Noop{}
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.cacheKey == "" {
		s.cacheKey = DefaultCacheKey
	}

	s.transactions = &resource[models.Transaction]{
		kind:       backend.KindTransactions,
		name:       normalize.KindTransaction,
		collection: reconcile.NewCollection(normalize.KindTransaction, reconcile.InsertAtHead[models.Transaction]()),
		one:        normalize.Transaction,
		many:       normalize.Transactions,
		prepare:    s.prepareTransaction,
	}

	s.budgets = &resource[models.Budget]{
		kind:       backend.KindBudgets,
		name:       normalize.KindBudget,
		collection: reconcile.NewCollection(normalize.KindBudget, reconcile.WithValidator[models.Budget](reconcile.BudgetExclusivity)),
		one:        normalize.Budget,
		many:       normalize.Budgets,
		prepare:    prepareBudget,
		check:      reconcile.BudgetExclusivity,
	}

	s.goals = &resource[models.SavingsGoal]{
		kind:       backend.KindGoals,
		name:       normalize.KindSavingsGoal,
		collection: reconcile.NewCollection[models.SavingsGoal](normalize.KindSavingsGoal),
		one:        normalize.SavingsGoal,
		many:       normalize.SavingsGoals,
		prepare:    prepareGoal,
		readOnly:   []string{"currentAmount"},
	}

	s.bills = &resource[models.RecurringBill]{
		kind:       backend.KindBills,
		name:       normalize.KindRecurringBill,
		collection: reconcile.NewCollection[models.RecurringBill](normalize.KindRecurringBill),
		one:        normalize.RecurringBill,
		many:       normalize.RecurringBills,
		prepare:    s.prepareBill,
	}

	return s
}

// Today returns the current day of the session clock.
func (s *Service) Today() types.Date {
	return types.DateOf(s.clock.Now())
}

// Ping checks that the store of the session can be read.
func (s *Service) Ping(ctx context.Context) error {
	_, err := s.store.Load(ctx, s.cacheKey)
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil
	}
	return err
}

// Snapshot returns a copy of the state of the session.
func (s *Service) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() models.Snapshot {
	snapshot := models.Snapshot{
		Transactions:   s.transactions.collection.Items(),
		Budgets:        s.budgets.collection.Items(),
		Pots:           s.goals.collection.Items(),
		RecurringBills: s.bills.collection.Items(),
		SavedAt:        s.clock.Now().UTC(),
	}

	if s.account != nil {
		account := *s.account
		snapshot.SavingsAccount = &account
	}

	return snapshot
}
