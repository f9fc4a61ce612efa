package session

import (
	"context"

	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
)

func (s *Service) prepareTransaction(t models.Transaction) (models.Transaction, error) {
	if !t.Amount.IsPositive() {
		return t, models.ErrInvalidAmount
	}

	if t.Category == "" {
		t.Category = models.DefaultCategory(t.Type)
	}

	if t.Date.IsZero() {
		t.Date = s.Today()
	}

	return t, nil
}

// Transactions returns the transactions matching the filter, newest first.
func (s *Service) Transactions(filter aggregate.TransactionFilter) []models.Transaction {
	s.mu.Lock()
	items := s.transactions.collection.Items()
	s.mu.Unlock()

	return aggregate.Filter(items, filter)
}

// CreateTransaction creates a transaction from user input.
func (s *Service) CreateTransaction(ctx context.Context, input normalize.RawRecord) (models.Transaction, error) {
	return create(ctx, s, s.transactions, input)
}

// UpdateTransaction changes the fields present in the input.
func (s *Service) UpdateTransaction(ctx context.Context, id string, input normalize.RawRecord) (models.Transaction, error) {
	return update(ctx, s, s.transactions, id, input)
}

// DeleteTransaction deletes a transaction.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	return remove(ctx, s, s.transactions, id)
}
