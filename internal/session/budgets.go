package session

import (
	"context"
	"fmt"

	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

func prepareBudget(b models.Budget) (models.Budget, error) {
	if !b.Limit.IsPositive() {
		return b, models.ErrInvalidAmount
	}

	if b.Category == "" {
		return b, fmt.Errorf("%w: a budget needs a category", models.ErrInvalidInput)
	}

	return b, nil
}

// Budgets returns all budgets with their derived values.
func (s *Service) Budgets() []aggregate.BudgetWithStats {
	s.mu.Lock()
	items := s.budgets.collection.Items()
	s.mu.Unlock()

	return aggregate.WithBudgetStats(items)
}

// BudgetAnalytics summarizes all budgets.
func (s *Service) BudgetAnalytics() aggregate.BudgetReport {
	s.mu.Lock()
	items := s.budgets.collection.Items()
	s.mu.Unlock()

	return aggregate.BudgetAnalytics(items)
}

// AvailableBudgetCategories returns the expense categories without an
// active budget.
func (s *Service) AvailableBudgetCategories() []string {
	s.mu.Lock()
	items := s.budgets.collection.Items()
	s.mu.Unlock()

	return aggregate.AvailableCategories(items)
}

// CreateBudget creates a budget. A category can only have one active budget.
func (s *Service) CreateBudget(ctx context.Context, input normalize.RawRecord) (models.Budget, error) {
	return create(ctx, s, s.budgets, input)
}

// UpdateBudget changes the fields present in the input.
func (s *Service) UpdateBudget(ctx context.Context, id string, input normalize.RawRecord) (models.Budget, error) {
	return update(ctx, s, s.budgets, id, input)
}

// DeleteBudget deletes a budget.
func (s *Service) DeleteBudget(ctx context.Context, id string) error {
	return remove(ctx, s, s.budgets, id)
}

// ToggleBudgetAlert switches the emailAlerts or smsAlerts setting of a budget.
func (s *Service) ToggleBudgetAlert(ctx context.Context, id, field string) (models.Budget, error) {
	return toggle(ctx, s, s.budgets, id, field)
}

// ResetBudgetSpent sets the spent amount of a budget back to zero.
func (s *Service) ResetBudgetSpent(ctx context.Context, id string) (models.Budget, error) {
	if _, err := get(s, s.budgets, id); err != nil {
		return models.Budget{}, err
	}

	raw, err := s.backend.Action(ctx, backend.KindBudgets, id, backend.ActionResetSpent, nil)
	if err != nil {
		return models.Budget{}, err
	}

	updated, err := s.budgets.one(withID(raw, id))
	if err != nil {
		s.dropped(s.budgets.name, err)
		return models.Budget{}, err
	}

	fields := normalize.Fields(s.budgets.name, raw)
	if !slices.Contains(fields, "spent") {
		updated.Spent = decimal.Zero
		fields = append(fields, "spent")
	}

	return merge(ctx, s, s.budgets, id, updated, fields)
}
