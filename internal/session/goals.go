package session

import (
	"context"
	"fmt"

	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

func prepareGoal(g models.SavingsGoal) (models.SavingsGoal, error) {
	if !g.TargetAmount.IsPositive() {
		return g, models.ErrInvalidAmount
	}

	if g.Name == "" {
		return g, fmt.Errorf("%w: a pot needs a name", models.ErrInvalidInput)
	}

	return g, nil
}

// SavingsGoals returns all pots with their derived values.
func (s *Service) SavingsGoals() []aggregate.GoalWithStats {
	s.mu.Lock()
	items := s.goals.collection.Items()
	s.mu.Unlock()

	return aggregate.WithGoalStats(items, s.Today())
}

// SavingsAnalytics summarizes all pots.
func (s *Service) SavingsAnalytics() aggregate.SavingsReport {
	s.mu.Lock()
	items := s.goals.collection.Items()
	s.mu.Unlock()

	return aggregate.SavingsAnalytics(items, s.Today())
}

// CreateSavingsGoal creates a pot from user input.
func (s *Service) CreateSavingsGoal(ctx context.Context, input normalize.RawRecord) (models.SavingsGoal, error) {
	return create(ctx, s, s.goals, input)
}

// UpdateSavingsGoal changes the fields present in the input. The current
// amount cannot be edited directly.
func (s *Service) UpdateSavingsGoal(ctx context.Context, id string, input normalize.RawRecord) (models.SavingsGoal, error) {
	return update(ctx, s, s.goals, id, input)
}

// DeleteSavingsGoal deletes a pot.
func (s *Service) DeleteSavingsGoal(ctx context.Context, id string) error {
	return remove(ctx, s, s.goals, id)
}

// DepositToGoal adds money to a pot. Deposits are capped at the amount
// missing to reach the target. A pot that reached its target is returned
// unchanged.
func (s *Service) DepositToGoal(ctx context.Context, id string, amount decimal.Decimal) (models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return models.SavingsGoal{}, models.ErrInvalidAmount
	}

	current, err := get(s, s.goals, id)
	if err != nil {
		return current, err
	}

	missing := decimal.Max(current.TargetAmount.Sub(current.CurrentAmount), decimal.Zero)
	effective := decimal.Min(amount, missing)
	if effective.IsZero() {
		return current, nil
	}

	return s.fund(ctx, current, backend.ActionDeposit, effective)
}

// WithdrawFromGoal takes money out of a pot, at most its current amount.
func (s *Service) WithdrawFromGoal(ctx context.Context, id string, amount decimal.Decimal) (models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return models.SavingsGoal{}, models.ErrInvalidAmount
	}

	current, err := get(s, s.goals, id)
	if err != nil {
		return current, err
	}

	effective := decimal.Min(amount, current.CurrentAmount)
	if effective.IsZero() {
		return current, nil
	}

	return s.fund(ctx, current, backend.ActionWithdraw, effective.Neg())
}

// AllocateToGoal moves money from the savings account to a pot.
func (s *Service) AllocateToGoal(ctx context.Context, id string, amount decimal.Decimal) (models.SavingsGoal, error) {
	if !amount.IsPositive() {
		return models.SavingsGoal{}, models.ErrInvalidAmount
	}

	account, ok := s.SavingsAccount()
	if !ok || amount.GreaterThan(account.Balance) {
		return models.SavingsGoal{}, models.ErrInsufficientBalance
	}

	current, err := get(s, s.goals, id)
	if err != nil {
		return current, err
	}

	goal, err := s.fund(ctx, current, backend.ActionAllocate, amount)
	if err != nil {
		return goal, err
	}

	if _, err := s.RefreshSavingsAccount(ctx); err != nil {
		log.Warn().Err(err).Msg("refreshing savings account after allocation, adjusting locally")
		account.Balance = decimal.Max(account.Balance.Sub(amount), decimal.Zero)
		s.setAccount(ctx, account)
	}

	return goal, nil
}

// fund calls a funding action of the backend. delta is the signed change of
// the current amount, used when the response does not contain it.
func (s *Service) fund(ctx context.Context, current models.SavingsGoal, action string, delta decimal.Decimal) (models.SavingsGoal, error) {
	raw, err := s.backend.Action(ctx, backend.KindGoals, current.ID, action, backend.Amount{Amount: delta.Abs().String()})
	if err != nil {
		return current, err
	}

	updated, err := s.goals.one(withID(raw, current.ID))
	if err != nil {
		s.dropped(s.goals.name, err)
		return current, err
	}

	fields := normalize.Fields(s.goals.name, raw)
	if !slices.Contains(fields, "currentAmount") {
		updated.CurrentAmount = decimal.Max(current.CurrentAmount.Add(delta), decimal.Zero)
		fields = append(fields, "currentAmount")
	}

	return merge(ctx, s, s.goals, current.ID, updated, fields)
}
