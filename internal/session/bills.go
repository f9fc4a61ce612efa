package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
)

func (s *Service) prepareBill(b models.RecurringBill) (models.RecurringBill, error) {
	if !b.Amount.IsPositive() {
		return b, models.ErrInvalidAmount
	}

	if b.Name == "" {
		return b, fmt.Errorf("%w: a bill needs a name", models.ErrInvalidInput)
	}

	if b.DueDate.IsZero() {
		b.DueDate = s.Today()
	}

	return b, nil
}

// RecurringBills returns all bills and their totals.
func (s *Service) RecurringBills() ([]models.RecurringBill, aggregate.BillSummary) {
	s.mu.Lock()
	items := s.bills.collection.Items()
	s.mu.Unlock()

	return items, aggregate.BillTotals(items)
}

// CreateRecurringBill creates a bill from user input.
func (s *Service) CreateRecurringBill(ctx context.Context, input normalize.RawRecord) (models.RecurringBill, error) {
	return create(ctx, s, s.bills, input)
}

// UpdateRecurringBill changes the fields present in the input.
func (s *Service) UpdateRecurringBill(ctx context.Context, id string, input normalize.RawRecord) (models.RecurringBill, error) {
	return update(ctx, s, s.bills, id, input)
}

// DeleteRecurringBill deletes a bill.
func (s *Service) DeleteRecurringBill(ctx context.Context, id string) error {
	return remove(ctx, s, s.bills, id)
}

// ToggleBillPaid flips the paid flag of a bill.
func (s *Service) ToggleBillPaid(ctx context.Context, id string) (models.RecurringBill, error) {
	return toggle(ctx, s, s.bills, id, "paid")
}

// MarkAllBillsPaid marks every unpaid bill as paid.
func (s *Service) MarkAllBillsPaid(ctx context.Context) ([]models.RecurringBill, error) {
	return s.setAllPaid(ctx, true)
}

// ResetAllBills marks every paid bill as unpaid, usually at the start of a
// new period.
func (s *Service) ResetAllBills(ctx context.Context) ([]models.RecurringBill, error) {
	return s.setAllPaid(ctx, false)
}

// setAllPaid updates every bill whose paid flag differs. Bills that fail
// keep their state, the errors of all of them are returned.
func (s *Service) setAllPaid(ctx context.Context, paid bool) ([]models.RecurringBill, error) {
	bills, _ := s.RecurringBills()

	var errs []error
	for _, b := range bills {
		if b.Paid == paid {
			continue
		}

		raw, err := s.backend.Update(ctx, backend.KindBills, b.ID, map[string]any{"is_paid": paid})
		if err != nil {
			errs = append(errs, err)
			continue
		}

		fields := normalize.Fields(s.bills.name, raw)
		updated, err := s.bills.one(withID(raw, b.ID))
		if err != nil {
			s.dropped(s.bills.name, err)
			updated, fields = b, nil
		}

		updated.Paid = paid
		fields = append(fields, "paid")
		if _, err := merge(ctx, s, s.bills, b.ID, updated, fields); err != nil {
			errs = append(errs, err)
		}
	}

	items, _ := s.RecurringBills()
	return items, errors.Join(errs...)
}
