package models

import (
	"fmt"

	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// swagger:enum BillFrequency
type BillFrequency string

const (
	BillFrequencyWeekly  BillFrequency = "weekly"
	BillFrequencyMonthly BillFrequency = "monthly"
	BillFrequencyYearly  BillFrequency = "yearly"
)

func (f BillFrequency) Valid() bool {
	return f == BillFrequencyWeekly || f == BillFrequencyMonthly || f == BillFrequencyYearly
}

// RecurringBill is a bill that is due periodically.
type RecurringBill struct {
	ID        string          `json:"id" example:"1"`                                    // ID of the bill as assigned by the backend
	Name      string          `json:"name" example:"Netflix"`                            // Name of the bill
	Amount    decimal.Decimal `json:"amount" example:"15.99"`                            // Amount due
	DueDate   types.Date      `json:"dueDate" example:"2024-02-01" swaggertype:"string"` // Next due date
	Frequency BillFrequency   `json:"frequency" example:"monthly"`                       // weekly, monthly or yearly
	Paid      bool            `json:"paid" example:"false"`                              // Is the bill paid for the current period?
}

func (b RecurringBill) Key() string {
	return b.ID
}

func (b RecurringBill) Merge(patch RecurringBill, fields []string) RecurringBill {
	if slices.Contains(fields, "name") {
		b.Name = patch.Name
	}
	if slices.Contains(fields, "amount") {
		b.Amount = patch.Amount
	}
	if slices.Contains(fields, "dueDate") {
		b.DueDate = patch.DueDate
	}
	if slices.Contains(fields, "frequency") {
		b.Frequency = patch.Frequency
	}
	if slices.Contains(fields, "paid") {
		b.Paid = patch.Paid
	}

	return b
}

func (b RecurringBill) Toggle(field string) (RecurringBill, error) {
	if field != "paid" {
		return b, fmt.Errorf("%w: %s on bill", ErrUnknownField, field)
	}

	b.Paid = !b.Paid
	return b, nil
}
