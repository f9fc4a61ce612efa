package models

import (
	"fmt"

	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// swagger:enum TransactionType
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports if the type is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single income or expense.
type Transaction struct {
	ID           string          `json:"id" example:"1"`                                 // ID of the transaction as assigned by the backend
	Amount       decimal.Decimal `json:"amount" example:"25.5"`                          // Absolute amount of the transaction
	SignedAmount decimal.Decimal `json:"signedAmount" example:"-25.5"`                   // Amount with the sign of its effect on the balance
	Type         TransactionType `json:"type" example:"expense"`                         // income or expense
	Category     string          `json:"category" example:"Food and Dining"`             // Category name
	Description  string          `json:"description" example:"Coffee Shop" default:""`   // Free text description
	Date         types.Date      `json:"date" example:"2024-01-15" swaggertype:"string"` // Day the transaction happened
}

// Signed returns the amount with the sign of its effect on the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}

func (t Transaction) Key() string {
	return t.ID
}

func (t Transaction) Merge(patch Transaction, fields []string) Transaction {
	if slices.Contains(fields, "amount") {
		t.Amount = patch.Amount
	}
	if slices.Contains(fields, "type") {
		t.Type = patch.Type
	}
	if slices.Contains(fields, "category") {
		t.Category = patch.Category
	}
	if slices.Contains(fields, "description") {
		t.Description = patch.Description
	}
	if slices.Contains(fields, "date") {
		t.Date = patch.Date
	}

	t.SignedAmount = t.Signed()
	return t
}

// Toggle always fails, transactions have no boolean fields.
func (t Transaction) Toggle(field string) (Transaction, error) {
	return t, fmt.Errorf("%w: %s on transaction", ErrUnknownField, field)
}
