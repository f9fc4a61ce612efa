package models_test

import (
	"testing"

	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionSigned(t *testing.T) {
	income := models.Transaction{Amount: decimal.NewFromInt(2500), Type: models.TransactionTypeIncome}
	expense := models.Transaction{Amount: decimal.NewFromFloat(25.5), Type: models.TransactionTypeExpense}

	assert.True(t, income.Signed().Equal(decimal.NewFromInt(2500)))
	assert.True(t, expense.Signed().Equal(decimal.NewFromFloat(-25.5)))
}

func TestTransactionMerge(t *testing.T) {
	transaction := models.Transaction{
		ID:          "1",
		Amount:      decimal.NewFromInt(10),
		Type:        models.TransactionTypeExpense,
		Category:    "Food and Dining",
		Description: "Lunch",
		Date:        types.NewDate(2024, 1, 15),
	}
	transaction.SignedAmount = transaction.Signed()

	merged := transaction.Merge(models.Transaction{Type: models.TransactionTypeIncome, Description: "Refund"}, []string{"type"})
	assert.Equal(t, models.TransactionTypeIncome, merged.Type)
	assert.Equal(t, "Lunch", merged.Description)
	assert.True(t, merged.SignedAmount.Equal(decimal.NewFromInt(10)), "signed amount is derived from the merged type")

	assert.Equal(t, transaction, transaction.Merge(models.Transaction{}, []string{}))
}

func TestTransactionToggle(t *testing.T) {
	_, err := models.Transaction{ID: "1"}.Toggle("amount")
	assert.ErrorIs(t, err, models.ErrUnknownField)
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{models.CategoryIncome, "Savings and Investments"}, models.CategoriesFor(models.TransactionTypeIncome))
	assert.NotContains(t, models.CategoriesFor(models.TransactionTypeExpense), models.CategoryIncome)
	assert.Len(t, models.CategoriesFor(models.TransactionTypeExpense), len(models.TransactionCategories)-1)

	assert.Equal(t, models.CategoryIncome, models.DefaultCategory(models.TransactionTypeIncome))
}
