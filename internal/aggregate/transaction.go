// Package aggregate computes read-only summaries of the finance collections.
//
// All functions are deterministic and never modify their inputs. Data shape
// problems degrade to zero values instead of errors.
package aggregate

import (
	"strings"

	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// TransactionSummary partitions transactions by type.
type TransactionSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome" example:"2500"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"25.5"`
	IncomeCount   int             `json:"incomeCount" example:"1"`
	ExpenseCount  int             `json:"expenseCount" example:"1"`
}

// Balance is the sum of the signed amounts of all transactions.
func Balance(transactions []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		balance = balance.Add(t.Signed())
	}
	return balance
}

// Summarize sums the absolute amounts of income and expenses.
func Summarize(transactions []models.Transaction) TransactionSummary {
	s := TransactionSummary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, t := range transactions {
		if t.Type == models.TransactionTypeIncome {
			s.TotalIncome = s.TotalIncome.Add(t.Amount.Abs())
			s.IncomeCount++
			continue
		}
		s.TotalExpenses = s.TotalExpenses.Add(t.Amount.Abs())
		s.ExpenseCount++
	}

	return s
}

// Recent returns the first n transactions in collection order. New
// transactions are kept at the head of the collection.
func Recent(transactions []models.Transaction, n int) []models.Transaction {
	if n < 0 {
		n = 0
	}
	if n > len(transactions) {
		n = len(transactions)
	}
	return append([]models.Transaction{}, transactions[:n]...)
}

// TransactionFilter selects transactions. Zero fields match everything.
type TransactionFilter struct {
	// Search is matched against description and category, case insensitive.
	// It may contain "*" wildcards, without any it matches substrings.
	Search   string
	Type     models.TransactionType
	Category string
	From     types.Date // First day to include
	Until    types.Date // Last day to include
}

// Filter returns the matching transactions in collection order.
func Filter(transactions []models.Transaction, f TransactionFilter) []models.Transaction {
	pattern := strings.ToLower(strings.TrimSpace(f.Search))
	if pattern != "" && !strings.Contains(pattern, "*") {
		pattern = "*" + pattern + "*"
	}

	matches := []models.Transaction{}
	for _, t := range transactions {
		if f.Type != "" && t.Type != f.Type {
			continue
		}

		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}

		if !f.From.IsZero() && t.Date.Before(f.From) {
			continue
		}

		if !f.Until.IsZero() && t.Date.After(f.Until) {
			continue
		}

		if pattern != "" && !glob.Glob(pattern, strings.ToLower(t.Description)) && !glob.Glob(pattern, strings.ToLower(t.Category)) {
			continue
		}

		matches = append(matches, t)
	}

	return matches
}

// MonthSummary is the income and expenses of one month.
type MonthSummary struct {
	Month    types.Month     `json:"month" swaggertype:"string" example:"2024-01"`
	Income   decimal.Decimal `json:"income" example:"2500"`
	Expenses decimal.Decimal `json:"expenses" example:"25.5"`
	Net      decimal.Decimal `json:"net" example:"2474.5"`
}

// Monthly groups transactions by the month they happened in, oldest month
// first. Transactions without a date are skipped.
func Monthly(transactions []models.Transaction) []MonthSummary {
	byMonth := map[types.Month]*MonthSummary{}
	months := []types.Month{}

	for _, t := range transactions {
		if t.Date.IsZero() {
			continue
		}

		m := t.Date.Month()
		s, ok := byMonth[m]
		if !ok {
			s = &MonthSummary{Month: m, Income: decimal.Zero, Expenses: decimal.Zero, Net: decimal.Zero}
			byMonth[m] = s
			months = append(months, m)
		}

		if t.Type == models.TransactionTypeIncome {
			s.Income = s.Income.Add(t.Amount.Abs())
		} else {
			s.Expenses = s.Expenses.Add(t.Amount.Abs())
		}
		s.Net = s.Net.Add(t.Signed())
	}

	slices.SortFunc(months, func(a, b types.Month) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})

	summaries := make([]MonthSummary, 0, len(months))
	for _, m := range months {
		summaries = append(summaries, *byMonth[m])
	}
	return summaries
}
