package aggregate

import (
	"github.com/pesapots/backend/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetStats are the values derived from a single budget.
type BudgetStats struct {
	PercentageUsed          decimal.Decimal `json:"percentageUsed" example:"29.1"` // spent / limit * 100, not clamped
	Remaining               decimal.Decimal `json:"remaining" example:"354.5"`     // limit - spent, negative when over budget
	IsOverBudget            bool            `json:"isOverBudget" example:"false"`  // Is more than the limit spent?
	IsAlertThresholdReached bool            `json:"isAlertThresholdReached" example:"false"`
	Invalid                 bool            `json:"invalid" example:"false"` // The limit is not positive, no percentage can be computed
}

// BudgetDerived computes the stats of a budget.
func BudgetDerived(b models.Budget) BudgetStats {
	stats := BudgetStats{
		PercentageUsed: decimal.Zero,
		Remaining:      b.Limit.Sub(b.Spent),
		IsOverBudget:   b.Spent.GreaterThan(b.Limit),
	}

	if !b.Limit.IsPositive() {
		stats.Invalid = true
		return stats
	}

	stats.PercentageUsed = percentage(b.Spent, b.Limit)
	stats.IsAlertThresholdReached = stats.PercentageUsed.GreaterThanOrEqual(b.AlertThreshold)
	return stats
}

// BudgetWithStats is a budget together with its derived stats.
type BudgetWithStats struct {
	models.Budget
	Stats BudgetStats `json:"stats"`
}

// WithBudgetStats attaches the derived stats to each budget.
func WithBudgetStats(budgets []models.Budget) []BudgetWithStats {
	list := make([]BudgetWithStats, 0, len(budgets))
	for _, b := range budgets {
		list = append(list, BudgetWithStats{Budget: b, Stats: BudgetDerived(b)})
	}
	return list
}

// BudgetReport summarizes all active budgets.
type BudgetReport struct {
	TotalLimit            decimal.Decimal   `json:"totalLimit" example:"700"`
	TotalSpent            decimal.Decimal   `json:"totalSpent" example:"155.5"`
	TotalRemaining        decimal.Decimal   `json:"totalRemaining" example:"544.5"`
	OverallPercentageUsed decimal.Decimal   `json:"overallPercentageUsed" example:"22.2142857142857143"`
	OnTrack               int               `json:"onTrack" example:"1"`  // Active budgets below their alert threshold
	AtRisk                int               `json:"atRisk" example:"1"`   // Active budgets at or above the threshold, but not over
	Exceeded              int               `json:"exceeded" example:"0"` // Active budgets over their limit
	Inactive              int               `json:"inactive" example:"0"`
	Budgets               []BudgetWithStats `json:"budgets"` // All budgets in collection order
}

// BudgetAnalytics computes the report over a list of budgets. Only active
// budgets count towards the totals.
func BudgetAnalytics(budgets []models.Budget) BudgetReport {
	r := BudgetReport{
		TotalLimit:            decimal.Zero,
		TotalSpent:            decimal.Zero,
		OverallPercentageUsed: decimal.Zero,
		Budgets:               WithBudgetStats(budgets),
	}

	for _, b := range r.Budgets {
		if !b.IsActive() {
			r.Inactive++
			continue
		}

		r.TotalLimit = r.TotalLimit.Add(b.Limit)
		r.TotalSpent = r.TotalSpent.Add(b.Spent)

		switch {
		case b.Stats.IsOverBudget:
			r.Exceeded++
		case b.Stats.IsAlertThresholdReached:
			r.AtRisk++
		default:
			r.OnTrack++
		}
	}

	r.TotalRemaining = r.TotalLimit.Sub(r.TotalSpent)
	if r.TotalLimit.IsPositive() {
		r.OverallPercentageUsed = percentage(r.TotalSpent, r.TotalLimit)
	}

	return r
}

// percentage returns part * 100 / whole. whole must not be zero.
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(models.Hundred()).Div(whole)
}

// AvailableCategories returns the expense categories that have no active
// budget yet, in catalogue order.
func AvailableCategories(budgets []models.Budget) []string {
	taken := map[string]bool{}
	for _, b := range budgets {
		if b.IsActive() {
			taken[b.Category] = true
		}
	}

	available := []string{}
	for _, c := range models.CategoriesFor(models.TransactionTypeExpense) {
		if !taken[c] {
			available = append(available, c)
		}
	}
	return available
}
