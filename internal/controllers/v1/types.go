package v1

import (
	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/session"
	"github.com/shopspring/decimal"
)

type AmountEditable struct {
	Amount decimal.Decimal `json:"amount" example:"250"` // Amount to move
}

type TransactionQueryFilter struct {
	Search    string `form:"search"`    // Glob pattern matched against description and category
	Type      string `form:"type"`      // income or expense
	Category  string `form:"category"`  // Exact category name, case insensitive
	FromDate  string `form:"fromDate"`  // First day to include, YYYY-MM-DD
	UntilDate string `form:"untilDate"` // Last day to include, YYYY-MM-DD
	Refresh   bool   `form:"refresh"`   // Fetch the collection from the backend first
}

type RefreshQuery struct {
	Refresh bool `form:"refresh"` // Fetch the collection from the backend first
}

type TransactionResponse struct {
	Data models.Transaction `json:"data"`
}

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

type BudgetResponse struct {
	Data aggregate.BudgetWithStats `json:"data"`
}

type BudgetListResponse struct {
	Data []aggregate.BudgetWithStats `json:"data"`
}

type CategoryListResponse struct {
	Data []string `json:"data" example:"Shopping,Healthcare"` // Expense categories without an active budget
}

type PotResponse struct {
	Data aggregate.GoalWithStats `json:"data"`
}

type PotListResponse struct {
	Data []aggregate.GoalWithStats `json:"data"`
}

type BillResponse struct {
	Data models.RecurringBill `json:"data"`
}

type BillListResponse struct {
	Data   []models.RecurringBill `json:"data"`
	Totals aggregate.BillSummary  `json:"totals"`
}

type BillBulkResponse struct {
	Data  []models.RecurringBill `json:"data"`
	Error string                 `json:"error,omitempty"` // Errors of bills that could not be updated
}

type SavingsAccountResponse struct {
	Data models.SavingsAccount `json:"data"`
}

type OverviewResponse struct {
	Data      aggregate.OverviewData `json:"data"`
	Formatted OverviewFormatted      `json:"formatted"`
}

// OverviewFormatted contains the main overview figures formatted for display.
type OverviewFormatted struct {
	Balance        string `json:"balance" example:"KES 2,474.50"`
	TotalIncome    string `json:"totalIncome" example:"KES 2,500.00"`
	TotalExpenses  string `json:"totalExpenses" example:"KES 25.50"`
	BudgetSpent    string `json:"budgetSpent" example:"KES 155.50"`
	BudgetLimit    string `json:"budgetLimit" example:"KES 700.00"`
	BudgetUsage    string `json:"budgetUsage" example:"22.2%"`
	SavingsSaved   string `json:"savingsSaved" example:"KES 3,700.00"`
	SavingsTarget  string `json:"savingsTarget" example:"KES 8,000.00"`
	SavingsBalance string `json:"savingsBalance" example:"KES 1,200.00"`
	BillsMonthly   string `json:"billsMonthly" example:"KES 815.99"`
	BillsUnpaid    string `json:"billsUnpaid" example:"KES 15.99"`
}

type BudgetAnalyticsResponse struct {
	Data aggregate.BudgetReport `json:"data"`
}

type SavingsAnalyticsResponse struct {
	Data aggregate.SavingsReport `json:"data"`
}

type ResultListResponse struct {
	Data  []session.Result `json:"data"`
	Error string           `json:"error,omitempty"` // Errors of collections that could not be refreshed
}
