package aggregate

import (
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
	"github.com/shopspring/decimal"
)

// RecentCount is the number of transactions shown on the overview.
const RecentCount = 5

// OverviewData is the dashboard of a session.
type OverviewData struct {
	Balance            decimal.Decimal       `json:"balance" example:"2474.5"`
	Transactions       TransactionSummary    `json:"transactions"`
	RecentTransactions []models.Transaction  `json:"recentTransactions"`
	Months             []MonthSummary        `json:"months"`
	Bills              BillSummary           `json:"bills"`
	Budgets            BudgetReport          `json:"budgets"`
	Savings            SavingsReport         `json:"savings"`
	SavingsAccount     models.SavingsAccount `json:"savingsAccount"`
}

// Overview composes all summaries of a snapshot as of today.
func Overview(s models.Snapshot, today types.Date) OverviewData {
	account := models.SavingsAccount{Balance: decimal.Zero, AutoSavePercentage: decimal.Zero}
	if s.SavingsAccount != nil {
		account = *s.SavingsAccount
	}

	return OverviewData{
		Balance:            Balance(s.Transactions),
		Transactions:       Summarize(s.Transactions),
		RecentTransactions: Recent(s.Transactions, RecentCount),
		Months:             Monthly(s.Transactions),
		Bills:              BillTotals(s.RecurringBills),
		Budgets:            BudgetAnalytics(s.Budgets),
		Savings:            SavingsAnalytics(s.Pots, today),
		SavingsAccount:     account,
	}
}
