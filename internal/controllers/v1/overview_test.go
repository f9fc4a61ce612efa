package v1_test

import (
	"net/http"

	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOverviewEmpty() {
	var response v1.OverviewResponse
	suite.decode(http.MethodGet, "http://example.com/v1/overview", nil, http.StatusOK, &response)

	assert.True(suite.T(), response.Data.Balance.IsZero())
	assert.Equal(suite.T(), "KES 0.00", response.Formatted.Balance)
	assert.Equal(suite.T(), "0.0%", response.Formatted.BudgetUsage)
}

func (suite *TestSuiteStandard) TestOverview() {
	suite.importSession()

	var response v1.OverviewResponse
	suite.decode(http.MethodGet, "http://example.com/v1/overview", nil, http.StatusOK, &response)

	assert.Equal(suite.T(), v1.OverviewFormatted{
		Balance:        "KES 2,474.50",
		TotalIncome:    "KES 2,500.00",
		TotalExpenses:  "KES 25.50",
		BudgetSpent:    "KES 155.50",
		BudgetLimit:    "KES 700.00",
		BudgetUsage:    "22.2%",
		SavingsSaved:   "KES 3,700.00",
		SavingsTarget:  "KES 8,000.00",
		SavingsBalance: "KES 1,200.00",
		BillsMonthly:   "KES 815.99",
		BillsUnpaid:    "KES 15.99",
	}, response.Formatted)

	assert.Len(suite.T(), response.Data.RecentTransactions, 2)
}
