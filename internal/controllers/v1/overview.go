package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/format"
	"github.com/pesapots/backend/internal/httputil"
)

// RegisterOverviewRoutes registers the routes for the overview and analytics with
// the RouterGroup that is passed.
func (co Controller) RegisterOverviewRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/overview", co.OptionsOverview)
	r.GET("/overview", co.GetOverview)
	r.OPTIONS("/analytics/budgets", co.OptionsOverview)
	r.GET("/analytics/budgets", co.GetBudgetAnalytics)
	r.OPTIONS("/analytics/savings", co.OptionsOverview)
	r.GET("/analytics/savings", co.GetSavingsAnalytics)
}

// OptionsOverview returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Overview
//	@Success		204
//	@Router			/v1/overview [options]
//	@Router			/v1/analytics/budgets [options]
//	@Router			/v1/analytics/savings [options]
func (co Controller) OptionsOverview(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetOverview returns the dashboard overview
//
//	@Summary		Overview
//	@Description	Returns the balance, transaction totals, monthly trend, bill totals, budget and savings reports
//	@Tags			Overview
//	@Produce		json
//	@Success		200	{object}	OverviewResponse
//	@Router			/v1/overview [get]
func (co Controller) GetOverview(c *gin.Context) {
	data := co.Session.Overview()
	c.JSON(http.StatusOK, OverviewResponse{Data: data, Formatted: formatOverview(data)})
}

// GetBudgetAnalytics returns the budget report
//
//	@Summary		Budget analytics
//	@Description	Returns totals and health counts over all budgets
//	@Tags			Overview
//	@Produce		json
//	@Success		200	{object}	BudgetAnalyticsResponse
//	@Router			/v1/analytics/budgets [get]
func (co Controller) GetBudgetAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, BudgetAnalyticsResponse{Data: co.Session.BudgetAnalytics()})
}

// GetSavingsAnalytics returns the savings report
//
//	@Summary		Savings analytics
//	@Description	Returns totals, progress and completion over all pots
//	@Tags			Overview
//	@Produce		json
//	@Success		200	{object}	SavingsAnalyticsResponse
//	@Router			/v1/analytics/savings [get]
func (co Controller) GetSavingsAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, SavingsAnalyticsResponse{Data: co.Session.SavingsAnalytics()})
}

func formatOverview(o aggregate.OverviewData) OverviewFormatted {
	return OverviewFormatted{
		Balance:        format.Amount(o.Balance),
		TotalIncome:    format.Amount(o.Transactions.TotalIncome),
		TotalExpenses:  format.Amount(o.Transactions.TotalExpenses),
		BudgetSpent:    format.Amount(o.Budgets.TotalSpent),
		BudgetLimit:    format.Amount(o.Budgets.TotalLimit),
		BudgetUsage:    format.Percent(o.Budgets.OverallPercentageUsed),
		SavingsSaved:   format.Amount(o.Savings.TotalSaved),
		SavingsTarget:  format.Amount(o.Savings.TotalTarget),
		SavingsBalance: format.Amount(o.SavingsAccount.Balance),
		BillsMonthly:   format.Amount(o.Bills.TotalMonthly),
		BillsUnpaid:    format.Amount(o.Bills.TotalUnpaid),
	}
}
