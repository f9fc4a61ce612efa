package v1_test

import (
	"net/http"

	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

func (suite *TestSuiteStandard) createBudget(category, limit, spent string) v1.BudgetResponse {
	var response v1.BudgetResponse
	suite.decode(http.MethodPost, "http://example.com/v1/budgets", map[string]any{
		"category":       category,
		"limit":          limit,
		"spent":          spent,
		"alertThreshold": 80,
	}, http.StatusCreated, &response)
	return response
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	response := suite.createBudget("Food and Dining", "500", "145.50")

	assert.Equal(suite.T(), "Food and Dining", response.Data.Category)
	assertDecimal(suite.T(), "29.1", response.Data.Stats.PercentageUsed)
	assertDecimal(suite.T(), "354.5", response.Data.Stats.Remaining)
	assert.False(suite.T(), response.Data.Stats.IsAlertThresholdReached)
	assert.NotEmpty(suite.T(), response.Data.Color)
}

func (suite *TestSuiteStandard) TestBudgetsDuplicateCategory() {
	suite.createBudget("Food and Dining", "500", "0")

	body := suite.request(http.MethodPost, "http://example.com/v1/budgets", map[string]any{
		"category": "Food and Dining",
		"limit":    "200",
	}, http.StatusConflict)

	assert.NotEmpty(suite.T(), string(body))
	assert.Equal(suite.T(), 1, suite.count("POST /api/budgets/"), "the second budget must not reach the backend")
}

func (suite *TestSuiteStandard) TestBudgetsCategories() {
	suite.createBudget("Food and Dining", "500", "0")

	var response v1.CategoryListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/budgets/categories", nil, http.StatusOK, &response)

	assert.False(suite.T(), slices.Contains(response.Data, "Food and Dining"))
	assert.False(suite.T(), slices.Contains(response.Data, "Income"))
	assert.True(suite.T(), slices.Contains(response.Data, "Transportation"))
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := suite.createBudget("Food and Dining", "500", "450").Data

	var response v1.BudgetResponse
	suite.decode(http.MethodPatch, "http://example.com/v1/budgets/"+budget.ID, map[string]any{"limit": "400"}, http.StatusOK, &response)

	assertDecimal(suite.T(), "400", response.Data.Limit)
	assert.True(suite.T(), response.Data.Stats.IsOverBudget)

	suite.request(http.MethodPatch, "http://example.com/v1/budgets/"+budget.ID, map[string]any{"limit": "-1"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsResetSpent() {
	budget := suite.createBudget("Food and Dining", "500", "145.50").Data

	var response v1.BudgetResponse
	suite.decode(http.MethodPost, "http://example.com/v1/budgets/"+budget.ID+"/reset-spent", nil, http.StatusOK, &response)

	assert.True(suite.T(), response.Data.Spent.IsZero())
	assertDecimal(suite.T(), "0", response.Data.Stats.PercentageUsed)
}

func (suite *TestSuiteStandard) TestBudgetsToggleAlert() {
	budget := suite.createBudget("Food and Dining", "500", "0").Data

	var response v1.BudgetResponse
	suite.decode(http.MethodPost, "http://example.com/v1/budgets/"+budget.ID+"/toggle-alert/emailAlerts", nil, http.StatusOK, &response)
	assert.Equal(suite.T(), !budget.EmailAlerts, response.Data.EmailAlerts)

	suite.request(http.MethodPost, "http://example.com/v1/budgets/"+budget.ID+"/toggle-alert/color", nil, http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/budgets/404/toggle-alert/smsAlerts", nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := suite.createBudget("Food and Dining", "500", "0").Data

	suite.request(http.MethodDelete, "http://example.com/v1/budgets/"+budget.ID, nil, http.StatusNoContent)

	var response v1.BudgetListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/budgets", nil, http.StatusOK, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestBudgetAnalytics() {
	suite.createBudget("Food and Dining", "500", "450")
	suite.createBudget("Transportation", "200", "10")

	var response v1.BudgetAnalyticsResponse
	suite.decode(http.MethodGet, "http://example.com/v1/analytics/budgets", nil, http.StatusOK, &response)

	assertDecimal(suite.T(), "700", response.Data.TotalLimit)
	assertDecimal(suite.T(), "460", response.Data.TotalSpent)
	assert.Equal(suite.T(), 1, response.Data.OnTrack)
	assert.Equal(suite.T(), 1, response.Data.AtRisk)
}
