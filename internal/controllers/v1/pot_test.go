package v1_test

import (
	"net/http"

	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/pesapots/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createPot(name, target string) v1.PotResponse {
	var response v1.PotResponse
	suite.decode(http.MethodPost, "http://example.com/v1/pots", map[string]any{
		"name":         name,
		"targetAmount": target,
		"targetDate":   "2024-04-09",
	}, http.StatusCreated, &response)
	return response
}

func (suite *TestSuiteStandard) TestPotsCreate() {
	response := suite.createPot("Holiday", "3000")

	assert.Equal(suite.T(), "Holiday", response.Data.Name)
	assert.True(suite.T(), response.Data.CurrentAmount.IsZero())
	assert.Equal(suite.T(), models.GoalStatusActive, response.Data.Status)
	require.NotNil(suite.T(), response.Data.Stats.DaysRemaining)
	assert.Equal(suite.T(), 30, *response.Data.Stats.DaysRemaining)
	require.NotNil(suite.T(), response.Data.Stats.DailySavingRequired)
	assertDecimal(suite.T(), "100", *response.Data.Stats.DailySavingRequired)
}

func (suite *TestSuiteStandard) TestPotsFunding() {
	pot := suite.createPot("Holiday", "3000").Data
	url := "http://example.com/v1/pots/" + pot.ID

	var response v1.PotResponse
	suite.decode(http.MethodPost, url+"/deposit", map[string]any{"amount": "500"}, http.StatusOK, &response)
	assertDecimal(suite.T(), "500", response.Data.CurrentAmount)

	// Deposits are capped at the target
	suite.decode(http.MethodPost, url+"/deposit", map[string]any{"amount": "5000"}, http.StatusOK, &response)
	assertDecimal(suite.T(), "3000", response.Data.CurrentAmount)
	assertDecimal(suite.T(), "100", response.Data.Stats.DisplayPercentage)

	// Withdrawals are capped at the current amount
	suite.decode(http.MethodPost, url+"/withdraw", map[string]any{"amount": "4000"}, http.StatusOK, &response)
	assert.True(suite.T(), response.Data.CurrentAmount.IsZero())

	suite.request(http.MethodPost, url+"/withdraw", map[string]any{"amount": "-5"}, http.StatusBadRequest)
	suite.request(http.MethodPost, url+"/deposit", "", http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/pots/404/deposit", map[string]any{"amount": "5"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestPotsDirectFundingEdit() {
	pot := suite.createPot("Holiday", "3000").Data

	body := suite.request(http.MethodPatch, "http://example.com/v1/pots/"+pot.ID, map[string]any{"currentAmount": "400"}, http.StatusBadRequest)
	assert.NotEmpty(suite.T(), body)

	var response v1.PotResponse
	suite.decode(http.MethodPatch, "http://example.com/v1/pots/"+pot.ID, map[string]any{"priority": "high"}, http.StatusOK, &response)
	assert.Equal(suite.T(), models.GoalPriorityHigh, response.Data.Priority)
}

func (suite *TestSuiteStandard) TestPotsAllocate() {
	pot := suite.createPot("Holiday", "3000").Data
	url := "http://example.com/v1/pots/" + pot.ID + "/allocate"

	// The savings account is not loaded yet
	suite.request(http.MethodPost, url, map[string]any{"amount": "300"}, http.StatusBadRequest)

	suite.backend.SetAccount(map[string]any{"balance": "1000.00", "auto_save_percentage": "10"})
	suite.request(http.MethodGet, "http://example.com/v1/savings-account?refresh=true", nil, http.StatusOK)

	var response v1.PotResponse
	suite.decode(http.MethodPost, url, map[string]any{"amount": "300"}, http.StatusOK, &response)
	assertDecimal(suite.T(), "300", response.Data.CurrentAmount)

	var account v1.SavingsAccountResponse
	suite.decode(http.MethodGet, "http://example.com/v1/savings-account", nil, http.StatusOK, &account)
	assertDecimal(suite.T(), "700", account.Data.Balance)

	suite.request(http.MethodPost, url, map[string]any{"amount": "701"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPotsListAndDelete() {
	suite.createPot("Holiday", "3000")
	pot := suite.createPot("Emergency Fund", "5000").Data

	var response v1.PotListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/pots", nil, http.StatusOK, &response)
	assert.Len(suite.T(), response.Data, 2)

	suite.request(http.MethodDelete, "http://example.com/v1/pots/"+pot.ID, nil, http.StatusNoContent)

	suite.decode(http.MethodGet, "http://example.com/v1/pots", nil, http.StatusOK, &response)
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Holiday", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestSavingsAnalytics() {
	pot := suite.createPot("Holiday", "3000").Data
	suite.createPot("Emergency Fund", "5000")
	suite.request(http.MethodPost, "http://example.com/v1/pots/"+pot.ID+"/deposit", map[string]any{"amount": "1500"}, http.StatusOK)

	var response v1.SavingsAnalyticsResponse
	suite.decode(http.MethodGet, "http://example.com/v1/analytics/savings", nil, http.StatusOK, &response)

	assertDecimal(suite.T(), "8000", response.Data.TotalTarget)
	assertDecimal(suite.T(), "1500", response.Data.TotalSaved)
	assertDecimal(suite.T(), "25", response.Data.AverageProgress)
	assert.Equal(suite.T(), 2, response.Data.Active)
}
