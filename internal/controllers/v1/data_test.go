package v1_test

import (
	"encoding/json"
	"net/http"

	"github.com/pesapots/backend/internal/backend"
	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) importSession() v1.ResultListResponse {
	var response v1.ResultListResponse
	suite.decode(http.MethodPost, "http://example.com/v1/data", test.LoadTestFile(suite.T(), "session.json"), http.StatusOK, &response)
	return response
}

func (suite *TestSuiteStandard) TestDataImport() {
	response := suite.importSession()

	require.Len(suite.T(), response.Data, 4)
	assert.Equal(suite.T(), "transaction", response.Data[0].Collection)
	assert.Equal(suite.T(), 3, response.Data[0].Received)
	assert.Len(suite.T(), response.Data[0].Dropped, 1)

	var pots v1.PotListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/pots", nil, http.StatusOK, &pots)
	require.Len(suite.T(), pots.Data, 2)
	assertDecimal(suite.T(), "2500", pots.Data[0].CurrentAmount)

	assert.Empty(suite.T(), suite.backend.Requests(), "an import must not change the backend")
}

func (suite *TestSuiteStandard) TestDataImportInvalid() {
	suite.request(http.MethodPost, "http://example.com/v1/data", "", http.StatusBadRequest)
	suite.request(http.MethodPost, "http://example.com/v1/data", "[1, 2]", http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDataExport() {
	suite.importSession()

	body := suite.request(http.MethodGet, "http://example.com/v1/data", nil, http.StatusOK)

	var snapshot models.Snapshot
	require.Nil(suite.T(), json.Unmarshal(body, &snapshot))
	assert.Len(suite.T(), snapshot.Transactions, 2)
	assert.Len(suite.T(), snapshot.Budgets, 2)
	assert.Len(suite.T(), snapshot.RecurringBills, 2)
	require.NotNil(suite.T(), snapshot.SavingsAccount)
	assertDecimal(suite.T(), "1200", snapshot.SavingsAccount.Balance)
}

func (suite *TestSuiteStandard) TestDataClear() {
	suite.importSession()

	suite.request(http.MethodDelete, "http://example.com/v1/data", nil, http.StatusNoContent)

	var transactions v1.TransactionListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/transactions", nil, http.StatusOK, &transactions)
	assert.Len(suite.T(), transactions.Data, 0)
	suite.request(http.MethodGet, "http://example.com/v1/savings-account", nil, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestRefreshAll() {
	suite.backend.Seed(backend.KindBudgets, map[string]any{"id": 1, "category": "Transportation", "limit": "200.00", "spent_amount": "20.00"})
	suite.backend.Seed(backend.KindGoals, map[string]any{"id": 2, "name": "Holiday", "target_amount": "3000.00", "current_amount": "1200.00"})
	suite.backend.SetAccount(map[string]any{"balance": "500.00", "auto_save_percentage": "5"})

	var response v1.ResultListResponse
	suite.decode(http.MethodPost, "http://example.com/v1/refresh", nil, http.StatusOK, &response)
	assert.Len(suite.T(), response.Data, len(backend.Kinds))
	assert.Empty(suite.T(), response.Error)

	var overview v1.OverviewResponse
	suite.decode(http.MethodGet, "http://example.com/v1/overview", nil, http.StatusOK, &overview)
	assertDecimal(suite.T(), "1200", overview.Data.Savings.TotalSaved)
	assert.Equal(suite.T(), "KES 500.00", overview.Formatted.SavingsBalance)
}

func (suite *TestSuiteStandard) TestRefreshAllBackendDown() {
	suite.importSession()
	suite.backend.Fail(http.StatusServiceUnavailable)

	var response v1.ResultListResponse
	suite.decode(http.MethodPost, "http://example.com/v1/refresh", nil, http.StatusBadGateway, &response)
	assert.NotEmpty(suite.T(), response.Error)

	var transactions v1.TransactionListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/transactions", nil, http.StatusOK, &transactions)
	assert.Len(suite.T(), transactions.Data, 2, "failed collections keep their local state")
}
