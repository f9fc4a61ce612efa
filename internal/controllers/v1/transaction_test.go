package v1_test

import (
	"net/http"

	"github.com/pesapots/backend/internal/backend"
	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/pesapots/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTransaction(body map[string]any) models.Transaction {
	var response v1.TransactionResponse
	suite.decode(http.MethodPost, "http://example.com/v1/transactions", body, http.StatusCreated, &response)
	return response.Data
}

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	transaction := suite.createTransaction(map[string]any{
		"amount":      "25.50",
		"type":        "expense",
		"category":    "Dining Out",
		"description": "Lunch",
		"date":        "2024-03-05",
	})

	assert.Equal(suite.T(), "101", transaction.ID)
	assertDecimal(suite.T(), "25.5", transaction.Amount)
	assertDecimal(suite.T(), "-25.5", transaction.SignedAmount)
	assert.Equal(suite.T(), "2024-03-05", transaction.Date.String())
	assert.Equal(suite.T(), 1, suite.count("POST /api/transactions/"))
}

func (suite *TestSuiteStandard) TestTransactionsCreateDefaults() {
	transaction := suite.createTransaction(map[string]any{"amount": "2500", "type": "income"})

	assert.Equal(suite.T(), "2024-03-10", transaction.Date.String())
	assert.Equal(suite.T(), models.DefaultCategory(models.TransactionTypeIncome), transaction.Category)
}

func (suite *TestSuiteStandard) TestTransactionsCreateFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Not an object", `[{"amount": "10"}]`, http.StatusBadRequest},
		{"Zero amount", map[string]any{"amount": "0", "type": "expense"}, http.StatusBadRequest},
		{"Broken amount", map[string]any{"amount": "ten", "type": "expense"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.request(http.MethodPost, "http://example.com/v1/transactions", tt.body, tt.status)
		})
	}

	assert.Equal(suite.T(), 0, suite.count("POST /api/transactions/"))
}

func (suite *TestSuiteStandard) TestTransactionsFilter() {
	suite.createTransaction(map[string]any{"amount": "2500", "type": "income", "category": "Salary", "description": "March salary", "date": "2024-03-01"})
	suite.createTransaction(map[string]any{"amount": "25.50", "type": "expense", "category": "Dining Out", "description": "Lunch", "date": "2024-03-05"})
	suite.createTransaction(map[string]any{"amount": "4.20", "type": "expense", "category": "Dining Out", "description": "Coffee", "date": "2024-02-27"})

	tests := []struct {
		query        string
		descriptions []string
	}{
		{"", []string{"Coffee", "Lunch", "March salary"}},
		{"?type=income", []string{"March salary"}},
		{"?category=dining%20out", []string{"Coffee", "Lunch"}},
		{"?search=*unch*", []string{"Lunch"}},
		{"?fromDate=2024-03-01", []string{"Lunch", "March salary"}},
		{"?untilDate=2024-02-29", []string{"Coffee"}},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			var response v1.TransactionListResponse
			suite.decode(http.MethodGet, "http://example.com/v1/transactions"+tt.query, nil, http.StatusOK, &response)

			descriptions := []string{}
			for _, t := range response.Data {
				descriptions = append(descriptions, t.Description)
			}
			assert.Equal(suite.T(), tt.descriptions, descriptions)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsBadQuery() {
	for _, query := range []string{"?type=transfer", "?fromDate=yesterday", "?refresh=maybe"} {
		suite.Run(query, func() {
			suite.request(http.MethodGet, "http://example.com/v1/transactions"+query, nil, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsRefresh() {
	suite.backend.Seed(backend.KindTransactions,
		map[string]any{"id": 1, "amount": "10.00", "transaction_type": "expense", "category": "Transportation", "date": "2024-03-02"},
		map[string]any{"id": 2, "amount": "lots", "transaction_type": "expense"},
	)

	var response v1.TransactionListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/transactions?refresh=true", nil, http.StatusOK, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "1", response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestTransactionsUpdateAndDelete() {
	transaction := suite.createTransaction(map[string]any{"amount": "25.50", "type": "expense", "category": "Dining Out"})

	var response v1.TransactionResponse
	suite.decode(http.MethodPatch, "http://example.com/v1/transactions/"+transaction.ID, map[string]any{"description": "Team lunch"}, http.StatusOK, &response)
	assert.Equal(suite.T(), "Team lunch", response.Data.Description)
	assertDecimal(suite.T(), "25.5", response.Data.Amount)

	suite.request(http.MethodDelete, "http://example.com/v1/transactions/"+transaction.ID, nil, http.StatusNoContent)
	suite.request(http.MethodDelete, "http://example.com/v1/transactions/"+transaction.ID, nil, http.StatusNotFound)
	suite.request(http.MethodPatch, "http://example.com/v1/transactions/"+transaction.ID, map[string]any{"description": "Gone"}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsBackendDown() {
	suite.backend.Fail(http.StatusServiceUnavailable)

	body := suite.request(http.MethodPost, "http://example.com/v1/transactions", map[string]any{"amount": "10", "type": "expense"}, http.StatusBadGateway)
	assert.Contains(suite.T(), string(body), "503")

	var response v1.TransactionListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/transactions", nil, http.StatusOK, &response)
	assert.Len(suite.T(), response.Data, 0)
}
