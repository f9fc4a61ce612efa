package v1_test

import (
	"net/http"

	"github.com/pesapots/backend/internal/backend"
	v1 "github.com/pesapots/backend/internal/controllers/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createBill(name, amount string) v1.BillResponse {
	var response v1.BillResponse
	suite.decode(http.MethodPost, "http://example.com/v1/bills", map[string]any{
		"name":      name,
		"amount":    amount,
		"frequency": "monthly",
	}, http.StatusCreated, &response)
	return response
}

func (suite *TestSuiteStandard) TestBillsCreate() {
	bill := suite.createBill("Rent", "800").Data

	assert.Equal(suite.T(), "Rent", bill.Name)
	assert.Equal(suite.T(), "2024-03-10", bill.DueDate.String())
	assert.False(suite.T(), bill.Paid)

	suite.request(http.MethodPost, "http://example.com/v1/bills", map[string]any{"amount": "10"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBillsTotals() {
	rent := suite.createBill("Rent", "800").Data
	suite.createBill("Streaming", "15.99")

	var bill v1.BillResponse
	suite.decode(http.MethodPost, "http://example.com/v1/bills/"+rent.ID+"/toggle-paid", nil, http.StatusOK, &bill)
	assert.True(suite.T(), bill.Data.Paid)

	var response v1.BillListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/bills", nil, http.StatusOK, &response)

	assert.Len(suite.T(), response.Data, 2)
	assertDecimal(suite.T(), "815.99", response.Totals.TotalMonthly)
	assertDecimal(suite.T(), "15.99", response.Totals.TotalUnpaid)
	assert.Equal(suite.T(), 1, response.Totals.PaidCount)
}

func (suite *TestSuiteStandard) TestBillsMarkAllAndReset() {
	suite.createBill("Rent", "800")
	suite.createBill("Streaming", "15.99")

	var response v1.BillBulkResponse
	suite.decode(http.MethodPost, "http://example.com/v1/bills/mark-all-paid", nil, http.StatusOK, &response)
	require.Len(suite.T(), response.Data, 2)
	for _, b := range response.Data {
		assert.True(suite.T(), b.Paid, b.Name)
	}

	suite.decode(http.MethodPost, "http://example.com/v1/bills/reset", nil, http.StatusOK, &response)
	for _, b := range response.Data {
		assert.False(suite.T(), b.Paid, b.Name)
	}
	assert.Empty(suite.T(), response.Error)
}

func (suite *TestSuiteStandard) TestBillsMarkAllBackendDown() {
	suite.createBill("Rent", "800")
	suite.backend.Fail(http.StatusBadGateway)

	var response v1.BillBulkResponse
	suite.decode(http.MethodPost, "http://example.com/v1/bills/mark-all-paid", nil, http.StatusBadGateway, &response)
	assert.NotEmpty(suite.T(), response.Error)

	suite.backend.Fail(0)
	var list v1.BillListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/bills", nil, http.StatusOK, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.False(suite.T(), list.Data[0].Paid)
}

func (suite *TestSuiteStandard) TestBillsUpdateDeleteRefresh() {
	bill := suite.createBill("Rent", "800").Data

	var response v1.BillResponse
	suite.decode(http.MethodPatch, "http://example.com/v1/bills/"+bill.ID, map[string]any{"amount": "850"}, http.StatusOK, &response)
	assertDecimal(suite.T(), "850", response.Data.Amount)

	suite.request(http.MethodDelete, "http://example.com/v1/bills/"+bill.ID, nil, http.StatusNoContent)

	suite.backend.Seed(backend.KindBills, map[string]any{"id": 7, "name": "Water", "amount": "30.00", "due_date": "2024-03-20", "frequency": "monthly", "is_paid": true})

	var list v1.BillListResponse
	suite.decode(http.MethodGet, "http://example.com/v1/bills?refresh=true", nil, http.StatusOK, &list)
	require.Len(suite.T(), list.Data, 1)
	assert.Equal(suite.T(), "Water", list.Data[0].Name)
	assert.True(suite.T(), list.Data[0].Paid)
}
