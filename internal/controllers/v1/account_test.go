package v1_test

import (
	"net/http"

	v1 "github.com/pesapots/backend/internal/controllers/v1"
)

func (suite *TestSuiteStandard) TestSavingsAccount() {
	suite.request(http.MethodGet, "http://example.com/v1/savings-account", nil, http.StatusNotFound)

	suite.backend.SetAccount(map[string]any{"balance": "1200.00", "auto_save_percentage": "10"})

	var response v1.SavingsAccountResponse
	suite.decode(http.MethodGet, "http://example.com/v1/savings-account?refresh=true", nil, http.StatusOK, &response)
	assertDecimal(suite.T(), "1200", response.Data.Balance)
	assertDecimal(suite.T(), "10", response.Data.AutoSavePercentage)

	suite.decode(http.MethodPatch, "http://example.com/v1/savings-account", map[string]any{"autoSavePercentage": "15"}, http.StatusOK, &response)
	assertDecimal(suite.T(), "1200", response.Data.Balance)
	assertDecimal(suite.T(), "15", response.Data.AutoSavePercentage)
}
