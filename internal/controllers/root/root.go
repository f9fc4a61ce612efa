package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/httputil"
)

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Endpoint returning Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Transactions   string `json:"transactions" example:"https://example.com/api/v1/transactions"`      // URL of transaction list endpoint
	Budgets        string `json:"budgets" example:"https://example.com/api/v1/budgets"`                // URL of budget list endpoint
	Pots           string `json:"pots" example:"https://example.com/api/v1/pots"`                      // URL of pot list endpoint
	Bills          string `json:"bills" example:"https://example.com/api/v1/bills"`                    // URL of recurring bill list endpoint
	SavingsAccount string `json:"savingsAccount" example:"https://example.com/api/v1/savings-account"` // URL of the savings account
	Overview       string `json:"overview" example:"https://example.com/api/v1/overview"`              // URL of the overview
	Refresh        string `json:"refresh" example:"https://example.com/api/v1/refresh"`                // URL to refresh all collections
	Data           string `json:"data" example:"https://example.com/api/v1/data"`                      // URL for export, import and clear
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

func RegisterV1Routes(r *gin.RouterGroup) {
	r.GET("", GetV1)
	r.OPTIONS("", Options)
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	Response
// @Router			/ [get]
func Get(c *gin.Context) {
	url := c.GetString(httputil.ContextURL)

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(httputil.ContextURL) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Transactions:   url + "/transactions",
			Budgets:        url + "/budgets",
			Pots:           url + "/pots",
			Bills:          url + "/bills",
			SavingsAccount: url + "/savings-account",
			Overview:       url + "/overview",
			Refresh:        url + "/refresh",
			Data:           url + "/data",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
