package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/httputil"
	"github.com/pesapots/backend/internal/models"
)

// RegisterSavingsAccountRoutes registers the routes for the savings account with
// the RouterGroup that is passed.
func (co Controller) RegisterSavingsAccountRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsSavingsAccount)
	r.GET("", co.GetSavingsAccount)
	r.PATCH("", co.UpdateSavingsAccount)
}

// OptionsSavingsAccount returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Savings Account
//	@Success		204
//	@Router			/v1/savings-account [options]
func (co Controller) OptionsSavingsAccount(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// GetSavingsAccount returns the savings account
//
//	@Summary		Get savings account
//	@Description	Returns the savings account. Until it has been fetched, the response is 404
//	@Tags			Savings Account
//	@Produce		json
//	@Success		200		{object}	SavingsAccountResponse
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			refresh	query		bool	false	"Fetch the account from the backend first"
//	@Router			/v1/savings-account [get]
func (co Controller) GetSavingsAccount(c *gin.Context) {
	if !co.refresh(c, backend.KindSavingsAccount) {
		return
	}

	account, ok := co.Session.SavingsAccount()
	if !ok {
		httputil.ErrorHandler(c, fmt.Errorf("%w savings account yet", models.ErrResourceNotFound))
		return
	}

	c.JSON(http.StatusOK, SavingsAccountResponse{Data: account})
}

// UpdateSavingsAccount updates the savings account
//
//	@Summary		Update savings account
//	@Description	Updates the auto save percentage. The balance only changes through allocations
//	@Tags			Savings Account
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	SavingsAccountResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			account	body		models.SavingsAccount	true	"Savings account"
//	@Router			/v1/savings-account [patch]
func (co Controller) UpdateSavingsAccount(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	account, err := co.Session.UpdateSavingsAccount(co.context(c), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, SavingsAccountResponse{Data: account})
}
