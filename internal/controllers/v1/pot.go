package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/httputil"
	"github.com/pesapots/backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterPotRoutes registers the routes for savings pots with
// the RouterGroup that is passed.
func (co Controller) RegisterPotRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsPots)
		r.GET("", co.GetPots)
		r.POST("", co.CreatePot)
	}

	// Pot with ID
	{
		r.OPTIONS("/:id", co.OptionsPotDetail)
		r.PATCH("/:id", co.UpdatePot)
		r.DELETE("/:id", co.DeletePot)
		r.OPTIONS("/:id/:action", co.OptionsPotAction)
		r.POST("/:id/deposit", co.fund(co.Session.DepositToGoal))
		r.POST("/:id/withdraw", co.fund(co.Session.WithdrawFromGoal))
		r.POST("/:id/allocate", co.fund(co.Session.AllocateToGoal))
	}
}

// OptionsPots returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Pots
//	@Success		204
//	@Router			/v1/pots [options]
func (co Controller) OptionsPots(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsPotDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Pots
//	@Success		204
//	@Param			id	path	string	true	"ID of the pot"
//	@Router			/v1/pots/{id} [options]
func (co Controller) OptionsPotDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// OptionsPotAction returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Pots
//	@Success		204
//	@Param			id		path	string	true	"ID of the pot"
//	@Param			action	path	string	true	"deposit, withdraw or allocate"
//	@Router			/v1/pots/{id}/{action} [options]
func (co Controller) OptionsPotAction(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetPots returns all pots with their progress
//
//	@Summary		List pots
//	@Description	Returns all savings pots with their progress
//	@Tags			Pots
//	@Produce		json
//	@Success		200		{object}	PotListResponse
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			refresh	query		bool	false	"Fetch pots from the backend first"
//	@Router			/v1/pots [get]
func (co Controller) GetPots(c *gin.Context) {
	if !co.refresh(c, backend.KindGoals) {
		return
	}

	c.JSON(http.StatusOK, PotListResponse{Data: co.Session.SavingsGoals()})
}

// CreatePot creates a pot
//
//	@Summary		Create pot
//	@Description	Creates a savings pot
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	PotResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			pot	body		models.SavingsGoal	true	"Pot"
//	@Router			/v1/pots [post]
func (co Controller) CreatePot(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	pot, err := co.Session.CreateSavingsGoal(co.context(c), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, PotResponse{Data: co.withGoalStats(pot)})
}

// UpdatePot updates a pot
//
//	@Summary		Update pot
//	@Description	Updates the fields of the pot that are present in the body. The current amount can only be changed by deposits, withdrawals and allocations
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	PotResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string				true	"ID of the pot"
//	@Param			pot	body		models.SavingsGoal	true	"Pot"
//	@Router			/v1/pots/{id} [patch]
func (co Controller) UpdatePot(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	pot, err := co.Session.UpdateSavingsGoal(co.context(c), c.Param("id"), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, PotResponse{Data: co.withGoalStats(pot)})
}

// DeletePot deletes a pot
//
//	@Summary		Delete pot
//	@Description	Deletes a savings pot
//	@Tags			Pots
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID of the pot"
//	@Router			/v1/pots/{id} [delete]
func (co Controller) DeletePot(c *gin.Context) {
	if err := co.Session.DeleteSavingsGoal(co.context(c), c.Param("id")); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fund returns the handler for a funding operation
//
//	@Summary		Fund pot
//	@Description	Deposits to, withdraws from or allocates savings to the pot. Deposits are capped at the target, withdrawals at the current amount. Allocations need a sufficient savings account balance
//	@Tags			Pots
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	PotResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			id		path		string			true	"ID of the pot"
//	@Param			action	path		string			true	"deposit, withdraw or allocate"
//	@Param			amount	body		AmountEditable	true	"Amount"
//	@Router			/v1/pots/{id}/{action} [post]
func (co Controller) fund(operation func(context.Context, string, decimal.Decimal) (models.SavingsGoal, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body AmountEditable
		if err := httputil.BindData(c, &body); err != nil {
			return
		}

		pot, err := operation(co.context(c), c.Param("id"), body.Amount)
		if err != nil {
			httputil.ErrorHandler(c, err)
			return
		}

		c.JSON(http.StatusOK, PotResponse{Data: co.withGoalStats(pot)})
	}
}

func (co Controller) withGoalStats(g models.SavingsGoal) aggregate.GoalWithStats {
	return aggregate.GoalWithStats{SavingsGoal: g, Stats: aggregate.GoalDerived(g, co.Session.Today())}
}
