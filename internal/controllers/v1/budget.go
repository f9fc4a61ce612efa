package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/httputil"
	"github.com/pesapots/backend/internal/models"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBudgets)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
		r.OPTIONS("/categories", co.OptionsBudgetCategories)
		r.GET("/categories", co.GetBudgetCategories)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
		r.OPTIONS("/:id/reset-spent", co.OptionsBudgetAction)
		r.POST("/:id/reset-spent", co.ResetBudgetSpent)
		r.OPTIONS("/:id/toggle-alert/:field", co.OptionsBudgetAction)
		r.POST("/:id/toggle-alert/:field", co.ToggleBudgetAlert)
	}
}

// OptionsBudgets returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Router			/v1/budgets [options]
func (co Controller) OptionsBudgets(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBudgetCategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Router			/v1/budgets/categories [options]
func (co Controller) OptionsBudgetCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsBudgetDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Param			id	path	string	true	"ID of the budget"
//	@Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// OptionsBudgetAction returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Param			id	path	string	true	"ID of the budget"
//	@Router			/v1/budgets/{id}/reset-spent [options]
func (co Controller) OptionsBudgetAction(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetBudgets returns all budgets with their derived values
//
//	@Summary		List budgets
//	@Description	Returns all budgets with their usage
//	@Tags			Budgets
//	@Produce		json
//	@Success		200		{object}	BudgetListResponse
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			refresh	query		bool	false	"Fetch budgets from the backend first"
//	@Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	if !co.refresh(c, backend.KindBudgets) {
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: co.Session.Budgets()})
}

// GetBudgetCategories returns the categories a budget can be created for
//
//	@Summary		Available budget categories
//	@Description	Returns the expense categories that do not have an active budget
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Router			/v1/budgets/categories [get]
func (co Controller) GetBudgetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoryListResponse{Data: co.Session.AvailableBudgetCategories()})
}

// CreateBudget creates a budget
//
//	@Summary		Create budget
//	@Description	Creates a budget. A category can only have one active budget
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		409		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			budget	body		models.Budget	true	"Budget"
//	@Router			/v1/budgets [post]
func (co Controller) CreateBudget(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	budget, err := co.Session.CreateBudget(co.context(c), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: withBudgetStats(budget)})
}

// UpdateBudget updates a budget
//
//	@Summary		Update budget
//	@Description	Updates the fields of the budget that are present in the body
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		409		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			id		path		string			true	"ID of the budget"
//	@Param			budget	body		models.Budget	true	"Budget"
//	@Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	budget, err := co.Session.UpdateBudget(co.context(c), c.Param("id"), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: withBudgetStats(budget)})
}

// DeleteBudget deletes a budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget
//	@Tags			Budgets
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID of the budget"
//	@Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	if err := co.Session.DeleteBudget(co.context(c), c.Param("id")); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResetBudgetSpent sets the spent amount of a budget to zero
//
//	@Summary		Reset spent amount
//	@Description	Sets the spent amount of the budget back to zero
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID of the budget"
//	@Router			/v1/budgets/{id}/reset-spent [post]
func (co Controller) ResetBudgetSpent(c *gin.Context) {
	budget, err := co.Session.ResetBudgetSpent(co.context(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: withBudgetStats(budget)})
}

// ToggleBudgetAlert switches an alert setting of a budget
//
//	@Summary		Toggle alert
//	@Description	Switches the email or SMS alerts of the budget on or off
//	@Tags			Budgets
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			id		path		string	true	"ID of the budget"
//	@Param			field	path		string	true	"emailAlerts or smsAlerts"
//	@Router			/v1/budgets/{id}/toggle-alert/{field} [post]
func (co Controller) ToggleBudgetAlert(c *gin.Context) {
	budget, err := co.Session.ToggleBudgetAlert(co.context(c), c.Param("id"), c.Param("field"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: withBudgetStats(budget)})
}

func withBudgetStats(b models.Budget) aggregate.BudgetWithStats {
	return aggregate.BudgetWithStats{Budget: b, Stats: aggregate.BudgetDerived(b)}
}

// refresh fetches a collection from the backend when the request asks for
// it. It reports false when the error response was written.
func (co Controller) refresh(c *gin.Context, kind backend.Kind) bool {
	var query RefreshQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.ErrorHandler(c, httputil.ErrInvalidQuery)
		return false
	}

	if !query.Refresh {
		return true
	}

	if _, err := co.Session.Refresh(co.context(c), kind, nil); err != nil {
		httputil.ErrorHandler(c, err)
		return false
	}
	return true
}
