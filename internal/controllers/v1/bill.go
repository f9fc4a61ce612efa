package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/httputil"
	"github.com/pesapots/backend/internal/models"
)

// RegisterBillRoutes registers the routes for recurring bills with
// the RouterGroup that is passed.
func (co Controller) RegisterBillRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsBills)
		r.GET("", co.GetBills)
		r.POST("", co.CreateBill)
		r.OPTIONS("/mark-all-paid", co.OptionsBillAction)
		r.POST("/mark-all-paid", co.bulk(co.Session.MarkAllBillsPaid))
		r.OPTIONS("/reset", co.OptionsBillAction)
		r.POST("/reset", co.bulk(co.Session.ResetAllBills))
	}

	// Bill with ID
	{
		r.OPTIONS("/:id", co.OptionsBillDetail)
		r.PATCH("/:id", co.UpdateBill)
		r.DELETE("/:id", co.DeleteBill)
		r.OPTIONS("/:id/toggle-paid", co.OptionsBillAction)
		r.POST("/:id/toggle-paid", co.ToggleBillPaid)
	}
}

// OptionsBills returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Bills
//	@Success		204
//	@Router			/v1/bills [options]
func (co Controller) OptionsBills(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsBillDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Bills
//	@Success		204
//	@Param			id	path	string	true	"ID of the bill"
//	@Router			/v1/bills/{id} [options]
func (co Controller) OptionsBillDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// OptionsBillAction returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Bills
//	@Success		204
//	@Router			/v1/bills/mark-all-paid [options]
//	@Router			/v1/bills/reset [options]
//	@Router			/v1/bills/{id}/toggle-paid [options]
func (co Controller) OptionsBillAction(c *gin.Context) {
	httputil.OptionsPost(c)
}

// GetBills returns all recurring bills with their totals
//
//	@Summary		List bills
//	@Description	Returns all recurring bills together with the monthly and unpaid totals
//	@Tags			Bills
//	@Produce		json
//	@Success		200		{object}	BillListResponse
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			refresh	query		bool	false	"Fetch bills from the backend first"
//	@Router			/v1/bills [get]
func (co Controller) GetBills(c *gin.Context) {
	if !co.refresh(c, backend.KindBills) {
		return
	}

	bills, totals := co.Session.RecurringBills()
	c.JSON(http.StatusOK, BillListResponse{Data: bills, Totals: totals})
}

// CreateBill creates a recurring bill
//
//	@Summary		Create bill
//	@Description	Creates a recurring bill. The due date defaults to today
//	@Tags			Bills
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	BillResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			bill	body		models.RecurringBill	true	"Bill"
//	@Router			/v1/bills [post]
func (co Controller) CreateBill(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	bill, err := co.Session.CreateRecurringBill(co.context(c), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, BillResponse{Data: bill})
}

// UpdateBill updates a recurring bill
//
//	@Summary		Update bill
//	@Description	Updates the fields of the bill that are present in the body
//	@Tags			Bills
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BillResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			id		path		string					true	"ID of the bill"
//	@Param			bill	body		models.RecurringBill	true	"Bill"
//	@Router			/v1/bills/{id} [patch]
func (co Controller) UpdateBill(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	bill, err := co.Session.UpdateRecurringBill(co.context(c), c.Param("id"), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: bill})
}

// DeleteBill deletes a recurring bill
//
//	@Summary		Delete bill
//	@Description	Deletes a recurring bill
//	@Tags			Bills
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID of the bill"
//	@Router			/v1/bills/{id} [delete]
func (co Controller) DeleteBill(c *gin.Context) {
	if err := co.Session.DeleteRecurringBill(co.context(c), c.Param("id")); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleBillPaid switches the paid state of a bill
//
//	@Summary		Toggle paid
//	@Description	Marks the bill as paid when it is unpaid and the other way around
//	@Tags			Bills
//	@Produce		json
//	@Success		200	{object}	BillResponse
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID of the bill"
//	@Router			/v1/bills/{id}/toggle-paid [post]
func (co Controller) ToggleBillPaid(c *gin.Context) {
	bill, err := co.Session.ToggleBillPaid(co.context(c), c.Param("id"))
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, BillResponse{Data: bill})
}

// bulk returns the handler for operations on all bills
//
//	@Summary		Mark all bills
//	@Description	Marks all bills as paid or resets all of them to unpaid. Bills that could not be updated keep their state and are listed in the error
//	@Tags			Bills
//	@Produce		json
//	@Success		200	{object}	BillBulkResponse
//	@Failure		502	{object}	BillBulkResponse
//	@Router			/v1/bills/mark-all-paid [post]
//	@Router			/v1/bills/reset [post]
func (co Controller) bulk(operation func(context.Context) ([]models.RecurringBill, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		bills, err := operation(co.context(c))
		if err != nil {
			c.JSON(httputil.Status(err), BillBulkResponse{Data: bills, Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, BillBulkResponse{Data: bills})
	}
}
