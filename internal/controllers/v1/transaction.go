package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/aggregate"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/httputil"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/types"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactions)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// OptionsTransactions returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/v1/transactions [options]
func (co Controller) OptionsTransactions(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Param			id	path	string	true	"ID of the transaction"
//	@Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsPatchDelete(c)
}

// GetTransactions returns the transactions of the session
//
//	@Summary		List transactions
//	@Description	Returns the transactions matching the filter, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionListResponse
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			search		query	string	false	"Search in description and category. Supports * wildcards"
//	@Param			type		query	string	false	"income or expense"
//	@Param			category	query	string	false	"Filter by category"
//	@Param			fromDate	query	string	false	"Transactions at and after this date"
//	@Param			untilDate	query	string	false	"Transactions before and at this date"
//	@Param			refresh		query	bool	false	"Fetch transactions from the backend first"
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var query TransactionQueryFilter
	if err := c.ShouldBindQuery(&query); err != nil {
		httputil.ErrorHandler(c, httputil.ErrInvalidQuery)
		return
	}

	filter, err := query.filter()
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	if query.Refresh {
		if _, err := co.Session.Refresh(co.context(c), backend.KindTransactions, nil); err != nil {
			httputil.ErrorHandler(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: co.Session.Transactions(filter)})
}

func (f TransactionQueryFilter) filter() (aggregate.TransactionFilter, error) {
	filter := aggregate.TransactionFilter{
		Search:   f.Search,
		Type:     models.TransactionType(f.Type),
		Category: f.Category,
	}

	if f.Type != "" && !filter.Type.Valid() {
		return filter, fmt.Errorf("%w: type must be income or expense", httputil.ErrInvalidQuery)
	}

	for _, d := range []struct {
		value  string
		target *types.Date
	}{{f.FromDate, &filter.From}, {f.UntilDate, &filter.Until}} {
		if d.value == "" {
			continue
		}

		parsed, err := types.ParseDate(d.value)
		if err != nil {
			return filter, fmt.Errorf("%w: %w", httputil.ErrInvalidQuery, err)
		}
		*d.target = parsed
	}

	return filter, nil
}

// CreateTransaction creates a transaction
//
//	@Summary		Create transaction
//	@Description	Creates a transaction in the backend and adds it to the session
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		502			{object}	httputil.HTTPError
//	@Param			transaction	body		models.Transaction	true	"Transaction"
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	transaction, err := co.Session.CreateTransaction(co.context(c), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

// UpdateTransaction updates a transaction
//
//	@Summary		Update transaction
//	@Description	Updates the fields of the transaction that are present in the body
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	TransactionResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		502			{object}	httputil.HTTPError
//	@Param			id			path		string				true	"ID of the transaction"
//	@Param			transaction	body		models.Transaction	true	"Transaction"
//	@Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	input, err := httputil.BindRecord(c)
	if err != nil {
		return
	}

	transaction, err := co.Session.UpdateTransaction(co.context(c), c.Param("id"), input)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction
//	@Tags			Transactions
//	@Success		204
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		502	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID of the transaction"
//	@Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	if err := co.Session.DeleteTransaction(co.context(c), c.Param("id")); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
