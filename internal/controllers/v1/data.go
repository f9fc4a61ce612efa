package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/httputil"
)

// RegisterDataRoutes registers the routes for refreshing, exporting and importing
// data with the RouterGroup that is passed.
func (co Controller) RegisterDataRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/refresh", co.OptionsRefresh)
	r.POST("/refresh", co.RefreshAll)
	r.OPTIONS("/data", co.OptionsData)
	r.GET("/data", co.ExportData)
	r.POST("/data", co.ImportData)
	r.DELETE("/data", co.ClearData)
}

// OptionsRefresh returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Data
//	@Success		204
//	@Router			/v1/refresh [options]
func (co Controller) OptionsRefresh(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsData returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Data
//	@Success		204
//	@Router			/v1/data [options]
func (co Controller) OptionsData(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// RefreshAll fetches all collections from the backend
//
//	@Summary		Refresh
//	@Description	Fetches all collections and the savings account from the backend. Collections that fail keep their local state and are listed in the error
//	@Tags			Data
//	@Produce		json
//	@Success		200	{object}	ResultListResponse
//	@Failure		502	{object}	ResultListResponse
//	@Router			/v1/refresh [post]
func (co Controller) RefreshAll(c *gin.Context) {
	results, err := co.Session.RefreshAll(co.context(c))
	if err != nil {
		c.JSON(httputil.Status(err), ResultListResponse{Data: results, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResultListResponse{Data: results})
}

// ExportData returns all local data
//
//	@Summary		Export
//	@Description	Returns all local collections and the savings account as one JSON document
//	@Tags			Data
//	@Produce		json
//	@Success		200	{object}	models.Snapshot
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/data [get]
func (co Controller) ExportData(c *gin.Context) {
	data, err := co.Session.Export()
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ImportData replaces all local data with an exported document
//
//	@Summary		Import
//	@Description	Replaces all local collections with the ones in the document. Records that cannot be read are dropped and listed per collection. The backend is not changed
//	@Tags			Data
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	ResultListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Param			data	body		models.Snapshot	true	"Exported document"
//	@Router			/v1/data [post]
func (co Controller) ImportData(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		httputil.ErrorHandler(c, httputil.ErrInvalidBody)
		return
	}

	if len(data) == 0 {
		httputil.ErrorHandler(c, httputil.ErrRequestBodyEmpty)
		return
	}

	results, err := co.Session.Import(co.context(c), data)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, ResultListResponse{Data: results})
}

// ClearData deletes all local data
//
//	@Summary		Clear
//	@Description	Deletes all local collections and the persisted cache. The backend is not changed
//	@Tags			Data
//	@Success		204
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/v1/data [delete]
func (co Controller) ClearData(c *gin.Context) {
	if err := co.Session.Clear(co.context(c)); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
