// Package v1 serves the finance session over HTTP.
package v1

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/session"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	Session *session.Service
}

// RegisterRoutes registers all v1 routes with the group.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterPotRoutes(r.Group("/pots"))
	co.RegisterBillRoutes(r.Group("/bills"))
	co.RegisterSavingsAccountRoutes(r.Group("/savings-account"))
	co.RegisterOverviewRoutes(r)
	co.RegisterDataRoutes(r)
}

// context returns the context for backend calls of the request. The request
// ID is passed on to the backend.
func (co Controller) context(c *gin.Context) context.Context {
	return backend.WithRequestID(c.Request.Context(), requestid.Get(c))
}
