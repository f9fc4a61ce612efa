package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/rs/zerolog/log"
)

// Status returns the HTTP status for an error.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrDuplicateID), errors.Is(err, models.ErrDuplicateActiveCategory):
		return http.StatusConflict

	// Errors in user input
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrUnknownField),
		errors.Is(err, models.ErrDirectFundingEdit),
		errors.Is(err, models.ErrInsufficientBalance),
		errors.Is(err, normalize.ErrInvalidDocument),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrRequestBodyEmpty),
		errors.Is(err, ErrInvalidQuery):
		return http.StatusBadRequest

	// The backend failed or sent data that cannot be used
	case errors.Is(err, backend.ErrNetwork),
		errors.Is(err, normalize.ErrMalformedRecord),
		errors.Is(err, normalize.ErrUnexpectedPayload):
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// ErrorHandler writes the error response for an error.
func ErrorHandler(c *gin.Context, err error) {
	status := Status(err)

	switch status {
	case http.StatusInternalServerError:
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, status, fmt.Errorf("%w, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c)))

	case http.StatusBadGateway:
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("backend")
		NewError(c, status, err)

	default:
		NewError(c, status, err)
	}
}

// NewError writes an HTTPError with the status.
func NewError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, HTTPError{
		Error: err.Error(),
	})
}

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no budget with ID \"12\""`
}
