package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidQuery     = errors.New("the query string contains unparseable data. Please check the values")
)

// ContextURL is the gin context key of the external API URL.
const ContextURL = "pesapots-url"
