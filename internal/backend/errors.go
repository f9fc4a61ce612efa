package backend

import (
	"errors"
	"fmt"
)

// ErrNetwork is wrapped by all errors of backend calls.
var ErrNetwork = errors.New("the backend request failed")

// NetworkError describes a failed backend call. Either the request could not
// be made, or the backend responded with a status other than 2xx.
type NetworkError struct {
	Method string
	URL    string
	Status int    // HTTP status, 0 when no response was received
	Body   string // Start of the response body
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s %s: %v", ErrNetwork, e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: status %d: %s", ErrNetwork, e.Method, e.URL, e.Status, e.Body)
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
