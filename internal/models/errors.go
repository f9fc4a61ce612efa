package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrDuplicateID             = errors.New("a resource with this ID already exists")
	ErrDuplicateActiveCategory = errors.New("this category already has an active budget")
	ErrUnknownField            = errors.New("the field does not exist or cannot be toggled")
	ErrInvalidAmount           = errors.New("the amount must be larger than zero")
	ErrInvalidInput            = errors.New("the request contains an invalid value")
	ErrInsufficientBalance     = errors.New("the savings account balance is too low for this allocation")
	ErrDirectFundingEdit       = errors.New("the current amount of a pot can only be changed by depositing, withdrawing or allocating")
)

// NotFound returns ErrResourceNotFound with the resource name and ID.
func NotFound(resource, id string) error {
	return fmt.Errorf("%w %s with ID %q", ErrResourceNotFound, resource, id)
}
