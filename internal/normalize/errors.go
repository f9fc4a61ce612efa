package normalize

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord   = errors.New("malformed record")
	ErrUnexpectedPayload = errors.New("the payload is neither a record, a list of records nor an object with a results list")
	ErrInvalidDocument   = errors.New("the document is not a JSON object")
)

// MalformedRecordError describes a record that could not be normalized.
// The record is dropped, all other records of the batch are kept.
type MalformedRecordError struct {
	Kind   string // Kind of record, e.g. "budget"
	Index  int    // Position of the record in its batch, -1 for single records
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s: %s", ErrMalformedRecord, e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s #%d: %s", ErrMalformedRecord, e.Kind, e.Index, e.Reason)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

func malformed(kind, reason string, args ...any) *MalformedRecordError {
	return &MalformedRecordError{
		Kind:   kind,
		Index:  -1,
		Reason: fmt.Sprintf(reason, args...),
	}
}
