// Package events publishes changes of the finance collections to other
// consumers.
package events

import (
	"context"
	"time"
)

// Change describes one applied mutation.
type Change struct {
	Collection string    `json:"collection"` // e.g. "budget"
	Action     string    `json:"action"`     // Name of the applied action, e.g. "update"
	ID         string    `json:"id,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher publishes changes. Publishing failures never undo a change.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
	Close() error
}

// Noop discards all changes.
type Noop struct{}

func (Noop) Publish(context.Context, Change) error { return nil }
func (Noop) Close() error                          { return nil }
