// Package reconcile applies mutations to ordered, ID-indexed collections of
// finance resources.
//
// A Collection is not safe for concurrent use. Callers serialize actions.
package reconcile

import (
	"github.com/pesapots/backend/internal/models"
)

// Validator checks a candidate entity against all other entities of the
// collection before an Add or Update is applied.
type Validator[T models.Entity[T]] func(others []T, candidate T) error

// Collection is an ordered set of entities indexed by their key.
type Collection[T models.Entity[T]] struct {
	name       string
	items      []T
	index      map[string]int
	head       bool
	validators []Validator[T]
}

// Option configures a Collection.
type Option[T models.Entity[T]] func(*Collection[T])

// InsertAtHead makes Add insert new entities at the start of the collection.
func InsertAtHead[T models.Entity[T]]() Option[T] {
	return func(c *Collection[T]) {
		c.head = true
	}
}

// WithValidator adds a validator that runs on Add and Update.
func WithValidator[T models.Entity[T]](v Validator[T]) Option[T] {
	return func(c *Collection[T]) {
		c.validators = append(c.validators, v)
	}
}

// NewCollection returns an empty collection. name is used in error messages.
func NewCollection[T models.Entity[T]](name string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		name:  name,
		items: []T{},
		index: map[string]int{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the name of the collection.
func (c *Collection[T]) Name() string {
	return c.name
}

// Apply applies an action. When it fails, the collection is unchanged.
func (c *Collection[T]) Apply(a Action[T]) error {
	return a.apply(c)
}

// Items returns a copy of all entities in collection order.
func (c *Collection[T]) Items() []T {
	return append([]T{}, c.items...)
}

// Get returns the entity with the ID.
func (c *Collection[T]) Get(id string) (T, error) {
	i, err := c.position(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.items[i], nil
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) position(id string) (int, error) {
	i, ok := c.index[id]
	if !ok {
		return 0, models.NotFound(c.name, id)
	}
	return i, nil
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, e := range c.items {
		c.index[e.Key()] = i
	}
}

func (c *Collection[T]) validate(candidate T) error {
	if len(c.validators) == 0 {
		return nil
	}

	others := make([]T, 0, len(c.items))
	for _, e := range c.items {
		if e.Key() != candidate.Key() {
			others = append(others, e)
		}
	}

	for _, v := range c.validators {
		if err := v(others, candidate); err != nil {
			return err
		}
	}
	return nil
}
