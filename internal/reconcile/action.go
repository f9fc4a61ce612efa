package reconcile

import (
	"fmt"

	"github.com/pesapots/backend/internal/models"
)

// Action is a mutation of a collection. The set of actions is closed, only
// the types of this package implement it.
type Action[T models.Entity[T]] interface {
	// Name is the name of the action for logs and metrics.
	Name() string

	apply(c *Collection[T]) error
}

// Add inserts an entity that is not yet in the collection.
type Add[T models.Entity[T]] struct {
	Entity T
}

// Update merges the named fields of Patch into the entity with ID.
// An empty field list leaves the entity unchanged.
type Update[T models.Entity[T]] struct {
	ID     string
	Patch  T
	Fields []string
}

// Delete removes the entity with ID.
type Delete[T models.Entity[T]] struct {
	ID string
}

// ReplaceAll discards the collection and replaces it with Entities in their
// order. When an ID repeats, the last occurrence is kept at the position of
// the first.
type ReplaceAll[T models.Entity[T]] struct {
	Entities []T
}

// Toggle flips the boolean Field of the entity with ID.
type Toggle[T models.Entity[T]] struct {
	ID    string
	Field string
}

func (Add[T]) Name() string        { return "add" }
func (Update[T]) Name() string     { return "update" }
func (Delete[T]) Name() string     { return "delete" }
func (ReplaceAll[T]) Name() string { return "replace_all" }
func (Toggle[T]) Name() string     { return "toggle" }

func (a Add[T]) apply(c *Collection[T]) error {
	id := a.Entity.Key()
	if _, ok := c.index[id]; ok {
		return fmt.Errorf("%w: %s with ID %q", models.ErrDuplicateID, c.name, id)
	}

	if err := c.validate(a.Entity); err != nil {
		return err
	}

	if c.head {
		c.items = append([]T{a.Entity}, c.items...)
	} else {
		c.items = append(c.items, a.Entity)
	}
	c.reindex()
	return nil
}

func (a Update[T]) apply(c *Collection[T]) error {
	i, err := c.position(a.ID)
	if err != nil {
		return err
	}

	if len(a.Fields) == 0 {
		return nil
	}

	updated := c.items[i].Merge(a.Patch, a.Fields)
	if err := c.validate(updated); err != nil {
		return err
	}

	c.items[i] = updated
	return nil
}

func (a Delete[T]) apply(c *Collection[T]) error {
	i, err := c.position(a.ID)
	if err != nil {
		return err
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()
	return nil
}

func (a ReplaceAll[T]) apply(c *Collection[T]) error {
	items := make([]T, 0, len(a.Entities))
	index := make(map[string]int, len(a.Entities))

	for _, e := range a.Entities {
		if i, ok := index[e.Key()]; ok {
			items[i] = e
			continue
		}
		index[e.Key()] = len(items)
		items = append(items, e)
	}

	c.items = items
	c.index = index
	return nil
}

func (a Toggle[T]) apply(c *Collection[T]) error {
	i, err := c.position(a.ID)
	if err != nil {
		return err
	}

	toggled, err := c.items[i].Toggle(a.Field)
	if err != nil {
		return err
	}

	c.items[i] = toggled
	return nil
}
