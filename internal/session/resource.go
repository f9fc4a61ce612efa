package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pesapots/backend/internal/backend"
	"github.com/pesapots/backend/internal/events"
	"github.com/pesapots/backend/internal/models"
	"github.com/pesapots/backend/internal/normalize"
	"github.com/pesapots/backend/internal/reconcile"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// draftID is the ID of entities that have not been created by the backend yet.
const draftID = "draft"

// localDefaults are fields whose default is derived from the ID. They are
// only sent to the backend on creation when the user set them.
var localDefaults = []string{"color"}

// resource bundles a collection with everything needed to keep it in sync
// with its backend endpoint.
type resource[T models.Entity[T]] struct {
	kind       backend.Kind
	name       string
	collection *reconcile.Collection[T]
	sequencer  reconcile.Sequencer

	one  func(normalize.RawRecord) (T, error)
	many func([]normalize.RawRecord) ([]T, error)

	// prepare completes and validates a candidate before it is sent
	prepare func(T) (T, error)

	// check validates a candidate against the rest of the collection
	// before it is sent
	check reconcile.Validator[T]

	// readOnly fields are rejected in user input
	readOnly []string
}

// draft normalizes user input into an entity with the ID.
func (r *resource[T]) draft(input normalize.RawRecord, id string) (T, error) {
	raw := normalize.RawRecord{}
	for k, v := range input {
		raw[k] = v
	}
	raw["id"] = id

	candidate, err := r.one(raw)
	if err != nil {
		var m *normalize.MalformedRecordError
		if errors.As(err, &m) {
			return candidate, fmt.Errorf("%w: %s", models.ErrInvalidInput, m.Reason)
		}
		return candidate, err
	}

	return candidate, nil
}

// withID sets the ID on backend responses that omit it.
func withID(raw normalize.RawRecord, id string) normalize.RawRecord {
	if raw == nil {
		return raw
	}
	if _, ok := raw["id"]; !ok {
		raw["id"] = id
	}
	return raw
}

// get returns the entity with the ID.
func get[T models.Entity[T]](s *Service, r *resource[T], id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return r.collection.Get(id)
}

// precheck runs the collection checks before a candidate is sent to the backend.
func precheck[T models.Entity[T]](s *Service, r *resource[T], candidate T) error {
	if r.check == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	others := []T{}
	for _, e := range r.collection.Items() {
		if e.Key() != candidate.Key() {
			others = append(others, e)
		}
	}

	return r.check(others, candidate)
}

// apply applies the action and persists the session. It must be called with
// s.mu held.
func apply[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], a reconcile.Action[T]) error {
	err := r.collection.Apply(a)
	if err != nil {
		reconcileOperations.WithLabelValues(r.name, a.Name(), "rejected").Inc()
		return err
	}

	reconcileOperations.WithLabelValues(r.name, a.Name(), "applied").Inc()
	s.persistLocked(ctx)
	return nil
}

// commit applies the action and announces the change.
func commit[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], a reconcile.Action[T], id string) error {
	s.mu.Lock()
	err := apply(ctx, s, r, a)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.publish(ctx, r.name, a.Name(), id)
	return nil
}

// merge applies the named fields of a backend response to the entity with
// the ID and returns the result.
func merge[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], id string, patch T, fields []string) (T, error) {
	if err := commit(ctx, s, r, reconcile.Update[T]{ID: id, Patch: patch, Fields: fields}, id); err != nil {
		var zero T
		return zero, err
	}

	return get(s, r, id)
}

func create[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], input normalize.RawRecord) (T, error) {
	var zero T

	candidate, err := r.draft(input, draftID)
	if err != nil {
		return zero, err
	}

	candidate, err = r.prepare(candidate)
	if err != nil {
		return zero, err
	}

	if err := precheck(s, r, candidate); err != nil {
		return zero, err
	}

	payload, err := backend.Payload(r.kind, candidate, nil)
	if err != nil {
		return zero, err
	}
	for _, f := range localDefaults {
		if !slices.Contains(normalize.Fields(r.name, input), f) {
			delete(payload, f)
		}
	}

	raw, err := s.backend.Create(ctx, r.kind, payload)
	if err != nil {
		return zero, err
	}

	created, err := r.one(raw)
	if err != nil {
		s.dropped(r.name, err)
		return zero, err
	}

	if err := commit(ctx, s, r, reconcile.Add[T]{Entity: created}, created.Key()); err != nil {
		return zero, err
	}

	return created, nil
}

func update[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], id string, input normalize.RawRecord) (T, error) {
	fields := normalize.Fields(r.name, input)
	for _, f := range r.readOnly {
		if slices.Contains(fields, f) {
			var zero T
			return zero, models.ErrDirectFundingEdit
		}
	}

	current, err := get(s, r, id)
	if err != nil {
		return current, err
	}

	if len(fields) == 0 {
		return current, nil
	}

	patch, err := r.draft(input, id)
	if err != nil {
		return current, err
	}

	candidate, err := r.prepare(current.Merge(patch, fields))
	if err != nil {
		return current, err
	}

	if err := precheck(s, r, candidate); err != nil {
		return current, err
	}

	payload, err := backend.Payload(r.kind, candidate, fields)
	if err != nil {
		return current, err
	}

	raw, err := s.backend.Update(ctx, r.kind, id, payload)
	if err != nil {
		return current, err
	}

	return mergeResponse(ctx, s, r, id, raw)
}

// mergeResponse normalizes a backend response for the entity with the ID and
// merges the fields it contains.
func mergeResponse[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], id string, raw normalize.RawRecord) (T, error) {
	updated, err := r.one(withID(raw, id))
	if err != nil {
		s.dropped(r.name, err)
		var zero T
		return zero, err
	}

	return merge(ctx, s, r, id, updated, normalize.Fields(r.name, raw))
}

func remove[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], id string) error {
	if _, err := get(s, r, id); err != nil {
		return err
	}

	if err := s.backend.Delete(ctx, r.kind, id); err != nil {
		return err
	}

	return commit(ctx, s, r, reconcile.Delete[T]{ID: id}, id)
}

func toggle[T models.Entity[T]](ctx context.Context, s *Service, r *resource[T], id, field string) (T, error) {
	current, err := get(s, r, id)
	if err != nil {
		return current, err
	}

	toggled, err := current.Toggle(field)
	if err != nil {
		return current, err
	}

	payload, err := backend.Payload(r.kind, toggled, []string{field})
	if err != nil {
		return current, err
	}

	raw, err := s.backend.Update(ctx, r.kind, id, payload)
	if err != nil {
		return current, err
	}

	// The collection takes the value the backend confirmed, responses
	// without the field confirm the value that was sent
	fields := normalize.Fields(r.name, raw)
	if slices.Contains(fields, field) {
		confirmed, err := r.one(withID(raw, id))
		if err == nil {
			return merge(ctx, s, r, id, confirmed, fields)
		}
		s.dropped(r.name, err)
	}

	return merge(ctx, s, r, id, toggled, []string{field})
}

// dropped records records that could not be normalized.
func (s *Service) dropped(collection string, err error) {
	if err == nil {
		return
	}

	n := len(reasons(err))
	malformedRecords.WithLabelValues(collection).Add(float64(n))
	log.Warn().Str("collection", collection).Int("count", n).Err(err).Msg("dropped malformed records")
}

// persistLocked saves the session document. It must be called with s.mu held.
// Failures are logged, the session stays usable without its cache.
func (s *Service) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		log.Error().Err(err).Msg("encoding session snapshot")
		return
	}

	if err := s.store.Save(ctx, s.cacheKey, data); err != nil {
		log.Error().Err(err).Str("key", s.cacheKey).Msg("persisting session snapshot")
	}
}

func (s *Service) publish(ctx context.Context, collection, action, id string) {
	change := events.Change{
		Collection: collection,
		Action:     action,
		ID:         id,
		At:         s.clock.Now().UTC(),
	}

	if err := s.publisher.Publish(ctx, change); err != nil {
		log.Warn().Err(err).Str("collection", collection).Str("action", action).Msg("publishing change")
	}
}

// reasons returns the messages of all errors joined in err.
func reasons(err error) []string {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		out := []string{}
		for _, e := range joined.Unwrap() {
			out = append(out, reasons(e)...)
		}
		return out
	}

	return []string{err.Error()}
}
