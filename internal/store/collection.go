package store

import (
	"context"
	"fmt"
	"sync"
)

// Collection is a mutex-guarded, insertion-ordered record list keyed by a
// string identifier. Both services instantiate their item and order stores
// on top of it; the lock covers the full scan-then-mutate sequence of every
// operation.
type Collection[T any] struct {
	kind string
	idOf func(T) string

	mu   sync.RWMutex
	recs []T
}

// NewCollection creates an empty collection. kind names the record type in
// not-found errors ("item", "order"); idOf extracts a record's identifier.
func NewCollection[T any](kind string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		kind: kind,
		idOf: idOf,
	}
}

// checkCtx returns a wrapped error if the context is already done.
func (c *Collection[T]) checkCtx(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s %s: %w", op, c.kind, ctx.Err())
	default:
		return nil
	}
}

// List returns records in insertion order. A nil keep function returns all
// records; otherwise only records for which keep reports true are included.
func (c *Collection[T]) List(ctx context.Context, keep func(T) bool) ([]T, error) {
	if err := c.checkCtx(ctx, "list"); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.recs))
	for _, rec := range c.recs {
		if keep == nil || keep(rec) {
			out = append(out, rec)
		}
	}

	return out, nil
}

// Get returns the record with the given identifier.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	if err := c.checkCtx(ctx, "get"); err != nil {
		return zero, err
	}

	if id == "" {
		return zero, ErrInvalidID
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, rec := range c.recs {
		if c.idOf(rec) == id {
			return rec, nil
		}
	}

	return zero, notFound(c.kind, id)
}

// Append adds a record at the end of the collection.
func (c *Collection[T]) Append(ctx context.Context, rec T) error {
	if err := c.checkCtx(ctx, "append"); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.recs = append(c.recs, rec)

	return nil
}

// Replace overwrites the record with the given identifier in place,
// preserving its position.
func (c *Collection[T]) Replace(ctx context.Context, id string, rec T) (T, error) {
	var zero T

	if err := c.checkCtx(ctx, "replace"); err != nil {
		return zero, err
	}

	if id == "" {
		return zero, ErrInvalidID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.recs {
		if c.idOf(c.recs[i]) == id {
			c.recs[i] = rec
			return rec, nil
		}
	}

	return zero, notFound(c.kind, id)
}

// Mutate applies fn to the record with the given identifier and returns the
// mutated record.
func (c *Collection[T]) Mutate(ctx context.Context, id string, fn func(*T)) (T, error) {
	var zero T

	if err := c.checkCtx(ctx, "mutate"); err != nil {
		return zero, err
	}

	if id == "" {
		return zero, ErrInvalidID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.recs {
		if c.idOf(c.recs[i]) == id {
			fn(&c.recs[i])
			return c.recs[i], nil
		}
	}

	return zero, notFound(c.kind, id)
}

// Remove deletes the first record with the given identifier. Later records
// shift down one position.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	if err := c.checkCtx(ctx, "remove"); err != nil {
		return err
	}

	if id == "" {
		return ErrInvalidID
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.recs {
		if c.idOf(c.recs[i]) == id {
			c.recs = append(c.recs[:i], c.recs[i+1:]...)
			return nil
		}
	}

	return notFound(c.kind, id)
}

// Len returns the number of records currently held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.recs)
}
