// Package store provides the in-memory collections backing both services.
package store

import (
	"errors"
	"fmt"
)

// Store errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid id")
)

// notFound wraps ErrNotFound with the kind and identifier of the missing
// record, so the caller-facing message names what was looked up.
func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}
