// Package store is the persistence layer: thin, keyed reads and writes over
// the Player and ProviderTransaction tables. The unique indexes declared on
// the models are load-bearing; Insert surfacing ErrDuplicate is the
// linearization point for duplicate provider submissions.
package store

import "errors"

var (
	// ErrNotFound means no row matched the key.
	ErrNotFound = errors.New("store: record not found")

	// ErrDuplicate means an insert hit a unique constraint.
	ErrDuplicate = errors.New("store: duplicate record")
)
