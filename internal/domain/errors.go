package domain

import "errors"

var (
	// ErrNotFound: no store with the requested id. Voting never creates the
	// missing record implicitly.
	ErrNotFound = errors.New("store not found")

	// ErrValidation: malformed input (missing id/name, out-of-range coordinates).
	ErrValidation = errors.New("validation failed")

	// ErrProvider: the places provider errored or returned a non-success status.
	// Callers decide whether this is fatal or degrades to an empty list.
	ErrProvider = errors.New("places provider failure")
)
