package store

import "errors"

// Predefined errors for the store layer.
var (
	// ErrNotFound indicates that a requested trip document does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidDocument indicates a stored payload that is not a JSON object.
	ErrInvalidDocument = errors.New("invalid trip document")

	// ErrStaleDocument indicates a write carrying an older sequence than the stored snapshot.
	ErrStaleDocument = errors.New("stale trip document")
)
