package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested item or cached record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an item kind that cannot be exported,
	// or an output format not available for that kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTransport indicates a collaborator fetch failed (API or auth error).
	ErrTransport = errors.New("transport failure")

	// ErrDecodeFailure indicates a malformed asset payload.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrCacheCorrupt indicates an on-disk export unit is unreadable or incomplete.
	ErrCacheCorrupt = errors.New("cache record corrupt")
)
