package models

import "errors"

// Errors surfaced to callers. Transport failures, empty extractions and
// malformed blocks are recovered internally and never reach this set.
var (
	// ErrInvalidQuery rejects a request before any retrieval work begins.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotFound is returned when fewer than two of the requested ids
	// resolve to known items.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientInput is returned when a comparison is requested
	// for fewer than two ids.
	ErrInsufficientInput = errors.New("at least 2 items are required for comparison")

	// ErrDivisionUndefined is returned when best-value scoring would
	// divide by a zero rating.
	ErrDivisionUndefined = errors.New("best value is undefined for items with zero rating")
)
