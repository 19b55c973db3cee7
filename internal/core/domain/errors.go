package domain

import "errors"

// Sentinel errors shared across the engine. Callers match them with
// errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a required routing input is missing or
	// malformed. Fatal for the whole document, checked before any work.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoMatchingItem indicates a file has no corresponding item on one
	// side of a metadata copy. Reported distinctly from transform errors.
	ErrNoMatchingItem = errors.New("file has no corresponding item")

	// ErrNoRoute indicates no rule or eligible library accepts the
	// document's content type or its ancestor.
	ErrNoRoute = errors.New("no route for content type")
)
