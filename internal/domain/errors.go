package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates an entity with the same key already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrMissingRequiredField indicates a required input field was absent or empty.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrUnsupportedSchema indicates an operation that the configured schema does not offer.
	ErrUnsupportedSchema = errors.New("operation not supported by schema")
)
