package authdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that no record matched a (group, user) pair.
	// Lookup operations signal an absent record through their return values;
	// the sentinel exists for callers that wrap the store behind their own
	// error-based interfaces.
	ErrNotFound = errors.New("not found")

	// ErrValidation reports a group, user or profile value that violates the
	// schema limits or contains the composite-key separator.
	ErrValidation = errors.New("validation error")
)

// ConnectionError reports a failure to establish or use the underlying
// database connection. It is fatal to the calling operation and is never
// retried internally.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// SchemaError reports that the credential table could not be created.
type SchemaError struct {
	Table string
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error on table %q: %v", e.Table, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }
