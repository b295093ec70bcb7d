package types

import (
	"errors"
	"fmt"
)

// Task construction and decode errors.
var (
	// ErrInvalidTitle is the validation error for a blank task title.
	ErrInvalidTitle = errors.New("title must not be empty")

	// ErrMalformedRecord reports a stored task record that cannot be decoded,
	// such as one with no title.
	ErrMalformedRecord = errors.New("malformed task record")

	// ErrNoData is returned by Backend.Load when the backing location holds
	// no prior data.
	ErrNoData = errors.New("no stored data")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// PersistenceError reports a failed write of the task document. Mutating
// store operations return it so the caller knows the edit was not saved.
type PersistenceError struct {
	Op       string // operation that triggered the write, e.g. "add"
	Location string // backing location
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: persist %s: %v", e.Op, e.Location, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
