package fastener

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyMounted   = errors.New("already mounted")
	ErrAlreadyUnmounted = errors.New("already unmounted")
	ErrInvalidAffinity  = errors.New("invalid affinity")
	ErrNotOwner         = errors.New("fastener belongs to another owner")
	ErrNotParent        = errors.New("owner is not the parent")
	ErrDuplicateClass   = errors.New("duplicate class")

	ErrUndefinedValue = errors.New("undefined value")
	ErrUndefinedState = errors.New("undefined state")
	ErrParse          = errors.New("parse error")
)

// Error describes a failed fastener operation. Programming errors are raised
// as panics carrying an *Error; recoverable ones are returned.
type Error struct {
	// Op is the operation that failed (e.g. "Mount").
	Op string
	// Name is the fastener or class name, if any.
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func fail(op, name string, err error) {
	panic(&Error{Op: op, Name: name, Err: err})
}
