package container

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every *NotFoundError.
	ErrNotFound = errors.New("container: not found")

	// ErrEmptyArgs matches every *EmptyArgsError.
	ErrEmptyArgs = errors.New("container: empty args")
)

// NotFoundError is returned by Get on a cache miss and by Load when an
// identifier has neither a cached value, a binding nor a class descriptor.
type NotFoundError struct {
	ID string
	// Caller is the identifier whose construction asked for ID.
	// Empty for top-level requests.
	Caller string
}

func (e *NotFoundError) Error() string {
	if e.Caller == "" {
		return fmt.Sprintf("container: [%s] not found", e.ID)
	}
	return fmt.Sprintf("container: [%s] not found, may be called from [%s]", e.ID, e.Caller)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// EmptyArgsError is returned when a scalar, non-optional parameter has no
// value in the caller-supplied Args.
type EmptyArgsError struct {
	Owner  string
	Method string
	Param  string
}

func (e *EmptyArgsError) Error() string {
	return fmt.Sprintf("container: %s::%s param %s has no default value and not assigned with value",
		e.Owner, e.Method, e.Param)
}

func (e *EmptyArgsError) Is(target error) bool { return target == ErrEmptyArgs }
