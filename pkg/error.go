package pkg

// Sentinel errors shared by the command-line packages.
// These errors can be tested using errors.Is for reliable error checking.

import (
	"fmt"
	"slices"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrCreateDir is returned when a required runtime directory cannot be
// created.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrCreateDir = MakeErrorf("failed to create directory")

// ErrReadInput is returned when reading an expression source fails.
//
// This error should be wrapped with the underlying I/O error
// to preserve the error chain.
var ErrReadInput = MakeErrorf("failed to read input")

// ErrInvalidConfig is returned when a configuration file cannot be decoded.
//
// This error should be wrapped with the underlying decoding error and the
// offending key, if known.
var ErrInvalidConfig = MakeErrorf("invalid configuration")

// ErrInvalidBinding is returned when a variable binding is not of the form
// NAME=VALUE, or VALUE is not a number.
var ErrInvalidBinding = MakeErrorf("invalid variable binding")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order they are provided:
// the first argument is the innermost error in the chain.
// Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, UnwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors
// in the error chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range slices.All(e) {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrap appends one or more errors to the receiver and returns the result.
// The receiver is never modified.
func (e Error) Wrap(err ...error) Error {
	return append(slices.Clip(e), err...)
}

// Wrapf appends a formatted error to the receiver and returns the result.
// The receiver is never modified.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(slices.Clip(e), fmt.Errorf(format, args...))
}

// Is reports whether target is a non-empty Error whose chain is a prefix of
// the receiver's chain. This lets errors.Is match a sentinel after it has
// been wrapped.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok || len(t) == 0 || len(t) > len(e) {
		return false
	}

	for i := range t {
		if e[i] != t[i] {
			return false
		}
	}

	return true
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// UnwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func UnwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, UnwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, UnwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}
