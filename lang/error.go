package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Errors returned by this package are derived from these sentinels using
// [Error.With], [Error.Wrap], or [Error.WithPosition], and still satisfy
// errors.Is against the sentinel they were derived from.
var (
	ErrParse             = NewError("parse error")
	ErrUndefinedVariable = NewError("undefined variable")
	ErrDivisionByZero    = NewError("division by zero")
	ErrMaxDepthExceeded  = NewError("maximum nesting depth exceeded")
	ErrInvalidNumber     = NewError("invalid number")
	ErrInvalidNode       = NewError("invalid node")
	ErrReadInput         = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	kind  *Error      // Sentinel this error was derived from
	attrs []slog.Attr // Attributes for structured logging
	pos   Position
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> at <pos>: <err>" // all fields set
	//   2. "<msg>: <err>"          // position unknown
	//   3. "<msg>"                 // wrapped error is nil
	//   4. "<err>"                 // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		if e.pos.IsValid() {
			part = append(part, e.msg+" at "+e.pos.String())
		} else {
			part = append(part, e.msg)
		}
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.origin() == t.origin()
}

// Position returns the source position attached to e, if any.
func (e *Error) Position() (Position, bool) {
	return e.pos, e.pos.IsValid()
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(c.attrs, e.attrs)
	copy(c.attrs[len(e.attrs):], attrs)

	return c
}

// WithPosition returns a copy of e located at the given source position.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = pos

	return c
}

// Attr returns the value of the first attribute with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

func (e *Error) clone() *Error {
	return &Error{
		msg:   e.msg,
		err:   e.err,
		kind:  e.origin(),
		attrs: e.attrs, // Share attrs
		pos:   e.pos,
	}
}

func (e *Error) origin() *Error {
	if e.kind != nil {
		return e.kind
	}

	return e
}

// FormatError formats err with a snippet of source pointing at the offending
// column. Errors without a position are returned as their message alone.
func FormatError(source string, err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	pos, ok := e.Position()
	if !ok {
		return err.Error()
	}

	lines := strings.Split(source, "\n")

	var buf strings.Builder

	buf.WriteString(err.Error())
	buf.WriteRune('\n')

	if pos.Line > 0 && pos.Line <= len(lines) {
		lineNum := strconv.Itoa(pos.Line)

		buf.WriteString("  ")
		buf.WriteString(lineNum)
		buf.WriteString(" | ")
		buf.WriteString(lines[pos.Line-1])
		buf.WriteRune('\n')

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", len(lineNum)+5)
		if pos.Column > 0 {
			padding += strings.Repeat(" ", pos.Column-1)
		}

		buf.WriteString(padding + "^\n")
	}

	return buf.String()
}
