package domain

import (
	"errors"
	"strings"
)

// ErrorKind discriminates errors the operator can fix from broken preconditions.
type ErrorKind int

const (
	// KindUserInput errors are shown to the operator and fixed by changing input.
	KindUserInput ErrorKind = iota + 1
	// KindInvariant errors mean validation let through data the rules cannot use.
	KindInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindUserInput:
		return "user_input"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is the single result type for rule failures.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// UserError creates an operator-facing error.
func UserError(message string) *Error {
	return &Error{Kind: KindUserInput, Message: message}
}

// Invariant creates an invariant violation identified by code.
func Invariant(code, message string) *Error {
	return &Error{Kind: KindInvariant, Code: code, Message: message}
}

// AsError extracts a rule error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsInvariant reports whether err carries an invariant violation.
func IsInvariant(err error) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindInvariant
}

// Errors accumulates rule errors.
type Errors []*Error

// Add appends non-nil errors.
func (es *Errors) Add(errs ...*Error) {
	for _, e := range errs {
		if e != nil {
			*es = append(*es, e)
		}
	}
}

// Messages returns the message of every error in order.
func (es Errors) Messages() []string {
	if len(es) == 0 {
		return nil
	}
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Message)
	}
	return out
}

// HasInvariant reports whether any accumulated error is an invariant violation.
func (es Errors) HasInvariant() bool {
	for _, e := range es {
		if e.Kind == KindInvariant {
			return true
		}
	}
	return false
}

func (es Errors) Error() string {
	parts := make([]string, 0, len(es))
	for _, e := range es {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
