// SPDX-License-Identifier: MIT
// Package xerrors defines the semantic error taxonomy shared by every
// lvpra package (§7 of the design notes): InvalidSetting, ValidityError,
// LogicError, and ResourceExhausted. It never replaces a package's own
// sentinel variables — it is the common type those sentinels wrap, so
// callers can branch on errors.Is against a sentinel and, independently,
// on the Kind when only the class of failure matters.
package xerrors

import (
	"errors"
	"fmt"
)

// Kind classifies the semantic failure, not the Go type.
type Kind int

const (
	// InvalidSetting marks a settings option out of range or an illegal
	// combination (e.g. prime implicants requested with MCUB approximation).
	InvalidSetting Kind = iota
	// ValidityError marks an input model violating a well-formedness rule.
	ValidityError
	// LogicError marks an internal precondition failure; it implies a
	// defect in lvpra itself, never a user input problem.
	LogicError
	// ResourceExhausted marks a failure to grow the unique or compute table.
	ResourceExhausted
)

// String renders the Kind the way it is named in spec prose, for log
// fields and error messages.
func (k Kind) String() string {
	switch k {
	case InvalidSetting:
		return "InvalidSetting"
	case ValidityError:
		return "ValidityError"
	case LogicError:
		return "LogicError"
	case ResourceExhausted:
		return "ResourceExhausted"
	default:
		return "UnknownKind"
	}
}

// Error is the concrete error type every package-level sentinel wraps.
// ElementPath carries the "textual element path" §7 requires for
// ValidityError/InvalidSetting; it is empty when not applicable.
type Error struct {
	Kind        Kind
	Message     string
	ElementPath string
	cause       error
}

// New constructs a base sentinel. Sentinels are declared once per
// package, at package scope, and never carry a formatted message at
// definition time — see builder/errors.go's documented policy, carried
// forward here.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ElementPath != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Kind, e.ElementPath, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is/errors.As see through to a wrapped cause.
func (e *Error) Unwrap() error { return e.cause }

// Is supports errors.Is(err, sentinel) by comparing kind and message,
// so a call site can match a specific sentinel without caring whether
// it arrived wrapped with element-path context.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithPath returns a copy of the sentinel annotated with the failing
// element's path, per §7's "carries a textual element path."
func (e *Error) WithPath(path string) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, ElementPath: path, cause: e.cause}
}

// Wrap attaches a lower-level cause to a sentinel using %w, per the
// "implementations attach context using %w" policy; the returned error
// still satisfies errors.Is against the original sentinel.
func (e *Error) Wrap(cause error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, ElementPath: e.ElementPath, cause: cause}
}

// Wrapf is Wrap with a formatted method-context message appended, for
// call sites that need to say where the failure happened (e.g.
// "AddEdge(u,v)") without inventing a new sentinel.
func Wrapf(base *Error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:        base.Kind,
		Message:     base.Message + ": " + fmt.Sprintf(format, args...),
		ElementPath: base.ElementPath,
		cause:       base,
	}
}
