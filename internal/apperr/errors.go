// Package apperr classifies failures surfaced by the progress engine so the
// transport layer can map them without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is a semantic classification shared across layers.
type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindValidation Kind = "VALIDATION"
	KindInternal   Kind = "INTERNAL"
)

// Error is a classified error. Op names the operation that failed
// (e.g. "progress.LogBookActivity").
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is makes errors.Is(err, apperr.NotFound) style checks work on kinds.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	NotFound   = &Error{Kind: KindNotFound}
	Conflict   = &Error{Kind: KindConflict}
	Validation = &Error{Kind: KindValidation}
	Internal   = &Error{Kind: KindInternal}
)

func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func NotFoundf(op, format string, args ...any) *Error {
	return New(KindNotFound, op, fmt.Sprintf(format, args...))
}

func Conflictf(op, format string, args ...any) *Error {
	return New(KindConflict, op, fmt.Sprintf(format, args...))
}

func Validationf(op, format string, args ...any) *Error {
	return New(KindValidation, op, fmt.Sprintf(format, args...))
}

// Internalw wraps an unexpected error as a server error.
func Internalw(op string, err error) *Error {
	return Wrap(KindInternal, op, "internal error", err)
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
