// Package apperr classifies business-rule failures so handlers can map them
// to HTTP status codes without inspecting message strings.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindPermission
	KindState
	KindNotFound
	KindConflict
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Kind() Kind { return e.kind }

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

func Permissionf(format string, args ...any) *Error {
	return newf(KindPermission, format, args...)
}

// Statef marks operations that are invalid for the entity's current
// lifecycle state, e.g. registering for an event that is not approved.
func Statef(format string, args ...any) *Error {
	return newf(KindState, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return newf(KindConflict, format, args...)
}

// KindOf unwraps err and returns its kind, or KindUnknown for errors that
// did not originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
