package apperror

import (
	"fmt"
	"net/http"
)

// Kind classifies an Error into one of a closed set of failure categories.
// Every kind has a fixed HTTP status; the mapping lives in one table so the
// two services cannot drift apart again.
type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindNoResults
	KindPersistence
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindNoResults:
		return "no_results"
	case KindPersistence:
		return "persistence"
	default:
		return "internal"
	}
}

// httpStatus is the single source of truth for kind to status mapping.
var httpStatus = map[Kind]int{
	KindInternal:    http.StatusInternalServerError,
	KindInvalid:     http.StatusUnprocessableEntity,
	KindNotFound:    http.StatusNotFound,
	KindConflict:    http.StatusConflict,
	KindNoResults:   http.StatusInternalServerError,
	KindPersistence: http.StatusInternalServerError,
}

// HTTPStatus returns the HTTP status code for the kind.
func (k Kind) HTTPStatus() int {
	if status, ok := httpStatus[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is the single error structure used across both services.
//
// code example: PRODUCT_NOT_FOUND
type Error struct {
	parent error
	kind   Kind
	code   string
	msg    string
}

// New initializes an Error instance.
func New(kind Kind, code, msg string) Error {
	return Error{
		kind: kind,
		code: code,
		msg:  msg,
	}
}

// Error returns the error message for the Error.
func (e Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

// WrapParent attaches an underlying error to an existing predefined Error.
func (e Error) WrapParent(parent error) Error {
	if parent == nil {
		return e
	}
	e.parent = parent
	return e
}

// Unwrap returns the underlying error for the Error.
func (e *Error) Unwrap() error {
	return e.parent
}

// Is reports whether target is an Error with the same kind and code.
// The wrapped parent is deliberately ignored so predefined values match
// their wrapped instances.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.code == t.code
}

// Kind returns the kind of the Error.
func (e Error) Kind() Kind {
	return e.kind
}

// Code returns the code of the Error.
func (e Error) Code() string {
	return e.code
}

// Msg returns the message of the Error.
func (e Error) Msg() string {
	return e.msg
}

// Parent returns the underlying error for the Error.
func (e Error) Parent() error {
	return e.parent
}

func NewInvalid(code, msg string) Error {
	return New(KindInvalid, code, msg)
}

func NewNotFound(code, msg string) Error {
	return New(KindNotFound, code, msg)
}

func NewConflict(code, msg string) Error {
	return New(KindConflict, code, msg)
}

func NewNoResults(code, msg string) Error {
	return New(KindNoResults, code, msg)
}

func NewPersistence(code, msg string) Error {
	return New(KindPersistence, code, msg)
}

func NewInternal(code, msg string) Error {
	return New(KindInternal, code, msg)
}
