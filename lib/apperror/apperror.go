package apperror

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Kind is the error taxonomy every handler speaks. Controllers map a Kind
// to an HTTP status; anything unclassified is an internal failure and gets
// the underlying message surfaced for operability.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindBadRequest
	KindConflict
)

type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) Kind() Kind {
	return e.kind
}

func New(kind Kind, message string) error {
	return &Error{kind: kind, err: errors.New(message)}
}

func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, err: errors.Errorf(format, args...)}
}

func Wrap(kind Kind, err error, message string) error {
	return &Error{kind: kind, err: errors.Wrap(err, message)}
}

func Unauthorized(message string) error { return New(KindUnauthorized, message) }
func Forbidden(message string) error    { return New(KindForbidden, message) }
func NotFound(message string) error     { return New(KindNotFound, message) }
func BadRequest(message string) error   { return New(KindBadRequest, message) }
func Conflict(message string) error     { return New(KindConflict, message) }

// KindOf classifies any error, defaulting to internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return KindInternal
}

// HTTPStatus maps the taxonomy to response codes per the failure contract:
// 401 missing/invalid credential, 403 wrong owner, 404 missing entity,
// 400 malformed body or business-rule violation, 409 conflicting state,
// 500 everything else.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindForbidden:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindBadRequest:
		return fiber.StatusBadRequest
	case KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}
