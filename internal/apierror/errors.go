// Package apierror defines the typed errors services return to the transport layer.
package apierror

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies an API error.
type Kind string

const (
	KindValidation       Kind = "VALIDATION_ERROR"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotFound         Kind = "NOT_FOUND"
	KindConflict         Kind = "CONFLICT"
)

// FieldError describes one invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an error that is safe to show to API clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// Is matches any *Error of the same kind, so callers can test with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is checks by kind.
var (
	ErrValidation       = &Error{Kind: KindValidation}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrForbidden        = &Error{Kind: KindForbidden}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrConflict         = &Error{Kind: KindConflict}
)

func NewErrValidation(fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NewErrUserNotFound(ref string) *Error {
	return newError(KindNotFound, "user %s not found", ref)
}

func NewErrTweetNotFound(id uuid.UUID) *Error {
	return newError(KindNotFound, "tweet %s not found", id)
}

func NewErrCommentNotFound(id uuid.UUID) *Error {
	return newError(KindNotFound, "comment %s not found", id)
}

// NewErrMalformedID is returned for path identifiers that are not UUIDs.
func NewErrMalformedID(raw string) *Error {
	return newError(KindNotFound, "resource %q not found", raw)
}

func NewErrUsernameTaken(username string) *Error {
	return newError(KindConflict, "username %s is already taken", username)
}

func NewErrEmailTaken(email string) *Error {
	return newError(KindConflict, "email %s is already registered", email)
}

func NewErrInvalidCredentials() *Error {
	return newError(KindValidation, "invalid credentials")
}

func NewErrSelfFollow() *Error {
	return newError(KindInvalidOperation, "you cannot follow yourself")
}

func NewErrNotTweetAuthor(id uuid.UUID) *Error {
	return newError(KindForbidden, "only the author can delete tweet %s", id)
}

func NewErrNotCommentAuthor(id uuid.UUID) *Error {
	return newError(KindForbidden, "only the author can delete comment %s", id)
}

func NewErrMissingAuthorizationToken() *Error {
	return newError(KindUnauthorized, "missing authorization token")
}

func NewErrInvalidAuthorizationToken() *Error {
	return newError(KindUnauthorized, "invalid authorization token")
}

func NewErrUserExists() *Error {
	return newError(KindConflict, "user already exists")
}
