package domain

import "errors"

// ErrorKind classifies a domain failure so the transport layer can pick a
// status code without inspecting messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindConflict
	KindNotFound
	KindAuthentication
	KindAuthorization
)

// Error is the typed failure shared by all workflows. The message is the
// exact text surfaced to the client.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is makes two domain errors match when kind and message agree, so sentinel
// values below work with errors.Is across repository boundaries.
func (e *Error) Is(target error) bool {
	var de *Error
	if !errors.As(target, &de) {
		return false
	}
	return e.Kind == de.Kind && e.Message == de.Message
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewAuthenticationError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func NewAuthorizationError(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// IsKind reports whether err carries the given domain error kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *Error
	return errors.As(err, &de) && de.Kind == kind
}

// Well-known failures shared between services and repositories.
var (
	ErrInvalidCredentials = NewAuthenticationError("Invalid email or password")
	ErrEmailExists        = NewConflictError("User with this email already exists")
	ErrUserNotFound       = NewNotFoundError("User not found")

	ErrSweetNotFound        = NewNotFoundError("Sweet not found")
	ErrCategoryNotFound     = NewNotFoundError("Category not found")
	ErrSweetNameExists      = NewConflictError("Sweet with this name already exists")
	ErrPurchaseExceedsStock = NewValidationError("Purchase quantity cannot exceed available quantity")

	ErrInvalidToken = NewAuthenticationError("invalid or expired token")
	ErrTokenRevoked = NewAuthenticationError("token has been revoked")
	ErrForbidden    = NewAuthorizationError("access forbidden")
)
