// Package errors defines application-specific error types shared between the
// usecase and delivery layers.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int   // HTTP status code
	Message() string // User-friendly error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode int
	message  string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, message string) *BaseError {
	return &BaseError{
		httpCode: httpCode,
		message:  message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"user not found",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusBadRequest,
		"email is already registered",
	)

	// Login failures are intentionally indistinguishable: an unknown email
	// and a wrong password produce the same response.
	ErrUnableToLogin = NewBaseError(
		http.StatusBadRequest,
		"Unable to login",
	)

	ErrAuthentication = NewBaseError(
		http.StatusUnauthorized,
		"Please authenticate",
	)

	// Validation-related errors
	ErrNameRequired = NewBaseError(
		http.StatusBadRequest,
		"name is required",
	)

	ErrNegativeAge = NewBaseError(
		http.StatusBadRequest,
		"age must not be negative",
	)

	ErrInvalidEmail = NewBaseError(
		http.StatusBadRequest,
		"email is not valid",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"password must be at least 6 characters",
	)

	ErrPasswordForbidden = NewBaseError(
		http.StatusBadRequest,
		"password must not contain 'password'",
	)

	ErrUnknownUpdateField = NewBaseError(
		http.StatusBadRequest,
		"cannot update non-existent property",
	)

	// Task-related errors
	ErrTaskNotFound = NewBaseError(
		http.StatusNotFound,
		"task not found",
	)

	ErrDescriptionRequired = NewBaseError(
		http.StatusBadRequest,
		"description is required",
	)

	// Avatar-related errors
	ErrAvatarNotFound = NewBaseError(
		http.StatusNotFound,
		"user picture does not exist",
	)

	// The original contract answers 500 when deleting an avatar that was
	// never set.
	ErrAvatarNotSet = NewBaseError(
		http.StatusInternalServerError,
		"user picture does not exist",
	)

	ErrAvatarTooLarge = NewBaseError(
		http.StatusBadRequest,
		"image exceeds the maximum upload size",
	)

	ErrAvatarBadType = NewBaseError(
		http.StatusBadRequest,
		"please upload an image",
	)

	ErrImageProcessing = NewBaseError(
		http.StatusBadRequest,
		"unable to process the uploaded image",
	)

	// General errors
	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"internal server error",
	)
)
