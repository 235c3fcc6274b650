package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeAuthentication indicates the remote API rejected the supplied credentials.
	ErrCodeAuthentication ErrorCode = "authentication"
	// ErrCodeNotAuthenticated indicates no usable bearer token was available
	// for an operation that requires one.
	ErrCodeNotAuthenticated ErrorCode = "not_authenticated"
	// ErrCodeProfileFetch indicates the profile lookup against the remote API failed.
	ErrCodeProfileFetch ErrorCode = "profile_fetch"
	// ErrCodeBusinessFetch indicates the business listing fetch failed.
	ErrCodeBusinessFetch ErrorCode = "business_fetch"
	// ErrCodeBusinessCreate indicates the business creation request failed.
	ErrCodeBusinessCreate ErrorCode = "business_create"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "internal"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Authentication creates a new Authentication error.
func Authentication(message string) *AppError {
	return &AppError{Code: ErrCodeAuthentication, Message: message}
}

// NotAuthenticated creates a new NotAuthenticated error.
func NotAuthenticated(message string) *AppError {
	return &AppError{Code: ErrCodeNotAuthenticated, Message: message}
}

// ProfileFetch creates a new ProfileFetch error.
func ProfileFetch(message string) *AppError {
	return &AppError{Code: ErrCodeProfileFetch, Message: message}
}

// BusinessFetch creates a new BusinessFetch error.
func BusinessFetch(message string) *AppError {
	return &AppError{Code: ErrCodeBusinessFetch, Message: message}
}

// BusinessCreate creates a new BusinessCreate error.
func BusinessCreate(message string) *AppError {
	return &AppError{Code: ErrCodeBusinessCreate, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: message}
}

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Internal creates a new Internal error.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAuthentication checks if an error is an Authentication error.
func IsAuthentication(err error) bool {
	return isCode(err, ErrCodeAuthentication)
}

// IsNotAuthenticated checks if an error is a NotAuthenticated error.
func IsNotAuthenticated(err error) bool {
	return isCode(err, ErrCodeNotAuthenticated)
}

// IsProfileFetch checks if an error is a ProfileFetch error.
func IsProfileFetch(err error) bool {
	return isCode(err, ErrCodeProfileFetch)
}

// IsBusinessFetch checks if an error is a BusinessFetch error.
func IsBusinessFetch(err error) bool {
	return isCode(err, ErrCodeBusinessFetch)
}

// IsBusinessCreate checks if an error is a BusinessCreate error.
func IsBusinessCreate(err error) bool {
	return isCode(err, ErrCodeBusinessCreate)
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	return isCode(err, ErrCodeNotFound)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsSessionFailure reports whether an error should terminate the current
// session flow (redirect to login) rather than surface inline.
func IsSessionFailure(err error) bool {
	return IsAuthentication(err) || IsNotAuthenticated(err) || IsProfileFetch(err)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
