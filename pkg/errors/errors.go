package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeAlreadyExists ErrorType = "ALREADY_EXISTS"
	ErrorTypeSelfReference ErrorType = "SELF_REFERENCE"

	// Conditional-write conflicts with a caller-visible identity of their own
	ErrorTypeAlreadyFollowing ErrorType = "ALREADY_FOLLOWING"
	ErrorTypeNotFollowing     ErrorType = "NOT_FOLLOWING"
	ErrorTypeAlreadyLiked     ErrorType = "ALREADY_LIKED"

	// Infrastructure errors
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for common error types

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewAlreadyExistsError creates a conflict error for duplicate creation
func NewAlreadyExistsError(resource string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyExists,
		Message:    fmt.Sprintf("%s already exists", resource),
		HTTPStatus: http.StatusConflict,
	}
}

// NewSelfReferenceError creates an error for self-referential operations
func NewSelfReferenceError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeSelfReference,
		Message:    fmt.Sprintf("cannot %s yourself", operation),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewAlreadyFollowingError creates the conflict error for a duplicate follow
func NewAlreadyFollowingError(followerID, followedID string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyFollowing,
		Message:    "already following this user",
		HTTPStatus: http.StatusConflict,
		Details: map[string]interface{}{
			"followerId": followerID,
			"followedId": followedID,
		},
	}
}

// NewNotFollowingError creates the error for unfollowing a user who was never followed
func NewNotFollowingError(followerID, followedID string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFollowing,
		Message:    "not following this user",
		HTTPStatus: http.StatusNotFound,
		Details: map[string]interface{}{
			"followerId": followerID,
			"followedId": followedID,
		},
	}
}

// NewAlreadyLikedError creates the conflict error for a duplicate like
func NewAlreadyLikedError(userID, postID string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyLiked,
		Message:    "post already liked",
		HTTPStatus: http.StatusConflict,
		Details: map[string]interface{}{
			"userId": userID,
			"postId": postID,
		},
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewUnavailableError creates an error for a transiently unreachable dependency
func NewUnavailableError(service string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    fmt.Sprintf("service '%s' is unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// Helper functions

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsAlreadyExists checks if an error is a duplicate-creation conflict
func IsAlreadyExists(err error) bool {
	return IsType(err, ErrorTypeAlreadyExists)
}

// IsAlreadyFollowing checks if an error is a duplicate-follow conflict
func IsAlreadyFollowing(err error) bool {
	return IsType(err, ErrorTypeAlreadyFollowing)
}

// IsNotFollowing checks if an error is a missing-follow error
func IsNotFollowing(err error) bool {
	return IsType(err, ErrorTypeNotFollowing)
}

// IsAlreadyLiked checks if an error is a duplicate-like conflict
func IsAlreadyLiked(err error) bool {
	return IsType(err, ErrorTypeAlreadyLiked)
}

// IsSelfReference checks if an error is a self-reference rejection
func IsSelfReference(err error) bool {
	return IsType(err, ErrorTypeSelfReference)
}

// IsUnavailable checks if an error is a transient dependency failure
func IsUnavailable(err error) bool {
	return IsType(err, ErrorTypeUnavailable)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to the message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
