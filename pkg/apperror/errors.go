package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindInvalidArgument
	KindDomain
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindDomain:
		return "domain"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"-"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Kind: KindInvalidArgument, Message: "Bad request"}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrTooManyRequest = &AppError{Code: http.StatusTooManyRequests, Kind: KindConflict, Message: "Rate limit exceeded. Please try again later."}
)

// NewAppError creates a new application error
func NewAppError(code int, kind Kind, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// NewValidationError reports a model field that violates one of its invariants
func NewValidationError(entity, field, constraint string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: fmt.Sprintf("%s %s %s", entity, field, constraint),
		Errors:  []FieldError{{Field: field, Message: constraint}},
	}
}

// NewNullModelError reports a missing model
func NewNullModelError(entity string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: entity + " cannot be null",
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewInvalidArgumentError creates an error for a rejected call argument
func NewInvalidArgumentError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidArgument,
		Message: message,
	}
}

// NewDomainError creates an error for a business rule violation
func NewDomainError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindDomain,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool        { return KindOf(err) == KindNotFound }
func IsValidation(err error) bool      { return KindOf(err) == KindValidation }
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }
func IsDomain(err error) bool          { return KindOf(err) == KindDomain }

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
