package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// NewAppError creates a new AppError
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Common errors
var (
	ErrInvalidRequest = NewAppError(http.StatusBadRequest, "Invalid request parameters")
	ErrUnauthorized   = NewAppError(http.StatusUnauthorized, "Unauthorized access")
	ErrForbidden      = NewAppError(http.StatusForbidden, "Access denied")
	ErrNotFound       = NewAppError(http.StatusNotFound, "Resource not found")
	ErrInternalServer = NewAppError(http.StatusInternalServerError, "Internal server error")
	ErrRateLimit      = NewAppError(http.StatusTooManyRequests, "Rate limit exceeded")
)

func BadRequest(msg string) *AppError {
	return NewAppError(http.StatusBadRequest, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg)
}

// Error kinds shared by the badge engine and its collaborators.
var (
	// ErrConfiguration marks malformed catalog data. Fatal to a catalog load.
	ErrConfiguration = stderrors.New("configuration error")
	// ErrUnavailable marks a failed read or write against persistence or cache.
	// Callers decide whether to retry.
	ErrUnavailable = stderrors.New("collaborator unavailable")
)

// KindError attaches a kind and the failing operation to an underlying error.
// errors.Is matches both the kind and anything the cause wraps.
type KindError struct {
	Kind error
	Op   string
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *KindError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Configuration wraps err as an ErrConfiguration raised by op.
func Configuration(op string, err error) error {
	return &KindError{Kind: ErrConfiguration, Op: op, Err: err}
}

// Unavailable wraps err as an ErrUnavailable raised by op. A nil err stays nil.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Kind: ErrUnavailable, Op: op, Err: err}
}

// IsConfiguration reports whether err is a catalog configuration error.
func IsConfiguration(err error) bool {
	return stderrors.Is(err, ErrConfiguration)
}

// IsUnavailable reports whether err came from a failing collaborator.
func IsUnavailable(err error) bool {
	return stderrors.Is(err, ErrUnavailable)
}
