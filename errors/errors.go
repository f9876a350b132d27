package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/NomadCrew/nomad-itinerary/logger"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	NotFoundError         ErrorType = "NOT_FOUND"
	DatabaseError         ErrorType = "DATABASE_ERROR"
	ServerError           ErrorType = "SERVER_ERROR"
	MissingFieldError     ErrorType = "MISSING_FIELD"
	WrongTypeError        ErrorType = "WRONG_TYPE"
	UnresolvableEnumError ErrorType = "UNRESOLVABLE_ENUM"
	RejectedError         ErrorType = "REJECTED"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Field      string    `json:"field,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewDatabaseError(err error) *AppError {
	// Log original error but return sanitized message
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Message:    "Database operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// MissingField reports a required field absent from a fragment.
func MissingField(field string) *AppError {
	return &AppError{
		Type:       MissingFieldError,
		Message:    "required field missing",
		Detail:     field,
		Field:      field,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// WrongType reports a field that is present but cannot be coerced to the expected type.
func WrongType(field, expected string, got interface{}) *AppError {
	return &AppError{
		Type:       WrongTypeError,
		Message:    fmt.Sprintf("field is not a valid %s", expected),
		Detail:     fmt.Sprintf("%s: got %T", field, got),
		Field:      field,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// UnresolvableEnum records a tag outside a vocabulary. It is informational only;
// callers substitute the vocabulary default and keep going.
func UnresolvableEnum(field, raw, fallback string) *AppError {
	return &AppError{
		Type:       UnresolvableEnumError,
		Message:    "unknown tag replaced with default",
		Detail:     fmt.Sprintf("%s: %q -> %q", field, raw, fallback),
		Field:      field,
		HTTPStatus: http.StatusOK,
	}
}

// Rejected marks a whole document as unusable because a required top-level field failed.
func Rejected(documentID string, cause error) *AppError {
	field := ""
	var appErr *AppError
	if stderrors.As(cause, &appErr) {
		field = appErr.Field
	}
	detail := fmt.Sprintf("document %q", documentID)
	if cause != nil {
		detail = fmt.Sprintf("document %q: %v", documentID, cause)
	}
	return &AppError{
		Type:       RejectedError,
		Message:    "trip document rejected",
		Detail:     detail,
		Field:      field,
		HTTPStatus: http.StatusUnprocessableEntity,
		Raw:        cause,
	}
}

// IsType reports whether err or anything it wraps is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Raw
	}
	return false
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case DatabaseError:
		return http.StatusInternalServerError
	case MissingFieldError, WrongTypeError, RejectedError:
		return http.StatusUnprocessableEntity
	case UnresolvableEnumError:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
