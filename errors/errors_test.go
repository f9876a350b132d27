package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
	assert.True(t, stderrors.Is(wrappedErr, originalErr))

	assert.Nil(t, Wrap(nil, DatabaseError, "nothing"))
}

func TestNotFound(t *testing.T) {
	err := NotFound("Trip", "trip-123")
	assert.Equal(t, NotFoundError, err.Type)
	assert.Equal(t, "Trip not found", err.Message)
	assert.Equal(t, "ID: trip-123", err.Detail)
	assert.Equal(t, 404, err.HTTPStatus)
}

func TestMissingField(t *testing.T) {
	err := MissingField("recommendation.overview")
	assert.Equal(t, MissingFieldError, err.Type)
	assert.Equal(t, "recommendation.overview", err.Field)
	assert.Equal(t, "MISSING_FIELD: required field missing (recommendation.overview)", err.Error())
	assert.Equal(t, 422, err.GetHTTPStatus())
}

func TestWrongType(t *testing.T) {
	err := WrongType("startDate", "instant", true)
	assert.Equal(t, WrongTypeError, err.Type)
	assert.Equal(t, "startDate", err.Field)
	assert.Equal(t, "startDate: got bool", err.Detail)
}

func TestUnresolvableEnum(t *testing.T) {
	err := UnresolvableEnum("status", "foo", "pending")
	assert.Equal(t, UnresolvableEnumError, err.Type)
	assert.Equal(t, `status: "foo" -> "pending"`, err.Detail)
}

func TestRejected(t *testing.T) {
	cause := MissingField("startDate")
	err := Rejected("trip-1", cause)

	assert.Equal(t, RejectedError, err.Type)
	assert.Equal(t, "startDate", err.Field)
	assert.Contains(t, err.Detail, `document "trip-1"`)
	assert.Equal(t, 422, err.HTTPStatus)

	var appErr *AppError
	require.True(t, stderrors.As(err.Unwrap(), &appErr))
	assert.Equal(t, MissingFieldError, appErr.Type)
}

func TestIsType(t *testing.T) {
	rejected := Rejected("trip-1", WrongType("endDate", "instant", 42))

	assert.True(t, IsType(rejected, RejectedError))
	assert.True(t, IsType(rejected, WrongTypeError))
	assert.False(t, IsType(rejected, MissingFieldError))
	assert.False(t, IsType(fmt.Errorf("plain"), RejectedError))
	assert.True(t, IsType(fmt.Errorf("wrapped: %w", rejected), RejectedError))
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "with detail",
			err: &AppError{
				Type:    ValidationError,
				Message: "invalid input",
				Detail:  "field required",
			},
			expected: "VALIDATION_ERROR: invalid input (field required)",
		},
		{
			name: "without detail",
			err: &AppError{
				Type:    ServerError,
				Message: "boom",
			},
			expected: "SERVER_ERROR: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
