package logger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLogger_ReturnsSingleton(t *testing.T) {
	IsTest = true
	first := GetLogger()
	second := GetLogger()
	assert.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestMaskSensitiveString(t *testing.T) {
	assert.Equal(t, "", MaskSensitiveString("", 2, 2))
	assert.Equal(t, "*****", MaskSensitiveString("short", 2, 2))
	assert.Equal(t, "ey...z9", MaskSensitiveString("eyJhbGciOiJIUzI1NiJ9.z9", 2, 2))
}

func TestMaskConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"empty", "", ""},
		{"url", "postgres://nomad:s3cret@db:5432/trips", "postgres://nomad:***@db:5432/trips"},
		{"key value trailing", "host=db user=nomad password=s3cret", "host=db user=nomad password=***"},
		{"key value middle", "host=db password=s3cret sslmode=disable", "host=db password=*** sslmode=disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskConnectionString(tt.in))
		})
	}
}

func TestFilterSensitiveHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer abc")
	headers.Set("X-Api-Key", "abc")
	headers.Set("Accept", "application/json")

	filtered := filterSensitiveHeaders(headers)
	assert.Equal(t, "[REDACTED]", filtered["Authorization"])
	assert.Equal(t, "[REDACTED]", filtered["X-Api-Key"])
	assert.Equal(t, "application/json", filtered["Accept"])
}
