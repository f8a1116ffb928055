package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewDomainError("SOME_CODE", "something went wrong")
	assert.Equal(t, "something went wrong", err.Error())
	assert.Equal(t, "SOME_CODE", err.Code)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"rate limited", ErrRateLimited, true},
		{"server error", ErrSourceUnavailable, true},
		{"timeout", ErrTimeout, true},
		{"wrapped timeout", fmt.Errorf("calling geocoder: %w", ErrTimeout), true},
		{"not found", ErrNotFound, false},
		{"validation", ErrInvalidBBL, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsTransient(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("benchmarking lookup: %w", ErrNotFound)))
	assert.False(t, IsNotFound(ErrRateLimited))
	assert.False(t, IsNotFound(nil))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrInvalidBBL))
	assert.True(t, IsValidation(ErrInvalidAddress))
	assert.False(t, IsValidation(ErrNotFound))
}
