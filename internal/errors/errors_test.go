package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/systmms/credvault/internal/errors"
)

// TestUserErrorFormatting verifies UserError displays properly
func TestUserErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.UserError{
		Message:    "Operation failed",
		Details:    "Connection timeout",
		Suggestion: "Check network connectivity",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "Operation failed")
	assert.Contains(t, errMsg, "Connection timeout")
	assert.Contains(t, errMsg, "Check network connectivity")
	assert.Contains(t, errMsg, "💡")
}

// TestUserErrorFallsBackToWrappedMessage verifies the wrapped error text is
// shown when no Message is set
func TestUserErrorFallsBackToWrappedMessage(t *testing.T) {
	t.Parallel()

	base := fmt.Errorf("base failure")
	err := errors.UserError{Err: base}

	assert.Contains(t, err.Error(), "base failure")
}

// TestConfigErrorFormatting verifies ConfigError displays with context
func TestConfigErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.ConfigError{
		Field:      "backend",
		Value:      "cloud",
		Message:    "unknown backend",
		Suggestion: "Use one of: auto, native, legacy",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "backend")
	assert.Contains(t, errMsg, "cloud")
	assert.Contains(t, errMsg, "unknown backend")
	assert.Contains(t, errMsg, "auto, native, legacy")
}

// TestCommandErrorFormatting verifies CommandError includes exit code
func TestCommandErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.CommandError{
		Command:    "cmdkey /list",
		ExitCode:   1,
		Message:    "store locked",
		Suggestion: "Unlock the credential store and retry",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "cmdkey /list")
	assert.Contains(t, errMsg, "exit code: 1")
	assert.Contains(t, errMsg, "store locked")
	assert.Contains(t, errMsg, "Unlock the credential store")
}

// TestUserErrorUnwrap verifies error unwrapping works correctly
func TestUserErrorUnwrap(t *testing.T) {
	t.Parallel()

	baseErr := fmt.Errorf("base error")
	userErr := errors.UserError{
		Message: "wrapped error",
		Err:     baseErr,
	}

	unwrapped := userErr.Unwrap()
	assert.Equal(t, baseErr, unwrapped)
}
