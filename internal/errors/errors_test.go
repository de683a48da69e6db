package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSource,
		ErrResource,
		ErrParse,
		ErrRoutine,
		ErrReport,
	}

	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	err := New(ErrSource, "Cannot reach hardware monitor", "Check that the monitor is running on the configured port")

	require.NotNil(t, err)
	assert.Equal(t, ErrSource, err.Code)
	assert.Contains(t, err.Error(), "Cannot reach hardware monitor")
	assert.Contains(t, err.Error(), "Check that the monitor is running")
	assert.Contains(t, err.Error(), "✗")
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, "Fetch failed")

	assert.Equal(t, ErrSource, err.Code)
	assert.Contains(t, err.Error(), "Fetch failed")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestWrapWithCode(t *testing.T) {
	cause := fmt.Errorf("only 100 MiB free")
	err := WrapWithCode(cause, ErrResource, "Not enough disk space", "Free up space on the target volume")

	assert.Equal(t, ErrResource, err.Code)
	assert.True(t, errors.Is(err, cause))
}

func TestErrorFormat(t *testing.T) {
	err := &Error{
		Code:       ErrReport,
		Message:    "Cannot write report",
		Suggestion: "Check output directory permissions",
		Cause:      fmt.Errorf("permission denied"),
	}

	msg := err.Error()
	lines := strings.Split(msg, "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	// Message comes first, then cause, then suggestion.
	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	causeIdx := strings.Index(msg, "permission denied")
	suggIdx := strings.Index(msg, "Check output directory")
	assert.Greater(t, suggIdx, causeIdx)
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"nil error", nil, ErrSource, false},
		{"matching code", New(ErrResource, "no memory", ""), ErrResource, true},
		{"different code", New(ErrSource, "down", ""), ErrResource, false},
		{"plain error", fmt.Errorf("plain"), ErrSource, false},
		{"wrapped structured error", fmt.Errorf("outer: %w", New(ErrParse, "bad value", "")), ErrParse, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCode(tc.err, tc.code))
		})
	}
}
