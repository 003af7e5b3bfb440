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
		ErrFeed,
		ErrDecode,
		ErrRender,
		ErrOutput,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .corewatch.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "feed error",
			code:       ErrFeed,
			message:    "Cannot reach the metrics feed",
			suggestion: "Check that the server is running",
		},
		{
			name:       "decode error",
			code:       ErrDecode,
			message:    "Frame is not a JSON array",
			suggestion: "",
		},
		{
			name:       "output error",
			code:       ErrOutput,
			message:    "Cannot write corewatch.html",
			suggestion: "Check directory permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "message and suggestion",
			err:           New(ErrConfig, "Invalid configuration", "Check .corewatch.yaml syntax"),
			expectedParts: []string{"✗ Invalid configuration", "Check .corewatch.yaml syntax"},
		},
		{
			name:          "cause is included",
			err:           WrapWithCode(errors.New("dial tcp: connection refused"), ErrFeed, "Feed unreachable", ""),
			expectedParts: []string{"Feed unreachable", "connection refused"},
		},
		{
			name:          "no suggestion",
			err:           New(ErrRender, "Render failed", ""),
			expectedParts: []string{"Render failed"},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("websocket: bad handshake"),
		ErrFeed,
		"Cannot subscribe to ws://localhost:3000/realtime/cpus",
		"Check --server and --path",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	assert.Contains(t, lines[0], "Cannot subscribe")
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	wrapped := Wrap(cause, "Feed closed")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrFeed, wrapped.Code, "Wrap should default to ErrFeed code")
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("root cause")
	wrapped := fmt.Errorf("outer: %w", WrapWithCode(cause, ErrDecode, "Bad frame", ""))

	assert.True(t, errors.Is(wrapped, cause))

	var cwErr *Error
	require.True(t, errors.As(wrapped, &cwErr))
	assert.Equal(t, ErrDecode, cwErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrFeed))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOk   bool
	}{
		{"exit error", NewExitError(2), 2, true},
		{"wrapped exit error", fmt.Errorf("snapshot: %w", NewExitError(3)), 3, true},
		{"standard error", errors.New("boom"), 0, false},
		{"nil", nil, 0, false},
		{"structured error", New(ErrFeed, "x", ""), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}

	assert.Equal(t, "exit code 2", NewExitError(2).Error())
}
