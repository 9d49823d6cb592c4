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
		ErrProbe,
		ErrTerminal,
		ErrRender,
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
			message:    "Invalid refresh interval",
			suggestion: "Use a whole number of seconds",
		},
		{
			name:       "terminal error",
			code:       ErrTerminal,
			message:    "Cannot read terminal size",
			suggestion: "Run inside an interactive terminal",
		},
		{
			name:       "render error",
			code:       ErrRender,
			message:    "Dashboard exited unexpectedly",
			suggestion: "",
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
	}{
		{
			name:          "message and suggestion",
			err:           New(ErrConfig, "Invalid configuration", "Check sites.json syntax"),
			expectedParts: []string{"✗", "Invalid configuration", "Check sites.json syntax"},
		},
		{
			name:          "cause included",
			err:           WrapWithCode(errors.New("EOF"), ErrConfig, "Failed to read config", ""),
			expectedParts: []string{"Failed to read config", "EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
		})
	}
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("inappropriate ioctl for device"),
		ErrTerminal,
		"Cannot read terminal size",
		"Falling back to 100x30",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	assert.Contains(t, lines[0], "Cannot read terminal size")
}

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	wrapped := Wrap(cause, "Probe failed")

	assert.Equal(t, ErrProbe, wrapped.Code, "Wrap should default to ErrProbe code")
	assert.Equal(t, cause, wrapped.Cause)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrProbe))
	assert.True(t, IsCode(fmt.Errorf("loading: %w", err), ErrConfig))
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
		{name: "exit error", err: NewExitError(1), wantCode: 1, wantOk: true},
		{name: "wrapped exit error", err: fmt.Errorf("check: %w", NewExitError(2)), wantCode: 2, wantOk: true},
		{name: "standard error", err: errors.New("boom"), wantOk: false},
		{name: "structured error", err: New(ErrRender, "x", ""), wantOk: false},
		{name: "nil", err: nil, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := GetExitCode(tt.err)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "exit code 1", NewExitError(1).Error())
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "plain", Message(errors.New("plain")))
	assert.Equal(t, "No sites configured", Message(New(ErrConfig, "No sites configured", "Add one.")))
	assert.Equal(t, "Bad file: eof", Message(WrapWithCode(errors.New("eof"), ErrConfig, "Bad file", "")))
	assert.Equal(t, "Bad file: eof", Message(fmt.Errorf("load: %w", WrapWithCode(errors.New("eof"), ErrConfig, "Bad file", ""))))
}
