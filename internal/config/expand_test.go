package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"~", home},
		{"~/sites.json", filepath.Join(home, "sites.json")},
		{"/etc/sitewatch.yaml", "/etc/sitewatch.yaml"},
		{"~other/file", "~other/file"},
		{"relative/~/path", "relative/~/path"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandTilde(tt.input))
		})
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("SW_TEST_HOST", "status.example.com")
	t.Setenv("SW_TEST_TOKEN", "abc123")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"no variables", "https://example.com", "https://example.com"},
		{"host", "https://${SW_TEST_HOST}/health", "https://status.example.com/health"},
		{"two variables", "https://${SW_TEST_HOST}/?t=${SW_TEST_TOKEN}", "https://status.example.com/?t=abc123"},
		{"unknown kept", "https://${SW_TEST_MISSING}/", "https://${SW_TEST_MISSING}/"},
		{"bare dollar kept", "https://example.com/$SW_TEST_HOST", "https://example.com/$SW_TEST_HOST"},
		{"unterminated", "https://${SW_TEST_HOST", "https://${SW_TEST_HOST"},
		{"empty name", "https://${}/", "https://${}/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Expand(tt.input))
		})
	}
}

func TestExpand_UserFallback(t *testing.T) {
	t.Setenv("USER", "")
	os.Unsetenv("USER")
	t.Setenv("LOGNAME", "watcher")

	assert.Equal(t, "https://example.com/~watcher", Expand("https://example.com/~${USER}"))
}

func TestExpand_EmptyValue(t *testing.T) {
	t.Setenv("SW_TEST_EMPTY", "")
	assert.Equal(t, "https://example.com/", Expand("https://example.com/${SW_TEST_EMPTY}"))
}
