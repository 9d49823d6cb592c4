package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/logger"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"future version", func(c *Config) { c.Version = CurrentConfigVersion + 1 }, "from the future"},
		{"zero interval", func(c *Config) { c.RefreshInterval = 0 }, "refresh_interval"},
		{"huge interval", func(c *Config) { c.RefreshInterval = MaxRefreshInterval + 1 }, "refresh_interval"},
		{"no workers", func(c *Config) { c.MaxWorkers = 0 }, "max_workers"},
		{"too many workers", func(c *Config) { c.MaxWorkers = MaxWorkersLimit + 1 }, "max_workers"},
		{"zero probe timeout", func(c *Config) { c.ProbeTimeout = 0 }, "must be positive"},
		{"negative task timeout", func(c *Config) { c.TaskTimeout = -time.Second }, "must be positive"},
		{"no sites", func(c *Config) { c.Sites = nil }, "No sites configured"},
		{"bad site", func(c *Config) { c.Sites = append(c.Sites, Site{Name: "x", URL: "example.com"}) }, "must start with http"},
		{"duplicate url", func(c *Config) {
			c.Sites = append(c.Sites, Site{Name: "Google again", URL: "HTTPS://google.com/"})
		}, "same URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateSite(t *testing.T) {
	tests := []struct {
		name    string
		site    Site
		wantErr string
	}{
		{"https", Site{Name: "A", URL: "https://example.com"}, ""},
		{"http with path", Site{Name: "A", URL: "http://example.com:8080/health"}, ""},
		{"no name", Site{Name: "  ", URL: "https://example.com"}, "has no name"},
		{"no scheme", Site{Name: "A", URL: "example.com"}, "must start with http"},
		{"ftp", Site{Name: "A", URL: "ftp://example.com"}, "must start with http"},
		{"no host", Site{Name: "A", URL: "https:///path"}, "has no host"},
		{"unparseable", Site{Name: "A", URL: "https://exa mple.com/%zz"}, "invalid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSite(tt.site)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSanitize_ClampsNumbers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RefreshInterval = -5
	cfg.MaxWorkers = 500
	cfg.ProbeTimeout = 0
	cfg.TaskTimeout = time.Second
	log := logger.NewBufferLogger()

	got := Sanitize(cfg, log)

	assert.Same(t, cfg, got)
	assert.Equal(t, DefaultRefreshInterval, got.RefreshInterval)
	assert.Equal(t, MaxWorkersLimit, got.MaxWorkers)
	assert.Equal(t, DefaultProbeTimeout, got.ProbeTimeout)
	assert.Equal(t, DefaultProbeTimeout, got.TaskTimeout, "task timeout raised to probe timeout")
	assert.Len(t, log.Snapshot(), 4)
	assert.NoError(t, Validate(got))
}

func TestSanitize_LongInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RefreshInterval = MaxRefreshInterval * 2

	got := Sanitize(cfg, nil)
	assert.Equal(t, MaxRefreshInterval, got.RefreshInterval)
}

func TestSanitize_DropsBadSites(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sites = []Site{
		{Name: "Good", URL: "https://example.com"},
		{Name: "", URL: "https://nameless.example.com"},
		{Name: "Dupe", URL: "https://EXAMPLE.com/"},
		{Name: "Other", URL: "http://example.org"},
		{Name: "Broken", URL: "not a url"},
	}
	log := logger.NewBufferLogger()

	got := Sanitize(cfg, log)

	assert.Equal(t, []Site{
		{Name: "Good", URL: "https://example.com"},
		{Name: "Other", URL: "http://example.org"},
	}, got.Sites)

	msgs := log.Snapshot()
	require.Len(t, msgs, 3)
	for _, m := range msgs {
		assert.Equal(t, "warn", m.Level)
		assert.False(t, strings.Contains(m.Message, "\n"), "warnings are single lines: %q", m.Message)
	}
}

func TestSanitize_EmptyFallsBackToDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sites = []Site{{Name: "Bad", URL: "gopher://example.com"}}
	log := logger.NewBufferLogger()

	got := Sanitize(cfg, log)

	assert.Equal(t, DefaultSites(), got.Sites)
	assert.Equal(t, "no usable sites in config, using built-in sites", log.Snapshot()[1].Message)
}
