package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults and limits for the numeric settings.
const (
	DefaultRefreshInterval = 30 // seconds
	DefaultMaxWorkers      = 5
	DefaultProbeTimeout    = 5 * time.Second
	DefaultTaskTimeout     = 10 * time.Second

	MinRefreshInterval = 1
	MaxRefreshInterval = 24 * 60 * 60
	MaxWorkersLimit    = 64
)

// Config represents the sitewatch configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// RefreshInterval is the pause between probe cycles, in seconds.
	RefreshInterval int `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// MaxWorkers caps how many sites are probed at once.
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`

	// ProbeTimeout bounds each HTTP request and TLS handshake.
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`

	// TaskTimeout bounds a whole site check; slower checks are reported as timed out.
	TaskTimeout time.Duration `yaml:"task_timeout" mapstructure:"task_timeout"`

	Sites []Site `yaml:"sites" mapstructure:"sites"`
}

// Site is one endpoint to watch.
type Site struct {
	Name string `yaml:"name" json:"name" mapstructure:"name"`
	URL  string `yaml:"url" json:"url" mapstructure:"url"`
}

// Interval returns RefreshInterval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Second
}

// DefaultSites is the built-in watch list used when no usable config exists.
func DefaultSites() []Site {
	return []Site{
		{Name: "Google", URL: "https://google.com"},
		{Name: "GitHub", URL: "https://github.com"},
		{Name: "Cloudflare", URL: "https://cloudflare.com"},
		{Name: "Wikipedia", URL: "https://wikipedia.org"},
		{Name: "Reddit", URL: "https://reddit.com"},
		{Name: "StackOverflow", URL: "https://stackoverflow.com"},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:         CurrentConfigVersion,
		RefreshInterval: DefaultRefreshInterval,
		MaxWorkers:      DefaultMaxWorkers,
		ProbeTimeout:    DefaultProbeTimeout,
		TaskTimeout:     DefaultTaskTimeout,
		Sites:           DefaultSites(),
	}
}
