package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/logger"
)

// Validate checks the config strictly and returns the first problem found.
// The dashboard itself uses Sanitize instead; Validate backs 'sitewatch add'
// and 'sitewatch init' so bad entries are rejected before they are written.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sitewatch only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sitewatch or lower the version field.")
	}

	if cfg.RefreshInterval < MinRefreshInterval || cfg.RefreshInterval > MaxRefreshInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh_interval must be between %d and %d seconds, got %d", MinRefreshInterval, MaxRefreshInterval, cfg.RefreshInterval),
			"Set refresh_interval to a number of seconds, e.g. 30.")
	}

	if cfg.MaxWorkers < 1 || cfg.MaxWorkers > MaxWorkersLimit {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("max_workers must be between 1 and %d, got %d", MaxWorkersLimit, cfg.MaxWorkers),
			"Five workers is plenty for most watch lists.")
	}

	if cfg.ProbeTimeout <= 0 || cfg.TaskTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			"probe_timeout and task_timeout must be positive",
			"Use a duration like '5s' or a number of seconds.")
	}

	if len(cfg.Sites) == 0 {
		return errors.New(errors.ErrConfig,
			"No sites configured",
			"Add one with 'sitewatch add <name> <url>'.")
	}

	seen := make(map[string]string)
	for _, s := range cfg.Sites {
		if err := ValidateSite(s); err != nil {
			return err
		}
		key := normalizeURL(s.URL)
		if prev, ok := seen[key]; ok {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Sites '%s' and '%s' have the same URL %s", prev, s.Name, s.URL),
				"Each URL can only be watched once.")
		}
		seen[key] = s.Name
	}

	return nil
}

// ValidateSite checks a single site entry.
func ValidateSite(s Site) error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Site with URL '%s' has no name", s.URL),
			"Give every site a short display name.")
	}

	u, err := url.Parse(strings.TrimSpace(s.URL))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Site '%s' has an invalid URL '%s'", s.Name, s.URL),
			"Use a full URL like https://example.com.")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Site '%s' URL '%s' must start with http:// or https://", s.Name, s.URL),
			"Use a full URL like https://example.com.")
	}
	if u.Hostname() == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Site '%s' URL '%s' has no host", s.Name, s.URL),
			"Use a full URL like https://example.com.")
	}
	return nil
}

// Sanitize repairs cfg in place so the dashboard can always start: invalid and
// duplicate sites are dropped, out-of-range numbers are clamped, and an empty
// watch list is replaced by the built-in sites. Every repair is logged as a warning.
func Sanitize(cfg *Config, log logger.Logger) *Config {
	if log == nil {
		log = logger.Noop()
	}

	if cfg.RefreshInterval < MinRefreshInterval {
		log.Warn("refresh_interval %d is too small, using %d", cfg.RefreshInterval, DefaultRefreshInterval)
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.RefreshInterval > MaxRefreshInterval {
		log.Warn("refresh_interval %d is too large, using %d", cfg.RefreshInterval, MaxRefreshInterval)
		cfg.RefreshInterval = MaxRefreshInterval
	}

	if cfg.MaxWorkers < 1 {
		log.Warn("max_workers %d is invalid, using %d", cfg.MaxWorkers, DefaultMaxWorkers)
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.MaxWorkers > MaxWorkersLimit {
		log.Warn("max_workers %d is too large, using %d", cfg.MaxWorkers, MaxWorkersLimit)
		cfg.MaxWorkers = MaxWorkersLimit
	}

	if cfg.ProbeTimeout <= 0 {
		log.Warn("probe_timeout %s is invalid, using %s", cfg.ProbeTimeout, DefaultProbeTimeout)
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.TaskTimeout <= 0 {
		log.Warn("task_timeout %s is invalid, using %s", cfg.TaskTimeout, DefaultTaskTimeout)
		cfg.TaskTimeout = DefaultTaskTimeout
	}
	if cfg.TaskTimeout < cfg.ProbeTimeout {
		log.Warn("task_timeout %s is shorter than probe_timeout %s, raising it", cfg.TaskTimeout, cfg.ProbeTimeout)
		cfg.TaskTimeout = cfg.ProbeTimeout
	}

	seen := make(map[string]bool)
	kept := cfg.Sites[:0]
	for _, s := range cfg.Sites {
		if err := ValidateSite(s); err != nil {
			log.Warn("skipping site: %s", errors.Message(err))
			continue
		}
		key := normalizeURL(s.URL)
		if seen[key] {
			log.Warn("skipping duplicate site '%s' (%s)", s.Name, s.URL)
			continue
		}
		seen[key] = true
		kept = append(kept, s)
	}
	cfg.Sites = kept

	if len(cfg.Sites) == 0 {
		log.Warn("no usable sites in config, using built-in sites")
		cfg.Sites = DefaultSites()
	}

	return cfg
}

// normalizeURL is the identity used for duplicate detection.
func normalizeURL(raw string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "/")
}
