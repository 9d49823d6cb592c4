package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/errors"
)

// SettingsFlags override config file settings. Zero means "not given".
type SettingsFlags struct {
	Interval int
	Workers  int
	Timeout  time.Duration
}

// AddSettingsFlags registers --interval, --workers and --timeout on cmd and its subcommands.
func AddSettingsFlags(cmd *cobra.Command, flags *SettingsFlags) {
	cmd.PersistentFlags().IntVar(&flags.Interval, "interval", 0, "seconds between checks (overrides config)")
	cmd.PersistentFlags().IntVar(&flags.Workers, "workers", 0, "sites checked at once (overrides config)")
	cmd.PersistentFlags().DurationVar(&flags.Timeout, "timeout", 0, "per-request timeout, e.g. 5s (overrides config)")
}

// Apply writes the given flags over cfg. Out-of-range values are rejected
// rather than clamped: a typo on the command line should be visible.
func (f SettingsFlags) Apply(cfg *config.Config) error {
	if f.Interval != 0 {
		if f.Interval < config.MinRefreshInterval || f.Interval > config.MaxRefreshInterval {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("--interval must be between %d and %d seconds, got %d", config.MinRefreshInterval, config.MaxRefreshInterval, f.Interval),
				"Try something like --interval 30.")
		}
		cfg.RefreshInterval = f.Interval
	}

	if f.Workers != 0 {
		if f.Workers < 1 || f.Workers > config.MaxWorkersLimit {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("--workers must be between 1 and %d, got %d", config.MaxWorkersLimit, f.Workers),
				"Try something like --workers 5.")
		}
		cfg.MaxWorkers = f.Workers
	}

	if f.Timeout != 0 {
		if f.Timeout < 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("'%s' doesn't look like a valid timeout", f.Timeout),
				"Try something like 5s, 2m, or 500ms.")
		}
		cfg.ProbeTimeout = f.Timeout
		if cfg.TaskTimeout < 2*f.Timeout {
			cfg.TaskTimeout = 2 * f.Timeout
		}
	}

	return nil
}
