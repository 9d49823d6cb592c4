package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sitewatch/internal/errors"
)

// Global flags
var (
	cfgFile     string
	plainFlag   bool
	verboseFlag bool
	logFileFlag string

	settingsFlags SettingsFlags
)

// rootCmd runs the dashboard when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sitewatch",
	Short: "Live terminal dashboard for website and certificate health",
	Long: `sitewatch checks a list of websites on a fixed interval and shows
whether each one answers over HTTP, how fast, and how long its TLS
certificate has left. The table adapts to the terminal width and is
redrawn immediately when the terminal is resized.

Sites come from sites.json or sitewatch.yaml in the current directory,
or ~/.config/sitewatch/config.yaml. Without a config file a built-in
list of well-known sites is watched.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Check again now
  ?           Show help

Examples:
  sitewatch
  sitewatch --interval 10
  sitewatch --config ~/watch.yaml --plain`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sites.json, ./sitewatch.yaml, ~/.config/sitewatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "log debug output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "write logs to this file")
	AddSettingsFlags(rootCmd, &settingsFlags)

	rootCmd.Flags().BoolVar(&plainFlag, "plain", false, "redraw with plain text instead of the interactive dashboard")
}

// Execute runs the root command and exits with the right status code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(err))
	}
}

// reportError prints err for the user and returns the exit code to use.
func reportError(err error) int {
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}

	var swErr *errors.Error
	if errors.As(err, &swErr) {
		fmt.Fprint(os.Stderr, swErr.Error())
		return 1
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if isUnknownCommandError(err) {
		fmt.Fprintln(os.Stderr, "Run 'sitewatch --help' for usage.")
	}
	return 1
}

// isUnknownCommandError checks if the error is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}
