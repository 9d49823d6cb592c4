package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/ui"
	"github.com/rileyhilliard/sitewatch/internal/util"
)

var (
	initPath  string
	initForce bool
	initYes   bool
)

// initCmd writes a starter config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sitewatch.yaml config",
	Long: `Create a starter config file. On a terminal you are asked which of
the built-in sites to keep, for one site of your own, and for the
refresh interval. Without a terminal, or with --yes, the defaults are
written.

Examples:
  sitewatch init
  sitewatch init --yes
  sitewatch init --path ~/.config/sitewatch/config.yaml --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(InitOptions{
			Path:           initPath,
			Overwrite:      initForce,
			NonInteractive: initYes || !ui.IsTerminal(os.Stdin),
			Out:            cmd.OutOrStdout(),
		})
	},
}

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "where to write the config (default: ./sitewatch.yaml)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "skip prompts and write the defaults")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string    // Destination; .json writes the sites.json format
	Overwrite      bool      // Overwrite existing config without asking
	NonInteractive bool      // Skip prompts, use defaults
	Out            io.Writer // Where the summary is printed
}

// initAnswers are the values collected by the init form.
type initAnswers struct {
	Keep       []string // URLs of built-in sites to keep
	CustomName string
	CustomURL  string
	Interval   string
}

const initHeader = `# sitewatch configuration
# Run 'sitewatch' for the live dashboard or 'sitewatch check' for a single pass.
# Timeouts accept Go durations (5s, 1500ms) or plain seconds.

`

// Init creates a new config file.
func Init(opts InitOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	path := opts.Path
	if path == "" {
		path = filepath.Join(".", config.LocalConfigFiles[1])
	}
	path = config.ExpandTilde(path)

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	answers := defaultAnswers()
	if !opts.NonInteractive {
		if err := askInitQuestions(&answers); err != nil {
			return err
		}
	}

	cfg, err := buildInitConfig(answers)
	if err != nil {
		return err
	}
	if err := writeInitConfig(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "%s Created %s with %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path, util.Count(len(cfg.Sites), "site", "sites"))
	fmt.Fprintln(opts.Out, "Next steps:")
	fmt.Fprintln(opts.Out, "  sitewatch               - Live dashboard")
	fmt.Fprintln(opts.Out, "  sitewatch check         - Check once and exit")
	fmt.Fprintln(opts.Out, "  sitewatch add <n> <url> - Watch another site")
	return nil
}

func defaultAnswers() initAnswers {
	a := initAnswers{Interval: strconv.Itoa(config.DefaultRefreshInterval)}
	for _, s := range config.DefaultSites() {
		a.Keep = append(a.Keep, s.URL)
	}
	return a
}

func askInitQuestions(a *initAnswers) error {
	var options []huh.Option[string]
	for _, s := range config.DefaultSites() {
		options = append(options, huh.NewOption(s.Name+"  "+s.URL, s.URL).Selected(true))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Built-in sites to watch").
				Description("Space toggles, enter confirms").
				Options(options...).
				Value(&a.Keep),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Name of your own site (optional)").
				Placeholder("Blog").
				Value(&a.CustomName),
			huh.NewInput().
				Title("URL of your own site").
				Description("Leave empty to skip").
				Placeholder("https://example.com").
				Value(&a.CustomURL).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return config.ValidateSite(config.Site{Name: "site", URL: withScheme(s)})
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Seconds between checks").
				Value(&a.Interval).
				Validate(func(s string) error {
					_, err := parseInterval(s)
					return err
				}),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --yes")
	}
	return nil
}

// buildInitConfig turns form answers into a validated config.
func buildInitConfig(a initAnswers) (*config.Config, error) {
	cfg := config.DefaultConfig()

	interval, err := parseInterval(a.Interval)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Invalid refresh interval", "")
	}
	cfg.RefreshInterval = interval

	keep := make(map[string]bool, len(a.Keep))
	for _, u := range a.Keep {
		keep[u] = true
	}
	cfg.Sites = cfg.Sites[:0]
	for _, s := range config.DefaultSites() {
		if keep[s.URL] {
			cfg.Sites = append(cfg.Sites, s)
		}
	}

	if u := strings.TrimSpace(a.CustomURL); u != "" {
		name := strings.TrimSpace(a.CustomName)
		if name == "" {
			name = hostOf(withScheme(u))
		}
		cfg.Sites = append(cfg.Sites, config.Site{Name: name, URL: withScheme(u)})
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseInterval(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a whole number of seconds")
	}
	if n < config.MinRefreshInterval || n > config.MaxRefreshInterval {
		return 0, fmt.Errorf("must be between %d and %d", config.MinRefreshInterval, config.MaxRefreshInterval)
	}
	return n, nil
}

// hostOf returns the host part of a URL, used as a default display name.
func hostOf(rawURL string) string {
	rest := rawURL[strings.Index(rawURL, "://")+3:]
	if i := strings.IndexAny(rest, "/:?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// writeInitConfig writes YAML with a header comment, or plain JSON for .json paths.
func writeInitConfig(path string, cfg *config.Config) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return config.WriteConfig(path, cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to create directory for %s", path),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, []byte(initHeader+string(data)), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}
	return nil
}
