package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/errors"
	"github.com/rileyhilliard/sitewatch/internal/layout"
	"github.com/rileyhilliard/sitewatch/internal/logger"
	"github.com/rileyhilliard/sitewatch/internal/monitor"
	"github.com/rileyhilliard/sitewatch/internal/probe"
	"github.com/rileyhilliard/sitewatch/internal/ui"
	"github.com/rileyhilliard/sitewatch/internal/util"
)

var (
	checkJSON  bool
	checkWidth int
)

// checkCmd probes every site once and prints the table.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every site once and print the results",
	Long: `Run a single check of every configured site and print the results
table, then exit. The exit code is 1 if any site is down or has an
expired certificate, which makes check usable from cron or CI.

Examples:
  sitewatch check
  sitewatch check --json | jq '.data.sites[] | select(.healthy | not)'
  sitewatch check --width 80 > status.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "print results as JSON")
	checkCmd.Flags().IntVar(&checkWidth, "width", 0, "table width in columns (default: terminal width)")
	rootCmd.AddCommand(checkCmd)
}

// checkOptions configures runCheck.
type checkOptions struct {
	Config *config.Config
	Out    io.Writer
	// Progress receives the spinner line; nil disables it.
	Progress io.Writer
	Width    int
	Rows     int
	JSON     bool
	Logger   logger.Logger
}

func checkCommand(ctx context.Context, out, errOut io.Writer) error {
	session, err := startLogging(logFileFlag, errOut, verboseFlag)
	if err != nil {
		return err
	}
	defer session.Close()

	l := logger.NewEnvLogger("[check]")
	cfg, _, err := loadConfig(l)
	if err != nil {
		if checkJSON {
			_ = WriteJSONFromError(out, err)
			return errors.NewExitError(1)
		}
		return err
	}

	cols, rows := monitor.NewTerminalSize(os.Stdout).Size()
	if checkWidth > 0 {
		cols = checkWidth
	}

	opts := checkOptions{
		Config: cfg,
		Out:    out,
		Width:  cols,
		Rows:   rows,
		JSON:   checkJSON,
		Logger: l,
	}
	if !checkJSON {
		opts.Progress = errOut
	}
	return runCheck(ctx, opts)
}

// runCheck runs one probe cycle and prints it. It returns an ExitError(1)
// when any site is unhealthy.
func runCheck(ctx context.Context, opts checkOptions) error {
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	pool, closePool := newPool(opts.Config, opts.Logger)
	defer closePool()

	var spinner *ui.Spinner
	if opts.Progress != nil {
		spinner = ui.NewSpinner("Checking "+util.Count(len(opts.Config.Sites), "site", "sites"), opts.Progress)
		spinner.Start()
	}

	start := time.Now()
	results := pool.Run(ctx, endpoints(opts.Config.Sites))

	unhealthy := 0
	for _, r := range results {
		if !r.Healthy() {
			unhealthy++
		}
	}

	if spinner != nil {
		if unhealthy > 0 {
			spinner.Fail(fmt.Sprintf("%d of %d unhealthy", unhealthy, len(results)))
		} else {
			spinner.Success()
		}
	}

	if opts.JSON {
		if err := WriteJSONSuccess(opts.Out, NewCheckReport(results, start)); err != nil {
			return errors.WrapWithCode(err, errors.ErrRender, "Failed to write results", "")
		}
	} else if err := printTable(opts, results, start); err != nil {
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if unhealthy > 0 {
		return errors.NewExitError(1)
	}
	return nil
}

func printTable(opts checkOptions, results []probe.Result, at time.Time) error {
	frame := monitor.NewFrame(results, layout.Compute(opts.Width), monitor.Header{
		Cycle:    1,
		Time:     at,
		Cols:     opts.Width,
		Rows:     opts.Rows,
		Interval: opts.Config.Interval(),
	})
	if _, err := fmt.Fprintln(opts.Out, monitor.View(frame, monitor.ViewOptions{})); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Failed to write results", "")
	}
	return nil
}
