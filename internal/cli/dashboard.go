package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sitewatch/internal/config"
	"github.com/rileyhilliard/sitewatch/internal/logger"
	"github.com/rileyhilliard/sitewatch/internal/monitor"
	"github.com/rileyhilliard/sitewatch/internal/probe"
	"github.com/rileyhilliard/sitewatch/internal/ui"
)

// dashboardFPS caps how often the interactive dashboard repaints.
const dashboardFPS = 30

const plainFooter = "Ctrl+C to stop"

// dashboardOptions carries everything runDashboard needs, so tests can swap the terminal.
type dashboardOptions struct {
	Config *config.Config
	Out    io.Writer
	Size   monitor.SizeSource
	// Plain selects the line renderer instead of the Bubble Tea program.
	Plain bool
	// Clear wipes the screen between plain frames; off when Out is not a terminal.
	Clear  bool
	Logger logger.Logger
}

// dashboardCommand is the implementation of the root command.
func dashboardCommand(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := ui.IsTerminal(os.Stdout)

	// The dashboard owns a terminal; stray log lines would tear the frame.
	var fallback io.Writer = os.Stderr
	if interactive {
		fallback = io.Discard
	}
	session, err := startLogging(logFileFlag, fallback, verboseFlag)
	if err != nil {
		return err
	}
	defer session.Close()

	l := logger.NewEnvLogger("[sitewatch]")
	cfg, path, err := loadConfig(l)
	if err != nil {
		return err
	}
	if path == "" {
		path = "built-in"
	}
	l.Info("run %s: watching %d sites every %ds (config: %s)", session.RunID, len(cfg.Sites), cfg.RefreshInterval, path)

	err = runDashboard(ctx, dashboardOptions{
		Config: cfg,
		Out:    os.Stdout,
		Size:   monitor.NewTerminalSize(os.Stdout),
		Plain:  plainFlag || !interactive || !ui.IsTerminal(os.Stdin),
		Clear:  interactive,
		Logger: l,
	})
	fmt.Fprintln(os.Stdout, "Stopped.")
	return err
}

// runDashboard runs the refresh loop until ctx is cancelled or the user quits.
func runDashboard(ctx context.Context, opts dashboardOptions) error {
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	pool, closePool := newPool(opts.Config, opts.Logger)
	defer closePool()

	loopCfg := monitor.LoopConfig{
		Endpoints: endpoints(opts.Config.Sites),
		Interval:  opts.Config.Interval(),
		Prober:    pool,
		Size:      opts.Size,
		Flag:      monitor.NewResizeFlag(),
		Logger:    opts.Logger,
	}

	if opts.Plain {
		return runPlain(ctx, loopCfg, opts)
	}
	return runInteractive(ctx, loopCfg, opts)
}

func runPlain(ctx context.Context, loopCfg monitor.LoopConfig, opts dashboardOptions) error {
	renderOpts := []monitor.PlainOption{monitor.WithFooter(plainFooter)}
	if !opts.Clear {
		renderOpts = append(renderOpts, monitor.WithoutClear())
	}
	loopCfg.Renderer = monitor.NewPlainRenderer(opts.Out, renderOpts...)

	stopWatch := monitor.Watch(ctx, loopCfg.Flag, loopCfg.Size)
	defer stopWatch()

	return monitor.NewLoop(loopCfg).Run(ctx)
}

// runInteractive runs the loop in the background and the Bubble Tea program in
// the foreground. Whichever ends first takes the other down with it.
func runInteractive(ctx context.Context, loopCfg monitor.LoopConfig, opts dashboardOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := monitor.NewModel(loopCfg.Flag, cancel, len(loopCfg.Endpoints))
	renderer := monitor.NewTeaRenderer(model,
		tea.WithAltScreen(),
		tea.WithFPS(dashboardFPS),
		tea.WithOutput(opts.Out),
	)
	loopCfg.Renderer = renderer

	done := make(chan error, 1)
	go func() {
		err := monitor.NewLoop(loopCfg).Run(ctx)
		renderer.Quit()
		done <- err
	}()

	runErr := renderer.Run()
	cancel()
	loopErr := <-done

	if runErr != nil {
		return runErr
	}
	return loopErr
}

// newPool builds the probe stack for cfg. The returned func releases it.
func newPool(cfg *config.Config, l logger.Logger) (*probe.Pool, func()) {
	if l == nil {
		l = logger.Noop()
	}
	client := probe.NewHTTPClient()
	checker := probe.NewChecker(client, probe.NewTLSInspector(), probe.WithLogger(l))
	pool := probe.NewPool(checker, probe.PoolConfig{
		MaxWorkers:   cfg.MaxWorkers,
		TaskTimeout:  cfg.TaskTimeout,
		ProbeTimeout: cfg.ProbeTimeout,
		Logger:       l,
	})
	return pool, func() {
		pool.Close()
		client.Close()
	}
}

func endpoints(sites []config.Site) []probe.Endpoint {
	eps := make([]probe.Endpoint, len(sites))
	for i, s := range sites {
		eps[i] = probe.Endpoint{Name: s.Name, URL: s.URL}
	}
	return eps
}
