package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/sitewatch/internal/layout"
	"github.com/rileyhilliard/sitewatch/internal/logger"
	"github.com/rileyhilliard/sitewatch/internal/probe"
)

// Loop defaults.
const (
	DefaultInterval = 30 * time.Second
	DefaultStep     = time.Second
)

// State is a DashboardLoop state.
type State int32

const (
	StateIdle State = iota
	StateProbing
	StateRendering
	StateWaiting
	StateCancelled
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProbing:
		return "probing"
	case StateRendering:
		return "rendering"
	case StateWaiting:
		return "waiting"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Prober runs one probe cycle. *probe.Pool implements it.
type Prober interface {
	Run(ctx context.Context, endpoints []probe.Endpoint) []probe.Result
}

// Renderer draws frames. Implementations must be safe to call from the loop goroutine.
type Renderer interface {
	Clear()
	Render(Frame) error
}

// StateObserver is implemented by renderers that show loop progress.
type StateObserver interface {
	OnState(State)
}

// LoopConfig wires a Loop to its collaborators.
type LoopConfig struct {
	Endpoints []probe.Endpoint
	Interval  time.Duration // time between cycles
	Step      time.Duration // granularity of the wait between cycles

	Prober   Prober
	Renderer Renderer
	Size     SizeSource
	Flag     *ResizeFlag
	Logger   logger.Logger

	// OnState is called on every state transition, from the loop goroutine.
	OnState func(State)
	// Now overrides the clock used for header timestamps.
	Now func() time.Time
}

// Loop is the dashboard's scheduler: probe, lay out, render, wait, repeat.
type Loop struct {
	cfg   LoopConfig
	state atomic.Int32
	cycle atomic.Int64

	lastCols int
}

// NewLoop creates a Loop. Zero durations and nil collaborators get defaults.
func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.Step > cfg.Interval {
		cfg.Step = cfg.Interval
	}
	if cfg.Size == nil {
		cfg.Size = FixedSize{Cols: FallbackCols, Rows: FallbackRows}
	}
	if cfg.Flag == nil {
		cfg.Flag = NewResizeFlag()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Noop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Loop{cfg: cfg}
}

// State returns the current state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Cycles returns the number of cycles started.
func (l *Loop) Cycles() int {
	return int(l.cycle.Load())
}

// Run drives cycles until ctx is cancelled. It returns nil on cancellation;
// probe and render failures are logged and never stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.setState(StateIdle)
	defer l.setState(StateCancelled)

	for {
		if ctx.Err() != nil {
			return nil
		}
		l.runCycle(ctx)
		if ctx.Err() != nil {
			return nil
		}

		l.setState(StateWaiting)
		l.wait(ctx)
	}
}

func (l *Loop) runCycle(ctx context.Context) {
	cycle := int(l.cycle.Add(1))

	l.setState(StateProbing)
	start := time.Now()
	results := l.cfg.Prober.Run(ctx, l.cfg.Endpoints)
	l.cfg.Logger.Debug("cycle %d: probed %d endpoints in %s", cycle, len(results), time.Since(start).Round(time.Millisecond))
	if ctx.Err() != nil {
		return
	}

	l.setState(StateRendering)

	// size is read after probing so the frame matches the terminal it lands on
	cols, rows := l.cfg.Size.Size()
	resized := l.cfg.Flag.Consume()
	if resized || cols != l.lastCols {
		l.cfg.Logger.Debug("cycle %d: redraw at %dx%d (was %d cols)", cycle, cols, rows, l.lastCols)
		l.cfg.Renderer.Clear()
		l.lastCols = cols
	}

	frame := NewFrame(results, layout.Compute(cols), Header{
		Cycle:    cycle,
		Time:     l.cfg.Now(),
		Cols:     cols,
		Rows:     rows,
		Interval: l.cfg.Interval,
	})
	if err := l.cfg.Renderer.Render(frame); err != nil {
		l.cfg.Logger.Warn("cycle %d: render failed: %v", cycle, err)
	}
}

// wait sleeps up to Interval in Step increments. A resize or cancellation ends it early.
func (l *Loop) wait(ctx context.Context) {
	ticker := time.NewTicker(l.cfg.Step)
	defer ticker.Stop()

	deadline := time.Now().Add(l.cfg.Interval)
	for {
		if l.cfg.Flag.Pending() {
			l.cfg.Logger.Debug("resize pending, ending wait early")
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-l.cfg.Flag.Wake():
		case <-ticker.C:
			if !time.Now().Before(deadline) {
				return
			}
		}
	}
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
	if l.cfg.OnState != nil {
		l.cfg.OnState(s)
	}
	if obs, ok := l.cfg.Renderer.(StateObserver); ok {
		obs.OnState(s)
	}
}
