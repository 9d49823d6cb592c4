package probe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/sitewatch/internal/logger"
)

// Pool defaults, matching the dashboard's out-of-the-box config.
const (
	DefaultMaxWorkers   = 5
	DefaultTaskTimeout  = 10 * time.Second
	DefaultProbeTimeout = 5 * time.Second
)

// EndpointChecker is what the pool fans out over. *Checker implements it.
type EndpointChecker interface {
	Check(ctx context.Context, ep Endpoint, timeout time.Duration) Result
}

// PoolConfig holds the pool's concurrency and timeout settings.
// Zero values fall back to the package defaults.
type PoolConfig struct {
	MaxWorkers   int
	TaskTimeout  time.Duration
	ProbeTimeout time.Duration
	Logger       logger.Logger
}

// Stats are cumulative counters over the pool's lifetime.
type Stats struct {
	Cycles   int64
	Checks   int64
	TimedOut int64
	InFlight int64
}

// Pool runs an EndpointChecker over a set of endpoints with bounded concurrency.
//
// A Pool is created once and reused for every cycle. Its worker slots are
// shared across cycles, so a check abandoned at its task timeout still holds a
// slot until its (cancelled) context makes it return. That bounds the number
// of outstanding checks to MaxWorkers at all times.
type Pool struct {
	checker      EndpointChecker
	slots        chan struct{}
	taskTimeout  time.Duration
	probeTimeout time.Duration
	log          logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup

	cycles   atomic.Int64
	checks   atomic.Int64
	timedOut atomic.Int64
	inFlight atomic.Int64
}

// NewPool creates a Pool around checker.
func NewPool(checker EndpointChecker, cfg PoolConfig) *Pool {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultMaxWorkers
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = DefaultTaskTimeout
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Noop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		checker:      checker,
		slots:        make(chan struct{}, cfg.MaxWorkers),
		taskTimeout:  cfg.TaskTimeout,
		probeTimeout: cfg.ProbeTimeout,
		log:          cfg.Logger,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// MaxWorkers returns the concurrency limit.
func (p *Pool) MaxWorkers() int {
	return cap(p.slots)
}

// Run checks every endpoint and returns one Result per endpoint, sorted by name.
//
// Results are gathered in completion order. A check that does not finish
// within the task timeout is cancelled and reported as a TimedOut placeholder
// rather than holding up the cycle. Run returns once every endpoint has
// reported, so nothing from this cycle leaks into the next one's fan-in.
func (p *Pool) Run(ctx context.Context, endpoints []Endpoint) []Result {
	p.cycles.Add(1)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.ctx, cancel)
	defer stop()

	results := make(chan Result, len(endpoints))
	for _, ep := range endpoints {
		go p.runTask(runCtx, ep, results)
	}

	out := make([]Result, 0, len(endpoints))
	for range endpoints {
		out = append(out, <-results)
	}

	SortByName(out)
	p.log.Debug("cycle %d: %d results, %d in flight", p.cycles.Load(), len(out), p.inFlight.Load())
	return out
}

// runTask waits for a worker slot, runs one check, and always sends exactly one Result.
func (p *Pool) runTask(ctx context.Context, ep Endpoint, results chan<- Result) {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		results <- placeholder(ep, false)
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.slots
		results <- placeholder(ep, false)
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	taskCtx, cancel := context.WithTimeout(ctx, p.taskTimeout)
	defer cancel()

	done := make(chan Result, 1)
	p.inFlight.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() { <-p.slots }()
		defer p.inFlight.Add(-1)
		done <- p.checker.Check(taskCtx, ep, p.probeTimeout)
	}()

	p.checks.Add(1)
	select {
	case r := <-done:
		// a check that only returned because its deadline fired is still a timeout
		if errors.Is(taskCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			results <- p.timeout(ep)
			return
		}
		results <- r
	case <-taskCtx.Done():
		if ctx.Err() != nil {
			results <- placeholder(ep, false)
			return
		}
		results <- p.timeout(ep)
	}
}

func (p *Pool) timeout(ep Endpoint) Result {
	p.timedOut.Add(1)
	p.log.Warn("check for %s abandoned after %s", ep.Name, p.taskTimeout)
	return placeholder(ep, true)
}

// placeholder stands in for a check that produced no result.
func placeholder(ep Endpoint, timedOut bool) Result {
	r := Result{
		Name:      ep.Name,
		URL:       ep.URL,
		Timestamp: time.Now(),
		HTTP:      HTTPStatus{Kind: HTTPUnknown},
		Cert:      CertStatus{Kind: CertUnchecked},
		TimedOut:  timedOut,
	}
	if IsTLS(ep.URL) {
		r.Cert = CertStatus{Kind: CertFailed}
	}
	return r
}

// Stats returns the pool's cumulative counters.
func (p *Pool) Stats() Stats {
	return Stats{
		Cycles:   p.cycles.Load(),
		Checks:   p.checks.Load(),
		TimedOut: p.timedOut.Load(),
		InFlight: p.inFlight.Load(),
	}
}

// Close cancels in-flight checks and waits for them, at most one task timeout.
// Safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(p.taskTimeout):
		p.log.Warn("%d checks still running at shutdown, abandoning", p.inFlight.Load())
	}
}
