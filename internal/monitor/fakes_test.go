package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/sitewatch/internal/probe"
)

// fakeProber returns one healthy result per endpoint, optionally after a delay.
type fakeProber struct {
	delay time.Duration
	block bool // wait for ctx instead of returning
	runs  atomic.Int64
}

func (p *fakeProber) Run(ctx context.Context, endpoints []probe.Endpoint) []probe.Result {
	p.runs.Add(1)
	if p.block {
		<-ctx.Done()
		return nil
	}
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
		}
	}
	out := make([]probe.Result, len(endpoints))
	for i, ep := range endpoints {
		out[i] = probe.Result{
			Name:            ep.Name,
			URL:             ep.URL,
			Timestamp:       time.Now(),
			HTTP:            probe.StatusCode(200),
			ResponseTime:    120 * time.Millisecond,
			HasResponseTime: true,
		}
	}
	return out
}

// recordingRenderer keeps every frame and counts clears.
type recordingRenderer struct {
	mu     sync.Mutex
	frames []Frame
	clears int
	fail   bool
}

func (r *recordingRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *recordingRenderer) Render(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
	if r.fail {
		return errors.New("screen gone")
	}
	return nil
}

func (r *recordingRenderer) counts() (frames, clears int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames), r.clears
}

func (r *recordingRenderer) last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Frame{}
	}
	return r.frames[len(r.frames)-1]
}

// mutableSize is a SizeSource the test can change while the loop runs.
type mutableSize struct {
	cols atomic.Int64
	rows atomic.Int64
}

func newMutableSize(cols, rows int) *mutableSize {
	s := &mutableSize{}
	s.set(cols, rows)
	return s
}

func (s *mutableSize) set(cols, rows int) {
	s.cols.Store(int64(cols))
	s.rows.Store(int64(rows))
}

func (s *mutableSize) Size() (int, int) {
	return int(s.cols.Load()), int(s.rows.Load())
}

// stateLog records loop transitions.
type stateLog struct {
	mu     sync.Mutex
	states []State
}

func (l *stateLog) record(s State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *stateLog) snapshot() []State {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]State, len(l.states))
	copy(out, l.states)
	return out
}

var testEndpoints = []probe.Endpoint{
	{Name: "GitHub", URL: "https://github.com"},
	{Name: "Example", URL: "http://example.com"},
}
