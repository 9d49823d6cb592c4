package probe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rileyhilliard/sitewatch/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func endpoints(n int) []Endpoint {
	eps := make([]Endpoint, n)
	for i := range eps {
		// reverse order so sorting is observable
		eps[i] = Endpoint{Name: fmt.Sprintf("site-%02d", n-i), URL: fmt.Sprintf("https://site-%02d.example", n-i)}
	}
	return eps
}

func TestNewPool_Defaults(t *testing.T) {
	tests := []struct {
		name        string
		cfg         PoolConfig
		wantWorkers int
		wantTask    time.Duration
		wantProbe   time.Duration
	}{
		{
			name:        "zero config uses defaults",
			cfg:         PoolConfig{},
			wantWorkers: DefaultMaxWorkers,
			wantTask:    DefaultTaskTimeout,
			wantProbe:   DefaultProbeTimeout,
		},
		{
			name:        "custom values kept",
			cfg:         PoolConfig{MaxWorkers: 3, TaskTimeout: 2 * time.Second, ProbeTimeout: time.Second},
			wantWorkers: 3,
			wantTask:    2 * time.Second,
			wantProbe:   time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(&recordingChecker{}, tt.cfg)
			defer pool.Close()

			assert.Equal(t, tt.wantWorkers, pool.MaxWorkers())
			assert.Equal(t, tt.wantTask, pool.taskTimeout)
			assert.Equal(t, tt.wantProbe, pool.probeTimeout)
		})
	}
}

func TestPoolRun_OneResultPerEndpointSorted(t *testing.T) {
	checker := &recordingChecker{}
	pool := NewPool(checker, PoolConfig{MaxWorkers: 3, TaskTimeout: time.Second})
	defer pool.Close()

	eps := endpoints(12)
	results := pool.Run(context.Background(), eps)

	require.Len(t, results, len(eps))
	names := make(map[string]bool)
	for _, ep := range eps {
		names[ep.Name] = true
	}
	for i, r := range results {
		assert.True(t, names[r.Name], "unexpected result %q", r.Name)
		if i > 0 {
			assert.LessOrEqual(t, results[i-1].Name, r.Name)
		}
	}
}

func TestPoolRun_BoundedConcurrency(t *testing.T) {
	checker := &recordingChecker{delay: map[string]time.Duration{}}
	for _, ep := range endpoints(10) {
		checker.delay[ep.Name] = 20 * time.Millisecond
	}
	pool := NewPool(checker, PoolConfig{MaxWorkers: 2, TaskTimeout: time.Second})
	defer pool.Close()

	pool.Run(context.Background(), endpoints(10))

	assert.Equal(t, int64(10), checker.calls.Load())
	assert.LessOrEqual(t, checker.maxObserved.Load(), int64(2))
	assert.Equal(t, int64(2), checker.maxObserved.Load())
}

func TestPoolRun_SlowCheckBecomesPlaceholder(t *testing.T) {
	checker := &recordingChecker{delay: map[string]time.Duration{"slow": time.Minute}}
	log := logger.NewBufferLogger()
	pool := NewPool(checker, PoolConfig{MaxWorkers: 4, TaskTimeout: 50 * time.Millisecond, Logger: log})
	defer pool.Close()

	start := time.Now()
	results := pool.Run(context.Background(), []Endpoint{
		{Name: "slow", URL: "https://slow.example"},
		{Name: "fast", URL: "http://fast.example"},
	})

	assert.Less(t, time.Since(start), 5*time.Second, "slow check must not block the cycle")
	require.Len(t, results, 2)

	assert.Equal(t, "fast", results[0].Name)
	assert.Equal(t, StatusCode(200), results[0].HTTP)

	slow := results[1]
	assert.Equal(t, "slow", slow.Name)
	assert.True(t, slow.TimedOut)
	assert.Equal(t, HTTPUnknown, slow.HTTP.Kind)
	assert.Equal(t, CertFailed, slow.Cert.Kind)
	assert.True(t, log.HasLevel("warn"))
	assert.Equal(t, int64(1), pool.Stats().TimedOut)
}

func TestPoolRun_AbandonedChecksDoNotAccumulate(t *testing.T) {
	// A checker that ignores cancellation still only ever holds MaxWorkers slots.
	checker := &recordingChecker{ignoreCtx: true, delay: map[string]time.Duration{}}
	eps := endpoints(4)
	for _, ep := range eps {
		checker.delay[ep.Name] = 100 * time.Millisecond
	}
	pool := NewPool(checker, PoolConfig{MaxWorkers: 2, TaskTimeout: 10 * time.Millisecond})
	defer pool.Close()

	for i := 0; i < 3; i++ {
		results := pool.Run(context.Background(), eps)
		assert.Len(t, results, len(eps))
		assert.LessOrEqual(t, pool.Stats().InFlight, int64(2))
	}
	assert.LessOrEqual(t, checker.maxObserved.Load(), int64(2))
}

func TestPoolRun_CancelledContext(t *testing.T) {
	checker := &recordingChecker{delay: map[string]time.Duration{"a": time.Minute, "b": time.Minute}}
	pool := NewPool(checker, PoolConfig{MaxWorkers: 1, TaskTimeout: time.Minute})
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	results := pool.Run(ctx, []Endpoint{{Name: "a", URL: "http://a"}, {Name: "b", URL: "http://b"}})

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Len(t, results, 2)
}

func TestPoolRun_AfterClose(t *testing.T) {
	pool := NewPool(&recordingChecker{}, PoolConfig{})
	pool.Close()
	pool.Close() // idempotent

	results := pool.Run(context.Background(), endpoints(3))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, HTTPUnknown, r.HTTP.Kind)
	}
}

func TestPoolRun_Empty(t *testing.T) {
	pool := NewPool(&recordingChecker{}, PoolConfig{})
	defer pool.Close()

	assert.Empty(t, pool.Run(context.Background(), nil))
	assert.Equal(t, int64(1), pool.Stats().Cycles)
}

func TestPoolClose_WaitsForInFlight(t *testing.T) {
	checker := &recordingChecker{delay: map[string]time.Duration{"a": time.Minute}}
	pool := NewPool(checker, PoolConfig{MaxWorkers: 1, TaskTimeout: time.Minute})

	done := make(chan struct{})
	go func() {
		pool.Run(context.Background(), []Endpoint{{Name: "a", URL: "http://a"}})
		close(done)
	}()

	require.Eventually(t, func() bool { return pool.Stats().InFlight == 1 }, time.Second, 5*time.Millisecond)
	pool.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, int64(0), pool.Stats().InFlight)
}
