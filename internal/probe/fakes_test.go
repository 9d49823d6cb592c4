package probe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// fakeHTTP answers Get from a table keyed by URL.
type fakeHTTP struct {
	codes  map[string]int
	errs   map[string]error
	delays map[string]time.Duration
}

func (f *fakeHTTP) Get(ctx context.Context, url string, _ time.Duration) (int, error) {
	if d := f.delays[url]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if err, ok := f.errs[url]; ok {
		return 0, err
	}
	if code, ok := f.codes[url]; ok {
		return code, nil
	}
	return 0, errors.New("connection refused")
}

// fakeCerts answers Expiry from a table keyed by host.
type fakeCerts struct {
	mu     sync.Mutex
	expiry map[string]time.Time
	errs   map[string]error
	calls  []string
}

func (f *fakeCerts) Expiry(_ context.Context, host, port string, _ time.Duration) (time.Time, error) {
	f.mu.Lock()
	f.calls = append(f.calls, host+":"+port)
	f.mu.Unlock()
	if err, ok := f.errs[host]; ok {
		return time.Time{}, err
	}
	if t, ok := f.expiry[host]; ok {
		return t, nil
	}
	return time.Time{}, errors.New("handshake failure")
}

// recordingChecker tracks concurrency and lets tests control per-endpoint latency.
type recordingChecker struct {
	delay       map[string]time.Duration
	ignoreCtx   bool
	current     atomic.Int64
	maxObserved atomic.Int64
	calls       atomic.Int64
}

func (c *recordingChecker) Check(ctx context.Context, ep Endpoint, _ time.Duration) Result {
	c.calls.Add(1)
	n := c.current.Add(1)
	defer c.current.Add(-1)
	for {
		old := c.maxObserved.Load()
		if n <= old || c.maxObserved.CompareAndSwap(old, n) {
			break
		}
	}

	d := c.delay[ep.Name]
	if d == 0 {
		d = 5 * time.Millisecond
	}
	if c.ignoreCtx {
		time.Sleep(d)
	} else {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return Result{Name: ep.Name, URL: ep.URL, HTTP: StatusError(ctx.Err())}
		}
	}
	return Result{Name: ep.Name, URL: ep.URL, Timestamp: time.Now(), HTTP: StatusCode(200)}
}
