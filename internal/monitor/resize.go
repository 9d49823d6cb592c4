package monitor

import (
	"context"
	"sync/atomic"
)

// ResizeFlag is the only state shared between the resize watcher and the loop.
//
// Writers call Set from any goroutine (signal handler, bubbletea, key press);
// the loop reads it with Pending and clears it with Consume. A set becomes
// visible eventually; no ordering beyond that is assumed.
type ResizeFlag struct {
	pending atomic.Bool
	width   atomic.Int64
	wake    chan struct{}
}

// NewResizeFlag creates a cleared flag.
func NewResizeFlag() *ResizeFlag {
	return &ResizeFlag{wake: make(chan struct{}, 1)}
}

// Set marks a resize. A positive width is recorded as the last seen width.
func (f *ResizeFlag) Set(width int) {
	if width > 0 {
		f.width.Store(int64(width))
	}
	f.pending.Store(true)
	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Refresh requests a redraw without a size change.
func (f *ResizeFlag) Refresh() {
	f.Set(0)
}

// Pending reports whether a resize is waiting to be handled.
func (f *ResizeFlag) Pending() bool {
	return f.pending.Load()
}

// Consume clears the flag and reports whether it was set.
func (f *ResizeFlag) Consume() bool {
	return f.pending.Swap(false)
}

// Width returns the last width passed to Set, or 0.
func (f *ResizeFlag) Width() int {
	return int(f.width.Load())
}

// Wake fires after Set. It may fire for a set that was already consumed,
// so receivers re-check Pending.
func (f *ResizeFlag) Wake() <-chan struct{} {
	return f.wake
}

// Watch subscribes to terminal resize notifications and sets flag on each one
// until ctx is done. The returned func unsubscribes and is safe to call twice.
func Watch(ctx context.Context, flag *ResizeFlag, size SizeSource) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	unsubscribe := watchResize(ctx, flag, size)

	var once atomic.Bool
	return func() {
		if once.Swap(true) {
			return
		}
		cancel()
		unsubscribe()
	}
}
