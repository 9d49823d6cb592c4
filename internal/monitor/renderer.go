package monitor

import (
	"fmt"
	"io"
	"sync"

	"github.com/muesli/termenv"
)

// PlainRenderer writes each frame to a stream, clearing the screen between frames
// when the stream is a terminal. Used for --plain and for non-interactive output.
type PlainRenderer struct {
	mu      sync.Mutex
	out     *termenv.Output
	w       io.Writer
	clear   bool
	footer  string
	written int
}

// PlainOption configures a PlainRenderer.
type PlainOption func(*PlainRenderer)

// WithoutClear disables screen clearing; frames are appended to the stream.
func WithoutClear() PlainOption {
	return func(r *PlainRenderer) { r.clear = false }
}

// WithFooter sets a hint line printed under every frame.
func WithFooter(footer string) PlainOption {
	return func(r *PlainRenderer) { r.footer = footer }
}

// NewPlainRenderer creates a PlainRenderer writing to w.
func NewPlainRenderer(w io.Writer, opts ...PlainOption) *PlainRenderer {
	r := &PlainRenderer{
		out:   termenv.NewOutput(w),
		w:     w,
		clear: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clear wipes the screen and homes the cursor.
func (r *PlainRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.clear {
		return
	}
	r.out.ClearScreen()
	r.out.MoveCursor(1, 1)
}

// Render draws a frame.
func (r *PlainRenderer) Render(f Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clear && r.written > 0 {
		r.out.MoveCursor(1, 1)
		r.out.ClearScreen()
	}
	if _, err := fmt.Fprintln(r.w, View(f, ViewOptions{Footer: r.footer})); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	r.written++
	return nil
}

// Frames returns how many frames have been written.
func (r *PlainRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}
