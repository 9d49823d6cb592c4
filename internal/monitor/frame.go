package monitor

import (
	"time"

	"github.com/rileyhilliard/sitewatch/internal/layout"
	"github.com/rileyhilliard/sitewatch/internal/probe"
)

// Header is the information shown above the table.
type Header struct {
	Cycle    int
	Time     time.Time
	Cols     int
	Rows     int
	Interval time.Duration
	Summary  probe.Summary
}

// Frame is everything a Renderer needs to draw one screen.
type Frame struct {
	Results  []probe.Result
	Geometry layout.Geometry
	Header   Header
}

// NewFrame builds a frame and fills in the header summary from results.
func NewFrame(results []probe.Result, g layout.Geometry, h Header) Frame {
	h.Summary = probe.Summarize(results)
	return Frame{Results: results, Geometry: g, Header: h}
}

// Resize returns a copy of f laid out for a new terminal size.
func (f Frame) Resize(cols, rows int) Frame {
	f.Geometry = layout.Compute(cols)
	f.Header.Cols = cols
	f.Header.Rows = rows
	return f
}
