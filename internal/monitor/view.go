package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/rileyhilliard/sitewatch/internal/layout"
	"github.com/rileyhilliard/sitewatch/internal/probe"
)

// ViewOptions adds renderer-specific decoration to a frame.
type ViewOptions struct {
	Indicator string // shown before the title, e.g. a spinner while probing
	Footer    string // key hints, omitted when empty
}

// View renders f as a multi-line string. No line is wider than the frame's terminal width.
func View(f Frame, opts ViewOptions) string {
	width := f.Header.Cols
	var sections []string

	sections = append(sections, renderHeader(f.Header, opts.Indicator, width))

	if f.Geometry.Set == layout.SetNone {
		msg := fmt.Sprintf("too small: %d<%d cols", f.Header.Cols, layout.MinWidth)
		sections = append(sections, NoticeStyle.Render(ansi.Truncate(msg, width, "…")))
	} else {
		sections = append(sections, renderTable(f.Geometry, f.Results))
	}

	switch layout.StatsFor(width) {
	case layout.StatsPanel:
		sections = append(sections, renderStatsPanel(f.Header, width))
	case layout.StatsLine:
		sections = append(sections, renderStatsLine(f.Header, width))
	}

	if opts.Footer != "" {
		sections = append(sections, FooterStyle.Render(ansi.Truncate(opts.Footer, width, "…")))
	}

	return strings.Join(sections, "\n")
}

// renderHeader renders the one-line title bar.
func renderHeader(h Header, indicator string, width int) string {
	title := "sitewatch"
	var info string
	if width >= layout.BreakpointS {
		info = fmt.Sprintf(" [%d×%d] | C:%d | %s", h.Cols, h.Rows, h.Cycle, h.Time.Format("15:04:05"))
	} else {
		info = fmt.Sprintf(" C:%d %s", h.Cycle, h.Time.Format("15:04"))
	}
	if indicator != "" {
		title = indicator + " " + title
	}

	line := ansi.Truncate(title+info, width, "…")
	if lipgloss.Width(line) <= lipgloss.Width(title) {
		return HeaderStyle.Render(TitleStyle.Render(line))
	}
	return HeaderStyle.Render(TitleStyle.Render(title) + HeaderInfoStyle.Render(line[len(title):]))
}

// renderTable draws the bordered results table using the geometry's column widths.
func renderTable(g layout.Geometry, results []probe.Result) string {
	lines := make([]string, 0, len(results)+4)
	lines = append(lines, rule(g, "┌", "┬", "┐"))

	titles := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		titles[i] = cell(c.Title, c.Width, ColumnTitleStyle)
	}
	lines = append(lines, row(titles))
	lines = append(lines, rule(g, "├", "┼", "┤"))

	if len(results) == 0 {
		empty := make([]string, len(g.Columns))
		for i, c := range g.Columns {
			empty[i] = cell("", c.Width, MutedStyle)
		}
		empty[0] = cell("no sites", g.Columns[0].Width, MutedStyle)
		lines = append(lines, row(empty))
	}

	full := g.Set == layout.SetFull
	for _, r := range results {
		cells := make([]string, len(g.Columns))
		for i, c := range g.Columns {
			text, style := cellContent(c.ID, r, full)
			cells[i] = cell(text, c.Width, style)
		}
		lines = append(lines, row(cells))
	}

	lines = append(lines, rule(g, "└", "┴", "┘"))
	return strings.Join(lines, "\n")
}

func rule(g layout.Geometry, left, mid, right string) string {
	parts := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		parts[i] = strings.Repeat("─", c.Width)
	}
	return BorderStyle.Render(left + strings.Join(parts, mid) + right)
}

func row(cells []string) string {
	sep := BorderStyle.Render("│")
	return sep + strings.Join(cells, sep) + sep
}

// cell fits text into exactly width cells: one leading space, truncated, right padded.
func cell(text string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	lead := ""
	avail := width
	if width >= 2 {
		lead = " "
		avail--
	}
	text = ansi.Truncate(text, avail, "…")
	return lead + padRight(style.Render(text), avail)
}

// padRight pads s with spaces to width visible cells.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// cellContent picks the text and style for one column of a result row.
// Reduced column sets use single glyphs instead of words.
func cellContent(id layout.ColumnID, r probe.Result, full bool) (string, lipgloss.Style) {
	switch id {
	case layout.ColSite:
		return r.Name, SiteStyle

	case layout.ColStatus:
		style := HTTPStyle(r.HTTP)
		if !full {
			return HTTPGlyph(r.HTTP), style
		}
		label := r.HTTP.String()
		if r.TimedOut {
			label = "TIMEOUT"
		}
		return HTTPGlyph(r.HTTP) + " " + label, style

	case layout.ColCert:
		style := CertStyle(r.Cert)
		if r.Cert.Kind == probe.CertFailed {
			style = CriticalStyle
		}
		if !full {
			if r.Cert.Kind == probe.CertFailed {
				return GlyphFail, style
			}
			return CertGlyph(r.Cert), style
		}
		return certLabel(r.Cert), style

	case layout.ColExpiry:
		if r.Cert.Kind != probe.CertValid {
			return "N/A", MutedStyle
		}
		return r.Cert.ExpiryDisplay, lipgloss.NewStyle()

	case layout.ColTime:
		if !r.HasResponseTime {
			return "N/A", MutedStyle
		}
		if full {
			return fmt.Sprintf("%.2fs", r.ResponseTime.Seconds()), ResponseStyle(r.ResponseTime)
		}
		return fmt.Sprintf("%.1fs", r.ResponseTime.Seconds()), ResponseStyle(r.ResponseTime)

	case layout.ColChecked:
		if r.Timestamp.IsZero() {
			return "--:--", MutedStyle
		}
		return r.Timestamp.Format("15:04"), MutedStyle
	}
	return "", lipgloss.NewStyle()
}

func certLabel(c probe.CertStatus) string {
	switch c.Kind {
	case probe.CertValid:
		if c.Expired() {
			return GlyphFail + " EXP"
		}
		return fmt.Sprintf("%s %dd", CertGlyph(c), c.DaysRemaining)
	case probe.CertFailed:
		return GlyphFail + " failed"
	default:
		return GlyphNone
	}
}

func renderStatsPanel(h Header, width int) string {
	s := h.Summary
	lines := []string{
		TitleStyle.Render("Stats"),
		fmt.Sprintf("Sites: %d   HTTP ok: %s   Cert ok: %s   Expired: %s   Errors: %s",
			s.Total,
			HealthyStyle.Render(fmt.Sprint(s.HTTPOK)),
			HealthyStyle.Render(fmt.Sprint(s.CertOK)),
			countStyle(s.Expired).Render(fmt.Sprint(s.Expired)),
			countStyle(s.Errors).Render(fmt.Sprint(s.Errors))),
		MutedStyle.Render(fmt.Sprintf("Width: %d cols | Height: %d lines | Refresh: %s | Timeouts: %d",
			h.Cols, h.Rows, h.Interval, s.TimedOut)),
	}
	// border takes two columns
	return StatsBoxStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderStatsLine(h Header, width int) string {
	s := h.Summary
	line := fmt.Sprintf("Sites: %d | %s %d | certs %d | Width: %d | Refresh: %s",
		s.Total, GlyphOK, s.HTTPOK, s.CertOK, h.Cols, h.Interval)
	return MutedStyle.Render(ansi.Truncate(line, width, "…"))
}

func countStyle(n int) lipgloss.Style {
	if n > 0 {
		return CriticalStyle
	}
	return HealthyStyle
}
