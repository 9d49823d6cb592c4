package monitor

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/sitewatch/internal/probe"
)

// Dashboard color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")
	ColorSite      = lipgloss.Color("#00FFFF")
)

// Certificate freshness thresholds, in days remaining.
const (
	CertHealthyDays = 30
	CertWarningDays = 7
)

// Response time thresholds.
const (
	FastResponse = 500 * time.Millisecond
	SlowResponse = 2 * time.Second
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HeaderInfoStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	BorderStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	ColumnTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccentDim).
				Bold(true)

	SiteStyle = lipgloss.NewStyle().
			Foreground(ColorSite)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HealthyStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	CriticalStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	StatsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorWarning).
			Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Status glyphs, all one cell wide so narrow columns stay aligned.
const (
	GlyphOK      = "✓"
	GlyphPartial = "~"
	GlyphWarn    = "!"
	GlyphFail    = "✗"
	GlyphNone    = "-"
)

// HTTPStyle picks the color for an HTTP status.
func HTTPStyle(s probe.HTTPStatus) lipgloss.Style {
	switch {
	case s.Kind == probe.HTTPCode && s.Code == 200:
		return HealthyStyle
	case s.OK():
		return WarningStyle
	default:
		return CriticalStyle
	}
}

// HTTPGlyph picks the one-cell icon for an HTTP status.
func HTTPGlyph(s probe.HTTPStatus) string {
	switch {
	case s.Kind == probe.HTTPCode && s.Code == 200:
		return GlyphOK
	case s.OK():
		return GlyphPartial
	default:
		return GlyphFail
	}
}

// CertStyle picks the color for a certificate status by days remaining.
func CertStyle(c probe.CertStatus) lipgloss.Style {
	if c.Kind != probe.CertValid {
		return MutedStyle
	}
	switch {
	case c.DaysRemaining > CertHealthyDays:
		return HealthyStyle
	case c.DaysRemaining > CertWarningDays:
		return WarningStyle
	default:
		return CriticalStyle
	}
}

// CertGlyph picks the one-cell icon for a certificate status.
func CertGlyph(c probe.CertStatus) string {
	if c.Kind != probe.CertValid {
		return GlyphNone
	}
	switch {
	case c.DaysRemaining > CertHealthyDays:
		return GlyphOK
	case c.DaysRemaining > 0:
		return GlyphWarn
	default:
		return GlyphFail
	}
}

// ResponseStyle picks the color for a response time.
func ResponseStyle(d time.Duration) lipgloss.Style {
	switch {
	case d < FastResponse:
		return HealthyStyle
	case d < SlowResponse:
		return WarningStyle
	default:
		return CriticalStyle
	}
}
