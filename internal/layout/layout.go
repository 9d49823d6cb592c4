// Package layout derives the dashboard table's column geometry from the terminal width.
//
// Compute is a pure function: the same width always yields the same Geometry.
// Widths are classified into discrete tiers by inclusive lower bound:
//
//	TierXL  (>=150) - full table, widest base columns
//	TierL   (>=120) - full table
//	TierM   (>=90)  - full table
//	TierS   (>=70)  - full table, tightest base columns
//	TierXS  (<70)   - reduced column set, no expiry date
//
// In the full tiers, width beyond the base columns is spread over site,
// expiry, status and cert so the table fills the terminal exactly. Below 70
// columns information is dropped instead of squeezing every column.
package layout

// Tier is a terminal-width breakpoint.
type Tier int

const (
	TierXS Tier = iota
	TierS
	TierM
	TierL
	TierXL
)

// Width breakpoints (inclusive lower bounds)
const (
	BreakpointS  = 70
	BreakpointM  = 90
	BreakpointL  = 120
	BreakpointXL = 150

	// BreakpointCompact splits TierXS: at or above it the check-time column is kept.
	BreakpointCompact = 60
	// BreakpointStats is the width from which the detailed stats panel is shown.
	BreakpointStats = 100
)

// String returns a short label for the tier.
func (t Tier) String() string {
	switch t {
	case TierXL:
		return "xl"
	case TierL:
		return "l"
	case TierM:
		return "m"
	case TierS:
		return "s"
	default:
		return "xs"
	}
}

// ColumnSet identifies which columns a geometry contains.
type ColumnSet int

const (
	// SetNone means the terminal is too narrow for any table.
	SetNone ColumnSet = iota
	// SetNarrow is site, status, cert, time.
	SetNarrow
	// SetCompact is site, status, cert, time, checked.
	SetCompact
	// SetFull is all six columns.
	SetFull
)

// ColumnID names a table column.
type ColumnID string

const (
	ColSite    ColumnID = "site"
	ColStatus  ColumnID = "status"
	ColCert    ColumnID = "cert"
	ColExpiry  ColumnID = "expiry"
	ColTime    ColumnID = "time"
	ColChecked ColumnID = "checked"
)

// Column is one resolved table column.
type Column struct {
	ID    ColumnID
	Title string
	Width int
}

// Geometry is the resolved column layout for one frame.
type Geometry struct {
	Width    int // terminal width the geometry was computed for
	Tier     Tier
	Set      ColumnSet
	Base     []Column // tier base widths before redistribution
	Columns  []Column
	Overhead int // border characters: one rule per column plus the closing rule
}

// Total returns the rendered table width: column widths plus border overhead.
func (g Geometry) Total() int {
	total := g.Overhead
	for _, c := range g.Columns {
		total += c.Width
	}
	return total
}

// Column returns the width of the column with the given id, or 0 if absent.
func (g Geometry) Column(id ColumnID) int {
	for _, c := range g.Columns {
		if c.ID == id {
			return c.Width
		}
	}
	return 0
}

// Has reports whether the geometry contains the column.
func (g Geometry) Has(id ColumnID) bool {
	return g.Column(id) > 0
}

// IDs returns the column ids in display order.
func (g Geometry) IDs() []ColumnID {
	ids := make([]ColumnID, len(g.Columns))
	for i, c := range g.Columns {
		ids[i] = c.ID
	}
	return ids
}

// TierFor classifies a terminal width.
func TierFor(width int) Tier {
	switch {
	case width >= BreakpointXL:
		return TierXL
	case width >= BreakpointL:
		return TierL
	case width >= BreakpointM:
		return TierM
	case width >= BreakpointS:
		return TierS
	default:
		return TierXS
	}
}

// StatsMode selects how much summary is shown under the table.
type StatsMode int

const (
	StatsNone StatsMode = iota
	StatsLine
	StatsPanel
)

// StatsFor picks the stats presentation for a terminal width.
func StatsFor(width int) StatsMode {
	switch {
	case width >= BreakpointStats:
		return StatsPanel
	case width >= BreakpointS:
		return StatsLine
	default:
		return StatsNone
	}
}
