package layout

// base widths per full tier, in display order: site, status, cert, expiry, time, checked
var fullBase = map[Tier][6]int{
	TierXL: {30, 15, 15, 20, 12, 15},
	TierL:  {25, 12, 12, 15, 10, 12},
	TierM:  {20, 10, 10, 12, 8, 10},
	TierS:  {15, 8, 8, 10, 7, 8},
}

var fullIDs = [6]ColumnID{ColSite, ColStatus, ColCert, ColExpiry, ColTime, ColChecked}

var fullTitles = map[ColumnID]string{
	ColSite:    "Site",
	ColStatus:  "Status",
	ColCert:    "Cert",
	ColExpiry:  "Expires",
	ColTime:    "Time",
	ColChecked: "Checked",
}

// Share of the spare width each full-set column receives. Whatever the
// floors leave over goes to the site column.
const (
	shareSite   = 0.40
	shareExpiry = 0.30
	shareStatus = 0.15
	shareCert   = 0.15
)

// Border overhead: one rule per column plus the closing rule.
const (
	overheadFull    = 7
	overheadCompact = 6
	overheadNarrow  = 5
)

// Reduced-set widths.
const (
	compactSiteMin = 15
	compactSiteMax = 25
	compactStatus  = 3
	compactCert    = 4
	compactTime    = 6
	compactChecked = 6

	narrowSiteMin = 4
	narrowSiteMax = 12
	narrowStatus  = 2
	narrowCert    = 3
	narrowTime    = 5
)

// MinWidth is the narrowest terminal that still gets a table.
const MinWidth = narrowSiteMin + narrowStatus + narrowCert + narrowTime + overheadNarrow

// Compute returns the column geometry for a terminal width.
func Compute(width int) Geometry {
	tier := TierFor(width)
	if tier != TierXS {
		return full(width, tier)
	}
	if width >= BreakpointCompact {
		return compact(width)
	}
	if width >= MinWidth {
		return narrow(width)
	}
	return Geometry{Width: width, Tier: TierXS, Set: SetNone}
}

func full(width int, tier Tier) Geometry {
	base := fullBase[tier]
	widths := base

	sum := 0
	for _, w := range base {
		sum += w
	}

	extra := width - sum - overheadFull
	if extra > 0 {
		site := int(float64(extra) * shareSite)
		status := int(float64(extra) * shareStatus)
		cert := int(float64(extra) * shareCert)
		expiry := int(float64(extra) * shareExpiry)
		site += extra - site - status - cert - expiry

		widths[0] += site
		widths[1] += status
		widths[2] += cert
		widths[3] += expiry
	}

	g := Geometry{
		Width:    width,
		Tier:     tier,
		Set:      SetFull,
		Overhead: overheadFull,
		Base:     make([]Column, len(fullIDs)),
		Columns:  make([]Column, len(fullIDs)),
	}
	for i, id := range fullIDs {
		g.Base[i] = Column{ID: id, Title: fullTitles[id], Width: base[i]}
		g.Columns[i] = Column{ID: id, Title: fullTitles[id], Width: widths[i]}
	}
	return g
}

func compact(width int) Geometry {
	fixed := compactStatus + compactCert + compactTime + compactChecked + overheadCompact
	site := clamp(width-fixed, compactSiteMin, compactSiteMax)

	cols := []Column{
		{ID: ColSite, Title: "Site", Width: site},
		{ID: ColStatus, Title: "St", Width: compactStatus},
		{ID: ColCert, Title: "SSL", Width: compactCert},
		{ID: ColTime, Title: "Time", Width: compactTime},
		{ID: ColChecked, Title: "At", Width: compactChecked},
	}
	return reduced(width, SetCompact, overheadCompact, compactSiteMin, cols)
}

func narrow(width int) Geometry {
	fixed := narrowStatus + narrowCert + narrowTime + overheadNarrow
	site := clamp(width-fixed, narrowSiteMin, narrowSiteMax)

	cols := []Column{
		{ID: ColSite, Title: "Site", Width: site},
		{ID: ColStatus, Title: "St", Width: narrowStatus},
		{ID: ColCert, Title: "SSL", Width: narrowCert},
		{ID: ColTime, Title: "ms", Width: narrowTime},
	}
	return reduced(width, SetNarrow, overheadNarrow, narrowSiteMin, cols)
}

func reduced(width int, set ColumnSet, overhead, siteMin int, cols []Column) Geometry {
	base := make([]Column, len(cols))
	copy(base, cols)
	base[0].Width = siteMin
	return Geometry{
		Width:    width,
		Tier:     TierXS,
		Set:      set,
		Base:     base,
		Columns:  cols,
		Overhead: overhead,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
