package renderer

import (
	depot "github.com/MStrecke/depotauswertung"
)

// VorabItem is the renderable result of one instrument/account pair,
// combined with the master data and market data the computation used.
type VorabItem struct {
	ISIN     string
	Name     string
	Depot    string
	Currency string // valuation currency of the depot

	ExemptionFraction float64
	BaseRatePercent   float64

	// Dates of the price quotes actually used; they may lie before the
	// year boundary when the boundary fell on a non-trading day.
	OpeningDate  depot.Date
	ClosingDate  depot.Date
	OpeningPrice float64
	ClosingPrice float64

	Result *depot.TaxResult
}

// VorabReport is a whole year's report over all pairs.
type VorabReport struct {
	Year    int
	Items   []VorabItem
	Summary *depot.Summary
}

// VorabMarkdown renders the year report to markdown.
func VorabMarkdown(r *VorabReport) string {
	partials := map[string]string{
		"vorab_item":    "vorab_item.md",
		"vorab_gains":   "vorab_gains.md",
		"vorab_summary": "vorab_summary.md",
	}
	return renderTemplate("vorab", "vorab.md", partials, r)
}
