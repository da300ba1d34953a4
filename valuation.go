package depot

// EvaluateParams carries the year-boundary market data needed to value a
// year ledger.
type EvaluateParams struct {
	// OpeningPrice and ClosingPrice are the instrument's unit prices at the
	// year's start and end, in the instrument's own price currency.
	OpeningPrice float64
	ClosingPrice float64
	// OpeningFactor and ClosingFactor convert prices into the valuation
	// currency at the year's start and end.
	OpeningFactor float64
	ClosingFactor float64
	// BaseRatePercent is the published base interest rate for the year, in
	// percent. See BaseRatePercent.
	BaseRatePercent float64
}

// Valuation is the result of evaluating one year ledger at the year's end.
//
// Each aggregate is the sum of per-entry values that were rounded to 2
// decimals when computed, rounded again as a sum. This double rounding can
// accumulate a drift of a cent versus rounding only once, but it is the
// established behavior and figures must stay reproducible, so it is kept.
type Valuation struct {
	// Rows are the ledger entries with their valuation fields populated.
	Rows []*Entry

	BaseYield     float64 // sum of per-lot base yields ("Basisertrag")
	Appreciation  float64 // sum of per-lot value changes over the year
	Distributions float64 // sum of payouts, converted per payout date
	OpeningValue  float64 // sum of per-lot values at their own entry date
	ClosingValue  float64 // sum of per-lot values at the year's end

	// SalesOccurred is set when the year contains at least one sale; the
	// orchestrator then also computes realized gains.
	SalesOccurred bool
}

// Evaluate values the ledger at the year's end and returns the per-lot and
// aggregate figures.
//
// Only the units still held at the year's end take part: each lot enters with
// its Remaining quantity as observed after all of the year's sales have been
// replayed. Sold units are taxed through the regular capital gains path and
// carry no base yield.
//
// The base yield always uses the year-opening price, even for lots bought
// during the year; those are instead reduced by 1/12 per full month before
// the purchase. The opening value, in contrast, uses the lot's own
// transaction-date price and conversion factor.
func (l *YearLedger) Evaluate(p EvaluateParams) *Valuation {
	res := &Valuation{Rows: l.entries}

	for _, e := range l.entries {
		switch {
		case e.Kind.lotBearing():
			baseYield := Round(e.Remaining*p.OpeningPrice*0.7*p.BaseRatePercent/100.0*e.MonthFraction*p.OpeningFactor, 2)
			openingValue := Round(e.Remaining*e.Price*e.Factor, 2)
			closingValue := Round(p.ClosingPrice*e.Remaining*p.ClosingFactor, 2)
			appreciation := closingValue - openingValue
			e.BaseYield = &baseYield
			e.OpeningValue = &openingValue
			e.ClosingValue = &closingValue
			e.Appreciation = &appreciation
		case e.Kind == KindSell:
			res.SalesOccurred = true
		}
	}

	// Sum in entry order; each contribution was rounded above.
	for _, e := range l.entries {
		if e.BaseYield != nil {
			res.BaseYield += *e.BaseYield
		}
		if e.Appreciation != nil {
			res.Appreciation += *e.Appreciation
		}
		if e.Kind == KindDistribution {
			res.Distributions += Round(e.Price*e.Factor, 2)
		}
		if e.OpeningValue != nil {
			res.OpeningValue += *e.OpeningValue
		}
		if e.ClosingValue != nil {
			res.ClosingValue += *e.ClosingValue
		}
	}

	res.BaseYield = Round(res.BaseYield, 2)
	res.Appreciation = Round(res.Appreciation, 2)
	res.Distributions = Round(res.Distributions, 2)
	res.OpeningValue = Round(res.OpeningValue, 2)
	res.ClosingValue = Round(res.ClosingValue, 2)
	return res
}
