package depot

import (
	"fmt"
	"math"
	"time"
)

// Input bundles everything needed to compute the advance-taxation figures of
// one instrument/account pair for one year. Prices and factors come from the
// price database, the base rate from the published table, the exemption
// fraction from the instrument's master data.
type Input struct {
	Year int

	OpeningPrice  float64
	ClosingPrice  float64
	OpeningFactor float64
	ClosingFactor float64

	BaseRatePercent float64

	// ExemptionFraction is the instrument's partial exemption
	// ("Teilfreistellung"), e.g. 0.30 for an equity fund. It is ignored for
	// years before 2018 regardless of its value.
	ExemptionFraction float64

	// Records is the complete chronological transaction history of the pair,
	// not just the target year. Transactions before the year form the
	// carry-forward; transactions after it are ignored.
	Records []Record
}

// TaxResult is the per-instrument outcome of a Vorabpauschale computation.
type TaxResult struct {
	Year      int
	Valuation *Valuation

	// Vorabpauschale is the advance-taxation base before the partial
	// exemption: the lesser of base yield and actual appreciation, net of
	// distributions, floored at zero.
	Vorabpauschale float64

	TaxableAdvance       float64
	TaxableDistributions float64

	// RealizedGains is nil when no sale occurred in the year. Nil is distinct
	// from a zero gain.
	RealizedGains *RealizedGains
}

// Compute derives the final taxable amounts for one instrument/account pair.
//
// The holding at the year's start is reconstructed from all records dated
// before the year and seeded as a carry-forward lot priced at the year's
// opening price. ErrNoData is returned when there is nothing to evaluate:
// no units held at the year's start and no transactions during the year.
func Compute(in Input) (*TaxResult, error) {
	var opening float64
	var yearRecords []Record
	for _, r := range in.Records {
		switch {
		case r.Date.Year() < in.Year:
			switch r.Kind {
			case KindCarryForward, KindBuy:
				opening += r.Quantity
			case KindSell:
				opening -= r.Quantity
			}
		case r.Date.Year() == in.Year:
			yearRecords = append(yearRecords, r)
		}
	}

	if opening == 0 && len(yearRecords) == 0 {
		return nil, fmt.Errorf("%w: year %d", ErrNoData, in.Year)
	}

	ledger := NewYearLedger(in.Year)
	if opening != 0 {
		jan1 := NewDate(in.Year, time.January, 1)
		if err := ledger.SetCarryForward(jan1, opening, in.OpeningPrice, in.OpeningFactor); err != nil {
			return nil, err
		}
	}
	if err := ledger.Replay(yearRecords); err != nil {
		return nil, err
	}

	valuation := ledger.Evaluate(EvaluateParams{
		OpeningPrice:    in.OpeningPrice,
		ClosingPrice:    in.ClosingPrice,
		OpeningFactor:   in.OpeningFactor,
		ClosingFactor:   in.ClosingFactor,
		BaseRatePercent: in.BaseRatePercent,
	})

	// The advance base cannot exceed the actual appreciation, and
	// distributions already taxed are credited against it.
	vorab := math.Min(valuation.BaseYield, valuation.Appreciation)
	vorab = math.Max(0, vorab-valuation.Distributions)

	exemption := in.ExemptionFraction
	if in.Year < 2018 {
		// The partial exemption was introduced with the 2018 reform.
		exemption = 0
	}

	res := &TaxResult{
		Year:                 in.Year,
		Valuation:            valuation,
		Vorabpauschale:       vorab,
		TaxableAdvance:       Round(vorab*(1-exemption), 2),
		TaxableDistributions: Round(valuation.Distributions*(1-exemption), 2),
	}

	if valuation.SalesOccurred {
		gains, err := ComputeRealizedGains(in.Year, in.Records)
		if err != nil {
			return nil, err
		}
		res.RealizedGains = gains
	}
	return res, nil
}

// ItemResult pairs a TaxResult with the instrument/account it belongs to.
type ItemResult struct {
	ISIN    string
	Account string
	Result  *TaxResult
}

// Summary aggregates the results of many instrument/account pairs by plain
// summation. Items without realized gains do not contribute to the realized
// total; HasRealizedGains is false when no item carried one.
type Summary struct {
	Year                 int
	TaxableAdvance       float64
	TaxableDistributions float64
	OpeningValue         float64
	Appreciation         float64
	RealizedGains        float64
	HasRealizedGains     bool
	Items                []ItemResult
}

// Summarize sums the taxable figures and the year valuation across
// instrument results.
func Summarize(year int, items []ItemResult) *Summary {
	s := &Summary{Year: year, Items: items}
	for _, item := range items {
		s.TaxableAdvance += item.Result.TaxableAdvance
		s.TaxableDistributions += item.Result.TaxableDistributions
		if v := item.Result.Valuation; v != nil {
			s.OpeningValue += v.OpeningValue
			s.Appreciation += v.Appreciation
		}
		if item.Result.RealizedGains != nil {
			s.RealizedGains += item.Result.RealizedGains.Total
			s.HasRealizedGains = true
		}
	}
	s.TaxableAdvance = Round(s.TaxableAdvance, 2)
	s.TaxableDistributions = Round(s.TaxableDistributions, 2)
	s.OpeningValue = Round(s.OpeningValue, 2)
	s.Appreciation = Round(s.Appreciation, 2)
	s.RealizedGains = Round(s.RealizedGains, 2)
	return s
}
