package depot

import (
	"errors"
	"testing"
)

// history2018 is the shared end-to-end fixture: an acquisition in 2017
// forming the carry-forward, and the 2018 activity of the valuation tests.
func history2018() []Record {
	return []Record{
		{Kind: KindBuy, Date: MustParseDate("5.6.2017"), Quantity: 10, Price: 95, Factor: 1.0},
		{Kind: KindBuy, Date: MustParseDate("1.3.2018"), Quantity: 10, Price: 105, Factor: 1.0},
		{Kind: KindSell, Date: MustParseDate("1.4.2018"), Quantity: 15, Price: 110, Factor: 1.0},
		{Kind: KindDistribution, Date: MustParseDate("1.6.2018"), Price: 5.10, Factor: 1.0},
		{Kind: KindDistribution, Date: MustParseDate("1.9.2018"), Price: 6.10, Factor: 1.0},
	}
}

func TestCompute(t *testing.T) {
	res, err := Compute(Input{
		Year:              2018,
		OpeningPrice:      100,
		ClosingPrice:      120,
		OpeningFactor:     1.0,
		ClosingFactor:     1.0,
		BaseRatePercent:   0.87,
		ExemptionFraction: 0.30,
		Records:           history2018(),
	})
	if err != nil {
		t.Fatal(err)
	}

	checkValuation(t, res.Valuation, 2.54, 75.00, 11.20, 525.00, 600.00)

	// Base yield 2.54 caps below the appreciation, and the 11.20 of payouts
	// already taxed eat it up entirely.
	if res.Vorabpauschale != 0 {
		t.Errorf("Vorabpauschale = %v, want 0", res.Vorabpauschale)
	}
	if res.TaxableAdvance != 0 {
		t.Errorf("TaxableAdvance = %v, want 0", res.TaxableAdvance)
	}
	if res.TaxableDistributions != 7.84 {
		t.Errorf("TaxableDistributions = %v, want 7.84", res.TaxableDistributions)
	}

	if res.RealizedGains == nil {
		t.Fatal("RealizedGains = nil, want gains for the April sale")
	}
	if len(res.RealizedGains.Sales) != 2 {
		t.Errorf("len(Sales) = %d, want 2", len(res.RealizedGains.Sales))
	}
	// 10 units from the 2017 lot (gain 150) plus 5 from the March lot (25).
	if res.RealizedGains.Total != 175.00 {
		t.Errorf("realized Total = %v, want 175", res.RealizedGains.Total)
	}
}

func TestComputeAdvanceTaxed(t *testing.T) {
	// Without payouts and with appreciation above the base yield, the
	// advance equals the base yield and gets the exemption applied.
	res, err := Compute(Input{
		Year:              2018,
		OpeningPrice:      100,
		ClosingPrice:      120,
		OpeningFactor:     1.0,
		ClosingFactor:     1.0,
		BaseRatePercent:   0.87,
		ExemptionFraction: 0.30,
		Records: []Record{
			{Kind: KindBuy, Date: MustParseDate("5.6.2017"), Quantity: 10, Price: 95, Factor: 1.0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	// 10 × 100 × 0.7 × 0.87% = 6.09
	if res.Vorabpauschale != 6.09 {
		t.Errorf("Vorabpauschale = %v, want 6.09", res.Vorabpauschale)
	}
	if want := Round(6.09*0.7, 2); res.TaxableAdvance != want {
		t.Errorf("TaxableAdvance = %v, want %v", res.TaxableAdvance, want)
	}
	if res.RealizedGains != nil {
		t.Error("RealizedGains set without a sale")
	}
}

func TestComputeAppreciationCap(t *testing.T) {
	// A year-end below the base yield projection caps the advance at the
	// actual appreciation.
	res, err := Compute(Input{
		Year:            2018,
		OpeningPrice:    100,
		ClosingPrice:    100.3,
		OpeningFactor:   1.0,
		ClosingFactor:   1.0,
		BaseRatePercent: 0.87,
		Records: []Record{
			{Kind: KindBuy, Date: MustParseDate("5.6.2017"), Quantity: 10, Price: 95, Factor: 1.0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Vorabpauschale != 3.00 {
		t.Errorf("Vorabpauschale = %v, want 3.00", res.Vorabpauschale)
	}
}

func TestComputeExemptionCutoff(t *testing.T) {
	// No partial exemption before the 2018 reform, whatever the master data
	// says.
	res, err := Compute(Input{
		Year:              2017,
		OpeningPrice:      100,
		ClosingPrice:      100,
		OpeningFactor:     1.0,
		ClosingFactor:     1.0,
		BaseRatePercent:   0,
		ExemptionFraction: 0.30,
		Records: []Record{
			{Kind: KindBuy, Date: MustParseDate("5.6.2016"), Quantity: 10, Price: 95, Factor: 1.0},
			{Kind: KindDistribution, Date: MustParseDate("1.6.2017"), Price: 10, Factor: 1.0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.TaxableDistributions != 10.00 {
		t.Errorf("TaxableDistributions = %v, want the full 10.00", res.TaxableDistributions)
	}
}

func TestComputeNoData(t *testing.T) {
	_, err := Compute(Input{
		Year:            2018,
		BaseRatePercent: 0.87,
		Records: []Record{
			{Kind: KindBuy, Date: MustParseDate("1.3.2019"), Quantity: 10, Price: 105, Factor: 1.0},
		},
	})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("got %v, want ErrNoData", err)
	}

	// A first-year purchase is data, even with nothing carried in.
	res, err := Compute(Input{
		Year:            2018,
		OpeningPrice:    100,
		ClosingPrice:    120,
		OpeningFactor:   1.0,
		ClosingFactor:   1.0,
		BaseRatePercent: 0.87,
		Records: []Record{
			{Kind: KindBuy, Date: MustParseDate("1.3.2018"), Quantity: 10, Price: 105, Factor: 1.0},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Valuation.ClosingValue != 1200.00 {
		t.Errorf("ClosingValue = %v, want 1200", res.Valuation.ClosingValue)
	}
}

func TestSummarize(t *testing.T) {
	withGains := &TaxResult{
		TaxableAdvance:       1.11,
		TaxableDistributions: 2.22,
		Valuation:            &Valuation{OpeningValue: 525.00, Appreciation: 75.00},
		RealizedGains:        &RealizedGains{Total: 50.00},
	}
	withoutGains := &TaxResult{
		TaxableAdvance:       0.89,
		TaxableDistributions: 0.78,
		Valuation:            &Valuation{OpeningValue: 100.00, Appreciation: -25.00},
	}

	s := Summarize(2018, []ItemResult{
		{ISIN: "LU1437016972", Account: "bank1", Result: withGains},
		{ISIN: "GB00BJDQQQ59", Account: "bank2", Result: withoutGains},
	})
	if s.TaxableAdvance != 2.00 {
		t.Errorf("TaxableAdvance = %v, want 2.00", s.TaxableAdvance)
	}
	if s.TaxableDistributions != 3.00 {
		t.Errorf("TaxableDistributions = %v, want 3.00", s.TaxableDistributions)
	}
	if s.OpeningValue != 625.00 {
		t.Errorf("OpeningValue = %v, want 625.00", s.OpeningValue)
	}
	if s.Appreciation != 50.00 {
		t.Errorf("Appreciation = %v, want 50.00", s.Appreciation)
	}
	if !s.HasRealizedGains || s.RealizedGains != 50.00 {
		t.Errorf("RealizedGains = %v (%v), want 50.00 (true)", s.RealizedGains, s.HasRealizedGains)
	}

	s = Summarize(2018, []ItemResult{{Result: withoutGains}})
	if s.HasRealizedGains {
		t.Error("HasRealizedGains = true without any gains")
	}
}

func TestComputeRejectsCarryForwardRecord(t *testing.T) {
	_, err := Compute(Input{
		Year:            2021,
		OpeningPrice:    100,
		ClosingPrice:    105,
		OpeningFactor:   1.0,
		ClosingFactor:   1.0,
		BaseRatePercent: 0,
		Records: []Record{
			{Kind: KindBuy, Date: MustParseDate("5.6.2020"), Quantity: 10, Price: 95, Factor: 1.0},
			{Kind: KindCarryForward, Date: MustParseDate("1.3.2021"), Quantity: 5, Price: 100, Factor: 1.0},
		},
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("carry-forward record in the year: %v, want ErrInvalidState", err)
	}
}
