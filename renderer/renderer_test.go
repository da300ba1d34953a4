package renderer

import (
	"strings"
	"testing"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/store"
)

func TestHelpers(t *testing.T) {
	if got := Num(1234.5); got != "1.234,50" {
		t.Errorf("Num = %q", got)
	}
	if got := Qty(10.5); got != "10,5" {
		t.Errorf("Qty = %q", got)
	}
	if got := Percent(0.30); got != "30 %" {
		t.Errorf("Percent = %q", got)
	}
	if got := Opt(nil); got != "" {
		t.Errorf("Opt(nil) = %q", got)
	}
	v := 2.5
	if got := Opt(&v); got != "2,50" {
		t.Errorf("Opt = %q", got)
	}
	if got := Amount(12.5, "EUR"); !strings.Contains(got, "12,50") {
		t.Errorf("Amount(EUR) = %q", got)
	}
	// Unknown codes keep the number readable instead of failing.
	if got := Amount(12.5, "ZZZ"); got != "12,50 ZZZ" {
		t.Errorf("Amount(ZZZ) = %q", got)
	}
	if got := kindLabel(depot.KindDistribution); got != "Ausschüttung" {
		t.Errorf("kindLabel = %q", got)
	}
}

func vorabFixture() *VorabReport {
	base := 6.09
	appr := 50.0
	item := VorabItem{
		ISIN:              "LU1437016972",
		Name:              "Beispiel-ETF",
		Depot:             "bank1",
		Currency:          "EUR",
		ExemptionFraction: 0.30,
		BaseRatePercent:   0.87,
		OpeningDate:       depot.MustParseDate("28.12.2017"),
		ClosingDate:       depot.MustParseDate("28.12.2018"),
		OpeningPrice:      100,
		ClosingPrice:      105,
		Result: &depot.TaxResult{
			Year: 2018,
			Valuation: &depot.Valuation{
				Rows: []*depot.Entry{
					{
						Kind:            depot.KindCarryForward,
						Date:            depot.MustParseDate("01.01.2018"),
						OpeningQuantity: 10,
						Remaining:       10,
						Price:           100,
						Factor:          1,
						BaseYield:       &base,
						Appreciation:    &appr,
					},
				},
				BaseYield:    6.09,
				Appreciation: 50,
			},
			Vorabpauschale: 6.09,
			TaxableAdvance: 4.26,
			RealizedGains: &depot.RealizedGains{
				Year: 2018,
				Sales: []depot.RealizedSale{
					{
						SaleDate:      depot.MustParseDate("15.06.2018"),
						BuyDate:       depot.MustParseDate("10.01.2017"),
						Quantity:      5,
						PurchaseValue: 500,
						SaleValue:     550,
						Gain:          50,
					},
				},
				Total: 50,
			},
		},
	}
	return &VorabReport{
		Year:  2018,
		Items: []VorabItem{item},
		Summary: &depot.Summary{
			Year:             2018,
			TaxableAdvance:   4.26,
			OpeningValue:     1000,
			Appreciation:     50,
			RealizedGains:    50,
			HasRealizedGains: true,
		},
	}
}

func TestVorabMarkdown(t *testing.T) {
	md := VorabMarkdown(vorabFixture())

	for _, want := range []string{
		"# Vorabpauschale 2018",
		"## Beispiel-ETF (LU1437016972, Depot bank1)",
		"Teilfreistellung: 30 %",
		"01.01.2018 | Übertrag | 10 | 10 |",
		"### Realisierte Gewinne 2018",
		"| 15.06.2018 | 10.01.2017 | 5 | 500,00 | 550,00 | 50,00 |",
		"## Summe 2018",
		"| Wert Anfang | 1.000,00 |",
		"| Wertzuwachs | 50,00 |",
		"| Realisierte Gewinne | 50,00 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report lacks %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "error") {
		t.Errorf("template error in output:\n%s", md)
	}
}

func TestVorabMarkdownWithoutSales(t *testing.T) {
	r := vorabFixture()
	r.Items[0].Result.RealizedGains = nil
	r.Summary.HasRealizedGains = false
	r.Summary.RealizedGains = 0

	md := VorabMarkdown(r)
	if strings.Contains(md, "Realisierte Gewinne") {
		t.Errorf("sales section rendered without sales:\n%s", md)
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	txs := []store.Tx{
		{
			ISIN:     "LU1437016972",
			Depot:    "bank1",
			Kind:     depot.KindBuy,
			Date:     depot.MustParseDate("15.03.2021"),
			Quantity: 100,
			Price:    52.30,
			Currency: "EUR",
		},
		{
			ISIN:     "LU1437016972",
			Depot:    "bank1",
			Kind:     depot.KindDistribution,
			Date:     depot.MustParseDate("20.06.2021"),
			Price:    12.50,
			Currency: "EUR",
		},
	}

	md := TransactionsMarkdown("Transaktionen", txs)
	for _, want := range []string{
		"# Transaktionen",
		"| 15.03.2021 | bank1 | LU1437016972 | Kauf | 100 | 52,30 | EUR |",
		// Distributions have no quantity cell.
		"| 20.06.2021 | bank1 | LU1437016972 | Ausschüttung |  | 12,50 | EUR |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("listing lacks %q\n%s", want, md)
		}
	}

	if md := TransactionsMarkdown("Leer", nil); !strings.Contains(md, "Keine Transaktionen.") {
		t.Errorf("empty listing: %s", md)
	}
}
