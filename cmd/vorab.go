package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/renderer"
	"github.com/MStrecke/depotauswertung/store"
	"github.com/google/subcommands"
)

// vorabCmd holds the flags for the 'vorab' subcommand.
type vorabCmd struct {
	isin  string
	depot string
}

func (*vorabCmd) Name() string     { return "vorab" }
func (*vorabCmd) Synopsis() string { return "berechnet die Vorabpauschalen eines Jahres" }
func (*vorabCmd) Usage() string {
	return `dpa vorab [-isin <isin>] [-depot <depot>] <jahr>

  Berechnet für jedes Wertpapier/Depot-Paar die Vorabpauschale des Jahres,
  einschließlich Ausschüttungen und realisierter Gewinne bei Verkäufen.

Beispiel:
$ dpa vorab 2021
$ dpa vorab -depot bank1 2023

`
}

func (c *vorabCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "nur dieses Wertpapier auswerten")
	f.StringVar(&c.depot, "depot", "", "nur dieses Depot auswerten")
}

func (c *vorabCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Jahr fehlt")
		return subcommands.ExitUsageError
	}
	year, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ungültiges Jahr %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}

	baseRate, ok := depot.BaseRatePercent(year)
	if !ok {
		fmt.Fprintf(os.Stderr, "für %d ist noch kein Basiszins veröffentlicht\n", year)
		return subcommands.ExitFailure
	}

	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	var msgs messageLog
	report := &renderer.VorabReport{Year: year}
	var results []depot.ItemResult

	for _, pair := range app.Transactions.Pairs() {
		if c.isin != "" && c.isin != pair.ISIN {
			continue
		}
		if c.depot != "" && c.depot != pair.Depot {
			continue
		}
		item, err := c.evaluate(app, pair, year, baseRate)
		if errors.Is(err, depot.ErrNoData) {
			msgs.Warnf("%s/%s: keine Daten für %d", pair.ISIN, pair.Depot, year)
			continue
		}
		if err != nil {
			msgs.Errorf("%s/%s: %v", pair.ISIN, pair.Depot, err)
			continue
		}
		report.Items = append(report.Items, *item)
		results = append(results, depot.ItemResult{ISIN: pair.ISIN, Account: pair.Depot, Result: item.Result})
	}

	report.Summary = depot.Summarize(year, results)
	printMarkdown(renderer.VorabMarkdown(report))
	msgs.Report()

	if msgs.HasErrors() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// evaluate computes one instrument/account pair. The opening quote is the
// last close on or before January 1st, the closing quote the last close of
// the year; conversion factors are taken at January 1st and at the closing
// quote's own date.
func (c *vorabCmd) evaluate(app *App, pair store.Pair, year int, baseRate float64) (*renderer.VorabItem, error) {
	sec, ok := app.Securities.Get(pair.ISIN)
	if !ok {
		return nil, fmt.Errorf("%s nicht in den Stammdaten", pair.ISIN)
	}
	if sec.IsCurrencyOrIndex() {
		return nil, fmt.Errorf("%w: %s ist kein Fonds", depot.ErrNoData, pair.ISIN)
	}
	exemption, err := sec.ExemptionFraction()
	if err != nil {
		return nil, err
	}
	currency, ok := app.Depots.Currency(pair.Depot)
	if !ok {
		return nil, fmt.Errorf("unbekanntes Depot %q", pair.Depot)
	}

	jan1 := depot.NewDate(year, time.January, 1)
	dec31 := depot.NewDate(year, time.December, 31)

	opening, err := app.Prices.PriceOn(pair.ISIN, jan1)
	if err != nil {
		return nil, fmt.Errorf("Kurs zum Jahresanfang: %w", err)
	}
	closing, err := app.Prices.PriceOn(pair.ISIN, dec31)
	if err != nil {
		return nil, fmt.Errorf("Kurs zum Jahresende: %w", err)
	}
	openingFactor, err := app.Prices.Factor(sec.Currency, currency, jan1)
	if err != nil {
		return nil, err
	}
	closingFactor, err := app.Prices.Factor(sec.Currency, currency, closing.Date)
	if err != nil {
		return nil, err
	}

	records, err := store.Records(app.Transactions.History(pair.ISIN, pair.Depot), currency, app.Prices.Factor)
	if err != nil {
		return nil, err
	}

	result, err := depot.Compute(depot.Input{
		Year:              year,
		OpeningPrice:      opening.Close,
		ClosingPrice:      closing.Close,
		OpeningFactor:     openingFactor,
		ClosingFactor:     closingFactor,
		BaseRatePercent:   baseRate,
		ExemptionFraction: exemption,
		Records:           records,
	})
	if err != nil {
		return nil, err
	}

	return &renderer.VorabItem{
		ISIN:              pair.ISIN,
		Name:              sec.Name,
		Depot:             pair.Depot,
		Currency:          currency,
		ExemptionFraction: exemption,
		BaseRatePercent:   baseRate,
		OpeningDate:       opening.Date,
		ClosingDate:       closing.Date,
		OpeningPrice:      opening.Close,
		ClosingPrice:      closing.Close,
		Result:            result,
	}, nil
}
