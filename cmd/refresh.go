package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"sync"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/pricedb"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type refreshCmd struct {
	ignore   float64
	parallel int
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "holt neue Kurse von onvista" }
func (*refreshCmd) Usage() string {
	return `dpa refresh [-ignore <betrag>] [-n <anzahl>]

  Fragt für jede ISIN der Kursdatenbank die Kurse seit dem letzten
  gespeicherten Datum ab und trägt neue Kurse ein. Der erste
  zurückgegebene Kurs muss mit dem letzten gespeicherten
  übereinstimmen; mit -ignore wird eine Abweichung bis zum angegebenen
  Betrag toleriert.

`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.ignore, "ignore", 0, "tolerierte Abweichung beim Anschluss")
	f.IntVar(&c.parallel, "n", 4, "Anzahl gleichzeitiger Abfragen")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	codes, err := app.Prices.AllISINs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var msgs messageLog

	// Fetch concurrently, then write sequentially: the fetches wait on the
	// network, the inserts share one database file.
	type fetched struct {
		code    string
		last    *depot.Date
		history *depot.EODHistory
	}
	var mu sync.Mutex
	var all []fetched

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for _, code := range codes {
		sec, ok := app.Securities.Get(code)
		if !ok {
			msgs.Warnf("%s nicht in den Stammdaten", code)
			continue
		}
		inst, ok := onvistaInstrument(sec)
		if !ok {
			msgs.Warnf("%s: keine onvista-IDs hinterlegt", code)
			continue
		}

		start := depot.Today().AddDays(-30)
		var last *depot.Date
		if lp, err := app.Prices.LastPrice(code); err == nil {
			start = lp.Date
			last = &lp.Date
		} else if !errors.Is(err, pricedb.ErrNoPrice) {
			msgs.Errorf("%s: %v", code, err)
			continue
		}

		g.Go(func() error {
			history, err := depot.FetchOnvistaEOD(inst, start)
			if err != nil {
				msgs.Errorf("%s: %v", code, err)
				return nil
			}
			mu.Lock()
			all = append(all, fetched{code: code, last: last, history: history})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for _, fd := range all {
		n, err := c.store(app, fd.code, fd.last, fd.history)
		if err != nil {
			msgs.Errorf("%s: %v", fd.code, err)
			continue
		}
		fmt.Printf("%s: %d neue Kurse\n", fd.code, n)
	}

	msgs.Report()
	if msgs.HasErrors() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// store splices the fetched history onto the stored series and inserts the
// new closes. last is nil when the database holds no quotes yet.
func (c *refreshCmd) store(app *App, code string, last *depot.Date, history *depot.EODHistory) (int, error) {
	prices := history.Prices
	if last != nil {
		lp, err := app.Prices.LastPrice(code)
		if err != nil {
			return 0, err
		}
		found := false
		var keep []depot.EODPrice
		for _, p := range prices {
			if p.Date == lp.Date {
				found = true
				if diff := math.Abs(p.Close - lp.Close); diff > c.ignore {
					return 0, fmt.Errorf("Anschluss stimmt nicht am %s: Datenbank %.4f, online %.4f",
						lp.Date, lp.Close, p.Close)
				}
			}
			if p.Date.After(lp.Date) {
				keep = append(keep, p)
			}
		}
		if !found {
			return 0, fmt.Errorf("Anschlussdatum %s nicht in der Antwort", lp.Date)
		}
		prices = keep
	}
	if len(prices) == 0 {
		return 0, nil
	}
	if err := app.Prices.InsertPrices(code, prices); err != nil {
		return 0, err
	}
	return len(prices), nil
}
