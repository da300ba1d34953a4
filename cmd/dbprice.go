package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/renderer"
	"github.com/google/subcommands"
)

type dbPriceCmd struct{}

func (*dbPriceCmd) Name() string     { return "db_kurs" }
func (*dbPriceCmd) Synopsis() string { return "fragt einen Kurs in der Kursdatenbank ab" }
func (*dbPriceCmd) Usage() string {
	return `dpa db_kurs <isin> <datum>

  Zeigt den Schlusskurs einer ISIN am angegebenen Tag (TT.MM.JJJJ).
  Liegt für den Tag kein Kurs vor, wird der letzte davorliegende
  verwendet und das tatsächliche Datum mit ausgegeben.

`
}

func (*dbPriceCmd) SetFlags(f *flag.FlagSet) {}

func (c *dbPriceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Aufruf: db_kurs <isin> <datum>")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)
	on, err := depot.ParseDate(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	if err := app.Checker.Check(code); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	price, err := app.Prices.PriceOn(code, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if price.Exact {
		fmt.Printf("%s %s: %s %s\n", code, price.Date, renderer.Num(price.Close), price.Currency)
	} else {
		fmt.Printf("%s %s: kein Kurs, letzter vom %s: %s %s\n",
			code, on, price.Date, renderer.Num(price.Close), price.Currency)
	}
	return subcommands.ExitSuccess
}
