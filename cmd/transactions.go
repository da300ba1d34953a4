package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MStrecke/depotauswertung/renderer"
	"github.com/google/subcommands"
)

type transactionsCmd struct {
	depot string
}

func (*transactionsCmd) Name() string     { return "transaktionen" }
func (*transactionsCmd) Synopsis() string { return "zeigt die Transaktionen eines Wertpapiers" }
func (*transactionsCmd) Usage() string {
	return `dpa transaktionen [-depot <depot>] <isin>

  Zeigt alle Käufe, Verkäufe und Ausschüttungen einer ISIN in
  chronologischer Reihenfolge, optional beschränkt auf ein Depot.

`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.depot, "depot", "", "nur dieses Depot anzeigen")
}

func (c *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "ISIN fehlt")
		return subcommands.ExitUsageError
	}
	code := f.Arg(0)

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

	sec, ok := app.Securities.Get(code)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s nicht in den Stammdaten\n", code)
		return subcommands.ExitFailure
	}

	title := fmt.Sprintf("Transaktionen %s (%s)", sec.Name, code)
	if c.depot != "" {
		title += " in " + c.depot
	}
	printMarkdown(renderer.TransactionsMarkdown(title, app.Transactions.History(code, c.depot)))
	return subcommands.ExitSuccess
}
