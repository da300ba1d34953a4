package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/MStrecke/depotauswertung/pricedb"
	"github.com/MStrecke/depotauswertung/renderer"
	"github.com/google/subcommands"
)

type securityCmd struct{}

func (*securityCmd) Name() string     { return "stammdaten" }
func (*securityCmd) Synopsis() string { return "zeigt Stammdaten zu einer oder mehreren ISINs" }
func (*securityCmd) Usage() string {
	return `dpa stammdaten <isin> [<isin> ...]

  Zeigt die Stammdaten der angegebenen ISINs zusammen mit dem in der
  Kursdatenbank vorhandenen Kurszeitraum.

`
}

func (*securityCmd) SetFlags(f *flag.FlagSet) {}

func (c *securityCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "ISIN fehlt")
		return subcommands.ExitUsageError
	}

	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	var msgs messageLog
	for _, code := range f.Args() {
		sec, ok := app.Securities.Get(code)
		if !ok {
			msgs.Errorf("%s nicht in den Stammdaten", code)
			continue
		}

		count, err := app.Prices.Count(code)
		if errors.Is(err, pricedb.ErrUnknownISIN) {
			count = 0
		} else if err != nil {
			msgs.Errorf("%s: %v", code, err)
			continue
		}
		var first, last *pricedb.Price
		if count > 0 {
			if first, last, err = app.Prices.FirstLast(code); err != nil {
				msgs.Errorf("%s: %v", code, err)
				continue
			}
		}
		printMarkdown(renderer.SecurityMarkdown(sec, count, first, last))
	}

	msgs.Report()
	if msgs.HasErrors() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
