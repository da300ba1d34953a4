package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type dbISINsCmd struct{}

func (*dbISINsCmd) Name() string     { return "db_isins" }
func (*dbISINsCmd) Synopsis() string { return "listet die ISINs in der Kursdatenbank" }
func (*dbISINsCmd) Usage() string {
	return `dpa db_isins

  Listet alle in der Kursdatenbank geführten ISINs mit Namen und
  gespeichertem Kurszeitraum.

`
}

func (*dbISINsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dbISINsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var b strings.Builder
	fmt.Fprintln(&b, "# Kursdatenbank")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| ISIN | Name | Kurse | von | bis |")
	fmt.Fprintln(&b, "|:---|:---|---:|:---|:---|")
	for _, code := range codes {
		name := ""
		if sec, ok := app.Securities.Get(code); ok {
			name = sec.Name
		}
		count, err := app.Prices.Count(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if count == 0 {
			fmt.Fprintf(&b, "| %s | %s | 0 | | |\n", code, name)
			continue
		}
		first, last, err := app.Prices.FirstLast(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n", code, name, count, first.Date, last.Date)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
