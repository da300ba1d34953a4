package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/MStrecke/depotauswertung/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI for shell completion. It returns immediately
// when not invoked by a shell completion hook.
func completion() {
	year := predict.Something
	isin := predict.Something
	c := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.ini"),
		},
		Sub: map[string]*complete.Command{
			"vorab": {
				Args: year,
				Flags: map[string]complete.Predictor{
					"isin":  isin,
					"depot": predict.Something,
				},
			},
			"transaktionen": {
				Args:  isin,
				Flags: map[string]complete.Predictor{"depot": predict.Something},
			},
			"stammdaten": {Args: isin},
			"db_isins":   {},
			"db_kurs":    {Args: isin},
			"csv": {
				Flags: map[string]complete.Predictor{
					"neue":   predict.Nothing,
					"ignore": predict.Something,
				},
			},
			"refresh": {
				Flags: map[string]complete.Predictor{
					"ignore": predict.Something,
					"n":      predict.Something,
				},
			},
			"topic": {Args: predict.Set{"readme", "vorabpauschale", "dateien", "kurse", "*"}},
		},
	}
	c.Complete("dpa")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "hilfe")
	commander.Register(commander.FlagsCommand(), "hilfe")
	commander.Register(commander.CommandsCommand(), "hilfe")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
