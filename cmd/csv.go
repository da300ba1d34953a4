package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MStrecke/depotauswertung/csvimport"
	"github.com/google/subcommands"
)

type csvCmd struct {
	createNew bool
	ignore    float64
}

func (*csvCmd) Name() string     { return "csv" }
func (*csvCmd) Synopsis() string { return "liest Kurse aus CSV-Dateien ein" }
func (*csvCmd) Usage() string {
	return `dpa csv [-neue] [-ignore <betrag>]

  Liest die CSV-Dateien aus den konfigurierten Verzeichnissen in die
  Kursdatenbank ein. Neue Kurse müssen lückenlos an die vorhandenen
  anschließen; mit -ignore wird eine Abweichung bis zum angegebenen
  Betrag toleriert. Eingelesene Dateien wandern ins Unterverzeichnis
  'fertig'.

`
}

func (c *csvCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.createNew, "neue", false, "neue Fonds in der Kursdatenbank anlegen")
	f.Float64Var(&c.ignore, "ignore", 0, "tolerierte Abweichung beim Anschluss")
}

func (c *csvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	app, err := openApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer app.Close()

	dirs := app.csvDirs()
	if len(dirs) == 0 {
		fmt.Fprintln(os.Stderr, "kein csv_verzeichnis konfiguriert")
		return subcommands.ExitFailure
	}

	im := csvimport.New(app.Securities, app.Prices)
	im.CreateNew = c.createNew
	im.MaxDelta = c.ignore

	var msgs messageLog
	total := 0
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			msgs.Warnf("%s existiert nicht", dir)
			continue
		}
		imported, problems, err := im.ScanDir(dir)
		if err != nil {
			msgs.Errorf("%s: %v", dir, err)
			continue
		}
		for _, p := range problems {
			msgs.Errorf("%s", p)
		}
		total += imported
	}

	fmt.Printf("%d Datei(en) eingelesen\n", total)
	msgs.Report()
	if msgs.HasErrors() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
