// Package cmd implements the CLI application around the depot data.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/isin"
	"github.com/MStrecke/depotauswertung/pricedb"
	"github.com/MStrecke/depotauswertung/store"
	"github.com/google/subcommands"
	"gopkg.in/ini.v1"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&vorabCmd{}, "auswertung")
	c.Register(&transactionsCmd{}, "auswertung")

	c.Register(&securityCmd{}, "stammdaten")

	c.Register(&dbISINsCmd{}, "kurse")
	c.Register(&dbPriceCmd{}, "kurse")
	c.Register(&csvCmd{}, "kurse")
	c.Register(&refreshCmd{}, "kurse")

	c.Register(&topicCmd{}, "hilfe")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "~/.depotauswertung.ini", "Path to the configuration file")

// App bundles the loaded data files and the price database.
type App struct {
	cfg *ini.File

	Securities   *store.Securities
	Depots       *store.Depots
	Transactions *store.Transactions
	Prices       *pricedb.DB
	Checker      *isin.Checker
}

// expandHome resolves a leading ~ in configured paths.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// configPath reads a mandatory path from the configuration.
func configPath(cfg *ini.File, section, key string) (string, error) {
	k := cfg.Section(section).Key(key)
	if k.String() == "" {
		return "", fmt.Errorf("key %q missing in section [%s] of %s", key, section, *configFile)
	}
	return expandHome(k.String()), nil
}

// openApp loads the configuration, the data files and the price database.
// The caller owns the returned App and must Close it.
func openApp() (*App, error) {
	cfg, err := ini.Load(expandHome(*configFile))
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}

	app := &App{cfg: cfg, Checker: isin.NewChecker()}

	secFile, err := configPath(cfg, "data", "wertpapiere_stammdaten")
	if err != nil {
		return nil, err
	}
	app.Securities, err = store.LoadSecurities(secFile, app.Checker)
	if err != nil {
		return nil, err
	}

	depotFile, err := configPath(cfg, "data", "depots")
	if err != nil {
		return nil, err
	}
	app.Depots, err = store.LoadDepots(depotFile)
	if err != nil {
		return nil, err
	}

	portfolioFile, err := configPath(cfg, "data", "portfolio")
	if err != nil {
		return nil, err
	}
	distFile, err := configPath(cfg, "data", "ausschuettung")
	if err != nil {
		return nil, err
	}
	app.Transactions, err = store.LoadTransactions(portfolioFile, distFile, app.Depots, app.Securities, app.Checker)
	if err != nil {
		return nil, err
	}

	dbFile, err := configPath(cfg, "databases", "kurse")
	if err != nil {
		return nil, err
	}
	app.Prices, err = pricedb.Open(dbFile)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) Close() {
	if a.Prices != nil {
		a.Prices.Close()
	}
}

// csvDirs lists the configured CSV import directories, one per source
// section that carries a csv_verzeichnis key.
func (a *App) csvDirs() []string {
	var dirs []string
	for _, section := range []string{"onvista", "ariva"} {
		if dir := a.cfg.Section(section).Key("csv_verzeichnis").String(); dir != "" {
			dirs = append(dirs, expandHome(dir))
		}
	}
	return dirs
}

// onvistaInstrument builds the online query parameters of a security. The
// second return is false when the master data carries no onvista IDs.
func onvistaInstrument(sec *store.Security) (depot.OnvistaInstrument, bool) {
	if sec.OnvistaEntity == "" || sec.OnvistaNotation == "" {
		return depot.OnvistaInstrument{}, false
	}
	return depot.OnvistaInstrument{
		Entity:   string(sec.OnvistaEntity),
		Notation: string(sec.OnvistaNotation),
		Currency: strings.EqualFold(sec.Type, store.TypeCurrency),
	}, true
}
