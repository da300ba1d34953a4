// Package pricedb stores end-of-day closing prices in a local SQLite
// database and answers the price and currency-factor lookups of the
// valuation engine.
//
// Currency pairs are stored as synthetic instruments whose "ISIN" is the
// valuation currency followed by the price currency (e.g. EURUSD holding the
// USD per EUR close). That convention stays inside this package; callers use
// Factor.
package pricedb

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"math"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	depot "github.com/MStrecke/depotauswertung"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrUnknownISIN is returned for instruments the database has never seen.
var ErrUnknownISIN = errors.New("isin not in price database")

// ErrNoPrice is returned when an instrument is known but has no price at or
// before the requested date.
var ErrNoPrice = errors.New("no price for date")

// DB is an open price database.
type DB struct {
	db *sql.DB
}

// Open opens the price database at path, creating and migrating it as
// needed. Use ":memory:" for tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open price database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping price database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate price database: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error { return d.db.Close() }

// Price is one end-of-day close of an instrument.
type Price struct {
	ISIN     string
	Currency string
	Date     depot.Date
	Close    float64
	Pieces   sql.NullFloat64
	Volume   sql.NullFloat64
	// Exact is false when no close exists for the requested date and the
	// most recent earlier close was returned instead.
	Exact bool
}

// AllISINs lists the instruments known to the database, sorted.
func (d *DB) AllISINs() ([]string, error) {
	rows, err := d.db.Query("SELECT isin FROM fonds ORDER BY isin")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var isins []string
	for rows.Next() {
		var isin string
		if err := rows.Scan(&isin); err != nil {
			return nil, err
		}
		isins = append(isins, isin)
	}
	return isins, rows.Err()
}

// fond resolves an ISIN to its row id and price currency.
func (d *DB) fond(isin string) (id int64, currency string, err error) {
	err = d.db.QueryRow("SELECT fondsid, waehrung FROM fonds WHERE isin=?", isin).Scan(&id, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", fmt.Errorf("%w: %s", ErrUnknownISIN, isin)
	}
	return id, currency, err
}

// InsertISIN declares a new instrument with its price currency.
func (d *DB) InsertISIN(isin, currency string) error {
	_, err := d.db.Exec("INSERT INTO fonds (isin, waehrung) VALUES (?,?)", isin, currency)
	return err
}

// Count returns the number of stored closes, for one instrument or, with an
// empty isin, overall.
func (d *DB) Count(isin string) (int, error) {
	var n int
	if isin == "" {
		err := d.db.QueryRow("SELECT count(*) FROM kurse").Scan(&n)
		return n, err
	}
	id, _, err := d.fond(isin)
	if err != nil {
		return 0, err
	}
	err = d.db.QueryRow("SELECT count(*) FROM kurse WHERE fondsid=?", id).Scan(&n)
	return n, err
}

func (d *DB) scanPrice(isin, currency string, row *sql.Row) (*Price, error) {
	p := &Price{ISIN: isin, Currency: currency}
	var datum string
	err := row.Scan(&datum, &p.Close, &p.Pieces, &p.Volume)
	if err != nil {
		return nil, err
	}
	p.Date, err = depot.ParseISODate(datum)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PriceOn returns the close of an instrument on a date. When the date has no
// entry the most recent earlier close is returned with Exact unset; when
// there is none at all the error is ErrNoPrice.
func (d *DB) PriceOn(isin string, on depot.Date) (*Price, error) {
	id, currency, err := d.fond(isin)
	if err != nil {
		return nil, err
	}

	p, err := d.scanPrice(isin, currency, d.db.QueryRow(
		"SELECT datum, schluss, stueck, volumen FROM kurse WHERE datum=? AND fondsid=?", on.ISO(), id))
	if err == nil {
		p.Exact = true
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	p, err = d.scanPrice(isin, currency, d.db.QueryRow(
		"SELECT datum, schluss, stueck, volumen FROM kurse WHERE datum<=? AND fondsid=? ORDER BY datum DESC LIMIT 1", on.ISO(), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s on %s", ErrNoPrice, isin, on)
	}
	return p, err
}

// LastPrice returns the most recent close of an instrument.
func (d *DB) LastPrice(isin string) (*Price, error) {
	id, currency, err := d.fond(isin)
	if err != nil {
		return nil, err
	}
	p, err := d.scanPrice(isin, currency, d.db.QueryRow(
		"SELECT datum, schluss, stueck, volumen FROM kurse WHERE fondsid=? ORDER BY datum DESC LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoPrice, isin)
	}
	if err != nil {
		return nil, err
	}
	p.Exact = true
	return p, nil
}

// FirstLast returns the earliest and latest stored close of an instrument,
// or nil, nil when it has none.
func (d *DB) FirstLast(isin string) (first, last *Price, err error) {
	id, currency, err := d.fond(isin)
	if err != nil {
		return nil, nil, err
	}
	first, err = d.scanPrice(isin, currency, d.db.QueryRow(
		"SELECT datum, schluss, stueck, volumen FROM kurse WHERE fondsid=? ORDER BY datum ASC LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	last, err = d.scanPrice(isin, currency, d.db.QueryRow(
		"SELECT datum, schluss, stueck, volumen FROM kurse WHERE fondsid=? ORDER BY datum DESC LIMIT 1", id))
	if err != nil {
		return nil, nil, err
	}
	first.Exact, last.Exact = true, true
	return first, last, nil
}

// InsertPrices stores end-of-day closes for an instrument. Existing dates
// conflict; the caller decides whether that is an error worth aborting a
// whole import, so this inserts one by one and reports the offending date.
func (d *DB) InsertPrices(isin string, prices []depot.EODPrice) error {
	id, _, err := d.fond(isin)
	if err != nil {
		return err
	}
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	for _, p := range prices {
		var pieces, volume any
		if p.Pieces != 0 {
			pieces = p.Pieces
		}
		if p.Volume != 0 {
			volume = p.Volume
		}
		_, err := tx.Exec("INSERT INTO kurse (datum, fondsid, schluss, stueck, volumen) VALUES (?,?,?,?,?)",
			p.Date.ISO(), id, p.Close, pieces, volume)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("cannot insert %s close of %s: %w", isin, p.Date, err)
		}
	}
	return tx.Commit()
}

// Plausible checks a new close against the last stored one and fails when
// the jump exceeds maxDelta (absolute). A maxDelta of 0 disables the check.
// This guards against price series in the wrong currency or unit.
func (d *DB) Plausible(isin string, next depot.EODPrice, maxDelta float64) error {
	if maxDelta == 0 {
		return nil
	}
	last, err := d.LastPrice(isin)
	if errors.Is(err, ErrNoPrice) {
		return nil
	}
	if err != nil {
		return err
	}
	if delta := math.Abs(next.Close - last.Close); delta > maxDelta {
		return fmt.Errorf("%s: implausible jump of %.4f from %s (%.4f) to %s (%.4f)",
			isin, delta, last.Date, last.Close, next.Date, next.Close)
	}
	return nil
}

// Factor returns the multiplicative factor converting an amount in currency
// `from` into currency `to` as of the given date, looked up from the
// synthetic to+from instrument. A missing rate is reported as
// depot.ErrNoExchangeRate.
func (d *DB) Factor(from, to string, on depot.Date) (float64, error) {
	if from == to {
		return 1.0, nil
	}
	pair := to + from
	p, err := d.PriceOn(pair, on)
	if errors.Is(err, ErrUnknownISIN) || errors.Is(err, ErrNoPrice) {
		return 0, fmt.Errorf("%w: %s -> %s on %s", depot.ErrNoExchangeRate, from, to, on)
	}
	if err != nil {
		return 0, err
	}
	// The pair is quoted as `from` units per `to` unit, so invert.
	return 1.0 / p.Close, nil
}
