// Package csvimport ingests end-of-day price CSV exports into the price
// database. Two file layouts are understood, recognized by their file name:
// ariva.de exports ("wkn_<wkn>_historic.csv") and onvista chart exports
// ("history_<notation>-...csv"). Imported files move into a fertig/
// subdirectory so a rerun does not read them twice.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/pricedb"
	"github.com/MStrecke/depotauswertung/store"
	"github.com/shopspring/decimal"
)

// doneSubdir receives successfully imported files.
const doneSubdir = "fertig"

var (
	// ErrUnknownFile is returned when a file name matches no known layout.
	ErrUnknownFile = errors.New("file name matches no known csv layout")
	// ErrNoSplice is returned when the CSV does not contain the last date
	// already stored, so the two series cannot be joined gap-free.
	ErrNoSplice = errors.New("csv does not reach back to the last stored date")
	// ErrSpliceMismatch is returned when the overlapping close deviates
	// beyond the allowed tolerance.
	ErrSpliceMismatch = errors.New("close deviates on the splice date")
)

// A format recognizes files of one source and parses them.
type format interface {
	// match extracts the source's instrument key from the file name.
	match(name string) (key string, ok bool)
	// read parses the file into ascending end-of-day prices.
	read(path, currency string) ([]depot.EODPrice, error)
	// isin resolves the instrument key against the master data.
	isin(secs *store.Securities, key string) (string, bool)
}

// Importer reads CSV files into the price database.
type Importer struct {
	secs *store.Securities
	db   *pricedb.DB

	// CreateNew allows registering instruments not yet in the database.
	CreateNew bool
	// OnlyNewer drops rows on or before the last stored date instead of
	// reporting them as duplicates.
	OnlyNewer bool
	// MaxDelta is the tolerated close deviation on the splice date.
	// Negative means any deviation is accepted.
	MaxDelta float64

	formats []format
}

func New(secs *store.Securities, db *pricedb.DB) *Importer {
	return &Importer{
		secs:      secs,
		db:        db,
		OnlyNewer: true,
		formats:   []format{arivaFormat{}, onvistaFormat{}},
	}
}

// ScanDir imports every .csv file in dir. A broken file does not stop the
// scan; its problem is collected and reported at the end, one line per file.
func (im *Importer) ScanDir(dir string) (imported int, problems []string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		if err := im.importFile(dir, e.Name()); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", e.Name(), err))
			continue
		}
		imported++
	}
	return imported, problems, nil
}

func (im *Importer) importFile(dir, name string) error {
	f, key := im.recognize(name)
	if f == nil {
		return ErrUnknownFile
	}
	code, ok := f.isin(im.secs, key)
	if !ok {
		return fmt.Errorf("no security with key %q in master data", key)
	}
	sec, _ := im.secs.Get(code)

	prices, err := f.read(filepath.Join(dir, name), sec.Currency)
	if err != nil {
		return err
	}
	if len(prices) == 0 {
		return errors.New("no rows")
	}

	if _, err := im.db.Count(code); errors.Is(err, pricedb.ErrUnknownISIN) {
		if !im.CreateNew {
			return fmt.Errorf("%s not in price database and creating is disabled", code)
		}
		if err := im.db.InsertISIN(code, sec.Currency); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	keep, err := im.splice(code, prices)
	if err != nil {
		return err
	}
	if err := im.db.InsertPrices(code, keep); err != nil {
		return err
	}
	return moveDone(dir, name)
}

func (im *Importer) recognize(name string) (format, string) {
	for _, f := range im.formats {
		if key, ok := f.match(name); ok {
			return f, key
		}
	}
	return nil, ""
}

// splice joins the CSV series onto the stored one. The CSV must contain the
// last stored date, and its close there must agree within MaxDelta. With
// OnlyNewer set, only rows after that date survive.
func (im *Importer) splice(code string, prices []depot.EODPrice) ([]depot.EODPrice, error) {
	last, err := im.db.LastPrice(code)
	if errors.Is(err, pricedb.ErrNoPrice) {
		return prices, nil
	}
	if err != nil {
		return nil, err
	}

	found := false
	var keep []depot.EODPrice
	for _, p := range prices {
		if p.Date == last.Date {
			found = true
			if diff := math.Abs(p.Close - last.Close); im.MaxDelta >= 0 && diff > im.MaxDelta {
				return nil, fmt.Errorf("%w: %s stored %.4f, csv %.4f", ErrSpliceMismatch, last.Date, last.Close, p.Close)
			}
		}
		if im.OnlyNewer && !p.Date.After(last.Date) {
			continue
		}
		keep = append(keep, p)
	}
	if !found {
		return nil, fmt.Errorf("%w: last stored date is %s", ErrNoSplice, last.Date)
	}
	return keep, nil
}

func moveDone(dir, name string) error {
	done := filepath.Join(dir, doneSubdir)
	if err := os.MkdirAll(done, 0o755); err != nil {
		return err
	}
	target := filepath.Join(done, name)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("%s already exists, not moving", target)
	}
	return os.Rename(filepath.Join(dir, name), target)
}

// german parses a price column with comma decimals ("1.234,56").
func german(s string) (float64, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return d.InexactFloat64(), nil
}

// rows reads the semicolon separated file, checks its header line and hands
// every following record to row. A leading UTF-8 BOM is tolerated.
func rows(path string, header []string, row func(rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = -1

	first, err := r.Read()
	if err != nil {
		return err
	}
	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\ufeff")
	}
	if strings.Join(first, ";") != strings.Join(header, ";") {
		return fmt.Errorf("unexpected header %q", strings.Join(first, ";"))
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := row(rec); err != nil {
			return err
		}
	}
}

// arivaFormat reads ariva.de history exports. Their rows come newest first
// and carry no currency column.
type arivaFormat struct{}

var arivaName = regexp.MustCompile(`^wkn_([0-9A-Za-z]+)_historic\.csv$`)

func (arivaFormat) match(name string) (string, bool) {
	m := arivaName.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (arivaFormat) isin(secs *store.Securities, key string) (string, bool) {
	for _, s := range secs.All() {
		if s.WKN != "" && strings.EqualFold(s.WKN, key) {
			return s.ISIN, true
		}
	}
	return "", false
}

func (arivaFormat) read(path, currency string) ([]depot.EODPrice, error) {
	var prices []depot.EODPrice
	header := []string{"Datum", "Erster", "Hoch", "Tief", "Schlusskurs", "Stuecke", "Volumen"}
	err := rows(path, header, func(rec []string) error {
		if len(rec) != 7 {
			return fmt.Errorf("want 7 columns, got %d", len(rec))
		}
		on, err := depot.ParseISODate(rec[0])
		if err != nil {
			return err
		}
		p := depot.EODPrice{Date: on}
		if p.Close, err = german(rec[4]); err != nil {
			return err
		}
		if rec[5] != "" {
			if p.Pieces, err = german(rec[5]); err != nil {
				return err
			}
		}
		if rec[6] != "" {
			if p.Volume, err = german(rec[6]); err != nil {
				return err
			}
		}
		prices = append(prices, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].Date.Before(prices[j].Date) })
	return prices, nil
}

// onvistaFormat reads onvista chart exports. Their rows carry the quote
// currency, which must agree with the master data.
type onvistaFormat struct{}

var onvistaName = regexp.MustCompile(`^history_(\d+)-`)

func (onvistaFormat) match(name string) (string, bool) {
	m := onvistaName.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (onvistaFormat) isin(secs *store.Securities, key string) (string, bool) {
	for _, s := range secs.All() {
		if string(s.OnvistaNotation) == key {
			return s.ISIN, true
		}
	}
	return "", false
}

func (onvistaFormat) read(path, currency string) ([]depot.EODPrice, error) {
	var prices []depot.EODPrice
	header := []string{"Datum", "Eröffnung", "Hoch", "Tief", "Schluss", "Währung", "Volumen"}
	err := rows(path, header, func(rec []string) error {
		if len(rec) != 7 {
			return fmt.Errorf("want 7 columns, got %d", len(rec))
		}
		on, err := depot.ParseDate(rec[0])
		if err != nil {
			return err
		}
		if rec[5] != currency {
			return fmt.Errorf("%s quoted in %s, master data says %s", on, rec[5], currency)
		}
		p := depot.EODPrice{Date: on}
		if p.Close, err = german(rec[4]); err != nil {
			return err
		}
		if p.Volume, err = german(rec[6]); err != nil {
			return err
		}
		prices = append(prices, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].Date.Before(prices[j].Date) })
	return prices, nil
}
