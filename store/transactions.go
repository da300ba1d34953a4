package store

import (
	"fmt"
	"regexp"
	"sort"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/MStrecke/depotauswertung/isin"
)

var amountRx = regexp.MustCompile(`^[.,0-9]+$`)

// portfolioRow is one buy, sell or carry-forward document.
type portfolioRow struct {
	ISIN     string     `yaml:"isin"`
	Type     string     `yaml:"typ"`
	Depot    string     `yaml:"depot"`
	Date     string     `yaml:"datum"`
	Quantity flexString `yaml:"anzahl"`
	Price    flexString `yaml:"kurs"`
	Currency string     `yaml:"waehrung"`
}

// distributionRow is one payout document.
type distributionRow struct {
	ISIN     string     `yaml:"isin"`
	Type     string     `yaml:"typ"`
	Depot    string     `yaml:"depot"`
	Date     string     `yaml:"datum"`
	Amount   flexString `yaml:"betrag"`
	Currency string     `yaml:"waehrung"`
}

// Tx is one validated transaction.
type Tx struct {
	ISIN     string
	Depot    string
	Kind     depot.Kind
	Date     depot.Date
	Quantity float64 // zero for distributions
	Price    float64 // unit price, or the distributed amount
	Currency string  // currency of Price
}

// sortKey orders transactions by day, then ISIN, then depot. Rows on the
// same day for the same pair keep their file order.
func (t Tx) sortKey() string {
	return t.Date.ISO() + "_" + t.ISIN + "_" + t.Depot
}

// Transactions is the merged, chronologically sorted content of the
// portfolio and distribution files.
type Transactions struct {
	txs []Tx
}

// LoadTransactions reads and validates both transaction files. Every row
// must reference a known ISIN and depot, carry a parseable date, and quote
// its amounts in the currency of its security.
func LoadTransactions(portfolioPath, distributionsPath string, depots *Depots, secs *Securities, checker *isin.Checker) (*Transactions, error) {
	t := &Transactions{}

	rows, err := loadDocuments[portfolioRow](portfolioPath)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		tx, err := t.portfolioTx(r, depots, secs, checker)
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", portfolioPath, i+1, err)
		}
		t.txs = append(t.txs, tx)
	}

	dists, err := loadDocuments[distributionRow](distributionsPath)
	if err != nil {
		return nil, err
	}
	for i, r := range dists {
		tx, err := t.distributionTx(r, depots, secs, checker)
		if err != nil {
			return nil, fmt.Errorf("%s: document %d: %w", distributionsPath, i+1, err)
		}
		t.txs = append(t.txs, tx)
	}

	sort.SliceStable(t.txs, func(i, j int) bool { return t.txs[i].sortKey() < t.txs[j].sortKey() })
	return t, nil
}

func (t *Transactions) rowCommon(code, dep, date, currency string, depots *Depots, secs *Securities, checker *isin.Checker) (depot.Date, error) {
	if err := checker.Check(code); err != nil {
		return depot.Date{}, err
	}
	if !secs.Has(code) {
		return depot.Date{}, fmt.Errorf("isin %s not in master data", code)
	}
	if !depots.Has(dep) {
		return depot.Date{}, fmt.Errorf("unknown depot %q", dep)
	}
	sec, _ := secs.Get(code)
	if currency != sec.Currency {
		return depot.Date{}, fmt.Errorf("currency %s, but %s is quoted in %s", currency, code, sec.Currency)
	}
	on, err := depot.ParseDate(date)
	if err != nil {
		return depot.Date{}, err
	}
	return on, nil
}

func parseAmount(field string, v flexString) (float64, error) {
	s := string(v)
	if !amountRx.MatchString(s) {
		return 0, fmt.Errorf("%s is %q, want digits with , and .", field, s)
	}
	return parseDecimal(s)
}

func (t *Transactions) portfolioTx(r *portfolioRow, depots *Depots, secs *Securities, checker *isin.Checker) (Tx, error) {
	kind, err := depot.ParseKind(r.Type)
	if err != nil {
		return Tx{}, err
	}
	if kind == depot.KindDistribution {
		return Tx{}, fmt.Errorf("typ %q belongs in the distribution file", r.Type)
	}
	on, err := t.rowCommon(r.ISIN, r.Depot, r.Date, r.Currency, depots, secs, checker)
	if err != nil {
		return Tx{}, err
	}
	qty, err := parseAmount("anzahl", r.Quantity)
	if err != nil {
		return Tx{}, err
	}
	price, err := parseAmount("kurs", r.Price)
	if err != nil {
		return Tx{}, err
	}
	return Tx{ISIN: r.ISIN, Depot: r.Depot, Kind: kind, Date: on, Quantity: qty, Price: price, Currency: r.Currency}, nil
}

func (t *Transactions) distributionTx(r *distributionRow, depots *Depots, secs *Securities, checker *isin.Checker) (Tx, error) {
	kind, err := depot.ParseKind(r.Type)
	if err != nil {
		return Tx{}, err
	}
	if kind != depot.KindDistribution {
		return Tx{}, fmt.Errorf("typ %q belongs in the portfolio file", r.Type)
	}
	on, err := t.rowCommon(r.ISIN, r.Depot, r.Date, r.Currency, depots, secs, checker)
	if err != nil {
		return Tx{}, err
	}
	amount, err := parseAmount("betrag", r.Amount)
	if err != nil {
		return Tx{}, err
	}
	return Tx{ISIN: r.ISIN, Depot: r.Depot, Kind: kind, Date: on, Price: amount, Currency: r.Currency}, nil
}

// Pair is one (depot, ISIN) combination with at least one transaction.
type Pair struct {
	Depot string
	ISIN  string
}

// Pairs returns every (depot, ISIN) combination, sorted by depot then ISIN.
func (t *Transactions) Pairs() []Pair {
	seen := make(map[Pair]bool)
	var pairs []Pair
	for _, tx := range t.txs {
		p := Pair{Depot: tx.Depot, ISIN: tx.ISIN}
		if !seen[p] {
			seen[p] = true
			pairs = append(pairs, p)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Depot != pairs[j].Depot {
			return pairs[i].Depot < pairs[j].Depot
		}
		return pairs[i].ISIN < pairs[j].ISIN
	})
	return pairs
}

// History returns the chronological transactions of one ISIN. An empty
// depot name selects all depots.
func (t *Transactions) History(code, dep string) []Tx {
	var out []Tx
	for _, tx := range t.txs {
		if tx.ISIN != code {
			continue
		}
		if dep != "" && tx.Depot != dep {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// All returns every transaction in chronological order.
func (t *Transactions) All() []Tx { return t.txs }

// Records converts a history into engine records, resolving each row's
// conversion factor from its quote currency into the valuation currency at
// its own date.
func Records(history []Tx, valuationCurrency string, factor func(from, to string, on depot.Date) (float64, error)) ([]depot.Record, error) {
	records := make([]depot.Record, 0, len(history))
	for _, tx := range history {
		f := 1.0
		if tx.Currency != valuationCurrency {
			var err error
			f, err = factor(tx.Currency, valuationCurrency, tx.Date)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", tx.Date, tx.ISIN, err)
			}
		}
		records = append(records, depot.Record{
			Kind:     tx.Kind,
			Date:     tx.Date,
			Quantity: tx.Quantity,
			Price:    tx.Price,
			Factor:   f,
		})
	}
	return records, nil
}
