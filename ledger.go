package depot

import "fmt"

// Entry is a transaction replayed into a ledger, together with the lot state
// it carries. Buy and carry-forward entries are lots; sell and distribution
// entries only contribute to the aggregates.
type Entry struct {
	Kind Kind
	Date Date

	// OpeningQuantity is the signed quantity at creation time: positive for
	// carry-forward and buys, negative for sells. Display only.
	OpeningQuantity float64

	// Remaining is the unconsumed part of a lot, reduced by later sales.
	// Invariant: 0 <= Remaining <= OpeningQuantity. Meaningless for
	// non-lot-bearing kinds.
	Remaining float64

	// Price is the unit price on Date, or the distributed amount for
	// distributions.
	Price float64

	// Factor converts Price into the valuation currency as of Date.
	Factor float64

	// MonthFraction is the year fraction credited to this entry, captured at
	// creation from Date.
	MonthFraction float64

	// Valuation fields, populated by Evaluate for lot-bearing entries and nil
	// for all others.
	BaseYield    *float64
	OpeningValue *float64
	ClosingValue *float64
	Appreciation *float64
}

// Ledger replays the transactions of one instrument/account pair in
// chronological order and tracks the remaining units of every acquisition
// lot. It holds no cross-evaluation state: build one, replay, read the
// result, discard.
type Ledger struct {
	entries []*Entry
	last    Date
	hasLast bool
	total   float64 // running signed unit count, display only
}

// NewLedger returns an empty, unscoped ledger.
func NewLedger() *Ledger { return &Ledger{} }

// Entries returns the replayed entries in insertion order.
func (l *Ledger) Entries() []*Entry { return l.entries }

// TotalQuantity returns the running signed sum of all bought and sold units.
func (l *Ledger) TotalQuantity() float64 { return l.total }

// append creates an entry after enforcing chronological order. Entries must
// arrive in non-decreasing date order; ties keep their insertion order.
func (l *Ledger) append(kind Kind, on Date, quantity, price, factor float64) (*Entry, error) {
	if l.hasLast && l.last.After(on) {
		return nil, fmt.Errorf("%w: %s > %s", ErrNonChronological, l.last, on)
	}
	l.last, l.hasLast = on, true

	e := &Entry{
		Kind:            kind,
		Date:            on,
		OpeningQuantity: quantity,
		Price:           price,
		Factor:          factor,
		MonthFraction:   MonthFraction(on),
	}
	if kind.lotBearing() {
		e.Remaining = quantity
	}
	l.entries = append(l.entries, e)
	return e, nil
}

// Buy records an acquisition of quantity units at the given unit price.
func (l *Ledger) Buy(on Date, quantity, price, factor float64) error {
	_, err := l.append(KindBuy, on, quantity, price, factor)
	if err != nil {
		return err
	}
	l.total += quantity
	return nil
}

// Sell records a disposal of quantity units and immediately consumes them
// from the oldest lots (carry-forward first, then buys in date order). It
// fails with ErrOversold if the existing lots cannot cover the quantity.
func (l *Ledger) Sell(on Date, quantity, price, factor float64) error {
	_, err := l.append(KindSell, on, -quantity, price, factor)
	if err != nil {
		return err
	}
	l.total -= quantity
	return l.consume(quantity)
}

// consume takes quantity units out of the lots, oldest first.
func (l *Ledger) consume(quantity float64) error {
	for _, e := range l.entries {
		if !e.Kind.lotBearing() {
			continue
		}
		if quantity > e.Remaining {
			quantity -= e.Remaining
			e.Remaining = 0
		} else {
			e.Remaining -= quantity
			quantity = 0
		}
		if quantity == 0 {
			break
		}
	}
	if quantity != 0 {
		return fmt.Errorf("%w: %v units short", ErrOversold, quantity)
	}
	return nil
}

// Distribute records a cash payout. It has no effect on lots.
func (l *Ledger) Distribute(on Date, amount, factor float64) error {
	_, err := l.append(KindDistribution, on, 1, amount, factor)
	return err
}

// YearLedger is a Ledger scoped to exactly one calendar year. It rejects
// entries dated outside that year and accepts an optional carry-forward as
// its very first entry, seeding the holding at the year's start.
type YearLedger struct {
	Ledger
	year    int
	carried bool
}

// NewYearLedger returns an empty ledger scoped to year.
func NewYearLedger(year int) *YearLedger { return &YearLedger{year: year} }

// Year returns the calendar year this ledger is scoped to.
func (l *YearLedger) Year() int { return l.year }

func (l *YearLedger) checkYear(on Date) error {
	if on.Year() != l.year {
		return fmt.Errorf("%w: %s not in %d", ErrWrongYear, on, l.year)
	}
	return nil
}

// SetCarryForward seeds the holding at the year's start. It must be called
// before any other entry and at most once; otherwise it fails with
// ErrInvalidState.
func (l *YearLedger) SetCarryForward(on Date, quantity, price, factor float64) error {
	if l.carried {
		return fmt.Errorf("%w: carry-forward already set", ErrInvalidState)
	}
	if len(l.entries) > 0 {
		return fmt.Errorf("%w: carry-forward must be the first entry", ErrInvalidState)
	}
	if err := l.checkYear(on); err != nil {
		return err
	}
	if _, err := l.append(KindCarryForward, on, quantity, price, factor); err != nil {
		return err
	}
	l.total = quantity
	l.carried = true
	return nil
}

// Buy records an acquisition after checking the year scope.
func (l *YearLedger) Buy(on Date, quantity, price, factor float64) error {
	if err := l.checkYear(on); err != nil {
		return err
	}
	return l.Ledger.Buy(on, quantity, price, factor)
}

// Sell records a disposal after checking the year scope.
func (l *YearLedger) Sell(on Date, quantity, price, factor float64) error {
	if err := l.checkYear(on); err != nil {
		return err
	}
	return l.Ledger.Sell(on, quantity, price, factor)
}

// Distribute records a payout after checking the year scope.
func (l *YearLedger) Distribute(on Date, amount, factor float64) error {
	if err := l.checkYear(on); err != nil {
		return err
	}
	return l.Ledger.Distribute(on, amount, factor)
}

// Replay appends the given records in order.
func (l *YearLedger) Replay(records []Record) error {
	for _, r := range records {
		var err error
		switch r.Kind {
		case KindBuy:
			err = l.Buy(r.Date, r.Quantity, r.Price, r.Factor)
		case KindSell:
			err = l.Sell(r.Date, r.Quantity, r.Price, r.Factor)
		case KindDistribution:
			err = l.Distribute(r.Date, r.Price, r.Factor)
		default:
			err = fmt.Errorf("%w: cannot replay transaction kind %q", ErrInvalidState, r.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
