package depot

import "fmt"

// Kind identifies the type of a depot transaction.
type Kind string

const (
	// KindCarryForward is the holding at the start of a year, modeled as a
	// lot dated at the year's start. At most one per year ledger, always first.
	KindCarryForward Kind = "carry-forward"
	// KindBuy is an acquisition of units.
	KindBuy Kind = "buy"
	// KindSell is a disposal of units, consumed from the oldest lots first.
	KindSell Kind = "sell"
	// KindDistribution is a cash payout; it has no effect on lots.
	KindDistribution Kind = "distribution"
)

// lotBearing reports whether entries of this kind hold units that sales can consume.
func (k Kind) lotBearing() bool { return k == KindCarryForward || k == KindBuy }

// ParseKind parses the transaction type keyword used in the data files.
// Carry-forward lots are never read from a file; the orchestrator seeds them
// at the year boundary.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "kauf":
		return KindBuy, nil
	case "verkauf":
		return KindSell, nil
	case "ausschuettung":
		return KindDistribution, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Record is one externally supplied transaction for a single instrument and
// account. Records are immutable inputs; the ledger derives its own mutable
// entries from them.
type Record struct {
	Kind Kind
	Date Date
	// Quantity is the number of units bought or sold. Unused for distributions.
	Quantity float64
	// Price is the unit price on Date. For distributions it holds the
	// distributed amount instead.
	Price float64
	// Factor converts Price into the valuation currency as of Date.
	Factor float64
}
