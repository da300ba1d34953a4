package depot

import "errors"

// The error kinds of the engine. There is no hierarchy; callers match with
// errors.Is. All of them except ErrNoData are fatal for the instrument being
// evaluated, but must not abort a batch run over other instruments.
var (
	// ErrNonChronological marks a transaction supplied out of date order.
	ErrNonChronological = errors.New("transactions not in chronological order")

	// ErrWrongYear marks a transaction dated outside the year of a year-scoped ledger.
	ErrWrongYear = errors.New("transaction outside the evaluation year")

	// ErrOversold marks a sale exceeding the units held at that point, a
	// data-integrity fault in the transaction source.
	ErrOversold = errors.New("more units sold than held")

	// ErrInvalidState marks a violated carry-forward invariant.
	ErrInvalidState = errors.New("invalid ledger state")

	// ErrNoExchangeRate marks a missing currency conversion rate for a required date.
	ErrNoExchangeRate = errors.New("no exchange rate available")

	// ErrNoData signals that there is nothing to evaluate for the requested
	// scope. Callers skip and report nothing; it is not a failure.
	ErrNoData = errors.New("no data for the requested scope")
)
