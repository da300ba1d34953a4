package depot

import "fmt"

// tranche is one still-open acquisition in the FIFO queue.
type tranche struct {
	date     Date
	quantity float64
	price    float64
	factor   float64
}

// RealizedSale is the part of a sale matched against a single acquisition
// tranche. A sale spanning several tranches produces several rows.
type RealizedSale struct {
	SaleDate Date
	BuyDate  Date
	Quantity float64
	// PurchaseValue and SaleValue are converted into the valuation currency
	// with each leg's own transaction-date factor; there is no common
	// valuation-date normalization here, unlike the year valuation.
	PurchaseValue float64
	SaleValue     float64
	Gain          float64
}

// RealizedGains reports the capital gains realized by sales in one year,
// computed over the complete transaction history of the instrument.
type RealizedGains struct {
	Year int
	// Sales itemizes the matches whose sale date falls in Year.
	Sales []RealizedSale
	// Total sums the gains of all sales across the whole history, not only
	// those of Year.
	Total float64
}

// ComputeRealizedGains replays the full, chronological transaction history of
// one instrument/account pair, matching every sale against the oldest open
// acquisition tranches (FIFO). It fails with ErrOversold when a sale exceeds
// the units held, and with ErrNonChronological when the history is out of
// order; both are data-integrity faults of the source.
func ComputeRealizedGains(year int, records []Record) (*RealizedGains, error) {
	res := &RealizedGains{Year: year}

	var queue []*tranche
	var last Date
	var hasLast bool
	for _, r := range records {
		if hasLast && last.After(r.Date) {
			return nil, fmt.Errorf("%w: %s > %s", ErrNonChronological, last, r.Date)
		}
		last, hasLast = r.Date, true

		switch r.Kind {
		case KindCarryForward, KindBuy:
			queue = append(queue, &tranche{date: r.Date, quantity: r.Quantity, price: r.Price, factor: r.Factor})
		case KindSell:
			need := r.Quantity
			for need > 0 && len(queue) > 0 {
				t := queue[0]
				consumed := min(need, t.quantity)

				purchaseValue := Round(t.price*consumed*t.factor, 2)
				saleValue := Round(r.Price*consumed*r.Factor, 2)
				gain := Round(saleValue-purchaseValue, 2)
				res.Total += gain
				if r.Date.Year() == year {
					res.Sales = append(res.Sales, RealizedSale{
						SaleDate:      r.Date,
						BuyDate:       t.date,
						Quantity:      consumed,
						PurchaseValue: purchaseValue,
						SaleValue:     saleValue,
						Gain:          gain,
					})
				}

				need -= consumed
				t.quantity -= consumed
				if t.quantity == 0 {
					queue = queue[1:]
				}
			}
			if need > 0 {
				return nil, fmt.Errorf("%w: %s sale of %v units, %v uncovered", ErrOversold, r.Date, r.Quantity, need)
			}
		case KindDistribution:
			// no lot effect
		}
	}

	res.Total = Round(res.Total, 2)
	return res, nil
}
