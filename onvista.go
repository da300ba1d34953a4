package depot

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// onvista's free EOD endpoint:
//
//	https://api.onvista.de/api/v1/instruments
//	  /FUND/{entity}           (or /CURRENCY/{entity} for FX pairs)
//	  /eod_history?
//	    idNotation={notation}&
//	    range=M1&              (one month, the free tier)
//	    startDate={YYYY-MM-DD}
//
// The response carries parallel arrays (datetimeLast, last, low, high,
// volume) plus market metadata.

// EODPrice is one end-of-day quote as returned by a price provider or a CSV
// price file. Low, High, Pieces and Volume are optional, depending on the
// source.
type EODPrice struct {
	Date   Date
	Close  float64
	Low    float64
	High   float64
	Pieces float64
	Volume float64
}

// EODHistory is the result of one provider query.
type EODHistory struct {
	Market   string
	Currency string
	Prices   []EODPrice
}

// OnvistaInstrument identifies an instrument on onvista. Both IDs come from
// the security master data.
type OnvistaInstrument struct {
	Entity   string // onvista entity id
	Notation string // onvista notation id
	Currency bool   // true for FX pairs, they live under another path
}

// FetchOnvistaEOD queries the end-of-day history of one instrument starting
// at the given date. Responses are cached on disk for the day.
func FetchOnvistaEOD(inst OnvistaInstrument, start Date) (*EODHistory, error) {
	return fetchOnvistaEOD(daily(), inst, start)
}

func fetchOnvistaEOD(client *http.Client, inst OnvistaInstrument, start Date) (*EODHistory, error) {
	kind := "FUND"
	if inst.Currency {
		kind = "CURRENCY"
	}
	addr := fmt.Sprintf("https://api.onvista.de/api/v1/instruments/%s/%s/eod_history?idNotation=%s&range=M1&startDate=%s",
		kind, inst.Entity, inst.Notation, start.ISO())

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", inst.Entity, err)
	}

	res := &EODHistory{}
	if market, err := jsonString(jobj, "$.market.name"); err == nil {
		res.Market = market
	}
	currency, err := jsonString(jobj, "$.isoCurrency")
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", inst.Entity, err)
	}
	res.Currency = currency

	stamps, err := jsonFloats(jobj, "$.datetimeLast")
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", inst.Entity, err)
	}
	last, err := jsonFloats(jobj, "$.last")
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", inst.Entity, err)
	}
	low, _ := jsonFloats(jobj, "$.low")
	high, _ := jsonFloats(jobj, "$.high")
	volume, _ := jsonFloats(jobj, "$.volume")

	if len(last) != len(stamps) {
		return nil, fmt.Errorf("error parsing %q: %d dates but %d closes", inst.Entity, len(stamps), len(last))
	}
	for i, stamp := range stamps {
		p := EODPrice{
			Date:  NewDate(time.Unix(int64(stamp), 0).UTC().Date()),
			Close: last[i],
		}
		if i < len(low) {
			p.Low = low[i]
		}
		if i < len(high) {
			p.High = high[i]
		}
		if i < len(volume) {
			p.Volume = volume[i]
		}
		res.Prices = append(res.Prices, p)
	}
	return res, nil
}

// jsonString extracts a single string with a jsonpath expression.
func jsonString(jobj any, path string) (string, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("%q: %w", path, err)
	}
	// jsonpath sometimes returns a list of one answer instead of the answer.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("%q: not a string: %v", path, jval)
	}
	return s, nil
}

// jsonFloats extracts an array of numbers with a jsonpath expression.
func jsonFloats(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not an array: %v", path, jval)
	}
	res := make([]float64, 0, len(jlist))
	for _, jitem := range jlist {
		v, ok := jitem.(float64)
		if !ok {
			return nil, fmt.Errorf("%q: not a float: %v", path, jitem)
		}
		res = append(res, v)
	}
	return res, nil
}
