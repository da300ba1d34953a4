package renderer

import (
	"text/template"

	depot "github.com/MStrecke/depotauswertung"
	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// german formats plain numbers the way the reports expect them,
// with comma decimals and dot grouping.
var german = message.NewPrinter(language.German)

// Num formats a value with two decimals ("1.234,56").
func Num(v float64) string { return german.Sprintf("%.2f", v) }

// Qty formats a unit count; holdings carry up to six decimals.
func Qty(v float64) string { return german.Sprintf("%.6g", v) }

// Amount formats a monetary value in the given currency. Unknown currency
// codes fall back to the plain number with the code appended.
func Amount(v float64, currency string) string {
	if money.GetCurrency(currency) == nil {
		return Num(v) + " " + currency
	}
	return money.NewFromFloat(v, currency).Display()
}

// Percent formats a fraction as a whole percentage ("30 %").
func Percent(fraction float64) string { return german.Sprintf("%.0f %%", fraction*100) }

// Opt formats an optional value; nil renders as an empty cell.
func Opt(v *float64) string {
	if v == nil {
		return ""
	}
	return Num(*v)
}

// kindLabel translates transaction kinds into the wording of the data files.
func kindLabel(k depot.Kind) string {
	switch k {
	case depot.KindBuy:
		return "Kauf"
	case depot.KindSell:
		return "Verkauf"
	case depot.KindDistribution:
		return "Ausschüttung"
	case depot.KindCarryForward:
		return "Übertrag"
	}
	return string(k)
}

var funcs = template.FuncMap{
	"num":     Num,
	"qty":     Qty,
	"amount":  Amount,
	"percent": Percent,
	"opt":     Opt,
	"kind":    kindLabel,
}
