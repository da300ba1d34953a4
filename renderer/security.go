package renderer

import (
	"fmt"
	"strings"

	"github.com/MStrecke/depotauswertung/pricedb"
	"github.com/MStrecke/depotauswertung/store"
)

// SecurityMarkdown renders one master-data entry together with the price
// coverage stored for it. first and last may be nil when the database holds
// no quotes yet.
func SecurityMarkdown(sec *store.Security, count int, first, last *pricedb.Price) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sec.Name)
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|:---|")
	fmt.Fprintf(&b, "| ISIN | %s |\n", sec.ISIN)
	if sec.WKN != "" {
		fmt.Fprintf(&b, "| WKN | %s |\n", sec.WKN)
	}
	fmt.Fprintf(&b, "| Typ | %s |\n", sec.Type)
	fmt.Fprintf(&b, "| Kurswährung | %s |\n", sec.Currency)
	if !sec.IsCurrencyOrIndex() {
		if f, err := sec.ExemptionFraction(); err == nil {
			fmt.Fprintf(&b, "| Teilfreistellung | %s |\n", Percent(f))
		}
		fmt.Fprintf(&b, "| Thesaurierend | %t |\n", sec.Accumulating)
	}

	fmt.Fprintf(&b, "\n## Kursdatenbank\n\n")
	if count == 0 || first == nil || last == nil {
		fmt.Fprintln(&b, "Keine Kurse gespeichert.")
		return b.String()
	}
	fmt.Fprintf(&b, "%d Kurse von %s (%s) bis %s (%s).\n",
		count,
		first.Date, Num(first.Close),
		last.Date, Num(last.Close))
	return b.String()
}
