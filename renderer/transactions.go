package renderer

import (
	"fmt"
	"strings"

	"github.com/MStrecke/depotauswertung/store"
)

// TransactionsMarkdown renders a transaction listing to a markdown table.
func TransactionsMarkdown(title string, txs []store.Tx) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(txs) == 0 {
		fmt.Fprintln(&b, "Keine Transaktionen.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Datum | Depot | ISIN | Art | Anzahl | Kurs/Betrag | Währung |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|:---|")
	for _, tx := range txs {
		qty := ""
		if tx.Quantity != 0 {
			qty = Qty(tx.Quantity)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Depot, tx.ISIN, kindLabel(tx.Kind), qty, Num(tx.Price), tx.Currency)
	}
	return b.String()
}
