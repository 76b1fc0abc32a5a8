package thirteenf

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport renders the three ranked tables as fixed-width text, the way
// the analyzer's console output has always looked.
func WriteReport(w io.Writer, a *Analysis) {
	writeHoldingsTable(w, "TOP 20 HOLDINGS", a.TopHoldings)
	writeDeltaTable(w, "TOP BUYS", "Wt Increase", a.TopBuys)
	writeDeltaTable(w, "TOP SELLS", "Wt Decrease", a.TopSells)

	if !a.HasPreviousData {
		fmt.Fprintf(w, "\nNote: no previous-period data; all positions report as NEW.\n")
	}
}

func writeTitle(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func writeHoldingsTable(w io.Writer, title string, rows []PositionChange) {
	writeTitle(w, title)
	fmt.Fprintf(w, "%-4s %-40s %8s %8s %17s %8s\n",
		"Rank", "Company (Ticker)", "% Port", "Δ pp", "% Change(shares)", "Status")
	for i, r := range rows {
		fmt.Fprintf(w, "%-4d %-40s %8.2f %8.2f %17s %8s\n",
			i+1, companyLabel(r), r.WeightCurrent, r.WeightChange, sharePctLabel(r), r.Status)
	}
}

func writeDeltaTable(w io.Writer, title, deltaHeader string, rows []PositionChange) {
	writeTitle(w, title)
	fmt.Fprintf(w, "%-4s %-40s %8s %12s %17s\n",
		"Rank", "Company (Ticker)", "% Port", deltaHeader, "% Change(shares)")
	for i, r := range rows {
		fmt.Fprintf(w, "%-4d %-40s %8.2f %12.2f %17s\n",
			i+1, companyLabel(r), r.WeightCurrent, r.WeightChange, sharePctLabel(r))
	}
}

func companyLabel(r PositionChange) string {
	name := r.CompanyName
	if len(name) > 30 {
		name = name[:30]
	}
	return fmt.Sprintf("%s (%s)", name, r.Ticker)
}

func sharePctLabel(r PositionChange) string {
	if r.ShareChangePct == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", *r.ShareChangePct)
}
