package tco

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// euro formats monetary values with German digit grouping, matching
// the reports the finance side consumes.
var euro = message.NewPrinter(language.German)

func formatEUR(v float64) string {
	return euro.Sprintf("%.2f EUR", v)
}

// Report renders the analysis as a markdown document.
func Report(res Result, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# TCO Analysis: %s\n\n", res.AssetName)
	fmt.Fprintf(&b, "Generated: %s  \n", now.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Location: %s  \n", res.Location)
	fmt.Fprintf(&b, "Analysis period: %d years\n\n", res.AnalysisYears)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|---|---|\n")
	fmt.Fprintf(&b, "| Total TCO | %s |\n", formatEUR(res.TotalTCO))
	fmt.Fprintf(&b, "| Annual average | %s |\n", formatEUR(res.AnnualAverage))
	fmt.Fprintf(&b, "| TCO multiple | %.2fx |\n", res.TCOMultiple)
	fmt.Fprintf(&b, "| Acquisition | %s |\n", formatEUR(res.AcquisitionCost))
	fmt.Fprintf(&b, "| Disposal (net of residual) | %s |\n", formatEUR(res.DisposalCost))
	fmt.Fprintf(&b, "| Confidence | %.0f%% (%s) |\n\n", res.Confidence*100, res.ConfidenceLevel)

	b.WriteString("## Annual cost components\n\n")
	b.WriteString("| Component | Annual cost | Share | Type | Confidence |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, c := range res.Components {
		if c.AnnualCost <= 0 {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s | %.1f%% | %s | %.0f%% |\n",
			c.Name, formatEUR(c.AnnualCost), res.CostShares[c.Name], c.Kind, c.Confidence*100)
	}
	b.WriteString("\n")

	if len(res.Recommendations) > 0 {
		b.WriteString("## Savings opportunities\n\n")
		for _, r := range res.Recommendations {
			fmt.Fprintf(&b, "- **%s** (%s priority, est. %s/year): %s\n",
				r.Title, r.Priority, formatEUR(r.AnnualSaving), r.Detail)
		}
		b.WriteString("\n")
	}

	if res.Benchmark != nil && len(res.Benchmark.Entries) > 0 {
		b.WriteString("## Category benchmark\n\n")
		b.WriteString("| Metric | Actual | Reference | Variance | Status |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, e := range res.Benchmark.Entries {
			fmt.Fprintf(&b, "| %s | %.2f | %.2f | %+.1f%% | %s |\n",
				e.Metric, e.Actual, e.Reference, e.Variance, e.Status)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Yearly development\n\n")
	b.WriteString("| Year | Operating cost |\n")
	b.WriteString("|---|---|\n")
	for i, c := range res.YearlyCosts {
		fmt.Fprintf(&b, "| %d | %s |\n", i+1, formatEUR(c))
	}

	return b.String()
}
