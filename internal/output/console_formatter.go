package output

import (
	"bytes"
	"fmt"

	"github.com/tirecycle/feasibility/internal/domain"
)

// ConsoleFormatter prints the headline figures and one line per scenario.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.FeasibilityReport) ([]byte, error) {
	var buf bytes.Buffer
	r := report.Analysis.Results

	fmt.Fprintln(&buf, "TIRE RECYCLING FEASIBILITY SUMMARY")
	fmt.Fprintln(&buf, "==================================")
	fmt.Fprintf(&buf, "Study: %s\n", report.Title)
	fmt.Fprintf(&buf, "Investment=%s Revenue=%s Opex=%s EBITDA=%s\n",
		FormatWholeCurrency(r.TotalInvestment),
		FormatWholeCurrency(r.AnnualRevenue),
		FormatWholeCurrency(r.AnnualOpex),
		FormatWholeCurrency(r.AnnualEbitda),
	)
	fmt.Fprintf(&buf, "ROI=%s NPV=%s IRR=%s Payback=%s\n",
		FormatPercentage(r.ROIPercentage), FormatWholeCurrency(r.NPV10Years), FormatIRR(r), FormatPayback(r.PaybackMonths))
	fmt.Fprintln(&buf)

	for _, s := range report.Scenarios.Scenarios {
		fmt.Fprintf(&buf, "%s (%s): ROI=%s NPV=%s Payback=%s\n",
			s.Name, FormatPercentage(s.UtilizationRate),
			FormatPercentage(s.Results.ROIPercentage), FormatWholeCurrency(s.Results.NPV10Years), FormatPayback(s.Results.PaybackMonths))
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, Assess(report).Headline)
	return buf.Bytes(), nil
}
