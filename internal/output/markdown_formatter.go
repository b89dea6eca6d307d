package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tirecycle/feasibility/internal/domain"
)

// MarkdownFormatter renders the report as GitHub flavored markdown. The HTML report is
// rendered from the same document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *domain.FeasibilityReport) ([]byte, error) {
	var buf bytes.Buffer
	writeMarkdown(&buf, report)
	return buf.Bytes(), nil
}

func writeMarkdown(w io.Writer, report *domain.FeasibilityReport) {
	cfg := report.Config
	a := report.Analysis
	r := a.Results

	fmt.Fprintf(w, "# %s\n\n", mdEscape(report.Title))
	if cfg.Location != "" {
		fmt.Fprintf(w, "Location: %s  \n", mdEscape(cfg.Location))
	}
	if cfg.StartDate != nil {
		fmt.Fprintf(w, "Commissioning: %s  \n", cfg.StartDate.Format("2006-01-02"))
	}
	fmt.Fprintln(w)

	assessment := Assess(report)
	fmt.Fprintf(w, "**%s**\n\n", assessment.Headline)
	for _, n := range assessment.Notes {
		fmt.Fprintf(w, "- %s\n", n)
	}
	if len(assessment.Notes) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "## Key Figures")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "|---|---:|")
	fmt.Fprintf(w, "| Annual tonnage | %s |\n", FormatTons(a.Breakdown.AnnualTonnage))
	fmt.Fprintf(w, "| Total investment | %s |\n", FormatCurrency(r.TotalInvestment))
	fmt.Fprintf(w, "| Annual revenue | %s |\n", FormatCurrency(r.AnnualRevenue))
	fmt.Fprintf(w, "| Annual opex | %s |\n", FormatCurrency(r.AnnualOpex))
	fmt.Fprintf(w, "| Annual EBITDA | %s |\n", FormatCurrency(r.AnnualEbitda))
	fmt.Fprintf(w, "| Net profit | %s |\n", FormatCurrency(a.Breakdown.Profitability.NetProfit))
	fmt.Fprintf(w, "| ROI | %s |\n", FormatPercentage(r.ROIPercentage))
	fmt.Fprintf(w, "| NPV at %s | %s |\n", FormatPercentage(cfg.Financial.DiscountRate), FormatCurrency(r.NPV10Years))
	fmt.Fprintf(w, "| IRR | %s |\n", FormatIRR(r))
	fmt.Fprintf(w, "| Payback | %s |\n", FormatPayback(r.PaybackMonths))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Revenue by Output Stream")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Stream | Yield | Price/t | Tons | Revenue |")
	fmt.Fprintln(w, "|---|---:|---:|---:|---:|")
	for _, l := range a.Breakdown.RevenueLines {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n", mdEscape(l.Name), FormatPercentage(l.YieldPercent),
			FormatCurrency(l.PricePerTon), l.Tons.StringFixed(1), FormatCurrency(l.Revenue))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Utilization Scenarios")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Scenario | Utilization | Tonnage | Revenue | Contribution margin | ROI | NPV | Payback |")
	fmt.Fprintln(w, "|---|---:|---:|---:|---:|---:|---:|---:|")
	for _, s := range report.Scenarios.Scenarios {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			mdEscape(s.Name), FormatPercentage(s.UtilizationRate), FormatTons(s.AnnualTonnage),
			FormatWholeCurrency(s.Results.AnnualRevenue), FormatWholeCurrency(s.ContributionMargin),
			FormatPercentage(s.Results.ROIPercentage), FormatWholeCurrency(s.Results.NPV10Years),
			FormatPayback(s.Results.PaybackMonths))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## ROI Sensitivity")
	fmt.Fprintln(w)
	if len(report.Sensitivity.Drivers) > 0 {
		head := []string{"Driver"}
		align := []string{"---"}
		for _, pt := range report.Sensitivity.Drivers[0].Points {
			head = append(head, pt.VariationPercent.StringFixed(0)+"%")
			align = append(align, "---:")
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(head, " | "))
		fmt.Fprintf(w, "|%s|\n", strings.Join(align, "|"))
		for _, d := range report.Sensitivity.Drivers {
			cells := []string{d.Driver}
			for _, pt := range d.Points {
				cells = append(cells, FormatPercentage(pt.ROIPercentage))
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
		}
		fmt.Fprintln(w)
	}
	for _, bar := range report.Sensitivity.Tornado {
		fmt.Fprintf(w, "- %s: %s to %s\n", bar.Driver, FormatPercentage(bar.LowROI), FormatPercentage(bar.HighROI))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Key Assumptions")
	fmt.Fprintln(w)
	for _, line := range assumptionLines(report) {
		fmt.Fprintf(w, "- %s\n", mdEscape(line))
	}
}

var mdReplacer = strings.NewReplacer("|", "\\|", "*", "\\*", "_", "\\_")

func mdEscape(s string) string { return mdReplacer.Replace(s) }
