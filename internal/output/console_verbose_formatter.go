package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

const rule = "================================================================================"

// ConsoleVerboseFormatter renders the full feasibility report as aligned text.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *domain.FeasibilityReport) ([]byte, error) {
	var buf bytes.Buffer
	cfg := report.Config
	a := report.Analysis

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "TIRE RECYCLING PLANT FEASIBILITY REPORT")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "Study:    %s\n", report.Title)
	if cfg.Location != "" {
		fmt.Fprintf(&buf, "Location: %s\n", cfg.Location)
	}
	if cfg.StartDate != nil {
		fmt.Fprintf(&buf, "Start:    %s\n", cfg.StartDate.Format("2006-01-02"))
	}
	fmt.Fprintln(&buf)

	assessment := Assess(report)
	fmt.Fprintln(&buf, assessment.Headline)
	for _, n := range assessment.Notes {
		fmt.Fprintf(&buf, "  - %s\n", n)
	}
	fmt.Fprintln(&buf)

	section(&buf, "CAPACITY")
	fmt.Fprintf(&buf, "Daily capacity:   %s\n", FormatTons(cfg.DailyCapacityTons))
	fmt.Fprintf(&buf, "Operating days:   %s\n", cfg.OperatingDaysPerYear.String())
	fmt.Fprintf(&buf, "Utilization:      %s\n", FormatPercentage(cfg.UtilizationRate))
	fmt.Fprintf(&buf, "Annual tonnage:   %s\n", FormatTons(a.Breakdown.AnnualTonnage))
	fmt.Fprintln(&buf)

	section(&buf, "REVENUE BY OUTPUT STREAM")
	tw := newTable(&buf)
	fmt.Fprintln(tw, "Stream\tYield\tPrice/t\tTons\tRevenue\t")
	for _, l := range a.Breakdown.RevenueLines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", l.Name, FormatPercentage(l.YieldPercent),
			FormatCurrency(l.PricePerTon), l.Tons.StringFixed(1), FormatCurrency(l.Revenue))
	}
	fmt.Fprintf(tw, "Total\t\t\t\t%s\t\n", FormatCurrency(a.Results.AnnualRevenue))
	tw.Flush()
	fmt.Fprintln(&buf)

	section(&buf, "INVESTMENT (CAPEX)")
	writeItems(&buf, a.Breakdown.CapexItems, a.Results.TotalInvestment)
	fmt.Fprintln(&buf)

	section(&buf, "OPERATING COSTS (MONTHLY)")
	writeItems(&buf, a.Breakdown.OpexItems, a.Breakdown.MonthlyOpex)
	fmt.Fprintf(&buf, "Annual opex: %s\n", FormatCurrency(a.Results.AnnualOpex))
	fmt.Fprintln(&buf)

	p := a.Breakdown.Profitability
	section(&buf, "PROFITABILITY")
	tw = newTable(&buf)
	fmt.Fprintf(tw, "EBITDA\t%s\t\n", FormatCurrency(p.AnnualEbitda))
	fmt.Fprintf(tw, "Depreciation\t%s\t\n", FormatCurrency(p.AnnualDepreciation))
	fmt.Fprintf(tw, "Taxable income\t%s\t\n", FormatCurrency(p.TaxableIncome))
	fmt.Fprintf(tw, "Taxes (%s)\t%s\t\n", FormatPercentage(cfg.Financial.TaxRate), FormatCurrency(p.Taxes))
	fmt.Fprintf(tw, "Net profit\t%s\t\n", FormatCurrency(p.NetProfit))
	tw.Flush()
	fmt.Fprintln(&buf)

	r := a.Results
	section(&buf, "VALUATION")
	tw = newTable(&buf)
	fmt.Fprintf(tw, "ROI\t%s\t\n", FormatPercentage(r.ROIPercentage))
	fmt.Fprintf(tw, "NPV (%s discount)\t%s\t\n", FormatPercentage(cfg.Financial.DiscountRate), FormatCurrency(r.NPV10Years))
	fmt.Fprintf(tw, "IRR\t%s\t\n", FormatIRR(r))
	fmt.Fprintf(tw, "Payback\t%s\t\n", FormatPayback(r.PaybackMonths))
	if date := PaybackDate(cfg, r); date != "" {
		fmt.Fprintf(tw, "Payback date\t%s\t\n", date)
	}
	tw.Flush()
	fmt.Fprintln(&buf)

	section(&buf, "UTILIZATION SCENARIOS")
	tw = newTable(&buf)
	fmt.Fprintln(tw, "Scenario\tUtilization\tTonnage\tRevenue\tMargin\tROI\tNPV\tPayback\t")
	for _, s := range report.Scenarios.Scenarios {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Name, FormatPercentage(s.UtilizationRate), s.AnnualTonnage.StringFixed(1),
			FormatWholeCurrency(s.Results.AnnualRevenue), FormatWholeCurrency(s.ContributionMargin),
			FormatPercentage(s.Results.ROIPercentage), FormatWholeCurrency(s.Results.NPV10Years),
			FormatPayback(s.Results.PaybackMonths))
	}
	tw.Flush()
	fmt.Fprintln(&buf)

	for _, s := range report.Scenarios.Scenarios {
		fmt.Fprintf(&buf, "%s projection:\n", s.Name)
		for _, y := range s.Projection {
			fmt.Fprintf(&buf, "  %s: %s billed, %s processed\n",
				yearLabel(cfg, y.Year), FormatWholeCurrency(y.CumulativeBilling), FormatTons(y.CumulativeTonnage))
		}
	}
	fmt.Fprintln(&buf)

	section(&buf, "ROI SENSITIVITY")
	tw = newTable(&buf)
	fmt.Fprint(tw, "Driver\t")
	if len(report.Sensitivity.Drivers) > 0 {
		for _, pt := range report.Sensitivity.Drivers[0].Points {
			fmt.Fprintf(tw, "%s%%\t", pt.VariationPercent.StringFixed(0))
		}
	}
	fmt.Fprintln(tw)
	for _, d := range report.Sensitivity.Drivers {
		fmt.Fprintf(tw, "%s\t", d.Driver)
		for _, pt := range d.Points {
			fmt.Fprintf(tw, "%s\t", FormatPercentage(pt.ROIPercentage))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	fmt.Fprintln(&buf)
	for _, bar := range report.Sensitivity.Tornado {
		fmt.Fprintf(&buf, "  %-10s %s .. %s (spread %s)\n", bar.Driver,
			FormatPercentage(bar.LowROI), FormatPercentage(bar.HighROI), bar.Spread.StringFixed(2))
	}
	fmt.Fprintln(&buf)

	section(&buf, "KEY ASSUMPTIONS")
	for _, line := range assumptionLines(report) {
		fmt.Fprintf(&buf, "• %s\n", line)
	}
	return buf.Bytes(), nil
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeItems(w io.Writer, items []domain.LineItem, total decimal.Decimal) {
	tw := newTable(w)
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t\n", it.Name, FormatCurrency(it.Amount))
	}
	fmt.Fprintf(tw, "Total\t%s\t\n", FormatCurrency(total))
	tw.Flush()
}
