package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tirecycle/feasibility/internal/domain"
)

// StudySide is one side of a configuration comparison.
type StudySide struct {
	Label   string
	Config  domain.PlantConfiguration
	Results domain.FinancialResults
}

// MetricDelta is the change of one headline metric between two studies.
type MetricDelta struct {
	Metric string
	From   string
	To     string
	Delta  string
}

// ConfigDiff is a unified diff of two configurations plus the effect on the results.
type ConfigDiff struct {
	Unified string
	Deltas  []MetricDelta
}

// Changed reports whether the configurations differ at all.
func (d ConfigDiff) Changed() bool { return d.Unified != "" }

// DiffConfigurations compares the canonical YAML of two configurations line by line.
func DiffConfigurations(from, to StudySide) (ConfigDiff, error) {
	a, err := yaml.Marshal(from.Config)
	if err != nil {
		return ConfigDiff{}, fmt.Errorf("marshal %s: %w", from.Label, err)
	}
	b, err := yaml.Marshal(to.Config)
	if err != nil {
		return ConfigDiff{}, fmt.Errorf("marshal %s: %w", to.Label, err)
	}

	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: from.Label,
		ToFile:   to.Label,
		Context:  2,
	})
	if err != nil {
		return ConfigDiff{}, fmt.Errorf("diff %s and %s: %w", from.Label, to.Label, err)
	}

	fr, tr := from.Results, to.Results
	deltas := []MetricDelta{
		moneyDelta("Total investment", fr.TotalInvestment, tr.TotalInvestment),
		moneyDelta("Annual revenue", fr.AnnualRevenue, tr.AnnualRevenue),
		moneyDelta("Annual opex", fr.AnnualOpex, tr.AnnualOpex),
		moneyDelta("Annual EBITDA", fr.AnnualEbitda, tr.AnnualEbitda),
		pctDelta("ROI", fr.ROIPercentage, tr.ROIPercentage),
		moneyDelta("NPV", fr.NPV10Years, tr.NPV10Years),
		irrDelta(fr, tr),
		paybackDelta(fr, tr),
	}
	return ConfigDiff{Unified: unified, Deltas: deltas}, nil
}

// FormatConfigDiff renders the metric deltas followed by the unified diff.
func FormatConfigDiff(d ConfigDiff) []byte {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Metric\tFrom\tTo\tChange\t")
	for _, m := range d.Deltas {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", m.Metric, m.From, m.To, m.Delta)
	}
	tw.Flush()
	fmt.Fprintln(&buf)
	if !d.Changed() {
		fmt.Fprintln(&buf, "Configurations are identical.")
		return buf.Bytes()
	}
	buf.WriteString(d.Unified)
	return buf.Bytes()
}

func moneyDelta(name string, from, to decimal.Decimal) MetricDelta {
	return MetricDelta{Metric: name, From: FormatWholeCurrency(from), To: FormatWholeCurrency(to), Delta: signed(FormatWholeCurrency(to.Sub(from)), to.Sub(from))}
}

func pctDelta(name string, from, to decimal.Decimal) MetricDelta {
	diff := to.Sub(from)
	return MetricDelta{Metric: name, From: FormatPercentage(from), To: FormatPercentage(to), Delta: signed(diff.StringFixed(2)+" pp", diff)}
}

func irrDelta(from, to domain.FinancialResults) MetricDelta {
	m := MetricDelta{Metric: "IRR", From: FormatIRR(from), To: FormatIRR(to), Delta: "n/a"}
	if from.IRRComputable && to.IRRComputable {
		diff := to.IRRPercentage.Sub(from.IRRPercentage)
		m.Delta = signed(diff.StringFixed(2)+" pp", diff)
	}
	return m
}

func paybackDelta(from, to domain.FinancialResults) MetricDelta {
	m := MetricDelta{Metric: "Payback", From: FormatPayback(from.PaybackMonths), To: FormatPayback(to.PaybackMonths), Delta: "n/a"}
	if from.PaysBack() && to.PaysBack() {
		diff := decimal.NewFromInt(int64(to.PaybackMonths - from.PaybackMonths))
		m.Delta = signed(diff.String()+" months", diff)
	}
	return m
}

func signed(s string, d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + s
	}
	return s
}
