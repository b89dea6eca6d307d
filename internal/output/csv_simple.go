package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

// CSVSummarizer writes one row for the configured plant and one per utilization scenario.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

var summaryHeader = []string{
	"Scenario", "UtilizationRate", "AnnualTonnage", "TotalInvestment", "AnnualRevenue",
	"AnnualOpex", "AnnualEbitda", "PaybackMonths", "PaysBack", "ROIPercentage",
	"NPV10Years", "IRRPercentage", "IRRComputable",
}

func (c CSVSummarizer) Format(report *domain.FeasibilityReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(summaryHeader); err != nil {
		return nil, err
	}

	baseline := summaryRow("baseline", report.Config.UtilizationRate, report.Analysis.Breakdown.AnnualTonnage, report.Analysis.Results)
	if err := w.Write(baseline); err != nil {
		return nil, err
	}
	for _, s := range report.Scenarios.Scenarios {
		if err := w.Write(summaryRow(s.Name, s.UtilizationRate, s.AnnualTonnage, s.Results)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func summaryRow(name string, utilization, tonnage decimal.Decimal, r domain.FinancialResults) []string {
	return []string{
		name,
		utilization.StringFixed(2),
		tonnage.StringFixed(2),
		r.TotalInvestment.StringFixed(2),
		r.AnnualRevenue.StringFixed(2),
		r.AnnualOpex.StringFixed(2),
		r.AnnualEbitda.StringFixed(2),
		intToString(r.PaybackMonths),
		boolToString(r.PaysBack()),
		r.ROIPercentage.StringFixed(2),
		r.NPV10Years.StringFixed(2),
		r.IRRPercentage.StringFixed(4),
		boolToString(r.IRRComputable),
	}
}
