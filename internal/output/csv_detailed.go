package output

import (
	"bytes"
	"encoding/csv"

	"github.com/tirecycle/feasibility/internal/domain"
)

// CSVScenarioExporter writes the cumulative projection of every scenario, one row per
// scenario year.
type CSVScenarioExporter struct{}

func (c CSVScenarioExporter) Name() string { return "scenarios-csv" }

func (c CSVScenarioExporter) Format(report *domain.FeasibilityReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "CalendarYear", "UtilizationRate", "CumulativeTonnage", "CumulativeBilling", "ContributionMargin"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, s := range report.Scenarios.Scenarios {
		for _, y := range s.Projection {
			row := []string{
				s.Name,
				intToString(y.Year),
				calendarYear(report.Config.StartDate, y.Year),
				s.UtilizationRate.StringFixed(2),
				y.CumulativeTonnage.StringFixed(2),
				y.CumulativeBilling.StringFixed(2),
				s.ContributionMargin.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
