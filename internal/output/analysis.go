package output

import (
	"fmt"

	"github.com/tirecycle/feasibility/internal/domain"
)

// Assessment is the headline verdict printed at the top of human readable reports.
type Assessment struct {
	Viable   bool
	Headline string
	Notes    []string
}

// Assess summarizes a report: viable means a positive NPV, a real payback and a
// computable IRR.
func Assess(report *domain.FeasibilityReport) Assessment {
	r := report.Analysis.Results
	a := Assessment{
		Viable: r.NPV10Years.IsPositive() && r.PaysBack() && r.IRRComputable,
	}

	if a.Viable {
		a.Headline = fmt.Sprintf("Viable: NPV %s at %s discount, payback %s, IRR %s",
			FormatWholeCurrency(r.NPV10Years), FormatPercentage(report.Config.Financial.DiscountRate),
			FormatPayback(r.PaybackMonths), FormatIRR(r))
	} else {
		a.Headline = fmt.Sprintf("Not viable: NPV %s, payback %s, IRR %s",
			FormatWholeCurrency(r.NPV10Years), FormatPayback(r.PaybackMonths), FormatIRR(r))
	}

	if len(report.Sensitivity.Tornado) > 0 {
		top := report.Sensitivity.Tornado[0]
		a.Notes = append(a.Notes, fmt.Sprintf("Most sensitive driver: %s (ROI %s to %s)",
			top.Driver, FormatPercentage(top.LowROI), FormatPercentage(top.HighROI)))
	}
	for _, s := range report.Scenarios.Scenarios {
		if !s.Results.PaysBack() {
			a.Notes = append(a.Notes, fmt.Sprintf("Scenario %s (%s utilization) does not pay back",
				s.Name, FormatPercentage(s.UtilizationRate)))
		}
	}
	if date := PaybackDate(report.Config, r); date != "" {
		a.Notes = append(a.Notes, "Investment recovered by "+date)
	}
	return a
}
