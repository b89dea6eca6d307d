package output

import (
	"github.com/tirecycle/feasibility/internal/domain"
)

// DefaultAssumptions lists the modeling assumptions rendered when a report carries none.
var DefaultAssumptions = domain.DefaultAssumptions().Describe()

func assumptionLines(report *domain.FeasibilityReport) []string {
	if len(report.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return report.Assumptions
}
