package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

// RunScenarios re-runs the full pipeline once per configured utilization override.
// Overrides replace the configured utilization rate; they are not relative to it.
func (e *Engine) RunScenarios(cfg domain.PlantConfiguration) *domain.ScenarioAnalysis {
	out := &domain.ScenarioAnalysis{
		Baseline:  e.Calculate(cfg),
		Scenarios: make([]domain.ScenarioResult, 0, len(e.Assumptions.Scenarios)),
	}
	for _, def := range e.Assumptions.Scenarios {
		out.Scenarios = append(out.Scenarios, e.runScenario(cfg, def))
	}
	return out
}

func (e *Engine) runScenario(cfg domain.PlantConfiguration, def domain.ScenarioDefinition) domain.ScenarioResult {
	analysis := e.Analyze(cfg.WithUtilization(def.UtilizationRate))
	revenue := analysis.Results.AnnualRevenue
	tonnage := analysis.Breakdown.AnnualTonnage

	projection := make([]domain.ScenarioYear, 0, e.Assumptions.ProjectionYears)
	for y := 1; y <= e.Assumptions.ProjectionYears; y++ {
		n := decimal.NewFromInt(int64(y))
		projection = append(projection, domain.ScenarioYear{
			Year:              y,
			CumulativeBilling: revenue.Mul(n),
			CumulativeTonnage: tonnage.Mul(n),
		})
	}

	e.Logger.Debugf("scenario %s at %s%%: revenue=%s roi=%s",
		def.Name, def.UtilizationRate.String(), revenue.StringFixed(2), analysis.Results.ROIPercentage.StringFixed(2))

	return domain.ScenarioResult{
		Name:               def.Name,
		UtilizationRate:    def.UtilizationRate,
		AnnualTonnage:      tonnage,
		ContributionMargin: revenue.Mul(e.Assumptions.ContributionMarginFactor.Decimal),
		Results:            analysis.Results,
		Projection:         projection,
	}
}
