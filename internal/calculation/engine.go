package calculation

import (
	"github.com/tirecycle/feasibility/internal/domain"
)

// Engine runs the feasibility pipeline under a fixed set of modeling assumptions.
// It holds no mutable state after construction and is safe for concurrent use.
type Engine struct {
	Assumptions domain.Assumptions
	Logger      Logger
}

// NewEngine creates an engine. Unset assumption fields fall back to
// domain.DefaultAssumptions.
func NewEngine(assumptions domain.Assumptions) *Engine {
	return &Engine{
		Assumptions: assumptions.WithDefaults(),
		Logger:      NopLogger{},
	}
}

// NewDefaultEngine creates an engine with the default assumptions.
func NewDefaultEngine() *Engine {
	return NewEngine(domain.DefaultAssumptions())
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate returns the flat results record for a configuration.
func (e *Engine) Calculate(cfg domain.PlantConfiguration) domain.FinancialResults {
	return e.Analyze(cfg).Results
}

// Analyze runs revenue, costs, profitability, payback, ROI, NPV and IRR and returns the
// results together with their itemized breakdown. The configuration is not modified.
func (e *Engine) Analyze(cfg domain.PlantConfiguration) *domain.Analysis {
	tonnage := AnnualTonnage(cfg)
	revenue, lines := CalculateRevenue(tonnage, cfg.OutputStreams)
	investment := TotalInvestment(cfg.Capex)
	opex := AnnualOpex(cfg.Opex)
	profit := CalculateProfitability(revenue, opex, investment, cfg.Financial)
	irr := SolveIRR(investment, profit.NetProfit, e.Assumptions.HorizonYears, e.Assumptions.IRR)

	results := domain.FinancialResults{
		TotalInvestment: investment,
		AnnualRevenue:   revenue,
		AnnualOpex:      opex,
		AnnualEbitda:    profit.AnnualEbitda,
		PaybackMonths:   PaybackMonths(investment, profit.NetProfit, domain.PaybackSentinel),
		ROIPercentage:   ROIPercentage(profit.NetProfit, investment),
		NPV10Years:      NPV(investment, profit.NetProfit, cfg.Financial.DiscountRate, e.Assumptions.HorizonYears),
		IRRPercentage:   irrPercentage(irr),
		IRRComputable:   irr.Computable,
	}

	e.Logger.Debugf("analyze %q: tonnage=%s revenue=%s opex=%s ebitda=%s net_profit=%s",
		cfg.Name, tonnage.StringFixed(2), revenue.StringFixed(2), opex.StringFixed(2),
		profit.AnnualEbitda.StringFixed(2), profit.NetProfit.StringFixed(2))
	if !irr.Computable {
		e.Logger.Debugf("analyze %q: IRR not computable (converged=%t iterations=%d raw=%.4f%%)",
			cfg.Name, irr.Converged, irr.Iterations, irr.RatePercent)
	}

	return &domain.Analysis{
		Results: results,
		Breakdown: domain.Breakdown{
			AnnualTonnage: tonnage,
			RevenueLines:  lines,
			CapexItems:    cfg.Capex.Items(),
			OpexItems:     cfg.Opex.Items(),
			MonthlyOpex:   MonthlyOpex(cfg.Opex),
			Profitability: profit,
			IRRIterations: irr.Iterations,
			IRRConverged:  irr.Converged,
			IRRRawPercent: irr.RatePercent,
		},
	}
}

// BuildReport gathers the analysis, the scenarios, the sensitivity dataset and the
// assumption notes consumed by the report formatters.
func (e *Engine) BuildReport(cfg domain.PlantConfiguration, title string) *domain.FeasibilityReport {
	if title == "" {
		title = cfg.Name
	}
	analysis := e.Analyze(cfg)
	return &domain.FeasibilityReport{
		Title:       title,
		Config:      cfg,
		Analysis:    *analysis,
		Scenarios:   *e.RunScenarios(cfg),
		Sensitivity: *e.SensitivityFromROI(analysis.Results.ROIPercentage),
		Assumptions: e.Assumptions.Describe(),
	}
}
