package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Assumptions collects the modeling constants of the engine. Every consumer (editor,
// reports, comparison) passes the same value so the figures stay consistent; per-view
// defaults belong here, never in the views.
type Assumptions struct {
	// NPV and IRR horizon in years.
	HorizonYears int `yaml:"horizon_years" json:"horizon_years"`

	// Scenario utilization overrides (percent of rated capacity).
	Scenarios []ScenarioDefinition `yaml:"scenarios" json:"scenarios"`
	// Share of revenue kept as contribution margin in scenario views. Zero is a valid
	// setting; only an absent value takes the default.
	ContributionMarginFactor decimal.NullDecimal `yaml:"contribution_margin_factor" json:"contribution_margin_factor"`
	// Number of years in the cumulative scenario projection.
	ProjectionYears int `yaml:"projection_years" json:"projection_years"`

	Sensitivity SensitivitySettings `yaml:"sensitivity" json:"sensitivity"`
	IRR         IRRSettings         `yaml:"irr" json:"irr"`
}

// ScenarioDefinition names a utilization override.
type ScenarioDefinition struct {
	Name            string          `yaml:"name" json:"name"`
	UtilizationRate decimal.Decimal `yaml:"utilization_rate" json:"utilization_rate"`
}

// SensitivitySettings holds the variation steps and the per-driver ROI elasticities.
// An elasticity of zero switches its driver off.
type SensitivitySettings struct {
	Variations         []decimal.Decimal   `yaml:"variations" json:"variations"`
	PriceElasticity    decimal.NullDecimal `yaml:"price_elasticity" json:"price_elasticity"`
	CapacityElasticity decimal.NullDecimal `yaml:"capacity_elasticity" json:"capacity_elasticity"`
	OpexElasticity     decimal.NullDecimal `yaml:"opex_elasticity" json:"opex_elasticity"`
}

// IRRSettings parameterizes the Newton-Raphson solver and its plausibility check.
type IRRSettings struct {
	InitialGuess        float64 `yaml:"initial_guess" json:"initial_guess"`
	MaxIterations       int     `yaml:"max_iterations" json:"max_iterations"`
	DerivativeFloor     float64 `yaml:"derivative_floor" json:"derivative_floor"`
	NPVTolerance        float64 `yaml:"npv_tolerance" json:"npv_tolerance"`
	MaxPlausiblePercent float64 `yaml:"max_plausible_percent" json:"max_plausible_percent"`
}

// Scenario names used by the default assumption set.
const (
	ScenarioPessimistic = "pessimistic"
	ScenarioProbable    = "probable"
	ScenarioOptimistic  = "optimistic"
)

// DefaultAssumptions returns the constants the admin application has always used.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		HorizonYears: 10,
		Scenarios: []ScenarioDefinition{
			{Name: ScenarioPessimistic, UtilizationRate: decimal.NewFromInt(50)},
			{Name: ScenarioProbable, UtilizationRate: decimal.NewFromInt(70)},
			{Name: ScenarioOptimistic, UtilizationRate: decimal.NewFromInt(100)},
		},
		ContributionMarginFactor: decimal.NewNullDecimal(decimal.RequireFromString("0.98")),
		ProjectionYears:          5,
		Sensitivity: SensitivitySettings{
			Variations: []decimal.Decimal{
				decimal.NewFromInt(-20),
				decimal.NewFromInt(-10),
				decimal.Zero,
				decimal.NewFromInt(10),
				decimal.NewFromInt(20),
			},
			PriceElasticity:    decimal.NewNullDecimal(decimal.RequireFromString("0.8")),
			CapacityElasticity: decimal.NewNullDecimal(decimal.RequireFromString("1.2")),
			OpexElasticity:     decimal.NewNullDecimal(decimal.RequireFromString("0.5")),
		},
		IRR: IRRSettings{
			InitialGuess:        0.15,
			MaxIterations:       100,
			DerivativeFloor:     1e-4,
			NPVTolerance:        100,
			MaxPlausiblePercent: 300,
		},
	}
}

// WithDefaults fills unset fields from DefaultAssumptions, so a partial YAML override
// only replaces what it names. Counts and lists are unset when zero or empty; the margin
// factor and elasticities are unset only when absent.
func (a Assumptions) WithDefaults() Assumptions {
	d := DefaultAssumptions()
	if a.HorizonYears <= 0 {
		a.HorizonYears = d.HorizonYears
	}
	if len(a.Scenarios) == 0 {
		a.Scenarios = d.Scenarios
	}
	if !a.ContributionMarginFactor.Valid {
		a.ContributionMarginFactor = d.ContributionMarginFactor
	}
	if a.ProjectionYears <= 0 {
		a.ProjectionYears = d.ProjectionYears
	}
	if len(a.Sensitivity.Variations) == 0 {
		a.Sensitivity.Variations = d.Sensitivity.Variations
	}
	if !a.Sensitivity.PriceElasticity.Valid {
		a.Sensitivity.PriceElasticity = d.Sensitivity.PriceElasticity
	}
	if !a.Sensitivity.CapacityElasticity.Valid {
		a.Sensitivity.CapacityElasticity = d.Sensitivity.CapacityElasticity
	}
	if !a.Sensitivity.OpexElasticity.Valid {
		a.Sensitivity.OpexElasticity = d.Sensitivity.OpexElasticity
	}
	if a.IRR.InitialGuess == 0 {
		a.IRR.InitialGuess = d.IRR.InitialGuess
	}
	if a.IRR.MaxIterations <= 0 {
		a.IRR.MaxIterations = d.IRR.MaxIterations
	}
	if a.IRR.DerivativeFloor <= 0 {
		a.IRR.DerivativeFloor = d.IRR.DerivativeFloor
	}
	if a.IRR.NPVTolerance <= 0 {
		a.IRR.NPVTolerance = d.IRR.NPVTolerance
	}
	if a.IRR.MaxPlausiblePercent <= 0 {
		a.IRR.MaxPlausiblePercent = d.IRR.MaxPlausiblePercent
	}
	return a
}

// Describe renders the assumptions as human readable lines for report footers.
func (a Assumptions) Describe() []string {
	lines := []string{
		fmt.Sprintf("NPV and IRR horizon: %d years of flat net profit (no inflation or growth)", a.HorizonYears),
	}
	for _, s := range a.Scenarios {
		lines = append(lines, fmt.Sprintf("Scenario %s: %s%% utilization of rated capacity", s.Name, s.UtilizationRate.String()))
	}
	lines = append(lines,
		fmt.Sprintf("Contribution margin: %s%% of revenue", a.ContributionMarginFactor.Decimal.Mul(decimal.NewFromInt(100)).String()),
		fmt.Sprintf("Sensitivity elasticities: price %s, capacity %s, opex %s",
			a.Sensitivity.PriceElasticity.Decimal.String(), a.Sensitivity.CapacityElasticity.Decimal.String(), a.Sensitivity.OpexElasticity.Decimal.String()),
		"Taxes are assessed on EBITDA less depreciation and deducted from EBITDA",
		fmt.Sprintf("Payback of %d months means the plant does not pay back", PaybackSentinel),
	)
	return lines
}
