package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioResult is one utilization override re-run through the full pipeline.
type ScenarioResult struct {
	Name               string           `json:"name"`
	UtilizationRate    decimal.Decimal  `json:"utilization_rate"`
	AnnualTonnage      decimal.Decimal  `json:"annual_tonnage"`
	ContributionMargin decimal.Decimal  `json:"contribution_margin"`
	Results            FinancialResults `json:"results"`
	Projection         []ScenarioYear   `json:"projection"`
}

// ScenarioYear is a cumulative, non-compounded projection point.
type ScenarioYear struct {
	Year              int             `json:"year"`
	CumulativeBilling decimal.Decimal `json:"cumulative_billing"`
	CumulativeTonnage decimal.Decimal `json:"cumulative_tonnage"`
}

// ScenarioAnalysis holds every configured scenario in definition order.
type ScenarioAnalysis struct {
	Baseline  FinancialResults `json:"baseline"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// Scenario returns the named scenario, if present.
func (sa *ScenarioAnalysis) Scenario(name string) (ScenarioResult, bool) {
	for _, s := range sa.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return ScenarioResult{}, false
}

// Sensitivity drivers.
const (
	DriverPrice    = "price"
	DriverCapacity = "capacity"
	DriverOpex     = "opex"
)

// SensitivityPoint is the projected ROI at one variation step.
type SensitivityPoint struct {
	VariationPercent decimal.Decimal `json:"variation_percent"`
	ROIPercentage    decimal.Decimal `json:"roi_percentage"`
}

// DriverSensitivity is the ROI curve of one isolated driver.
type DriverSensitivity struct {
	Driver     string             `json:"driver"`
	Elasticity decimal.Decimal    `json:"elasticity"`
	Points     []SensitivityPoint `json:"points"`
}

// TornadoBar is the ROI range produced by one driver across all steps.
type TornadoBar struct {
	Driver  string          `json:"driver"`
	LowROI  decimal.Decimal `json:"low_roi"`
	HighROI decimal.Decimal `json:"high_roi"`
	Spread  decimal.Decimal `json:"spread"`
}

// SensitivityAnalysis is the tornado-ready dataset.
type SensitivityAnalysis struct {
	BaselineROI decimal.Decimal     `json:"baseline_roi"`
	Drivers     []DriverSensitivity `json:"drivers"`
	Tornado     []TornadoBar        `json:"tornado"`
}

// Driver returns the named driver curve, if present.
func (sa *SensitivityAnalysis) Driver(name string) (DriverSensitivity, bool) {
	for _, d := range sa.Drivers {
		if d.Driver == name {
			return d, true
		}
	}
	return DriverSensitivity{}, false
}

// HeatmapCell is the combined price and capacity projection for one grid point.
type HeatmapCell struct {
	PriceVariation    decimal.Decimal `json:"price_variation"`
	CapacityVariation decimal.Decimal `json:"capacity_variation"`
	ROIPercentage     decimal.Decimal `json:"roi_percentage"`
}

// Heatmap is a price (rows) by capacity (columns) grid.
type Heatmap struct {
	BaselineROI decimal.Decimal   `json:"baseline_roi"`
	Variations  []decimal.Decimal `json:"variations"`
	Cells       [][]HeatmapCell   `json:"cells"`
}

// FeasibilityReport gathers everything a report renderer consumes.
type FeasibilityReport struct {
	Title       string              `json:"title"`
	Config      PlantConfiguration  `json:"config"`
	Analysis    Analysis            `json:"analysis"`
	Scenarios   ScenarioAnalysis    `json:"scenarios"`
	Sensitivity SensitivityAnalysis `json:"sensitivity"`
	Assumptions []string            `json:"assumptions"`
}
