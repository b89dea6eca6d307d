package calculation

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

// RunSensitivity projects the baseline ROI of cfg under the configured variation steps.
func (e *Engine) RunSensitivity(cfg domain.PlantConfiguration) *domain.SensitivityAnalysis {
	return e.SensitivityFromROI(e.Calculate(cfg).ROIPercentage)
}

// SensitivityFromROI builds the per-driver curves and the tornado ranking from a baseline
// ROI. Each driver is a linear projection with a fixed elasticity; nothing is recomputed.
func (e *Engine) SensitivityFromROI(baseline decimal.Decimal) *domain.SensitivityAnalysis {
	s := e.Assumptions.Sensitivity
	out := &domain.SensitivityAnalysis{
		BaselineROI: baseline,
		Drivers: []domain.DriverSensitivity{
			driverCurve(domain.DriverPrice, baseline, s.Variations, s.PriceElasticity.Decimal, false),
			driverCurve(domain.DriverCapacity, baseline, s.Variations, s.CapacityElasticity.Decimal, false),
			driverCurve(domain.DriverOpex, baseline, s.Variations, s.OpexElasticity.Decimal, true),
		},
	}
	out.Tornado = tornado(out.Drivers)
	return out
}

// Heatmap combines price (rows) and capacity (columns) variations:
// roi x (1 + (price x e_price + capacity x e_capacity)/100).
func (e *Engine) Heatmap(cfg domain.PlantConfiguration) *domain.Heatmap {
	s := e.Assumptions.Sensitivity
	baseline := e.Calculate(cfg).ROIPercentage

	hm := &domain.Heatmap{
		BaselineROI: baseline,
		Variations:  s.Variations,
		Cells:       make([][]domain.HeatmapCell, len(s.Variations)),
	}
	for i, pv := range s.Variations {
		row := make([]domain.HeatmapCell, len(s.Variations))
		for j, cv := range s.Variations {
			shift := pv.Mul(s.PriceElasticity.Decimal).Add(cv.Mul(s.CapacityElasticity.Decimal)).Div(hundred)
			row[j] = domain.HeatmapCell{
				PriceVariation:    pv,
				CapacityVariation: cv,
				ROIPercentage:     baseline.Mul(decimal.NewFromInt(1).Add(shift)),
			}
		}
		hm.Cells[i] = row
	}
	return hm
}

// ProjectROI applies one driver's elasticity to the baseline ROI. Inverse drivers (costs)
// lower the ROI when they rise.
func ProjectROI(baseline, variationPct, elasticity decimal.Decimal, inverse bool) decimal.Decimal {
	shift := variationPct.Div(hundred).Mul(elasticity)
	if inverse {
		shift = shift.Neg()
	}
	return baseline.Mul(decimal.NewFromInt(1).Add(shift))
}

func driverCurve(driver string, baseline decimal.Decimal, variations []decimal.Decimal, elasticity decimal.Decimal, inverse bool) domain.DriverSensitivity {
	points := make([]domain.SensitivityPoint, len(variations))
	for i, v := range variations {
		points[i] = domain.SensitivityPoint{
			VariationPercent: v,
			ROIPercentage:    ProjectROI(baseline, v, elasticity, inverse),
		}
	}
	return domain.DriverSensitivity{Driver: driver, Elasticity: elasticity, Points: points}
}

// tornado ranks drivers by ROI spread, widest first.
func tornado(drivers []domain.DriverSensitivity) []domain.TornadoBar {
	bars := make([]domain.TornadoBar, 0, len(drivers))
	for _, d := range drivers {
		if len(d.Points) == 0 {
			continue
		}
		low, high := d.Points[0].ROIPercentage, d.Points[0].ROIPercentage
		for _, p := range d.Points[1:] {
			low = decimal.Min(low, p.ROIPercentage)
			high = decimal.Max(high, p.ROIPercentage)
		}
		bars = append(bars, domain.TornadoBar{Driver: d.Driver, LowROI: low, HighROI: high, Spread: high.Sub(low)})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Spread.GreaterThan(bars[j].Spread)
	})
	return bars
}
