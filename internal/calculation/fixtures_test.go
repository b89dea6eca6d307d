package calculation

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// examplePlant is an 85 t/day shredding line at 85% utilization.
//
//	tonnage   21,675 t
//	revenue   3,934,012.50 (granules 2,861,100 + steel 975,375 + textile 97,537.50)
//	capex     7,000,000
//	opex      170,000 / month = 2,040,000 / year
//	ebitda    1,894,012.50
//	taxes     25% of (ebitda - 700,000) = 298,503.125
//	net       1,595,509.375
func examplePlant() domain.PlantConfiguration {
	return domain.PlantConfiguration{
		Name:                 "Example plant",
		DailyCapacityTons:    d("85"),
		OperatingDaysPerYear: d("300"),
		UtilizationRate:      d("85"),
		Capex: domain.CapexItems{
			Equipment:      d("4500000"),
			Installation:   d("800000"),
			Infrastructure: d("1200000"),
			WorkingCapital: d("500000"),
		},
		Opex: domain.OpexItems{
			RawMaterial:    d("20000"),
			Labor:          d("60000"),
			Energy:         d("35000"),
			Maintenance:    d("15000"),
			Logistics:      d("25000"),
			Administrative: d("10000"),
			Other:          d("5000"),
		},
		OutputStreams: []domain.OutputStream{
			{Name: domain.StreamRubberGranules, PricePerTon: d("240"), YieldPercent: d("55")},
			{Name: domain.StreamSteelWire, PricePerTon: d("180"), YieldPercent: d("25")},
			{Name: domain.StreamTextileFiber, PricePerTon: d("30"), YieldPercent: d("15")},
			{Name: domain.StreamCarbonBlack, PricePerTon: d("0"), YieldPercent: d("0")},
		},
		Financial: domain.FinancialParams{
			TaxRate:           d("25"),
			DepreciationYears: d("10"),
			DiscountRate:      d("8"),
			InflationRate:     d("3"),
		},
	}
}

// recordingLogger captures formatted messages for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }
