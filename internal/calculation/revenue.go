package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/pkg/money"
)

var hundred = decimal.NewFromInt(100)

// AnnualTonnage returns the processed tonnage per year:
// daily capacity x operating days x utilization/100.
// Every revenue figure scales from this value; nothing else derives tonnage.
func AnnualTonnage(cfg domain.PlantConfiguration) decimal.Decimal {
	return cfg.DailyCapacityTons.
		Mul(cfg.OperatingDaysPerYear).
		Mul(cfg.UtilizationRate).
		Div(hundred)
}

// CalculateRevenue sums tonnage x yield/100 x price over all output streams and returns
// the itemized lines in stream order. An empty stream list yields zero revenue.
func CalculateRevenue(tonnage decimal.Decimal, streams []domain.OutputStream) (decimal.Decimal, []domain.RevenueLine) {
	total := decimal.Zero
	lines := make([]domain.RevenueLine, 0, len(streams))
	for _, s := range streams {
		tons := money.NewMoneyFromDecimal(tonnage).PercentOf(s.YieldPercent).Decimal
		revenue := tons.Mul(s.PricePerTon)
		lines = append(lines, domain.RevenueLine{
			Name:         s.Name,
			YieldPercent: s.YieldPercent,
			PricePerTon:  s.PricePerTon,
			Tons:         tons,
			Revenue:      revenue,
		})
		total = total.Add(revenue)
	}
	return total, lines
}
