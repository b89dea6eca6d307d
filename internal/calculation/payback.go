package calculation

import (
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// PaybackMonths returns ceil(investment / netProfit x 12), or sentinel when the plant
// never earns a profit.
func PaybackMonths(investment, netProfit decimal.Decimal, sentinel int) int {
	if !netProfit.IsPositive() {
		return sentinel
	}
	// Exact integer quotient; any remainder rounds up.
	months, rem := investment.Mul(monthsPerYear).QuoRem(netProfit, 0)
	if rem.IsPositive() {
		months = months.Add(decimal.NewFromInt(1))
	}
	if months.GreaterThanOrEqual(decimal.NewFromInt(int64(sentinel))) {
		return sentinel
	}
	return int(months.IntPart())
}

// ROIPercentage returns netProfit / investment x 100, or zero without an investment.
func ROIPercentage(netProfit, investment decimal.Decimal) decimal.Decimal {
	if !investment.IsPositive() {
		return decimal.Zero
	}
	return netProfit.Div(investment).Mul(hundred)
}
