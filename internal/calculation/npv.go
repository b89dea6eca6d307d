package calculation

import (
	"math"

	"github.com/shopspring/decimal"
)

// NPV discounts a flat net-profit annuity over years against the up-front investment:
// -investment + sum_{y=1..years} netProfit / (1 + rate/100)^y.
// Net profit is held constant; no inflation or growth is applied.
func NPV(investment, netProfit, discountRatePct decimal.Decimal, years int) decimal.Decimal {
	base := decimal.NewFromInt(1).Add(discountRatePct.Div(hundred))
	if !base.IsPositive() {
		// A rate at or below -100% has no present value; only the outlay remains.
		return investment.Neg()
	}

	npv := investment.Neg()
	factor := decimal.NewFromInt(1)
	for y := 1; y <= years; y++ {
		factor = factor.Mul(base)
		npv = npv.Add(netProfit.Div(factor))
	}
	return npv
}

// npvAt evaluates the same annuity at a fractional rate (0.15 = 15%) together with its
// derivative d(npv)/dr = sum -y x netProfit / (1+r)^(y+1).
func npvAt(rate, investment, netProfit float64, years int) (npv, derivative float64) {
	base := 1 + rate
	npv = -investment
	pow := 1.0
	for y := 1; y <= years; y++ {
		pow *= base
		npv += netProfit / pow
		derivative -= float64(y) * netProfit / (pow * base)
	}
	return npv, derivative
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
