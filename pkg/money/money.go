package money

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Money represents a monetary amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal wraps a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses a plain decimal string such as "1250000.50"
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Sum adds line items. An empty list sums to zero.
func Sum(amounts ...decimal.Decimal) Money {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Money{total}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// PercentOf returns pct percent of the amount (pct on a 0-100 scale).
func (m Money) PercentOf(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Div(hundred)}
}

// Round rounds the amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Max returns the larger of two amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as "$1,234,567.89"
func (m Money) Format() string {
	return formatGrouped(m.Decimal, 2)
}

// FormatWhole renders the amount rounded to whole currency units, e.g. "$2,861,100"
func (m Money) FormatWhole() string {
	return formatGrouped(m.Decimal, 0)
}

func formatGrouped(d decimal.Decimal, places int32) string {
	r := d.Round(places)
	abs := r.Abs()

	var frac string
	if places > 0 {
		fixed := abs.StringFixed(places)
		frac = fixed[strings.IndexByte(fixed, '.'):]
	}

	out := "$" + humanize.BigComma(abs.Truncate(0).BigInt()) + frac
	if r.IsNegative() {
		return "-" + out
	}
	return out
}
