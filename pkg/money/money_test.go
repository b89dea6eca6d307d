package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	m := NewMoney(12.345)
	assert.Equal(t, "12.35", m.String())

	d := decimal.NewFromFloat(10.125)
	assert.True(t, NewMoneyFromDecimal(d).Decimal.Equal(d))

	m3, err := NewMoneyFromString("123.45")
	require.NoError(t, err)
	assert.Equal(t, "123.45", m3.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())

	total := Sum(decimal.NewFromInt(4_500_000), decimal.NewFromInt(800_000), decimal.Zero, decimal.NewFromFloat(0.5))
	assert.Equal(t, "5300000.50", total.String())
}

func TestPeriodConversions(t *testing.T) {
	m := NewMoney(100)
	assert.Equal(t, "1200.00", m.Annual().String())
	assert.Equal(t, "100.00", m.Annual().Monthly().String())
}

func TestPercentOf(t *testing.T) {
	tons := NewMoneyFromDecimal(decimal.NewFromInt(21675))
	assert.Equal(t, "11921.25", tons.PercentOf(decimal.NewFromInt(55)).String())
	assert.True(t, tons.PercentOf(decimal.Zero).IsZero())
}

func TestArithmeticAndMax(t *testing.T) {
	a := NewMoney(10.10)
	b := NewMoney(5.05)
	assert.Equal(t, "15.15", a.Add(b).String())
	assert.Equal(t, "5.05", a.Sub(b).String())
	assert.True(t, Max(a, b).Equal(a.Decimal))
	assert.True(t, Max(Zero(), NewMoney(-3)).IsZero())
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in    string
		full  string
		whole string
	}{
		{"0", "$0.00", "$0"},
		{"999.5", "$999.50", "$1,000"},
		{"1234.5", "$1,234.50", "$1,235"},
		{"2861100", "$2,861,100.00", "$2,861,100"},
		{"-12500000.126", "-$12,500,000.13", "-$12,500,000"},
		{"-0.004", "$0.00", "$0"},
		{"123456789012345678.905", "$123,456,789,012,345,678.91", "$123,456,789,012,345,679"},
	}
	for _, c := range cases {
		m, err := NewMoneyFromString(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.full, m.Format(), c.in)
		assert.Equal(t, c.whole, m.FormatWhole(), c.in)
	}
}
