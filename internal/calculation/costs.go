package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/pkg/money"
)

// TotalInvestment sums the CAPEX line items. Unset items are zero.
func TotalInvestment(capex domain.CapexItems) decimal.Decimal {
	return sumItems(capex.Items()).Decimal
}

// MonthlyOpex sums the monthly OPEX line items.
func MonthlyOpex(opex domain.OpexItems) decimal.Decimal {
	return sumItems(opex.Items()).Decimal
}

// AnnualOpex is the monthly OPEX total times twelve.
func AnnualOpex(opex domain.OpexItems) decimal.Decimal {
	return sumItems(opex.Items()).Annual().Decimal
}

func sumItems(items []domain.LineItem) money.Money {
	amounts := make([]decimal.Decimal, len(items))
	for i, it := range items {
		amounts[i] = it.Amount
	}
	return money.Sum(amounts...)
}
