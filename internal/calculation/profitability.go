package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/pkg/money"
)

// CalculateProfitability derives EBITDA, depreciation, taxable income, taxes and net profit.
//
// Taxes are assessed on EBITDA less depreciation but deducted from EBITDA itself, so
// depreciation only acts as a tax shield. Losses produce no tax credit.
// A non-positive depreciation horizon depreciates nothing.
func CalculateProfitability(revenue, opex, investment decimal.Decimal, params domain.FinancialParams) domain.Profitability {
	ebitda := revenue.Sub(opex)

	depreciation := decimal.Zero
	if params.DepreciationYears.IsPositive() {
		depreciation = investment.Div(params.DepreciationYears)
	}

	taxable := ebitda.Sub(depreciation)
	taxes := money.Max(money.Zero(), money.NewMoneyFromDecimal(taxable).PercentOf(params.TaxRate)).Decimal

	return domain.Profitability{
		AnnualEbitda:       ebitda,
		AnnualDepreciation: depreciation,
		TaxableIncome:      taxable,
		Taxes:              taxes,
		NetProfit:          ebitda.Sub(taxes),
	}
}
