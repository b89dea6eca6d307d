package domain

import (
	"github.com/shopspring/decimal"
)

// PaybackSentinel marks an investment that never pays back. It is a display marker and
// must not be used as a duration.
const PaybackSentinel = 999

// FinancialResults is the flat result record of one engine run. The live preview, a
// persisted study and a scenario slice all carry this same shape so any two instances
// compare directly.
type FinancialResults struct {
	TotalInvestment decimal.Decimal `yaml:"total_investment" json:"total_investment"`
	AnnualRevenue   decimal.Decimal `yaml:"annual_revenue" json:"annual_revenue"`
	AnnualOpex      decimal.Decimal `yaml:"annual_opex" json:"annual_opex"`
	AnnualEbitda    decimal.Decimal `yaml:"annual_ebitda" json:"annual_ebitda"`
	PaybackMonths   int             `yaml:"payback_months" json:"payback_months"`
	ROIPercentage   decimal.Decimal `yaml:"roi_percentage" json:"roi_percentage"`
	NPV10Years      decimal.Decimal `yaml:"npv_10_years" json:"npv_10_years"`
	IRRPercentage   decimal.Decimal `yaml:"irr_percentage" json:"irr_percentage"`
	IRRComputable   bool            `yaml:"irr_computable" json:"irr_computable"`
}

// PaysBack reports whether PaybackMonths is a real duration.
func (r FinancialResults) PaysBack() bool {
	return r.PaybackMonths != PaybackSentinel
}

// RevenueLine is the itemized revenue of one output stream. Zero-yield and zero-price
// streams are kept so charts list every configured material.
type RevenueLine struct {
	Name         string          `json:"name"`
	YieldPercent decimal.Decimal `json:"yield_percent"`
	PricePerTon  decimal.Decimal `json:"price_per_ton"`
	Tons         decimal.Decimal `json:"tons"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// Profitability holds the intermediate figures between EBITDA and net profit.
type Profitability struct {
	AnnualEbitda       decimal.Decimal `json:"annual_ebitda"`
	AnnualDepreciation decimal.Decimal `json:"annual_depreciation"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	Taxes              decimal.Decimal `json:"taxes"`
	NetProfit          decimal.Decimal `json:"net_profit"`
}

// Breakdown exposes the itemized inputs behind FinancialResults for reports and charts.
type Breakdown struct {
	AnnualTonnage decimal.Decimal `json:"annual_tonnage"`
	RevenueLines  []RevenueLine   `json:"revenue_lines"`
	CapexItems    []LineItem      `json:"capex_items"`
	OpexItems     []LineItem      `json:"opex_items"`
	MonthlyOpex   decimal.Decimal `json:"monthly_opex"`
	Profitability Profitability   `json:"profitability"`
	IRRIterations int             `json:"irr_iterations"`
	IRRConverged  bool            `json:"irr_converged"`
	IRRRawPercent float64         `json:"irr_raw_percent"`
}

// Analysis pairs the flat results with their breakdown.
type Analysis struct {
	Results   FinancialResults `json:"results"`
	Breakdown Breakdown        `json:"breakdown"`
}

// IRRSolution is the outcome of the Newton-Raphson search.
type IRRSolution struct {
	RatePercent float64   `json:"rate_percent"`
	Iterations  int       `json:"iterations"`
	Converged   bool      `json:"converged"`
	Residual    float64   `json:"residual"`
	Computable  bool      `json:"computable"`
	Trace       []IRRStep `json:"trace,omitempty"`
}

// IRRStep records one Newton iteration.
type IRRStep struct {
	Iteration  int     `json:"iteration"`
	Rate       float64 `json:"rate"`
	NPV        float64 `json:"npv"`
	Derivative float64 `json:"derivative"`
}
