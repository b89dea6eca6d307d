package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlantConfiguration is the sole input of the feasibility engine. Percent fields are
// expressed on a 0-100 scale; monetary fields are in the study currency.
type PlantConfiguration struct {
	Name      string     `yaml:"name,omitempty" json:"name,omitempty"`
	Location  string     `yaml:"location,omitempty" json:"location,omitempty"`
	StartDate *time.Time `yaml:"start_date,omitempty" json:"start_date,omitempty"` // commissioning date, display only

	// Capacity
	DailyCapacityTons    decimal.Decimal `yaml:"daily_capacity_tons" json:"daily_capacity_tons"`
	OperatingDaysPerYear decimal.Decimal `yaml:"operating_days_per_year" json:"operating_days_per_year"`
	UtilizationRate      decimal.Decimal `yaml:"utilization_rate" json:"utilization_rate"`

	Capex         CapexItems      `yaml:"capex" json:"capex"`
	Opex          OpexItems       `yaml:"opex" json:"opex"` // monthly amounts
	OutputStreams []OutputStream  `yaml:"output_streams" json:"output_streams"`
	Financial     FinancialParams `yaml:"financial" json:"financial"`
}

// CapexItems are one-time capital investment line items.
type CapexItems struct {
	Equipment      decimal.Decimal `yaml:"equipment" json:"equipment"`
	Installation   decimal.Decimal `yaml:"installation" json:"installation"`
	Infrastructure decimal.Decimal `yaml:"infrastructure" json:"infrastructure"`
	WorkingCapital decimal.Decimal `yaml:"working_capital" json:"working_capital"`
	Other          decimal.Decimal `yaml:"other" json:"other"`
}

// Items returns the line items in display order.
func (c CapexItems) Items() []LineItem {
	return []LineItem{
		{Name: "equipment", Amount: c.Equipment},
		{Name: "installation", Amount: c.Installation},
		{Name: "infrastructure", Amount: c.Infrastructure},
		{Name: "working_capital", Amount: c.WorkingCapital},
		{Name: "other", Amount: c.Other},
	}
}

// OpexItems are recurring monthly operating costs.
type OpexItems struct {
	RawMaterial    decimal.Decimal `yaml:"raw_material" json:"raw_material"`
	Labor          decimal.Decimal `yaml:"labor" json:"labor"`
	Energy         decimal.Decimal `yaml:"energy" json:"energy"`
	Maintenance    decimal.Decimal `yaml:"maintenance" json:"maintenance"`
	Logistics      decimal.Decimal `yaml:"logistics" json:"logistics"`
	Administrative decimal.Decimal `yaml:"administrative" json:"administrative"`
	Other          decimal.Decimal `yaml:"other" json:"other"`
}

// Items returns the line items in display order.
func (o OpexItems) Items() []LineItem {
	return []LineItem{
		{Name: "raw_material", Amount: o.RawMaterial},
		{Name: "labor", Amount: o.Labor},
		{Name: "energy", Amount: o.Energy},
		{Name: "maintenance", Amount: o.Maintenance},
		{Name: "logistics", Amount: o.Logistics},
		{Name: "administrative", Amount: o.Administrative},
		{Name: "other", Amount: o.Other},
	}
}

// LineItem is a named monetary amount.
type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// OutputStream is one recovered material. Yields of different streams are independent
// percentages of processed tonnage; they need not sum to 100.
type OutputStream struct {
	Name         string          `yaml:"name" json:"name"`
	PricePerTon  decimal.Decimal `yaml:"price_per_ton" json:"price_per_ton"`
	YieldPercent decimal.Decimal `yaml:"yield_percent" json:"yield_percent"`
}

// FinancialParams holds the rates used by the profitability and valuation steps.
type FinancialParams struct {
	TaxRate           decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	DepreciationYears decimal.Decimal `yaml:"depreciation_years" json:"depreciation_years"`
	DiscountRate      decimal.Decimal `yaml:"discount_rate" json:"discount_rate"`
	// InflationRate is carried for reporting. NPV deliberately ignores it.
	InflationRate decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
}

// WithUtilization returns a copy of the configuration with the utilization rate replaced.
// The output stream slice is copied so the receiver is never aliased.
func (pc PlantConfiguration) WithUtilization(rate decimal.Decimal) PlantConfiguration {
	out := pc
	out.UtilizationRate = rate
	out.OutputStreams = append([]OutputStream(nil), pc.OutputStreams...)
	return out
}

// Default output streams of a shredding and granulation line.
const (
	StreamRubberGranules = "rubber_granules"
	StreamSteelWire      = "steel_wire"
	StreamTextileFiber   = "textile_fiber"
	StreamCarbonBlack    = "recovered_carbon_black"
)
