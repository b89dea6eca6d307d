package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration wraps every validation failure so callers can map it to a
// client error.
var ErrInvalidConfiguration = errors.New("invalid configuration")

var (
	hundred          = decimal.NewFromInt(100)
	maxOperatingDays = decimal.NewFromInt(366)
)

// InputParser handles parsing of plant configuration and assumption files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plant configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.PlantConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a plant configuration. JSON is accepted as a YAML subset.
func (ip *InputParser) Parse(data []byte) (*domain.PlantConfiguration, error) {
	var config domain.PlantConfiguration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// LoadAssumptions loads modeling assumption overrides. Fields the file leaves out keep
// their default values.
func (ip *InputParser) LoadAssumptions(filename string) (domain.Assumptions, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.Assumptions{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var assumptions domain.Assumptions
	if err := yaml.Unmarshal(data, &assumptions); err != nil {
		return domain.Assumptions{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	assumptions = assumptions.WithDefaults()

	if err := ip.ValidateAssumptions(assumptions); err != nil {
		return domain.Assumptions{}, fmt.Errorf("assumptions validation failed: %w", err)
	}
	return assumptions, nil
}

// SaveConfiguration writes a configuration as YAML
func (ip *InputParser) SaveConfiguration(config *domain.PlantConfiguration, filename string) error {
	data, err := ip.Marshal(config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// Marshal renders a configuration as canonical YAML
func (ip *InputParser) Marshal(config *domain.PlantConfiguration) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return data, nil
}

// ValidateConfiguration checks the documented ranges of a plant configuration.
// The engine itself never validates; every caller that accepts outside input must.
func (ip *InputParser) ValidateConfiguration(config *domain.PlantConfiguration) error {
	if err := ip.validateCapacity(config); err != nil {
		return fmt.Errorf("%w: capacity: %w", ErrInvalidConfiguration, err)
	}

	for _, item := range config.Capex.Items() {
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: capex %s cannot be negative", ErrInvalidConfiguration, item.Name)
		}
	}
	for _, item := range config.Opex.Items() {
		if item.Amount.IsNegative() {
			return fmt.Errorf("%w: opex %s cannot be negative", ErrInvalidConfiguration, item.Name)
		}
	}

	seen := make(map[string]bool, len(config.OutputStreams))
	for i, stream := range config.OutputStreams {
		if err := ip.validateStream(&stream); err != nil {
			return fmt.Errorf("%w: output stream %d: %w", ErrInvalidConfiguration, i, err)
		}
		if seen[stream.Name] {
			return fmt.Errorf("%w: output stream %q is listed twice", ErrInvalidConfiguration, stream.Name)
		}
		seen[stream.Name] = true
	}

	if err := ip.validateFinancial(&config.Financial); err != nil {
		return fmt.Errorf("%w: financial: %w", ErrInvalidConfiguration, err)
	}

	return nil
}

func (ip *InputParser) validateCapacity(config *domain.PlantConfiguration) error {
	if !config.DailyCapacityTons.IsPositive() {
		return fmt.Errorf("daily capacity must be positive")
	}

	if err := inRange("operating days per year", config.OperatingDaysPerYear, decimal.Zero, maxOperatingDays); err != nil {
		return err
	}
	return inRange("utilization rate", config.UtilizationRate, decimal.Zero, hundred)
}

func (ip *InputParser) validateStream(stream *domain.OutputStream) error {
	if stream.Name == "" {
		return fmt.Errorf("name is required")
	}
	if stream.PricePerTon.IsNegative() {
		return fmt.Errorf("price per ton cannot be negative")
	}
	return inRange("yield percent", stream.YieldPercent, decimal.Zero, hundred)
}

func (ip *InputParser) validateFinancial(params *domain.FinancialParams) error {
	if err := inRange("tax rate", params.TaxRate, decimal.Zero, hundred); err != nil {
		return err
	}
	if !params.DepreciationYears.IsPositive() {
		return fmt.Errorf("depreciation years must be positive")
	}
	if err := inRange("discount rate", params.DiscountRate, decimal.Zero, hundred); err != nil {
		return err
	}
	return inRange("inflation rate", params.InflationRate, decimal.Zero, hundred)
}

// ValidateAssumptions checks a complete (defaulted) assumption set.
func (ip *InputParser) ValidateAssumptions(a domain.Assumptions) error {
	if a.HorizonYears <= 0 || a.ProjectionYears <= 0 {
		return fmt.Errorf("%w: horizon and projection years must be positive", ErrInvalidConfiguration)
	}

	seen := make(map[string]bool, len(a.Scenarios))
	for _, s := range a.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("%w: scenario name is required", ErrInvalidConfiguration)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: scenario %q is defined twice", ErrInvalidConfiguration, s.Name)
		}
		seen[s.Name] = true
		if err := inRange("scenario "+s.Name+" utilization", s.UtilizationRate, decimal.Zero, hundred); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
	}

	if err := inRange("contribution margin factor", a.ContributionMarginFactor.Decimal, decimal.Zero, decimal.NewFromInt(1)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	s := a.Sensitivity
	for _, e := range []decimal.NullDecimal{s.PriceElasticity, s.CapacityElasticity, s.OpexElasticity} {
		if e.Decimal.IsNegative() {
			return fmt.Errorf("%w: sensitivity elasticities cannot be negative", ErrInvalidConfiguration)
		}
	}
	for _, v := range s.Variations {
		if v.Abs().GreaterThan(hundred) {
			return fmt.Errorf("%w: sensitivity variation %s%% is outside -100..100", ErrInvalidConfiguration, v)
		}
	}

	if a.IRR.MaxPlausiblePercent <= 0 || a.IRR.InitialGuess <= -1 {
		return fmt.Errorf("%w: IRR settings out of range", ErrInvalidConfiguration)
	}
	return nil
}

func inRange(field string, v, lo, hi decimal.Decimal) error {
	if v.LessThan(lo) || v.GreaterThan(hi) {
		return fmt.Errorf("%s must be between %s and %s, got %s", field, lo, hi, v)
	}
	return nil
}

// CreateExampleConfiguration creates an example plant: an 85 t/day passenger and truck
// tire shredding and granulation line.
func (ip *InputParser) CreateExampleConfiguration() *domain.PlantConfiguration {
	startDate, _ := time.Parse("2006-01-02", "2027-01-04")

	return &domain.PlantConfiguration{
		Name:                 "Example granulation plant",
		Location:             "Zaragoza, ES",
		StartDate:            &startDate,
		DailyCapacityTons:    decimal.NewFromInt(85),
		OperatingDaysPerYear: decimal.NewFromInt(300),
		UtilizationRate:      decimal.NewFromInt(85),
		Capex: domain.CapexItems{
			Equipment:      decimal.NewFromInt(4_500_000),
			Installation:   decimal.NewFromInt(800_000),
			Infrastructure: decimal.NewFromInt(1_200_000),
			WorkingCapital: decimal.NewFromInt(500_000),
			Other:          decimal.Zero,
		},
		Opex: domain.OpexItems{
			RawMaterial:    decimal.NewFromInt(20_000),
			Labor:          decimal.NewFromInt(60_000),
			Energy:         decimal.NewFromInt(35_000),
			Maintenance:    decimal.NewFromInt(15_000),
			Logistics:      decimal.NewFromInt(25_000),
			Administrative: decimal.NewFromInt(10_000),
			Other:          decimal.NewFromInt(5_000),
		},
		OutputStreams: []domain.OutputStream{
			{Name: domain.StreamRubberGranules, PricePerTon: decimal.NewFromInt(240), YieldPercent: decimal.NewFromInt(55)},
			{Name: domain.StreamSteelWire, PricePerTon: decimal.NewFromInt(180), YieldPercent: decimal.NewFromInt(25)},
			{Name: domain.StreamTextileFiber, PricePerTon: decimal.NewFromInt(30), YieldPercent: decimal.NewFromInt(15)},
			{Name: domain.StreamCarbonBlack, PricePerTon: decimal.Zero, YieldPercent: decimal.Zero},
		},
		Financial: domain.FinancialParams{
			TaxRate:           decimal.NewFromInt(25),
			DepreciationYears: decimal.NewFromInt(10),
			DiscountRate:      decimal.NewFromInt(8),
			InflationRate:     decimal.NewFromInt(3),
		},
	}
}
