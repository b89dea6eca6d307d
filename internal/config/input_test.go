package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tirecycle/feasibility/internal/domain"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testConfig := "name: \"Valencia line 2\"\n" +
		"start_date: 2028-03-01\n" +
		"daily_capacity_tons: 85\n" +
		"operating_days_per_year: 300\n" +
		"utilization_rate: 85\n" +
		"capex:\n" +
		"  equipment: 4500000\n" +
		"  installation: 800000.50\n" +
		"opex:\n" +
		"  labor: 60000\n" +
		"output_streams:\n" +
		"  - name: rubber_granules\n" +
		"    price_per_ton: 240\n" +
		"    yield_percent: 55\n" +
		"  - name: steel_wire\n" +
		"    price_per_ton: 180\n" +
		"    yield_percent: 25\n" +
		"financial:\n" +
		"  tax_rate: 25\n" +
		"  depreciation_years: 10\n" +
		"  discount_rate: 8\n"

	parser := NewInputParser()
	config, err := parser.LoadFromFile(writeTemp(t, "plant.yaml", testConfig))

	require.NoError(t, err)
	assert.Equal(t, "Valencia line 2", config.Name)
	require.NotNil(t, config.StartDate)
	assert.Equal(t, 2028, config.StartDate.Year())
	assert.True(t, config.DailyCapacityTons.Equal(decimal.NewFromInt(85)))
	assert.True(t, config.Capex.Installation.Equal(decimal.RequireFromString("800000.5")))
	assert.True(t, config.Capex.Other.IsZero(), "missing items default to zero")
	assert.True(t, config.Opex.Energy.IsZero())
	require.Len(t, config.OutputStreams, 2)
	assert.Equal(t, "steel_wire", config.OutputStreams[1].Name)
	assert.True(t, config.Financial.InflationRate.IsZero())
}

func TestLoadFromFile_JSON(t *testing.T) {
	testConfig := `{
  "daily_capacity_tons": "40",
  "operating_days_per_year": 250,
  "utilization_rate": 70,
  "capex": {"equipment": 1000000},
  "output_streams": [{"name": "rubber_granules", "price_per_ton": 200, "yield_percent": 60}],
  "financial": {"tax_rate": 20, "depreciation_years": 8, "discount_rate": 10}
}`

	config, err := NewInputParser().LoadFromFile(writeTemp(t, "plant.json", testConfig))

	require.NoError(t, err)
	assert.True(t, config.DailyCapacityTons.Equal(decimal.NewFromInt(40)))
	assert.True(t, config.Financial.DepreciationYears.Equal(decimal.NewFromInt(8)))
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeTemp(t, "bad.yaml", "daily_capacity_tons: [85\n"))

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_ValidationFailure(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(writeTemp(t, "zero.yaml", "daily_capacity_tons: 0\n"))

	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "daily capacity must be positive")
}

func TestValidateConfiguration(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(c *domain.PlantConfiguration)
		wantErr string
	}{
		{"example is valid", func(c *domain.PlantConfiguration) {}, ""},
		{"zero capacity", func(c *domain.PlantConfiguration) { c.DailyCapacityTons = decimal.Zero }, "daily capacity must be positive"},
		{"too many days", func(c *domain.PlantConfiguration) {
			c.StartDate = nil
			c.OperatingDaysPerYear = decimal.NewFromInt(367)
		}, "operating days per year"},
		{"utilization above 100", func(c *domain.PlantConfiguration) { c.UtilizationRate = decimal.NewFromInt(101) }, "utilization rate"},
		{"negative capex", func(c *domain.PlantConfiguration) { c.Capex.Equipment = decimal.NewFromInt(-1) }, "capex equipment"},
		{"negative opex", func(c *domain.PlantConfiguration) { c.Opex.Energy = decimal.NewFromInt(-1) }, "opex energy"},
		{"unnamed stream", func(c *domain.PlantConfiguration) { c.OutputStreams[0].Name = "" }, "name is required"},
		{"negative price", func(c *domain.PlantConfiguration) { c.OutputStreams[1].PricePerTon = decimal.NewFromInt(-5) }, "price per ton"},
		{"yield above 100", func(c *domain.PlantConfiguration) { c.OutputStreams[2].YieldPercent = decimal.NewFromInt(120) }, "yield percent"},
		{"duplicate stream", func(c *domain.PlantConfiguration) { c.OutputStreams[1].Name = c.OutputStreams[0].Name }, "listed twice"},
		{"tax rate", func(c *domain.PlantConfiguration) { c.Financial.TaxRate = decimal.NewFromInt(-1) }, "tax rate"},
		{"depreciation", func(c *domain.PlantConfiguration) { c.Financial.DepreciationYears = decimal.Zero }, "depreciation years must be positive"},
		{"discount rate", func(c *domain.PlantConfiguration) { c.Financial.DiscountRate = decimal.NewFromInt(150) }, "discount rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := parser.CreateExampleConfiguration()
			tt.mutate(config)

			err := parser.ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfiguration_OperatingDaysIgnoreCalendar(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()
	config.OperatingDaysPerYear = decimal.NewFromInt(366)

	common := time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC)
	config.StartDate = &common
	assert.NoError(t, parser.ValidateConfiguration(config))

	config.StartDate = nil
	assert.NoError(t, parser.ValidateConfiguration(config))

	config.OperatingDaysPerYear = decimal.Zero
	assert.NoError(t, parser.ValidateConfiguration(config))
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleConfiguration()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SaveConfiguration(original, path))
	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Location, loaded.Location)
	require.NotNil(t, loaded.StartDate)
	assert.True(t, original.StartDate.Equal(*loaded.StartDate))
	assert.True(t, original.Capex.Equipment.Equal(loaded.Capex.Equipment))
	assert.True(t, original.Opex.Labor.Equal(loaded.Opex.Labor))
	assert.True(t, original.Financial.InflationRate.Equal(loaded.Financial.InflationRate))
	require.Len(t, loaded.OutputStreams, len(original.OutputStreams))
	for i := range original.OutputStreams {
		assert.Equal(t, original.OutputStreams[i].Name, loaded.OutputStreams[i].Name)
		assert.True(t, original.OutputStreams[i].PricePerTon.Equal(loaded.OutputStreams[i].PricePerTon))
	}
}

func TestSaveConfiguration_BadPath(t *testing.T) {
	parser := NewInputParser()
	err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), filepath.Join(t.TempDir(), "missing", "x.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}

func TestLoadAssumptions_PartialOverride(t *testing.T) {
	content := "horizon_years: 15\n" +
		"sensitivity:\n" +
		"  price_elasticity: 1\n" +
		"irr:\n" +
		"  max_plausible_percent: 200\n"

	a, err := NewInputParser().LoadAssumptions(writeTemp(t, "assumptions.yaml", content))
	require.NoError(t, err)

	defaults := domain.DefaultAssumptions()
	assert.Equal(t, 15, a.HorizonYears)
	assert.True(t, a.Sensitivity.PriceElasticity.Decimal.Equal(decimal.NewFromInt(1)))
	assert.True(t, a.Sensitivity.CapacityElasticity.Decimal.Equal(defaults.Sensitivity.CapacityElasticity.Decimal))
	assert.Equal(t, 200.0, a.IRR.MaxPlausiblePercent)
	assert.Equal(t, defaults.IRR.MaxIterations, a.IRR.MaxIterations)
	assert.Len(t, a.Scenarios, 3)
	assert.Equal(t, defaults.ProjectionYears, a.ProjectionYears)
}

func TestLoadAssumptions_ExplicitZero(t *testing.T) {
	content := "contribution_margin_factor: 0\n" +
		"sensitivity:\n" +
		"  opex_elasticity: 0\n"

	a, err := NewInputParser().LoadAssumptions(writeTemp(t, "assumptions.yaml", content))
	require.NoError(t, err)

	defaults := domain.DefaultAssumptions()
	assert.True(t, a.ContributionMarginFactor.Valid)
	assert.True(t, a.ContributionMarginFactor.Decimal.IsZero())
	assert.True(t, a.Sensitivity.OpexElasticity.Valid)
	assert.True(t, a.Sensitivity.OpexElasticity.Decimal.IsZero())
	assert.True(t, a.Sensitivity.PriceElasticity.Decimal.Equal(defaults.Sensitivity.PriceElasticity.Decimal))
}

func TestLoadAssumptions_CustomScenarios(t *testing.T) {
	content := "scenarios:\n" +
		"  - name: ramp_up\n" +
		"    utilization_rate: 30\n" +
		"  - name: nameplate\n" +
		"    utilization_rate: 100\n"

	a, err := NewInputParser().LoadAssumptions(writeTemp(t, "assumptions.yaml", content))
	require.NoError(t, err)
	require.Len(t, a.Scenarios, 2)
	assert.Equal(t, "ramp_up", a.Scenarios[0].Name)
	assert.True(t, a.Scenarios[0].UtilizationRate.Equal(decimal.NewFromInt(30)))
}

func TestLoadAssumptions_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"margin above one", "contribution_margin_factor: 1.5\n"},
		{"duplicate scenario", "scenarios:\n  - {name: a, utilization_rate: 10}\n  - {name: a, utilization_rate: 20}\n"},
		{"scenario utilization", "scenarios:\n  - {name: a, utilization_rate: 120}\n"},
		{"negative elasticity", "sensitivity:\n  opex_elasticity: -0.5\n"},
		{"variation out of range", "sensitivity:\n  variations: [-150, 0, 150]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().LoadAssumptions(writeTemp(t, "assumptions.yaml", tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}
