package output

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/domain"
)

func buildTestReport(t *testing.T) *domain.FeasibilityReport {
	t.Helper()
	cfg := config.NewInputParser().CreateExampleConfiguration()
	report := calculation.NewDefaultEngine().BuildReport(*cfg, "")
	require.Equal(t, "Example granulation plant", report.Title)
	return report
}

// buildLossReport doubles every opex line until the plant never pays back.
func buildLossReport(t *testing.T) *domain.FeasibilityReport {
	t.Helper()
	cfg := *config.NewInputParser().CreateExampleConfiguration()
	cfg.Name = "Loss maker"
	cfg.Opex.Labor = decimal.NewFromInt(400000)
	report := calculation.NewDefaultEngine().BuildReport(cfg, "")
	require.False(t, report.Analysis.Results.PaysBack())
	return report
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
