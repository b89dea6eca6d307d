package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessViablePlant(t *testing.T) {
	a := Assess(buildTestReport(t))

	assert.True(t, a.Viable)
	assert.True(t, strings.HasPrefix(a.Headline, "Viable: NPV $"), a.Headline)
	assert.Contains(t, a.Headline, "payback 53 months (4y 5m)")
	assert.Contains(t, a.Notes, "Investment recovered by Jun 2031")
	assert.True(t, strings.HasPrefix(a.Notes[0], "Most sensitive driver: capacity"), a.Notes[0])
}

func TestAssessLossMaker(t *testing.T) {
	a := Assess(buildLossReport(t))

	assert.False(t, a.Viable)
	assert.Contains(t, a.Headline, "Not viable")
	assert.Contains(t, a.Headline, "payback > 83 years")
	assert.Contains(t, a.Headline, "IRR N/A")
	assert.Contains(t, a.Notes, "Scenario pessimistic (50.00% utilization) does not pay back")
	for _, n := range a.Notes {
		assert.NotContains(t, n, "Investment recovered")
	}
}
