package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/output"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

// examplePlantFile writes the example configuration into a fresh working directory.
func examplePlantFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "plant.yaml")
	out, err := run(t, "example", path)
	require.NoError(t, err)
	require.Contains(t, out, "Example configuration written to")
	return path
}

func TestCalculateCommand(t *testing.T) {
	plant := examplePlantFile(t)

	out, err := run(t, "calculate", plant)
	require.NoError(t, err)
	assert.Contains(t, out, "$3,934,012.50")
	assert.Contains(t, out, "53 months (4y 5m)")
	assert.Contains(t, out, "Jun 2031")
	assert.Contains(t, out, "22.79%")

	out, err = run(t, "calculate", "--json", plant)
	require.NoError(t, err)
	var analysis domain.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, 53, analysis.Results.PaybackMonths)
}

func TestCalculateCommandErrors(t *testing.T) {
	examplePlantFile(t)

	_, err := run(t, "calculate", "missing.yaml")
	assert.Error(t, err)

	_, err = run(t, "calculate")
	assert.Error(t, err)
}

func TestScenariosAndSensitivityCommands(t *testing.T) {
	plant := examplePlantFile(t)

	out, err := run(t, "scenarios", plant)
	require.NoError(t, err)
	for _, name := range []string{"pessimistic", "probable", "optimistic"} {
		assert.Contains(t, out, name)
	}

	out, err = run(t, "sensitivity", plant)
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline ROI: 22.79%")
	assert.Contains(t, out, "capacity")

	out, err = run(t, "sensitivity", "--heatmap", plant)
	require.NoError(t, err)
	assert.Contains(t, out, `price \ capacity`)
}

func TestReportCommand(t *testing.T) {
	plant := examplePlantFile(t)

	out, err := run(t, "report", "--format", "md", plant)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Example granulation plant"), out)

	out, err = run(t, "report", "--format", "markdown", "--title", "Board pack", plant)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Board pack"), out)

	_, err = run(t, "report", "--format", "pdf", plant)
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	dir := filepath.Join(t.TempDir(), "reports")
	out, err = run(t, "report", "--format", "all", "--output", dir, plant)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 3)
}

func TestDiffCommand(t *testing.T) {
	plant := examplePlantFile(t)

	out, err := run(t, "diff", plant, plant)
	require.NoError(t, err)
	assert.Contains(t, out, "Configurations are identical.")
}

func TestStudyCommands(t *testing.T) {
	plant := examplePlantFile(t)
	t.Setenv("FEASIBILITY_DATABASE_DRIVER", "sqlite")
	t.Setenv("FEASIBILITY_DATABASE_PATH", filepath.Join(t.TempDir(), "studies.db"))

	out, err := run(t, "study", "save", "--name", "Zaragoza line", "--notes", "vendor quote", plant)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Saved study "), out)
	id := strings.Fields(out)[2]

	out, err = run(t, "study", "list", "-q", "vendor")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Zaragoza line")

	out, err = run(t, "study", "compare", "--metric", "payback")
	require.NoError(t, err)
	assert.Contains(t, out, "STUDIES RANKED BY PAYBACK")
	assert.Contains(t, out, "Best Payback: Zaragoza line")

	_, err = run(t, "study", "compare", "--metric", "margin")
	assert.Error(t, err)

	out, err = run(t, "study", "show", "--format", "console-lite", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Study: Zaragoza line")

	out, err = run(t, "study", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted study "+id)

	_, err = run(t, "study", "show", id)
	assert.Error(t, err)
}
