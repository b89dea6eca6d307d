package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tirecycle/feasibility/internal/calculation"
	"github.com/tirecycle/feasibility/internal/config"
	"github.com/tirecycle/feasibility/internal/domain"
	"github.com/tirecycle/feasibility/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "studies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ts := httptest.NewServer(New(calculation.NewDefaultEngine(), st, nil).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func exampleConfigJSON(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(config.NewInputParser().CreateExampleConfiguration())
	require.NoError(t, err)
	return body
}

func post(t *testing.T, url string, body []byte) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestCalculate(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/calculate", exampleConfigJSON(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var analysis domain.Analysis
	decode(t, resp, &analysis)
	assert.Equal(t, 53, analysis.Results.PaybackMonths)
	assert.True(t, analysis.Results.TotalInvestment.Equal(decimal.NewFromInt(7_000_000)))
	assert.True(t, analysis.Results.AnnualRevenue.Equal(decimal.RequireFromString("3934012.5")))
	assert.Len(t, analysis.Breakdown.RevenueLines, 4)
}

func TestCalculateAcceptsYAML(t *testing.T) {
	ts := newTestServer(t)
	cfg, err := config.NewInputParser().Marshal(config.NewInputParser().CreateExampleConfiguration())
	require.NoError(t, err)

	resp := post(t, ts.URL+"/api/v1/calculate", cfg)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCalculateRejectsBadInput(t *testing.T) {
	ts := newTestServer(t)

	invalid := config.NewInputParser().CreateExampleConfiguration()
	invalid.UtilizationRate = decimal.NewFromInt(150)
	invalidBody, err := json.Marshal(invalid)
	require.NoError(t, err)

	cases := map[string][]byte{
		"empty":     nil,
		"malformed": []byte("{"),
		"invalid":   invalidBody,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/calculate", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var e errorBody
			decode(t, resp, &e)
			assert.NotEmpty(t, e.Error)
		})
	}

	resp := post(t, ts.URL+"/api/v1/calculate", invalidBody)
	var e errorBody
	decode(t, resp, &e)
	assert.Contains(t, e.Error, "utilization rate")
}

func TestAnalysisEndpoints(t *testing.T) {
	ts := newTestServer(t)
	body := exampleConfigJSON(t)

	var scenarios domain.ScenarioAnalysis
	resp := post(t, ts.URL+"/api/v1/scenarios", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &scenarios)
	require.Len(t, scenarios.Scenarios, 3)
	assert.Equal(t, domain.ScenarioPessimistic, scenarios.Scenarios[0].Name)

	var sensitivity domain.SensitivityAnalysis
	resp = post(t, ts.URL+"/api/v1/sensitivity", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &sensitivity)
	assert.Len(t, sensitivity.Drivers, 3)
	assert.Len(t, sensitivity.Tornado, 3)

	var heatmap domain.Heatmap
	resp = post(t, ts.URL+"/api/v1/heatmap", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &heatmap)
	require.Len(t, heatmap.Cells, 5)
	assert.Len(t, heatmap.Cells[0], 5)
}

func TestStudyLifecycle(t *testing.T) {
	ts := newTestServer(t)

	req, err := json.Marshal(map[string]any{
		"name":   "Zaragoza line",
		"notes":  "first quote from the shredder vendor",
		"config": json.RawMessage(exampleConfigJSON(t)),
	})
	require.NoError(t, err)

	resp := post(t, ts.URL+"/api/v1/studies", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var saved domain.Study
	decode(t, resp, &saved)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "Zaragoza line", saved.Name)
	assert.Equal(t, 53, saved.Results.PaybackMonths)

	var listed []domain.Study
	resp = get(t, ts.URL+"/api/v1/studies?q=shredder")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &listed)
	require.Len(t, listed, 1)

	resp = get(t, ts.URL+"/api/v1/studies?q=nothing-matches")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &listed)
	assert.Empty(t, listed)

	var fetched domain.Study
	resp = get(t, ts.URL+"/api/v1/studies/"+saved.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &fetched)
	assert.Equal(t, saved.ID, fetched.ID)

	var comparison domain.StudyComparison
	resp = get(t, ts.URL+"/api/v1/studies/compare?metric=npv&ids="+saved.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &comparison)
	assert.Equal(t, domain.MetricNPV, comparison.Metric)
	require.Len(t, comparison.Rows, 1)
	assert.Equal(t, "Zaragoza line", comparison.Best[domain.MetricNPV])

	resp = get(t, ts.URL+"/api/v1/studies/compare")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &comparison)
	assert.Equal(t, domain.MetricROI, comparison.Metric)

	resp = get(t, ts.URL+"/api/v1/studies/compare?metric=margin")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = get(t, ts.URL+"/api/v1/studies/compare?ids=missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	delReq, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/v1/studies/"+saved.ID, nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(delReq)
	require.NoError(t, err)
	_ = delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	resp = get(t, ts.URL+"/api/v1/studies/"+saved.ID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveStudyAcceptsYAML(t *testing.T) {
	ts := newTestServer(t)
	parser := config.NewInputParser()
	cfg, err := parser.Marshal(parser.CreateExampleConfiguration())
	require.NoError(t, err)

	var body strings.Builder
	body.WriteString("name: Q3 board review\nnotes: yaml upload\nconfig:\n")
	for _, line := range strings.Split(strings.TrimRight(string(cfg), "\n"), "\n") {
		body.WriteString("  " + line + "\n")
	}

	resp, err := http.Post(ts.URL+"/api/v1/studies", "application/yaml", strings.NewReader(body.String()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var saved domain.Study
	decode(t, resp, &saved)
	assert.Equal(t, "Q3 board review", saved.Name)
	assert.Equal(t, "yaml upload", saved.Notes)
	assert.Equal(t, "Example granulation plant", saved.Config.Name)
	assert.Equal(t, 53, saved.Results.PaybackMonths)
}

func TestSaveStudyRejectsInvalidConfig(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/api/v1/studies", []byte(`{"name":"x"}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/api/v1/studies", []byte(`not json`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/api/v1/studies", []byte("name: x\nconfig:\n  daily_capacity_tons: 0\n"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	resp := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	post(t, ts.URL+"/api/v1/calculate", exampleConfigJSON(t))

	resp = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `feasibility_http_requests_total{method="POST",route="/api/v1/calculate",status="200"}`)
	assert.Contains(t, buf.String(), `feasibility_calculations_total{kind="calculate"}`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(config.ErrInvalidConfiguration))
	assert.Equal(t, http.StatusBadRequest, statusFor(calculation.ErrUnknownMetric))
	assert.Equal(t, http.StatusNotFound, statusFor(store.ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitIDs(" a, ,b,"))
	assert.Nil(t, splitIDs(""))
	assert.False(t, strings.Contains(strings.Join(splitIDs("a,b"), ""), ","))
}
