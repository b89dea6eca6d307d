package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Calculation kinds used as label values.
const (
	KindCalculate   = "calculate"
	KindScenarios   = "scenarios"
	KindSensitivity = "sensitivity"
	KindHeatmap     = "heatmap"
	KindReport      = "report"
	KindCompare     = "compare"
)

var (
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feasibility_calculations_total",
		Help: "Feasibility engine runs by kind",
	}, []string{"kind"})

	CalculationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "feasibility_calculation_duration_seconds",
		Help:    "Feasibility engine run latency",
		Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
	}, []string{"kind"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feasibility_http_requests_total",
		Help: "HTTP requests by route pattern, method and status",
	}, []string{"route", "method", "status"})

	StudiesSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "feasibility_studies_saved_total",
		Help: "Studies written to the store",
	})
)

// ObserveCalculation records one engine run that started at start.
func ObserveCalculation(kind string, start time.Time) {
	CalculationsTotal.WithLabelValues(kind).Inc()
	CalculationLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
