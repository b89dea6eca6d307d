package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Study is a persisted feasibility study: the configuration and the results computed
// from it, flattened into one record by the store.
type Study struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Notes     string             `json:"notes,omitempty"`
	Config    PlantConfiguration `json:"config"`
	Results   FinancialResults   `json:"results"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Ranking metrics for the comparison view.
const (
	MetricROI     = "roi"
	MetricNPV     = "npv"
	MetricIRR     = "irr"
	MetricPayback = "payback"
)

// RankedStudy is one row of the comparison view.
type RankedStudy struct {
	Rank    int              `json:"rank"`
	StudyID string           `json:"study_id"`
	Name    string           `json:"name"`
	Value   decimal.Decimal  `json:"value"`
	Viable  bool             `json:"viable"` // false for the payback sentinel or a non-computable IRR
	Results FinancialResults `json:"results"`
}

// StudyComparison is the ranking of persisted studies by one metric plus the leader of
// every metric.
type StudyComparison struct {
	Metric string            `json:"metric"`
	Rows   []RankedStudy     `json:"rows"`
	Best   map[string]string `json:"best"` // metric -> study name
}
