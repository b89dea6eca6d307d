package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tirecycle/feasibility/internal/domain"
)

// ErrUnknownMetric is returned by RankStudies for an unsupported ranking metric.
var ErrUnknownMetric = errors.New("unknown ranking metric")

// Metrics lists the supported ranking metrics in display order.
var Metrics = []string{domain.MetricROI, domain.MetricNPV, domain.MetricIRR, domain.MetricPayback}

// RankStudies orders persisted studies by one metric using their stored results; no
// study is recalculated. Higher is better for roi, npv and irr; shorter is better for
// payback. Non-paying-back studies and non-computable IRRs rank last. Ties keep the input
// order.
func RankStudies(studies []domain.Study, metric string) (*domain.StudyComparison, error) {
	rows, err := rank(studies, metric)
	if err != nil {
		return nil, err
	}

	best := make(map[string]string, len(Metrics))
	for _, m := range Metrics {
		ranked, _ := rank(studies, m)
		if len(ranked) > 0 && ranked[0].Viable {
			best[m] = ranked[0].Name
		}
	}

	return &domain.StudyComparison{Metric: metric, Rows: rows, Best: best}, nil
}

func rank(studies []domain.Study, metric string) ([]domain.RankedStudy, error) {
	valueOf, lowerIsBetter, err := metricAccessor(metric)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RankedStudy, len(studies))
	for i, s := range studies {
		value, viable := valueOf(s.Results)
		rows[i] = domain.RankedStudy{
			StudyID: s.ID,
			Name:    s.Name,
			Value:   value,
			Viable:  viable,
			Results: s.Results,
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Viable != b.Viable {
			return a.Viable
		}
		if lowerIsBetter {
			return a.Value.LessThan(b.Value)
		}
		return a.Value.GreaterThan(b.Value)
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

func metricAccessor(metric string) (func(domain.FinancialResults) (decimal.Decimal, bool), bool, error) {
	switch metric {
	case domain.MetricROI:
		return func(r domain.FinancialResults) (decimal.Decimal, bool) { return r.ROIPercentage, true }, false, nil
	case domain.MetricNPV:
		return func(r domain.FinancialResults) (decimal.Decimal, bool) { return r.NPV10Years, true }, false, nil
	case domain.MetricIRR:
		return func(r domain.FinancialResults) (decimal.Decimal, bool) { return r.IRRPercentage, r.IRRComputable }, false, nil
	case domain.MetricPayback:
		return func(r domain.FinancialResults) (decimal.Decimal, bool) {
			return decimal.NewFromInt(int64(r.PaybackMonths)), r.PaysBack()
		}, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
}
