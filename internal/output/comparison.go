package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/tirecycle/feasibility/internal/domain"
)

// FormatComparison renders a study ranking as an aligned text table followed by the
// leader of every metric.
func FormatComparison(c *domain.StudyComparison) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "STUDIES RANKED BY %s\n\n", strings.ToUpper(metricTitle(c.Metric)))

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tStudy\tROI\tNPV\tIRR\tPayback\t")
	for _, row := range c.Rows {
		rank := intToString(row.Rank)
		if !row.Viable {
			rank = "-"
		}
		r := row.Results
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n", rank, row.Name,
			FormatPercentage(r.ROIPercentage), FormatWholeCurrency(r.NPV10Years), FormatIRR(r), FormatPayback(r.PaybackMonths))
	}
	tw.Flush()

	if len(c.Best) > 0 {
		fmt.Fprintln(&buf)
		metrics := make([]string, 0, len(c.Best))
		for m := range c.Best {
			metrics = append(metrics, m)
		}
		sort.Strings(metrics)
		for _, m := range metrics {
			fmt.Fprintf(&buf, "Best %s: %s\n", metricTitle(m), c.Best[m])
		}
	}
	return buf.Bytes()
}

func metricTitle(metric string) string {
	switch metric {
	case domain.MetricROI:
		return "ROI"
	case domain.MetricNPV:
		return "NPV"
	case domain.MetricIRR:
		return "IRR"
	case domain.MetricPayback:
		return "Payback"
	default:
		return metric
	}
}
