package performance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultSampleSize is the number of curve points included in a text report.
const DefaultSampleSize = 10

// TextReportRenderer renders a report as labeled "key: value" lines followed by a sample of the S-curve,
// the shape expected by the narrative summarizer.
type TextReportRenderer struct {
	sampleSize int
	precision  int
}

func NewTextReportRenderer(sampleSize int, precision int) *TextReportRenderer {
	if sampleSize < 2 {
		sampleSize = DefaultSampleSize
	}
	return &TextReportRenderer{sampleSize: sampleSize, precision: precision}
}

func (r *TextReportRenderer) RenderReport(report Report) string {
	var b strings.Builder
	if report.ProjectName != "" {
		fmt.Fprintf(&b, "project: %s\n", report.ProjectName)
	}
	b.WriteString(r.RenderKpis(report.Kpis))
	b.WriteString("s-curve sample:\n")
	b.WriteString(r.RenderCurveSample(report.Curve))
	return b.String()
}

func (r *TextReportRenderer) RenderKpis(k KpiResult) string {
	lines := []struct {
		key   string
		value string
	}{
		{"overallProgress", r.num(k.OverallProgress) + "%"},
		{"plannedDuration", strconv.Itoa(k.PlannedDuration) + " days"},
		{"percentDurationElapsed", r.num(k.PercentDurationElapsed) + "%"},
		{"budgetAtCompletion", r.num(k.BudgetAtCompletion)},
		{"plannedValue", r.num(k.PlannedValue)},
		{"earnedValue", r.num(k.EarnedValue)},
		{"actualCost", r.num(k.ActualCost)},
		{"scheduleVariance", r.num(k.ScheduleVariance)},
		{"costVariance", r.num(k.CostVariance)},
		{"schedulePerformanceIndex", r.num(k.SchedulePerformanceIndex)},
		{"costPerformanceIndex", r.num(k.CostPerformanceIndex)},
		{"estimateAtCompletion", r.num(k.EstimateAtCompletion)},
		{"status", string(k.Status)},
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "%s: %s\n", l.key, l.value)
	}
	return b.String()
}

func (r *TextReportRenderer) RenderCurveSample(curve SCurve) string {
	var b strings.Builder
	for _, p := range SamplePoints(curve.Points, r.sampleSize) {
		fmt.Fprintf(&b, "day %d: planned %s%%, actual %s%%\n", p.Day, formatPercent(p.Planned), formatPercent(p.Actual))
	}
	return b.String()
}

func (r *TextReportRenderer) num(v float64) string {
	return strconv.FormatFloat(v, 'f', r.precision, 64)
}

// SamplePoints picks at most n evenly spaced points, always keeping the first and the last one.
func SamplePoints(points []SCurvePoint, n int) []SCurvePoint {
	if len(points) <= n || n < 2 {
		return points
	}
	step := float64(len(points)-1) / float64(n-1)
	sample := make([]SCurvePoint, 0, n)
	last := -1
	for i := 0; i < n; i++ {
		idx := int(math.Round(float64(i) * step))
		if idx == last {
			continue
		}
		sample = append(sample, points[idx])
		last = idx
	}
	return sample
}
