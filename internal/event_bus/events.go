package event_bus

import "time"

const PerformanceReportCalculatedType EventType = "performance.report.calculated"

// PerformanceReportCalculated is published every time a stored project's report is computed.
type PerformanceReportCalculated struct {
	ProjectId   string
	ProjectName string
	// Summary is the plain-text KPI block and S-curve sample of the report.
	Summary      string
	CalculatedAt time.Time
}
