package performance

import "time"

type Report struct {
	ProjectId    string
	ProjectName  string
	Kpis         KpiResult
	Curve        SCurve
	CalculatedAt time.Time
}

type PortfolioEntry struct {
	ProjectId   string
	ProjectName string
	Kpis        KpiResult
}
