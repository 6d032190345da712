package performance

import (
	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/project"
	log "github.com/sirupsen/logrus"
)

// DefaultPrecision is the number of decimals KPI figures are rounded to.
const DefaultPrecision = 2

type Status string

const (
	StatusNoData         Status = "no_data"
	StatusOnTrack        Status = "on_track"
	StatusBehindSchedule Status = "behind_schedule"
	StatusOverBudget     Status = "over_budget"
	StatusAtRisk         Status = "at_risk"
)

type KpiResult struct {
	OverallProgress        float64
	PlannedDuration        int
	PercentDurationElapsed float64
	BudgetAtCompletion     float64

	PlannedValue float64
	EarnedValue  float64
	ActualCost   float64

	ScheduleVariance         float64
	CostVariance             float64
	SchedulePerformanceIndex float64
	CostPerformanceIndex     float64

	EstimateAtCompletion float64
	EstimateToComplete   float64
	VarianceAtCompletion float64
	Status               Status
}

// ZeroKpiResult is returned when there is no schedule or no budget to measure against.
// Indices are neutral so that SPI == 1 whenever PV == 0 and CPI == 1 whenever AC == 0.
func ZeroKpiResult() KpiResult {
	return KpiResult{
		SchedulePerformanceIndex: 1,
		CostPerformanceIndex:     1,
		Status:                   StatusNoData,
	}
}

type Calculator struct {
	clock     utils.Clock
	costs     ActualCostProvider
	precision int
}

func NewCalculator(clock utils.Clock, costs ActualCostProvider, precision int) *Calculator {
	if costs == nil {
		costs = NewRatioCostProvider(DefaultActualCostRatio)
	}
	return &Calculator{clock: clock, costs: costs, precision: precision}
}

// CalculateKpis derives earned value metrics from a schedule and budget snapshot as of the clock's "now".
func (c *Calculator) CalculateKpis(tasks []project.ScheduleTask, items []project.BudgetItem) KpiResult {
	if len(tasks) == 0 || len(items) == 0 {
		log.Tracef("no tasks (%d) or budget items (%d), returning zero KPIs", len(tasks), len(items))
		return ZeroKpiResult()
	}

	start, end, _ := ProjectSpan(tasks)
	plannedDuration := utils.DaysDiffInclusive(start, end)
	daysElapsed := utils.SignedDaysDiff(start, c.clock.Now()) + 1
	percentElapsed := clamp(float64(daysElapsed)/float64(plannedDuration)*100, 0, 100)

	bac := c.round(TotalBudget(items))
	overallProgress := OverallProgress(tasks)

	pv := c.round(bac * percentElapsed / 100)
	ev := c.round(bac * overallProgress / 100)
	ac := c.round(c.costs.ActualCost(ev))

	spi := 1.0
	if pv != 0 {
		spi = c.round(ev / pv)
	}
	cpi := 1.0
	if ac != 0 {
		cpi = c.round(ev / ac)
	}

	var eac float64
	if cpi != 0 {
		eac = c.round(bac / cpi)
	} else {
		// nothing earned yet against real spend: remaining work at budgeted rates
		eac = c.round(ac + bac - ev)
	}

	log.Tracef("kpi: bac=%.2f pv=%.2f ev=%.2f ac=%.2f elapsed=%d/%d days", bac, pv, ev, ac, daysElapsed, plannedDuration)

	return KpiResult{
		OverallProgress:          c.round(overallProgress),
		PlannedDuration:          plannedDuration,
		PercentDurationElapsed:   c.round(percentElapsed),
		BudgetAtCompletion:       bac,
		PlannedValue:             pv,
		EarnedValue:              ev,
		ActualCost:               ac,
		ScheduleVariance:         c.round(ev - pv),
		CostVariance:             c.round(ev - ac),
		SchedulePerformanceIndex: spi,
		CostPerformanceIndex:     cpi,
		EstimateAtCompletion:     eac,
		EstimateToComplete:       c.round(eac - ac),
		VarianceAtCompletion:     c.round(bac - eac),
		Status:                   classify(spi, cpi),
	}
}

func (c *Calculator) round(v float64) float64 {
	return Round(v, c.precision)
}

func classify(spi, cpi float64) Status {
	switch {
	case spi >= 1 && cpi >= 1:
		return StatusOnTrack
	case spi < 1 && cpi < 1:
		return StatusAtRisk
	case spi < 1:
		return StatusBehindSchedule
	default:
		return StatusOverBudget
	}
}
