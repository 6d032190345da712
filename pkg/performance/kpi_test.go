package performance

import (
	"testing"
	"time"

	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/project"
	"github.com/stretchr/testify/assert"
)

func newTestCalculator(clock utils.Clock) *Calculator {
	return NewCalculator(clock, NewRatioCostProvider(DefaultActualCostRatio), DefaultPrecision)
}

func TestCalculator_CalculateKpis(t *testing.T) {
	t.Run("should compute earned value metrics in the middle of the project", func(t *testing.T) {
		// given
		tasks, items := singleTaskSchedule()
		calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 3)))

		// when
		kpis := calculator.CalculateKpis(tasks, items)

		// then
		assert.Equal(t, 100.0, kpis.OverallProgress)
		assert.Equal(t, 5, kpis.PlannedDuration)
		assert.InDelta(t, 60.0, kpis.PercentDurationElapsed, 1e-9)
		assert.InDelta(t, 1100.0, kpis.BudgetAtCompletion, 1e-9)
		assert.InDelta(t, 660.0, kpis.PlannedValue, 1e-9)
		assert.InDelta(t, 1100.0, kpis.EarnedValue, 1e-9)
		assert.InDelta(t, 1188.0, kpis.ActualCost, 1e-9)
		assert.InDelta(t, 440.0, kpis.ScheduleVariance, 1e-9)
		assert.InDelta(t, -88.0, kpis.CostVariance, 1e-9)
		assert.Equal(t, 1.67, kpis.SchedulePerformanceIndex)
		assert.Equal(t, 0.93, kpis.CostPerformanceIndex)
		assert.InDelta(t, 1182.8, kpis.EstimateAtCompletion, 1e-9)
		assert.InDelta(t, -5.2, kpis.EstimateToComplete, 1e-9)
		assert.InDelta(t, -82.8, kpis.VarianceAtCompletion, 1e-9)
		assert.Equal(t, StatusOverBudget, kpis.Status)
	})

	t.Run("should ignore the time of day of now", func(t *testing.T) {
		tasks, items := singleTaskSchedule()
		late := date(2024, 1, 3).Add(11*time.Hour + 59*time.Minute)
		calculator := newTestCalculator(utils.NewMockClock(late))

		kpis := calculator.CalculateKpis(tasks, items)

		assert.InDelta(t, 660.0, kpis.PlannedValue, 1e-9)
	})

	t.Run("should average progress without weighting", func(t *testing.T) {
		tasks := []project.ScheduleTask{
			task("t1", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 5), 50),
			task("t2", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 5), 100),
		}
		_, items := singleTaskSchedule()
		calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 3)))

		kpis := calculator.CalculateKpis(tasks, items)

		assert.Equal(t, 75.0, kpis.OverallProgress)
		assert.InDelta(t, 825.0, kpis.EarnedValue, 1e-9)
	})

	t.Run("should return zero result without tasks", func(t *testing.T) {
		_, items := singleTaskSchedule()
		calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 3)))

		assert.Equal(t, ZeroKpiResult(), calculator.CalculateKpis(nil, items))
		assert.Equal(t, ZeroKpiResult(), calculator.CalculateKpis([]project.ScheduleTask{}, items))
	})

	t.Run("should return zero result without budget", func(t *testing.T) {
		tasks, _ := singleTaskSchedule()
		calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 3)))

		kpis := calculator.CalculateKpis(tasks, nil)

		assert.Equal(t, ZeroKpiResult(), kpis)
		assert.Equal(t, 0.0, kpis.OverallProgress)
		assert.Equal(t, 0, kpis.PlannedDuration)
		assert.Equal(t, 0.0, kpis.BudgetAtCompletion)
		assert.Equal(t, 0.0, kpis.ScheduleVariance)
		assert.Equal(t, 0.0, kpis.CostVariance)
	})

	t.Run("should clamp elapsed duration before start and after end", func(t *testing.T) {
		tasks, items := singleTaskSchedule()
		clock := utils.NewMockClock(date(2023, 12, 20))
		calculator := newTestCalculator(clock)

		before := calculator.CalculateKpis(tasks, items)
		clock.SetNow(date(2024, 3, 1))
		after := calculator.CalculateKpis(tasks, items)

		assert.Equal(t, 0.0, before.PercentDurationElapsed)
		assert.Equal(t, 0.0, before.PlannedValue)
		assert.Equal(t, 1.0, before.SchedulePerformanceIndex)
		assert.Equal(t, 100.0, after.PercentDurationElapsed)
		assert.InDelta(t, 1100.0, after.PlannedValue, 1e-9)
	})

	t.Run("should treat a single-day schedule as one day", func(t *testing.T) {
		tasks := []project.ScheduleTask{
			task("m", project.TaskTypeMilestone, date(2024, 1, 1), date(2024, 1, 1), 0),
		}
		_, items := singleTaskSchedule()
		calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 1)))

		kpis := calculator.CalculateKpis(tasks, items)

		assert.Equal(t, 1, kpis.PlannedDuration)
		assert.Equal(t, 100.0, kpis.PercentDurationElapsed)
		assert.Equal(t, 0.0, kpis.EarnedValue)
		assert.Equal(t, 0.0, kpis.ActualCost)
		assert.Equal(t, 1.0, kpis.CostPerformanceIndex)
		assert.Equal(t, 0.0, kpis.SchedulePerformanceIndex)
		assert.Equal(t, StatusBehindSchedule, kpis.Status)
	})

	t.Run("should use the injected cost provider", func(t *testing.T) {
		tasks, items := singleTaskSchedule()
		calculator := NewCalculator(utils.NewMockClock(date(2024, 1, 3)), ActualCostFunc(func(ev float64) float64 {
			return ev * 0.5
		}), DefaultPrecision)

		kpis := calculator.CalculateKpis(tasks, items)

		assert.InDelta(t, 550.0, kpis.ActualCost, 1e-9)
		assert.Equal(t, 2.0, kpis.CostPerformanceIndex)
		assert.Equal(t, StatusOnTrack, kpis.Status)
	})

	t.Run("should fall back to remaining budget when nothing was earned but money was spent", func(t *testing.T) {
		tasks := []project.ScheduleTask{
			task("t1", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 5), 0),
		}
		_, items := singleTaskSchedule()
		calculator := NewCalculator(utils.NewMockClock(date(2024, 1, 3)), ActualCostFunc(func(float64) float64 {
			return 500
		}), DefaultPrecision)

		kpis := calculator.CalculateKpis(tasks, items)

		assert.Equal(t, 0.0, kpis.CostPerformanceIndex)
		assert.InDelta(t, 1600.0, kpis.EstimateAtCompletion, 1e-9)
		assert.Equal(t, StatusAtRisk, kpis.Status)
	})

	t.Run("should round to the configured precision", func(t *testing.T) {
		tasks := []project.ScheduleTask{
			task("t1", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 3), 33),
		}
		items := []project.BudgetItem{{LaborCost: 100, MaterialsCost: 0, ContingencyPercent: 0}}
		calculator := NewCalculator(utils.NewMockClock(date(2024, 1, 1)), nil, 1)

		kpis := calculator.CalculateKpis(tasks, items)

		assert.Equal(t, 33.3, kpis.PercentDurationElapsed)
		assert.Equal(t, 33.3, kpis.PlannedValue)
		assert.Equal(t, 33.0, kpis.EarnedValue)
		assert.Equal(t, 35.6, kpis.ActualCost)
		assert.Equal(t, 1.0, kpis.SchedulePerformanceIndex)
		assert.Equal(t, 0.9, kpis.CostPerformanceIndex)
	})

	t.Run("should round money ties away from zero", func(t *testing.T) {
		// given
		tasks := []project.ScheduleTask{
			task("t1", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 1), 100),
		}
		items := []project.BudgetItem{{LaborCost: 1.005, MaterialsCost: 0, ContingencyPercent: 0}}
		calculator := NewCalculator(utils.NewMockClock(date(2024, 1, 1)), ActualCostFunc(func(ev float64) float64 {
			return 2.675
		}), DefaultPrecision)

		// when
		kpis := calculator.CalculateKpis(tasks, items)

		// then
		assert.Equal(t, 1.01, kpis.BudgetAtCompletion)
		assert.Equal(t, 1.01, kpis.PlannedValue)
		assert.Equal(t, 1.01, kpis.EarnedValue)
		assert.Equal(t, 2.68, kpis.ActualCost)
		assert.Equal(t, -1.67, kpis.CostVariance)
	})
}

func TestCalculator_NeutralIndices(t *testing.T) {
	_, items := singleTaskSchedule()
	schedules := [][]project.ScheduleTask{
		nil,
		{task("t1", project.TaskTypeTask, date(2024, 2, 1), date(2024, 2, 10), 0)},
		{task("t1", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 10), 40)},
		{task("t1", project.TaskTypeTask, date(2023, 1, 1), date(2023, 1, 10), 100)},
	}
	calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 5)))

	for _, tasks := range schedules {
		kpis := calculator.CalculateKpis(tasks, items)
		if kpis.PlannedValue == 0 {
			assert.Equal(t, 1.0, kpis.SchedulePerformanceIndex)
		}
		if kpis.ActualCost == 0 {
			assert.Equal(t, 1.0, kpis.CostPerformanceIndex)
		}
	}
}

func TestCalculator_CenturiesLongSchedule(t *testing.T) {
	tasks := []project.ScheduleTask{
		task("t1", project.TaskTypeTask, date(1700, 1, 1), date(2024, 1, 1), 50),
	}
	items := []project.BudgetItem{{LaborCost: 1000, MaterialsCost: 0, ContingencyPercent: 0}}
	calculator := newTestCalculator(utils.NewMockClock(date(2024, 1, 1)))

	kpis := calculator.CalculateKpis(tasks, items)

	assert.Equal(t, 118339, kpis.PlannedDuration)
	assert.Equal(t, 100.0, kpis.PercentDurationElapsed)
	assert.Equal(t, 1000.0, kpis.PlannedValue)
}
