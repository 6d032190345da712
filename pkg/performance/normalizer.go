package performance

import (
	"time"

	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/project"
)

// TotalBudget sums every item with its own contingency applied. Nil or empty input yields 0.
func TotalBudget(items []project.BudgetItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Total()
	}
	return total
}

// ProjectSpan returns the earliest start and the latest end over all tasks regardless of type, as noon-normalized dates.
func ProjectSpan(tasks []project.ScheduleTask) (start time.Time, end time.Time, ok bool) {
	if len(tasks) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start, end = utils.NormalizeToNoon(tasks[0].Start), utils.NormalizeToNoon(tasks[0].End)
	for _, t := range tasks[1:] {
		if s := utils.NormalizeToNoon(t.Start); s.Before(start) {
			start = s
		}
		if e := utils.NormalizeToNoon(t.End); e.After(end) {
			end = e
		}
	}
	return start, end, true
}

// OverallProgress is the plain mean of all task progress values, not weighted by duration or cost.
func OverallProgress(tasks []project.ScheduleTask) float64 {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
	}
	return float64(sum) / float64(len(tasks))
}
