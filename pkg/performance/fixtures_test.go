package performance

import (
	"time"

	"github.com/pmsuite/perfmetrics/pkg/project"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func task(id string, taskType project.TaskType, start, end time.Time, progress int) project.ScheduleTask {
	return project.ScheduleTask{Id: id, Type: taskType, Start: start, End: end, Progress: progress}
}

// singleTaskSchedule is one five-day task finished ahead of time with a 1000 + 10% budget.
func singleTaskSchedule() ([]project.ScheduleTask, []project.BudgetItem) {
	tasks := []project.ScheduleTask{
		task("t1", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 5), 100),
	}
	items := []project.BudgetItem{
		{LaborCost: 1000, MaterialsCost: 0, ContingencyPercent: 10},
	}
	return tasks, items
}

// mixedSchedule spans 2023-12-31..2024-01-05 through its phase container and milestone,
// but only tasks "a" and "b" count for the S-curve.
func mixedSchedule() []project.ScheduleTask {
	return []project.ScheduleTask{
		task("p", project.TaskTypeProject, date(2023, 12, 31), date(2024, 1, 5), 0),
		task("a", project.TaskTypeTask, date(2024, 1, 1), date(2024, 1, 2), 100),
		task("b", project.TaskTypeTask, date(2024, 1, 2), date(2024, 1, 4), 50),
		task("m", project.TaskTypeMilestone, date(2024, 1, 5), date(2024, 1, 5), 0),
	}
}
