package project

import "time"

type TaskType string

const (
	// TaskTypeProject is a phase container grouping other items.
	TaskTypeProject TaskType = "project"
	// TaskTypeTask is a unit of work; only these take part in the S-curve.
	TaskTypeTask TaskType = "task"
	// TaskTypeMilestone is a zero-duration marker.
	TaskTypeMilestone TaskType = "milestone"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskTypeProject, TaskTypeTask, TaskTypeMilestone:
		return true
	}
	return false
}

type ScheduleTask struct {
	Id   string
	Name string
	// Start and End are noon-normalized calendar dates, both inclusive.
	Start    time.Time
	End      time.Time
	Progress int
	Type     TaskType
	// Project is the id of the parent item, used for hierarchy display only.
	Project string
}

func (t ScheduleTask) IsTask() bool {
	return t.Type == TaskTypeTask
}

type BudgetItem struct {
	Category           string
	LaborCost          float64
	MaterialsCost      float64
	ContingencyPercent float64
}

// Total is the item cost with its own contingency applied.
func (b BudgetItem) Total() float64 {
	return (b.LaborCost + b.MaterialsCost) * (1 + b.ContingencyPercent/100)
}

type Project struct {
	Id          string
	Name        string
	Tasks       []ScheduleTask
	BudgetItems []BudgetItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
