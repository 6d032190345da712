package project

import (
	"fmt"
	"time"

	"github.com/pmsuite/perfmetrics/internal/utils"
)

type ScheduleTaskDTO struct {
	Id       string `json:"id" yaml:"id"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end" yaml:"end"`
	Progress *int   `json:"progress" yaml:"progress"`
	Type     string `json:"type" yaml:"type"`
	Project  string `json:"project,omitempty" yaml:"project,omitempty"`
}

type BudgetItemDTO struct {
	Category           string   `json:"category,omitempty" yaml:"category,omitempty"`
	LaborCost          *float64 `json:"laborCost" yaml:"laborCost"`
	MaterialsCost      *float64 `json:"materialsCost" yaml:"materialsCost"`
	ContingencyPercent float64  `json:"contingencyPercent" yaml:"contingencyPercent"`
}

// SnapshotDTO is a schedule and budget pair as produced by a planning tool or typed by a user.
type SnapshotDTO struct {
	Tasks       []ScheduleTaskDTO `json:"tasks" yaml:"tasks"`
	BudgetItems []BudgetItemDTO   `json:"budgetItems" yaml:"budgetItems"`
}

type ProjectDTO struct {
	Id          string            `json:"id,omitempty"`
	Name        string            `json:"name"`
	Tasks       []ScheduleTaskDTO `json:"tasks"`
	BudgetItems []BudgetItemDTO   `json:"budgetItems"`
	CreatedAt   *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time        `json:"updatedAt,omitempty"`
}

// ParseSnapshot converts wire records into validated domain values.
func ParseSnapshot(snapshot SnapshotDTO) ([]ScheduleTask, []BudgetItem, error) {
	tasks, err := DTOToTasks(snapshot.Tasks)
	if err != nil {
		return nil, nil, err
	}
	items, err := DTOToBudgetItems(snapshot.BudgetItems)
	if err != nil {
		return nil, nil, err
	}
	return tasks, items, nil
}

func DTOToTasks(dtos []ScheduleTaskDTO) ([]ScheduleTask, error) {
	tasks := make([]ScheduleTask, 0, len(dtos))
	for i, dto := range dtos {
		start, err := utils.ParseDate(dto.Start)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("tasks[%d].start", i), dto.Start, err.Error())
		}
		end, err := utils.ParseDate(dto.End)
		if err != nil {
			return nil, newValidationError(fmt.Sprintf("tasks[%d].end", i), dto.End, err.Error())
		}
		if dto.Progress == nil {
			return nil, newValidationError(fmt.Sprintf("tasks[%d].progress", i), "", "is required")
		}
		tasks = append(tasks, ScheduleTask{
			Id:       dto.Id,
			Name:     dto.Name,
			Start:    start,
			End:      end,
			Progress: *dto.Progress,
			Type:     TaskType(dto.Type),
			Project:  dto.Project,
		})
	}
	if err := ValidateTasks(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func DTOToBudgetItems(dtos []BudgetItemDTO) ([]BudgetItem, error) {
	items := make([]BudgetItem, 0, len(dtos))
	for i, dto := range dtos {
		if dto.LaborCost == nil {
			return nil, newValidationError(fmt.Sprintf("budgetItems[%d].laborCost", i), "", "is required")
		}
		if dto.MaterialsCost == nil {
			return nil, newValidationError(fmt.Sprintf("budgetItems[%d].materialsCost", i), "", "is required")
		}
		items = append(items, BudgetItem{
			Category:           dto.Category,
			LaborCost:          *dto.LaborCost,
			MaterialsCost:      *dto.MaterialsCost,
			ContingencyPercent: dto.ContingencyPercent,
		})
	}
	if err := ValidateBudgetItems(items); err != nil {
		return nil, err
	}
	return items, nil
}

func TaskToDTO(t ScheduleTask) ScheduleTaskDTO {
	progress := t.Progress
	return ScheduleTaskDTO{
		Id:       t.Id,
		Name:     t.Name,
		Start:    utils.FormatDate(t.Start),
		End:      utils.FormatDate(t.End),
		Progress: &progress,
		Type:     string(t.Type),
		Project:  t.Project,
	}
}

func BudgetItemToDTO(b BudgetItem) BudgetItemDTO {
	labor := b.LaborCost
	materials := b.MaterialsCost
	return BudgetItemDTO{
		Category:           b.Category,
		LaborCost:          &labor,
		MaterialsCost:      &materials,
		ContingencyPercent: b.ContingencyPercent,
	}
}

func ProjectToDTO(p Project) ProjectDTO {
	tasks := make([]ScheduleTaskDTO, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, TaskToDTO(t))
	}
	items := make([]BudgetItemDTO, 0, len(p.BudgetItems))
	for _, b := range p.BudgetItems {
		items = append(items, BudgetItemToDTO(b))
	}
	dto := ProjectDTO{
		Id:          p.Id,
		Name:        p.Name,
		Tasks:       tasks,
		BudgetItems: items,
	}
	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		dto.CreatedAt = &createdAt
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

func DTOToProject(dto ProjectDTO) (Project, error) {
	tasks, items, err := ParseSnapshot(SnapshotDTO{Tasks: dto.Tasks, BudgetItems: dto.BudgetItems})
	if err != nil {
		return Project{}, err
	}
	return Project{
		Id:          dto.Id,
		Name:        dto.Name,
		Tasks:       tasks,
		BudgetItems: items,
	}, nil
}
