package project

import (
	"fmt"
	"math"
	"strconv"
)

// ValidationError reports a structurally invalid input field. Field is a path like "tasks[2].start".
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func newValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// Validate checks a schedule and budget snapshot and returns the first violation found.
func Validate(tasks []ScheduleTask, items []BudgetItem) error {
	if err := ValidateTasks(tasks); err != nil {
		return err
	}
	return ValidateBudgetItems(items)
}

func ValidateTasks(tasks []ScheduleTask) error {
	seen := make(map[string]int, len(tasks))
	for i, t := range tasks {
		field := func(name string) string { return fmt.Sprintf("tasks[%d].%s", i, name) }

		if t.Id == "" {
			return newValidationError(field("id"), "", "is required")
		}
		if prev, ok := seen[t.Id]; ok {
			return newValidationError(field("id"), t.Id, fmt.Sprintf("duplicates tasks[%d].id", prev))
		}
		seen[t.Id] = i

		if !t.Type.IsValid() {
			return newValidationError(field("type"), string(t.Type), "must be one of project, task, milestone")
		}
		if t.Progress < 0 || t.Progress > 100 {
			return newValidationError(field("progress"), strconv.Itoa(t.Progress), "must be between 0 and 100")
		}
		if t.Start.IsZero() {
			return newValidationError(field("start"), "", "is required")
		}
		if t.End.IsZero() {
			return newValidationError(field("end"), "", "is required")
		}
		if t.End.Before(t.Start) {
			return newValidationError(field("end"), t.End.Format("2006-01-02"), "is before start")
		}
	}
	return nil
}

func ValidateBudgetItems(items []BudgetItem) error {
	for i, item := range items {
		field := func(name string) string { return fmt.Sprintf("budgetItems[%d].%s", i, name) }

		if err := checkAmount(field("laborCost"), item.LaborCost); err != nil {
			return err
		}
		if err := checkAmount(field("materialsCost"), item.MaterialsCost); err != nil {
			return err
		}
		if err := checkAmount(field("contingencyPercent"), item.ContingencyPercent); err != nil {
			return err
		}
		if item.ContingencyPercent > 100 {
			return newValidationError(field("contingencyPercent"), formatFloat(item.ContingencyPercent), "must be between 0 and 100")
		}
	}
	return nil
}

func checkAmount(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return newValidationError(field, formatFloat(v), "must be a finite number")
	}
	if v < 0 {
		return newValidationError(field, formatFloat(v), "must not be negative")
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
