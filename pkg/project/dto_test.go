package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSnapshot(t *testing.T) {
	t.Run("should parse a YAML snapshot into domain values", func(t *testing.T) {
		// given
		doc := `
tasks:
  - id: t1
    name: Foundations
    type: task
    start: 2024-01-01
    end: 2024-01-05
    progress: 40
  - id: m1
    type: milestone
    start: "2024-01-05T08:00:00Z"
    end: "2024-01-05T08:00:00Z"
    progress: 0
budgetItems:
  - category: concrete
    laborCost: 1000
    materialsCost: 250.5
    contingencyPercent: 10
`
		var snapshot SnapshotDTO
		require.NoError(t, yaml.Unmarshal([]byte(doc), &snapshot))

		// when
		tasks, items, err := ParseSnapshot(snapshot)

		// then
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, day(2024, 1, 1), tasks[0].Start)
		assert.Equal(t, day(2024, 1, 5), tasks[1].End)
		assert.Equal(t, 40, tasks[0].Progress)
		assert.Equal(t, TaskTypeMilestone, tasks[1].Type)
		require.Len(t, items, 1)
		assert.InDelta(t, 1375.55, items[0].Total(), 1e-9)
	})

	t.Run("should name a malformed date", func(t *testing.T) {
		snapshot := SnapshotDTO{Tasks: []ScheduleTaskDTO{
			{Id: "t1", Type: "task", Start: "2024-13-01", End: "2024-01-05", Progress: intPtr(0)},
		}}

		_, _, err := ParseSnapshot(snapshot)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "tasks[0].start", validationErr.Field)
		assert.Equal(t, "2024-13-01", validationErr.Value)
	})

	t.Run("should require progress", func(t *testing.T) {
		snapshot := SnapshotDTO{Tasks: []ScheduleTaskDTO{
			{Id: "t1", Type: "task", Start: "2024-01-01", End: "2024-01-05"},
		}}

		_, _, err := ParseSnapshot(snapshot)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "tasks[0].progress", validationErr.Field)
	})

	t.Run("should require costs", func(t *testing.T) {
		snapshot := SnapshotDTO{BudgetItems: []BudgetItemDTO{{LaborCost: floatPtr(10)}}}

		_, _, err := ParseSnapshot(snapshot)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "budgetItems[0].materialsCost", validationErr.Field)
	})

	t.Run("should reject NaN costs read from YAML", func(t *testing.T) {
		var snapshot SnapshotDTO
		require.NoError(t, yaml.Unmarshal([]byte("budgetItems:\n  - laborCost: .nan\n    materialsCost: 0\n"), &snapshot))

		_, _, err := ParseSnapshot(snapshot)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "budgetItems[0].laborCost", validationErr.Field)
	})
}

func TestProjectToDTO(t *testing.T) {
	p := Project{
		Id:          "p-1",
		Name:        "Warehouse",
		Tasks:       []ScheduleTask{validTask("t1")},
		BudgetItems: []BudgetItem{{Category: "labor", LaborCost: 100}},
		CreatedAt:   day(2024, 1, 1),
	}

	dto := ProjectToDTO(p)

	assert.Equal(t, "2024-01-01", dto.Tasks[0].Start)
	assert.Equal(t, "2024-01-05", dto.Tasks[0].End)
	assert.Equal(t, 50, *dto.Tasks[0].Progress)
	assert.NotNil(t, dto.CreatedAt)
	assert.Nil(t, dto.UpdatedAt)

	back, err := DTOToProject(dto)
	require.NoError(t, err)
	assert.Equal(t, p.Tasks, back.Tasks)
	assert.Equal(t, p.BudgetItems, back.BudgetItems)
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
