package performance

import (
	"fmt"
	"time"

	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/pmsuite/perfmetrics/pkg/project"
)

// CurvePrecision is the number of decimals of every S-curve value.
const CurvePrecision = 2

// CurveMode selects how a task's progress is spread over the actual curve.
type CurveMode string

const (
	// CurveModeSnapshot stamps the task's current progress on every day from its start onwards.
	CurveModeSnapshot CurveMode = "snapshot"
	// CurveModeLinear spreads the task's current progress linearly across its own duration.
	CurveModeLinear CurveMode = "linear"
)

func ParseCurveMode(s string) (CurveMode, error) {
	switch CurveMode(s) {
	case "", CurveModeSnapshot:
		return CurveModeSnapshot, nil
	case CurveModeLinear:
		return CurveModeLinear, nil
	}
	return "", fmt.Errorf("unknown curve mode %q, expected snapshot or linear", s)
}

type SCurvePoint struct {
	Day     int
	Date    time.Time
	Planned float64
	Actual  float64
}

type SCurve struct {
	Points    []SCurvePoint
	TotalDays int
}

type Builder struct {
	mode CurveMode
}

func NewBuilder(mode CurveMode) *Builder {
	if mode == "" {
		mode = CurveModeSnapshot
	}
	return &Builder{mode: mode}
}

// CalculateSCurveData builds one point per calendar day of the project span.
// Only task-typed items are counted, but the span covers every item.
func (b *Builder) CalculateSCurveData(tasks []project.ScheduleTask) SCurve {
	work := make([]project.ScheduleTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsTask() {
			t.Start = utils.NormalizeToNoon(t.Start)
			t.End = utils.NormalizeToNoon(t.End)
			work = append(work, t)
		}
	}
	if len(work) == 0 {
		return SCurve{Points: []SCurvePoint{}, TotalDays: 0}
	}

	start, end, _ := ProjectSpan(tasks)
	totalDays := utils.DaysDiffInclusive(start, end)
	count := float64(len(work))

	points := make([]SCurvePoint, 0, totalDays)
	for i := 0; i < totalDays; i++ {
		day := utils.AddDays(start, i)
		completed := 0
		earned := 0.0
		for _, t := range work {
			if !t.End.After(day) {
				completed++
			}
			earned += b.earnedFraction(t, day)
		}
		points = append(points, SCurvePoint{
			Day:     i + 1,
			Date:    day,
			Planned: Round(float64(completed)/count*100, CurvePrecision),
			Actual:  Round(earned/count*100, CurvePrecision),
		})
	}
	return SCurve{Points: points, TotalDays: totalDays}
}

func (b *Builder) earnedFraction(t project.ScheduleTask, day time.Time) float64 {
	if day.Before(t.Start) {
		return 0
	}
	progress := float64(t.Progress) / 100
	if b.mode != CurveModeLinear {
		return progress
	}
	elapsed := float64(utils.SignedDaysDiff(t.Start, day) + 1)
	duration := float64(utils.DaysDiffInclusive(t.Start, t.End))
	return progress * clamp(elapsed/duration, 0, 1)
}
