package narrative

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pmsuite/perfmetrics/internal/event_bus"
	"github.com/pmsuite/perfmetrics/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var now = time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)

type recordingSummarizer struct {
	prompts []string
	text    string
}

func (r *recordingSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.text, nil
}

func (r *recordingSummarizer) Model() string {
	return "recording"
}

type blockingSummarizer struct{}

func (blockingSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingSummarizer) Model() string {
	return "blocking"
}

func reportEvent() event_bus.PerformanceReportCalculated {
	return event_bus.PerformanceReportCalculated{
		ProjectId:    "p-1",
		ProjectName:  "Warehouse",
		Summary:      "project: Warehouse\nearnedValue: 1100.00\n",
		CalculatedAt: now,
	}
}

func TestSubscriber_Register(t *testing.T) {
	t.Run("should store a narrative after a report is published", func(t *testing.T) {
		// given
		repo := NewStubRepository()
		summarizer := &recordingSummarizer{text: "The project is ahead of schedule but over budget."}
		subscriber := NewSubscriber(summarizer, repo, utils.NewMockClock(now), time.Second)
		bus := event_bus.NewEventBus()
		unsubscribe := subscriber.Register(bus)
		defer unsubscribe()

		// when
		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.PerformanceReportCalculatedType, reportEvent()))
		subscriber.Wait()

		// then
		require.NoError(t, err)
		stored, err := repo.GetLatest(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, summarizer.text, stored.Text)
		assert.Equal(t, "recording", stored.Model)
		assert.Equal(t, now, stored.GeneratedAt)
		assert.NotEmpty(t, stored.Id)
		require.Len(t, summarizer.prompts, 1)
		assert.Contains(t, summarizer.prompts[0], `"Warehouse"`)
		assert.Contains(t, summarizer.prompts[0], "earnedValue: 1100.00")
	})

	t.Run("should outlive a cancelled request context", func(t *testing.T) {
		repo := NewStubRepository()
		subscriber := NewSubscriber(NewStaticSummarizer("On track."), repo, utils.NewMockClock(now), time.Second)
		bus := event_bus.NewEventBus()
		subscriber.Register(bus)
		requestCtx, cancel := context.WithCancel(ctx)

		err := bus.Publish(event_bus.NewEvent(requestCtx, event_bus.PerformanceReportCalculatedType, reportEvent()))
		cancel()
		subscriber.Wait()

		require.NoError(t, err)
		stored, err := repo.GetLatest(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "On track.", stored.Text)
	})

	t.Run("should give up after the timeout without storing", func(t *testing.T) {
		repo := NewStubRepository()
		subscriber := NewSubscriber(blockingSummarizer{}, repo, utils.NewMockClock(now), 10*time.Millisecond)
		bus := event_bus.NewEventBus()
		subscriber.Register(bus)

		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.PerformanceReportCalculatedType, reportEvent()))
		subscriber.Wait()

		require.NoError(t, err)
		_, err = repo.GetLatest(ctx, "p-1")
		assert.ErrorIs(t, err, ErrNarrativeNotFound)
	})
}

func TestSubscriber_Generate(t *testing.T) {
	t.Run("should return the summarizer error", func(t *testing.T) {
		summarizer := &StaticSummarizer{Err: errors.New("quota exceeded")}
		subscriber := NewSubscriber(summarizer, NewStubRepository(), utils.NewMockClock(now), time.Second)

		_, err := subscriber.Generate(ctx, reportEvent())

		assert.ErrorContains(t, err, "quota exceeded")
	})
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Warehouse", "\nspi: 1.67\n\n")

	assert.Contains(t, prompt, `"Warehouse"`)
	assert.True(t, strings.HasSuffix(prompt, "\n\nspi: 1.67"))
}
