package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishRunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	bus.Subscribe("x", func(e Event) error { calls = append(calls, "first"); return nil })
	bus.Subscribe("x", func(e Event) error { calls = append(calls, "second"); return nil })
	bus.Subscribe("y", func(e Event) error { calls = append(calls, "other"); return nil })

	err := bus.Publish(NewEvent(context.Background(), "x", nil))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	unsubscribe := bus.Subscribe("x", func(e Event) error { calls++; return nil })

	unsubscribe()
	err := bus.Publish(NewEvent(context.Background(), "x", nil))

	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestEventBus_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	boom := errors.New("boom")
	reached := false
	bus.Subscribe("x", func(e Event) error { return boom })
	bus.Subscribe("x", func(e Event) error { panic("kaput") })
	bus.Subscribe("x", func(e Event) error { reached = true; return nil })

	err := bus.Publish(NewEvent(context.Background(), "x", nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "kaput")
	assert.True(t, reached)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	called := false
	bus.Subscribe("x", func(e Event) error { called = true; return nil })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, "x", nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []PerformanceReportCalculated
	SubscribeTyped(bus, PerformanceReportCalculatedType, func(e EventT[PerformanceReportCalculated]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), PerformanceReportCalculatedType, "not a report")))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), PerformanceReportCalculatedType,
		PerformanceReportCalculated{ProjectId: "p-1"})))

	require.Len(t, received, 1)
	assert.Equal(t, "p-1", received[0].ProjectId)
}
