package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 2)

	bus.Subscribe(EventTypeReportCompleted, func(ctx context.Context, e Event) {
		received <- e
	})
	bus.Subscribe(EventTypeReportCompleted, func(ctx context.Context, e Event) {
		received <- e
	})

	bus.Emit(context.Background(), ReportCompletedEvent{ReportID: "r1", StoreCount: 3})

	for i := 0; i < 2; i++ {
		e := waitFor(t, received)
		completed, ok := e.(ReportCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, "r1", completed.ReportID)
		assert.Equal(t, 3, completed.StoreCount)
	}
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeReportFailed, func(ctx context.Context, e Event) {
		received <- e
	})

	bus.Emit(context.Background(), ReportStartedEvent{ReportID: "r1"})

	select {
	case <-received:
		t.Fatal("handler for a different event type should not fire")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_HandlerPanicDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeIngestFinished, func(ctx context.Context, e Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeIngestFinished, func(ctx context.Context, e Event) {
		received <- e
	})

	bus.Emit(context.Background(), IngestFinishedEvent{Source: "data.csv", Processed: 10, Rejected: 1})

	e := waitFor(t, received)
	finished, ok := e.(IngestFinishedEvent)
	require.True(t, ok)
	assert.Equal(t, "data.csv", finished.Source)
}
