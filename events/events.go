package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeReportStarted   EventType = "report_started"
	EventTypeReportCompleted EventType = "report_completed"
	EventTypeReportFailed    EventType = "report_failed"
	EventTypeIngestFinished  EventType = "ingest_finished"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// ReportStartedEvent is published when a report request is accepted
type ReportStartedEvent struct {
	ReportID string
}

func (e ReportStartedEvent) Type() EventType {
	return EventTypeReportStarted
}

// ReportCompletedEvent is published after a report reaches Complete
type ReportCompletedEvent struct {
	ReportID     string
	StoreCount   int
	ArtifactPath string
}

func (e ReportCompletedEvent) Type() EventType {
	return EventTypeReportCompleted
}

// ReportFailedEvent is published after a report reaches Failed
type ReportFailedEvent struct {
	ReportID string
	Reason   string
}

func (e ReportFailedEvent) Type() EventType {
	return EventTypeReportFailed
}

// IngestFinishedEvent is published after an offline CSV load finishes
type IngestFinishedEvent struct {
	Source    string
	Processed int
	Rejected  int
}

func (e IngestFinishedEvent) Type() EventType {
	return EventTypeIngestFinished
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so emitting never blocks report computation.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
