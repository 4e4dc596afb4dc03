// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package memdb

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
)

func NewEventStore() *EventStore {
	return &EventStore{index: make(map[model.EventID]int)}
}

type EventStore struct {
	mu sync.RWMutex

	lastID model.EventID
	events []*model.Event
	index  map[model.EventID]int
}

func (e *EventStore) CreateEvent(ctx context.Context, name, date string) (*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "CreateEvent")
	defer span.End()

	span.AddEvent("Lock")
	e.mu.Lock()
	defer span.AddEvent("Unlock")
	defer e.mu.Unlock()

	e.lastID++
	event := &model.Event{ID: e.lastID, Name: name, Date: date}
	e.index[event.ID] = len(e.events)
	e.events = append(e.events, event)

	res := *event
	return &res, nil
}

func (e *EventStore) GetEventByID(ctx context.Context, id model.EventID) (*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetEventByID")
	defer span.End()

	span.AddEvent("RLock")
	e.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer e.mu.RUnlock()

	idx, ok := e.index[id]
	if !ok {
		err := fmt.Errorf("%w: %d", model.ErrEventNotFound, id)
		span.RecordError(err)
		return nil, err
	}
	res := *e.events[idx]
	return &res, nil
}

func (e *EventStore) ListEvents(ctx context.Context) ([]*model.Event, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "ListEvents")
	defer span.End()

	span.AddEvent("RLock")
	e.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer e.mu.RUnlock()

	res := make([]*model.Event, 0, len(e.events))
	for _, event := range e.events {
		ev := *event
		res = append(res, &ev)
	}
	return res, nil
}
