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

func NewAssignmentStore() *AssignmentStore {
	return &AssignmentStore{assignments: make(map[model.EventID][]model.VendorID)}
}

type AssignmentStore struct {
	mu          sync.RWMutex
	assignments map[model.EventID][]model.VendorID
}

func (a *AssignmentStore) InitAssignment(ctx context.Context, eventID model.EventID) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "InitAssignment")
	defer span.End()

	span.AddEvent("Lock")
	a.mu.Lock()
	defer span.AddEvent("Unlock")
	defer a.mu.Unlock()

	if _, ok := a.assignments[eventID]; !ok {
		a.assignments[eventID] = []model.VendorID{}
	}
	return nil
}

func (a *AssignmentStore) GetAssignment(ctx context.Context, eventID model.EventID) (*model.Assignment, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "GetAssignment")
	defer span.End()

	span.AddEvent("RLock")
	a.mu.RLock()
	defer span.AddEvent("RUnlock")
	defer a.mu.RUnlock()

	vendorIDs, ok := a.assignments[eventID]
	if !ok {
		err := fmt.Errorf("%w: no assignment for %d", model.ErrEventNotFound, eventID)
		span.RecordError(err)
		return nil, err
	}
	assign := &model.Assignment{EventID: eventID, VendorIDs: vendorIDs}
	return assign.Clone(), nil
}

func (a *AssignmentStore) UpdateAssignment(ctx context.Context, assign *model.Assignment) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "UpdateAssignment")
	defer span.End()

	span.AddEvent("Lock")
	a.mu.Lock()
	defer span.AddEvent("Unlock")
	defer a.mu.Unlock()

	if _, ok := a.assignments[assign.EventID]; !ok {
		err := fmt.Errorf("%w: no assignment for %d", model.ErrEventNotFound, assign.EventID)
		span.RecordError(err)
		return err
	}
	a.assignments[assign.EventID] = assign.Clone().VendorIDs
	return nil
}
