// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package planner owns the event, vendor and assignment stores and derives the
// calendar and vendor-candidate views from them.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/db"
	"github.com/quixsi/planner/internal/model"
)

func New(eStore db.EventStore, vStore db.VendorStore, aStore db.AssignmentStore) *Planner {
	return &Planner{
		eStore: eStore,
		vStore: vStore,
		aStore: aStore,
		logger: slog.Default().WithGroup("planner"),
	}
}

// Planner serializes all mutations. Reads of the date index happen under the
// same lock, so the index is never older than the event store.
type Planner struct {
	mu sync.Mutex

	eStore db.EventStore
	vStore db.VendorStore
	aStore db.AssignmentStore
	logger *slog.Logger

	// byDate is the memoized date -> events grouping, nil when stale.
	byDate map[string][]*model.Event
}

func (p *Planner) CreateEvent(ctx context.Context, name, date string) (*model.Event, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.CreateEvent")
	defer span.End()

	name = strings.TrimSpace(name)
	date = strings.TrimSpace(date)
	if err := validateEvent(name, date); err != nil {
		span.RecordError(err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	event, err := p.eStore.CreateEvent(ctx, name, date)
	if err != nil {
		return nil, p.fail(span, fmt.Errorf("create event: %w", err))
	}
	p.byDate = nil
	if err := p.aStore.InitAssignment(ctx, event.ID); err != nil {
		return nil, p.fail(span, fmt.Errorf("init assignment for event %d: %w", event.ID, err))
	}

	span.SetAttributes(attribute.Int64("event.id", int64(event.ID)))
	p.logger.InfoContext(ctx, "event created", "id", event.ID, "date", event.Date)
	return event, nil
}

func validateEvent(name, date string) error {
	if name == "" {
		return model.ErrNameRequired
	}
	if date == "" {
		return model.ErrDateRequired
	}
	_, err := model.ParseDate(date)
	return err
}

func (p *Planner) CreateVendor(ctx context.Context, name string, category model.Category) (*model.Vendor, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.CreateVendor")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		span.RecordError(model.ErrNameRequired)
		return nil, model.ErrNameRequired
	}
	if !category.Valid() {
		err := fmt.Errorf("%w: %d", model.ErrUnknownCategory, category)
		span.RecordError(err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vendor, err := p.vStore.CreateVendor(ctx, name, category)
	if err != nil {
		return nil, p.fail(span, fmt.Errorf("create vendor: %w", err))
	}
	p.logger.InfoContext(ctx, "vendor created", "id", vendor.ID, "category", vendor.Category.String())
	return vendor, nil
}

// MarkVendorAvailable adds date to the vendor's availability. Marking the same
// date twice is a no-op.
func (p *Planner) MarkVendorAvailable(ctx context.Context, vendorID model.VendorID, date string) (*model.Vendor, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.MarkVendorAvailable")
	defer span.End()

	date = strings.TrimSpace(date)
	if date == "" {
		span.RecordError(model.ErrDateRequired)
		return nil, model.ErrDateRequired
	}
	if _, err := model.ParseDate(date); err != nil {
		span.RecordError(err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	vendor, err := p.vStore.GetVendorByID(ctx, vendorID)
	if err != nil {
		return nil, p.fail(span, err)
	}
	if !vendor.Availability.Add(date) {
		span.AddEvent("date already marked available")
		return vendor, nil
	}
	if err := p.vStore.UpdateVendor(ctx, vendor); err != nil {
		return nil, p.fail(span, fmt.Errorf("update vendor %d: %w", vendorID, err))
	}
	return vendor, nil
}

// AssignVendor books a vendor for an event regardless of its availability.
// Assigning an already assigned vendor changes nothing.
func (p *Planner) AssignVendor(ctx context.Context, eventID model.EventID, vendorID model.VendorID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.AssignVendor")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("event.id", int64(eventID)),
		attribute.Int64("vendor.id", int64(vendorID)),
	)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.eStore.GetEventByID(ctx, eventID); err != nil {
		return p.fail(span, err)
	}
	if _, err := p.vStore.GetVendorByID(ctx, vendorID); err != nil {
		return p.fail(span, err)
	}
	assign, err := p.aStore.GetAssignment(ctx, eventID)
	if err != nil {
		return p.fail(span, err)
	}
	if !assign.AddVendor(vendorID) {
		span.AddEvent("vendor already assigned")
		return nil
	}
	if err := p.aStore.UpdateAssignment(ctx, assign); err != nil {
		return p.fail(span, fmt.Errorf("update assignment: %w", err))
	}
	p.logger.InfoContext(ctx, "vendor assigned", "event", eventID, "vendor", vendorID)
	return nil
}

// UnassignVendor removes a vendor from an event. Removing a vendor that is not
// assigned changes nothing.
func (p *Planner) UnassignVendor(ctx context.Context, eventID model.EventID, vendorID model.VendorID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.UnassignVendor")
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	assign, err := p.aStore.GetAssignment(ctx, eventID)
	if err != nil {
		return p.fail(span, err)
	}
	if !assign.RemoveVendor(vendorID) {
		return nil
	}
	if err := p.aStore.UpdateAssignment(ctx, assign); err != nil {
		return p.fail(span, fmt.Errorf("update assignment: %w", err))
	}
	p.logger.InfoContext(ctx, "vendor unassigned", "event", eventID, "vendor", vendorID)
	return nil
}

// RemoveVendor deletes a vendor. Assignments keep referring to it and are
// skipped when resolved.
func (p *Planner) RemoveVendor(ctx context.Context, vendorID model.VendorID) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.RemoveVendor")
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.vStore.GetVendorByID(ctx, vendorID); err != nil {
		return p.fail(span, err)
	}
	if err := p.vStore.DeleteVendor(ctx, vendorID); err != nil {
		return p.fail(span, fmt.Errorf("delete vendor %d: %w", vendorID, err))
	}
	p.logger.InfoContext(ctx, "vendor removed", "id", vendorID)
	return nil
}

func (p *Planner) ProjectCalendar(ctx context.Context, year int, month time.Month) (Month, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.ProjectCalendar")
	defer span.End()

	if month < time.January || month > time.December {
		span.RecordError(model.ErrInvalidMonth)
		return Month{}, model.ErrInvalidMonth
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	byDate, err := p.dateIndex(ctx)
	if err != nil {
		return Month{}, p.fail(span, err)
	}
	vendors, err := p.vStore.ListVendors(ctx)
	if err != nil {
		return Month{}, p.fail(span, fmt.Errorf("list vendors: %w", err))
	}
	return projectMonth(byDate, vendors, year, month), nil
}

// dateIndex expects the caller to hold p.mu.
func (p *Planner) dateIndex(ctx context.Context) (map[string][]*model.Event, error) {
	if p.byDate != nil {
		return p.byDate, nil
	}
	events, err := p.eStore.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	p.byDate = GroupByDate(events)
	return p.byDate, nil
}

func (p *Planner) ProjectAssignmentCandidates(ctx context.Context, eventID model.EventID) ([]CandidateGroup, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.ProjectAssignmentCandidates")
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	event, assign, vendors, err := p.eventView(ctx, eventID)
	if err != nil {
		return nil, p.fail(span, err)
	}
	return ProjectCandidates(vendors, assign.VendorIDs, event.Date), nil
}

// AssignedVendors returns the vendors assigned to an event with their status on
// the event date. Vendors that no longer exist are left out.
func (p *Planner) AssignedVendors(ctx context.Context, eventID model.EventID) ([]VendorStatus, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Planner.AssignedVendors")
	defer span.End()

	p.mu.Lock()
	defer p.mu.Unlock()

	event, assign, vendors, err := p.eventView(ctx, eventID)
	if err != nil {
		return nil, p.fail(span, err)
	}
	resolved := ResolveAssigned(vendors, assign.VendorIDs, event.Date)
	if dangling := len(assign.VendorIDs) - len(resolved); dangling > 0 {
		span.AddEvent("skipped dangling vendor references", trace.WithAttributes(attribute.Int("count", dangling)))
	}
	return resolved, nil
}

func (p *Planner) eventView(ctx context.Context, eventID model.EventID) (*model.Event, *model.Assignment, []*model.Vendor, error) {
	event, err := p.eStore.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}
	assign, err := p.aStore.GetAssignment(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}
	vendors, err := p.vStore.ListVendors(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list vendors: %w", err)
	}
	return event, assign, vendors, nil
}

func (p *Planner) Events(ctx context.Context) ([]*model.Event, error) {
	return p.eStore.ListEvents(ctx)
}

func (p *Planner) Event(ctx context.Context, id model.EventID) (*model.Event, error) {
	return p.eStore.GetEventByID(ctx, id)
}

func (p *Planner) Vendors(ctx context.Context) ([]*model.Vendor, error) {
	return p.vStore.ListVendors(ctx)
}

func (p *Planner) Vendor(ctx context.Context, id model.VendorID) (*model.Vendor, error) {
	return p.vStore.GetVendorByID(ctx, id)
}

func (p *Planner) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
