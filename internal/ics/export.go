// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package ics

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
	"github.com/quixsi/planner/internal/planner"
)

const ProductID = "-//quixsi//Event Planner//EN"

var tracer = otel.GetTracerProvider().Tracer("github.com/quixsi/planner/internal/ics")

// eventNamespace seeds the name-based VEVENT UIDs so exports of the same
// event always carry the same UID.
var eventNamespace = uuid.MustParse("1c9a7a3e-5f0e-4d55-9a51-0b1f2f6e8d40")

// Entry is one event to export with its resolved vendors.
type Entry struct {
	Event   *model.Event
	Vendors []planner.VendorStatus
}

// Source is the part of the planner the exporter reads from.
type Source interface {
	Events(context.Context) ([]*model.Event, error)
	AssignedVendors(context.Context, model.EventID) ([]planner.VendorStatus, error)
}

// Collect reads every event and its assigned vendors from src.
func Collect(ctx context.Context, src Source) ([]Entry, error) {
	events, err := src.Events(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	entries := make([]Entry, 0, len(events))
	for _, e := range events {
		vendors, err := src.AssignedVendors(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("vendors of event %d: %w", e.ID, err)
		}
		entries = append(entries, Entry{Event: e, Vendors: vendors})
	}
	return entries, nil
}

// Export writes entries as a calendar of all-day events. stamp is used as
// DTSTAMP for every event.
func Export(ctx context.Context, w io.Writer, entries []Entry, stamp time.Time) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "Export")
	defer span.End()
	span.SetAttributes(attribute.Int("events", len(entries)))

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName("Event Planner")

	for _, entry := range entries {
		day, err := model.ParseDate(entry.Event.Date)
		if err != nil {
			span.RecordError(err)
			return err
		}
		ev := cal.AddEvent(UID(entry.Event.ID))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetSummary(entry.Event.Name)
		if len(entry.Vendors) > 0 {
			ev.SetDescription(describe(entry.Vendors))
		}
	}
	return cal.SerializeTo(w)
}

// UID returns the stable VEVENT UID of an event.
func UID(id model.EventID) string {
	return uuid.NewSHA1(eventNamespace, []byte(strconv.FormatInt(int64(id), 10))).String()
}

func describe(vendors []planner.VendorStatus) string {
	lines := make([]string, 0, len(vendors)+1)
	lines = append(lines, "Vendors:")
	for _, v := range vendors {
		lines = append(lines, fmt.Sprintf("%s (%s) - %s", v.Vendor.Name, v.Vendor.Category, v.Status))
	}
	return strings.Join(lines, "\n")
}
