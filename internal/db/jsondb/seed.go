// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package jsondb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/planner/internal/model"
)

// Seed is a fixture of events and vendors replayed into a fresh planner.
// Assignments refer to events and vendors by their position in the file.
type Seed struct {
	Events      []SeedEvent      `json:"events"`
	Vendors     []SeedVendor     `json:"vendors"`
	Assignments []SeedAssignment `json:"assignments"`
}

type SeedEvent struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type SeedVendor struct {
	Name         string         `json:"name"`
	Category     model.Category `json:"category"`
	Availability []string       `json:"availability"`
}

type SeedAssignment struct {
	Event  int `json:"event"`
	Vendor int `json:"vendor"`
}

// Seeder is implemented by planner.Planner.
type Seeder interface {
	CreateEvent(ctx context.Context, name, date string) (*model.Event, error)
	CreateVendor(ctx context.Context, name string, category model.Category) (*model.Vendor, error)
	MarkVendorAvailable(ctx context.Context, id model.VendorID, date string) (*model.Vendor, error)
	AssignVendor(ctx context.Context, eventID model.EventID, vendorID model.VendorID) error
}

// LoadSeed reads filename. A missing file is an empty seed.
func LoadSeed(filename string) (*Seed, error) {
	seed := &Seed{}
	fileData, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return seed, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fileData, seed); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", filename, err)
	}
	return seed, nil
}

// Apply creates everything in the seed through s, so the usual validation
// applies to fixture data as well.
func (seed *Seed) Apply(ctx context.Context, s Seeder) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Seed.Apply")
	defer span.End()
	span.SetAttributes(
		attribute.Int("events", len(seed.Events)),
		attribute.Int("vendors", len(seed.Vendors)),
		attribute.Int("assignments", len(seed.Assignments)),
	)

	eventIDs := make([]model.EventID, len(seed.Events))
	for i, e := range seed.Events {
		created, err := s.CreateEvent(ctx, e.Name, e.Date)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("seed event %d: %w", i, err)
		}
		eventIDs[i] = created.ID
	}

	vendorIDs := make([]model.VendorID, len(seed.Vendors))
	for i, v := range seed.Vendors {
		created, err := s.CreateVendor(ctx, v.Name, v.Category)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("seed vendor %d: %w", i, err)
		}
		vendorIDs[i] = created.ID
		for _, date := range v.Availability {
			if _, err := s.MarkVendorAvailable(ctx, created.ID, date); err != nil {
				span.RecordError(err)
				return fmt.Errorf("seed vendor %d availability: %w", i, err)
			}
		}
	}

	for i, a := range seed.Assignments {
		if a.Event < 0 || a.Event >= len(eventIDs) || a.Vendor < 0 || a.Vendor >= len(vendorIDs) {
			err := fmt.Errorf("seed assignment %d: index out of range", i)
			span.RecordError(err)
			return err
		}
		if err := s.AssignVendor(ctx, eventIDs[a.Event], vendorIDs[a.Vendor]); err != nil {
			span.RecordError(err)
			return fmt.Errorf("seed assignment %d: %w", i, err)
		}
	}
	return nil
}
