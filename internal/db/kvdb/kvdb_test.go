// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package kvdb

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/quixsi/planner/internal/model"
)

func openDB(t *testing.T) (*bolt.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.db")
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestEventStore(t *testing.T) {
	db, _ := openDB(t)
	ctx := context.Background()
	store, err := NewEventStore(db)
	if err != nil {
		t.Fatal(err)
	}

	first, err := store.CreateEvent(ctx, "Wedding", "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.CreateEvent(ctx, "Party", "2024-06-01")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatalf("ids must be unique, both are %d", first.ID)
	}

	got, err := store.GetEventByID(ctx, second.ID)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *second {
		t.Fatalf("got %+v, expected %+v", got, second)
	}

	if _, err := store.GetEventByID(ctx, 99); !errors.Is(err, model.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].Name != "Wedding" || events[1].Name != "Party" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestVendorStore(t *testing.T) {
	db, _ := openDB(t)
	ctx := context.Background()
	store, err := NewVendorStore(db)
	if err != nil {
		t.Fatal(err)
	}

	v, err := store.CreateVendor(ctx, "Cakes", model.CategoryCatering)
	if err != nil {
		t.Fatal(err)
	}
	v.Availability.Add("2024-06-01")
	if err := store.UpdateVendor(ctx, v); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetVendorByID(ctx, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Category != model.CategoryCatering || !got.Availability.Has("2024-06-01") {
		t.Fatalf("unexpected vendor: %+v", got)
	}

	if err := store.DeleteVendor(ctx, v.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetVendorByID(ctx, v.ID); !errors.Is(err, model.ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
	if err := store.UpdateVendor(ctx, v); !errors.Is(err, model.ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
}

func TestAssignmentStore(t *testing.T) {
	db, _ := openDB(t)
	ctx := context.Background()
	store, err := NewAssignmentStore(db)
	if err != nil {
		t.Fatal(err)
	}

	if err := store.InitAssignment(ctx, 1); err != nil {
		t.Fatal(err)
	}
	assign, err := store.GetAssignment(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(assign.VendorIDs) != 0 {
		t.Fatalf("expected empty assignment, got %v", assign.VendorIDs)
	}

	assign.AddVendor(4)
	assign.AddVendor(2)
	if err := store.UpdateAssignment(ctx, assign); err != nil {
		t.Fatal(err)
	}
	// a second init must not wipe existing assignments
	if err := store.InitAssignment(ctx, 1); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetAssignment(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.VendorIDs, []model.VendorID{4, 2}) {
		t.Fatalf("got %v", got.VendorIDs)
	}

	if err := store.UpdateAssignment(ctx, &model.Assignment{EventID: 2}); !errors.Is(err, model.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestStoresStartEmptyOnReopen(t *testing.T) {
	db, _ := openDB(t)
	ctx := context.Background()

	store, err := NewEventStore(db)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateEvent(ctx, "Wedding", "2024-06-01"); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewEventStore(db)
	if err != nil {
		t.Fatal(err)
	}
	events, err := reopened.ListEvents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("expected a fresh session, got %d events", len(events))
	}
}
