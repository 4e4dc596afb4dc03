// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package planner

import (
	"testing"

	"github.com/quixsi/planner/internal/model"
)

func candidateIDs(g CandidateGroup) []model.VendorID {
	ids := make([]model.VendorID, 0, len(g.Candidates))
	for _, c := range g.Candidates {
		ids = append(ids, c.Vendor.ID)
	}
	return ids
}

func TestProjectCandidates_AvailableFirst(t *testing.T) {
	const date = "2024-06-01"
	vendors := []*model.Vendor{
		{ID: 1, Name: "B", Category: model.CategoryCatering},
		{ID: 2, Name: "A", Category: model.CategoryCatering, Availability: model.NewAvailability(date)},
	}
	groups := ProjectCandidates(vendors, nil, date)
	if len(groups) != 1 || groups[0].Category != model.CategoryCatering {
		t.Fatalf("unexpected groups: %+v", groups)
	}
	c := groups[0].Candidates
	if c[0].Vendor.Name != "A" || c[0].Status != model.StatusAvailable {
		t.Fatalf("expected A available first, got %+v", c[0])
	}
	if c[1].Vendor.Name != "B" || c[1].Status != model.StatusPending {
		t.Fatalf("expected B pending second, got %+v", c[1])
	}
}

func TestProjectCandidates_StableWithinStatus(t *testing.T) {
	const date = "2024-06-01"
	avail := model.NewAvailability(date)
	vendors := []*model.Vendor{
		{ID: 1, Category: model.CategoryVenue},
		{ID: 2, Category: model.CategoryVenue, Availability: avail},
		{ID: 3, Category: model.CategoryVenue},
		{ID: 4, Category: model.CategoryVenue, Availability: avail},
		{ID: 5, Category: model.CategoryVenue},
	}
	groups := ProjectCandidates(vendors, nil, date)
	got := candidateIDs(groups[0])
	want := []model.VendorID{2, 4, 1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, expected %v", got, want)
		}
	}
}

func TestProjectCandidates_GroupOrderAndOmission(t *testing.T) {
	vendors := []*model.Vendor{
		{ID: 1, Category: model.CategoryOther},
		{ID: 2, Category: model.CategoryPhotography},
		{ID: 3, Category: model.CategoryCatering},
		{ID: 4, Category: model.CategoryVenue},
	}
	groups := ProjectCandidates(vendors, []model.VendorID{4}, "2024-06-01")

	want := []model.Category{model.CategoryCatering, model.CategoryPhotography, model.CategoryOther}
	if len(groups) != len(want) {
		t.Fatalf("got %d groups, expected %d: %+v", len(groups), len(want), groups)
	}
	for i, g := range groups {
		if g.Category != want[i] {
			t.Fatalf("group %d: got %s, expected %s", i, g.Category, want[i])
		}
		if len(g.Candidates) == 0 {
			t.Fatalf("group %s is empty", g.Category)
		}
	}
}

func TestProjectCandidates_NoVendors(t *testing.T) {
	if groups := ProjectCandidates(nil, nil, "2024-06-01"); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}

func TestResolveAssigned_SkipsDangling(t *testing.T) {
	vendors := []*model.Vendor{
		{ID: 1, Name: "kept", Availability: model.NewAvailability("2024-06-01")},
		{ID: 3, Name: "also kept"},
	}
	got := ResolveAssigned(vendors, []model.VendorID{3, 2, 1}, "2024-06-01")
	if len(got) != 2 {
		t.Fatalf("expected 2 vendors, got %+v", got)
	}
	if got[0].Vendor.ID != 3 || got[0].Status != model.StatusPending {
		t.Fatalf("unexpected first vendor %+v", got[0])
	}
	if got[1].Vendor.ID != 1 || got[1].Status != model.StatusAvailable {
		t.Fatalf("unexpected second vendor %+v", got[1])
	}
}
