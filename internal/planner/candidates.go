// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package planner

import (
	"slices"

	"github.com/quixsi/planner/internal/model"
)

// VendorStatus pairs a vendor with its status on one date.
type VendorStatus struct {
	Vendor *model.Vendor `json:"vendor"`
	Status model.Status  `json:"status"`
}

type CandidateGroup struct {
	Category   model.Category `json:"category"`
	Candidates []VendorStatus `json:"candidates"`
}

// ProjectCandidates groups the vendors not yet in assigned by category, in
// model.Categories order. Available vendors come first within a group,
// otherwise insertion order is kept. Empty groups are left out.
func ProjectCandidates(vendors []*model.Vendor, assigned []model.VendorID, date string) []CandidateGroup {
	var groups []CandidateGroup
	for _, category := range model.Categories {
		var candidates []VendorStatus
		for _, v := range vendors {
			if v.Category != category || slices.Contains(assigned, v.ID) {
				continue
			}
			candidates = append(candidates, VendorStatus{Vendor: v, Status: v.StatusOn(date)})
		}
		if len(candidates) == 0 {
			continue
		}
		slices.SortStableFunc(candidates, func(a, b VendorStatus) int {
			return int(a.Status) - int(b.Status)
		})
		groups = append(groups, CandidateGroup{Category: category, Candidates: candidates})
	}
	return groups
}

// ResolveAssigned looks up assigned vendor ids in vendors. Ids without a
// vendor are skipped.
func ResolveAssigned(vendors []*model.Vendor, assigned []model.VendorID, date string) []VendorStatus {
	byID := make(map[model.VendorID]*model.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}
	res := make([]VendorStatus, 0, len(assigned))
	for _, id := range assigned {
		v, ok := byID[id]
		if !ok {
			continue
		}
		res = append(res, VendorStatus{Vendor: v, Status: v.StatusOn(date)})
	}
	return res
}
