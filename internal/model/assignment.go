// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import "slices"

// Assignment holds the vendors booked for one event, in assignment order.
type Assignment struct {
	EventID   EventID    `json:"event_id"`
	VendorIDs []VendorID `json:"vendor_ids"`
}

func (a *Assignment) Has(id VendorID) bool {
	return slices.Contains(a.VendorIDs, id)
}

// AddVendor appends id unless already assigned and reports whether the list changed.
func (a *Assignment) AddVendor(id VendorID) bool {
	if a.Has(id) {
		return false
	}
	a.VendorIDs = append(a.VendorIDs, id)
	return true
}

func (a *Assignment) RemoveVendor(id VendorID) bool {
	for idx, vid := range a.VendorIDs {
		if id == vid {
			a.VendorIDs = append(a.VendorIDs[:idx], a.VendorIDs[idx+1:]...)
			return true
		}
	}
	return false
}

func (a *Assignment) Clone() *Assignment {
	return &Assignment{EventID: a.EventID, VendorIDs: slices.Clone(a.VendorIDs)}
}
