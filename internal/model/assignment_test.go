// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"slices"
	"testing"
)

func TestAssignment_RemoveVendor(t *testing.T) {
	tt := []struct {
		name     string
		assign   Assignment
		toRemove VendorID
		removed  bool
		want     []VendorID
	}{
		{
			name:     "empty or notFound",
			assign:   Assignment{VendorIDs: []VendorID{}},
			toRemove: 7,
			want:     []VendorID{},
		},
		{
			name:     "remove first",
			assign:   Assignment{VendorIDs: []VendorID{1, 2, 3}},
			toRemove: 1,
			removed:  true,
			want:     []VendorID{2, 3},
		},
		{
			name:     "remove last",
			assign:   Assignment{VendorIDs: []VendorID{1, 2, 3}},
			toRemove: 3,
			removed:  true,
			want:     []VendorID{1, 2},
		},
		{
			name:     "remove mid",
			assign:   Assignment{VendorIDs: []VendorID{1, 2, 3}},
			toRemove: 2,
			removed:  true,
			want:     []VendorID{1, 3},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.assign.RemoveVendor(tc.toRemove); got != tc.removed {
				t.Fatalf("RemoveVendor returned %v, expected %v", got, tc.removed)
			}
			if !slices.Equal(tc.assign.VendorIDs, tc.want) {
				t.Fatalf("got %v, expected %v", tc.assign.VendorIDs, tc.want)
			}
		})
	}
}

func TestAssignment_AddVendorOnce(t *testing.T) {
	a := Assignment{EventID: 1}
	if !a.AddVendor(5) {
		t.Fatal("first add must change the list")
	}
	if a.AddVendor(5) {
		t.Fatal("second add must be a no-op")
	}
	if !slices.Equal(a.VendorIDs, []VendorID{5}) {
		t.Fatalf("got %v", a.VendorIDs)
	}
}
