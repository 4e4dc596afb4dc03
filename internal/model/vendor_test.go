// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
)

func TestAvailability_Add(t *testing.T) {
	var a Availability
	a.Add("2024-06-01")
	a.Add("2024-06-02")
	if a.Add("2024-06-01") {
		t.Fatal("re-adding a date must be a no-op")
	}
	if got := a.Dates(); !slices.Equal(got, []string{"2024-06-01", "2024-06-02"}) {
		t.Fatalf("unexpected dates: %v", got)
	}
}

func TestAvailability_UnmarshalDeduplicates(t *testing.T) {
	var a Availability
	if err := json.Unmarshal([]byte(`["2024-01-01","2024-01-01","2024-01-02"]`), &a); err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Fatalf("expected 2 dates, got %v", a.Dates())
	}
}

func TestVendor_StatusOn(t *testing.T) {
	v := Vendor{Availability: NewAvailability("2024-06-01")}
	if s := v.StatusOn("2024-06-01"); s != StatusAvailable {
		t.Fatalf("expected Available, got %s", s)
	}
	if s := v.StatusOn("2024-06-02"); s != StatusPending {
		t.Fatalf("expected Pending, got %s", s)
	}
}

func TestParseCategory(t *testing.T) {
	testCases := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "Catering", want: CategoryCatering},
		{in: "Photography", want: CategoryPhotography},
		{in: "Other", want: CategoryOther},
		{in: "", wantErr: true},
		{in: "catering", wantErr: true},
		{in: "Unknown", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCategory(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownCategory) {
					t.Fatalf("expected ErrUnknownCategory, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("got %v, %v", got, err)
			}
		})
	}
}

func TestVendor_JSON(t *testing.T) {
	v := Vendor{ID: 3, Name: "Cakes", Category: CategoryCatering}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	const want = `{"id":3,"name":"Cakes","category":"Catering","availability":[]}`
	if string(b) != want {
		t.Fatalf("got %s, expected %s", b, want)
	}
}
