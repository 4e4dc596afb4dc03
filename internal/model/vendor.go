// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"encoding/json"
	"fmt"
	"slices"
)

type VendorID int64

type Category int

const (
	CategoryUnknown Category = iota
	CategoryCatering
	CategoryVenue
	CategoryEntertainment
	CategoryDecoration
	CategoryPhotography
	CategoryOther
)

// Categories lists every assignable category in display order.
var Categories = []Category{
	CategoryCatering,
	CategoryVenue,
	CategoryEntertainment,
	CategoryDecoration,
	CategoryPhotography,
	CategoryOther,
}

var categoryNames = map[Category]string{
	CategoryCatering:      "Catering",
	CategoryVenue:         "Venue",
	CategoryEntertainment: "Entertainment",
	CategoryDecoration:    "Decoration",
	CategoryPhotography:   "Photography",
	CategoryOther:         "Other",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c is one of the assignable categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if categoryNames[c] == s {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Availability is the set of dates a vendor is available on. Iteration
// follows insertion order.
type Availability struct {
	dates []string
}

func NewAvailability(dates ...string) Availability {
	var a Availability
	for _, d := range dates {
		a.Add(d)
	}
	return a
}

// Add inserts date and reports whether it was not present before.
func (a *Availability) Add(date string) bool {
	if a.Has(date) {
		return false
	}
	a.dates = append(a.dates, date)
	return true
}

func (a Availability) Has(date string) bool {
	return slices.Contains(a.dates, date)
}

func (a Availability) Dates() []string {
	return slices.Clone(a.dates)
}

func (a Availability) Len() int {
	return len(a.dates)
}

func (a Availability) MarshalJSON() ([]byte, error) {
	if a.dates == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.dates)
}

func (a *Availability) UnmarshalJSON(b []byte) error {
	var dates []string
	if err := json.Unmarshal(b, &dates); err != nil {
		return err
	}
	*a = NewAvailability(dates...)
	return nil
}

type Vendor struct {
	ID           VendorID     `json:"id"`
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Availability Availability `json:"availability"`
}

// Status classifies a vendor relative to a single date.
type Status int

const (
	StatusAvailable Status = iota
	StatusPending
)

func (s Status) String() string {
	if s == StatusAvailable {
		return "Available"
	}
	return "Pending"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Available":
		*s = StatusAvailable
	case "Pending":
		*s = StatusPending
	default:
		return fmt.Errorf("unknown vendor status %q", b)
	}
	return nil
}

// StatusOn is Available iff date is in the vendor's availability set.
func (v *Vendor) StatusOn(date string) Status {
	if v.Availability.Has(date) {
		return StatusAvailable
	}
	return StatusPending
}

// Clone returns a deep copy, availability included.
func (v *Vendor) Clone() *Vendor {
	c := *v
	c.Availability = NewAvailability(v.Availability.dates...)
	return &c
}
