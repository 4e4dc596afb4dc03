// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for event dates and vendor
// availability. Dates are compared as plain strings.
const DateLayout = "2006-01-02"

type EventID int64

type Event struct {
	ID   EventID `json:"id"`
	Name string  `json:"name" form:"name"`
	Date string  `json:"date" form:"date"`
}

// FormatDate renders year, month and day as a DateLayout string.
func FormatDate(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseDate checks that s is a valid DateLayout date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
