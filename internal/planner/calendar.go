// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package planner

import (
	"fmt"
	"time"

	"github.com/quixsi/planner/internal/model"
)

// CategoryCount is the number of vendors of one category available on a day.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

type Day struct {
	Day     int             `json:"day"`
	Date    string          `json:"date"`
	Events  []*model.Event  `json:"events"`
	Vendors []CategoryCount `json:"vendors"`
}

// Month is the Sunday-first calendar grid of one month.
type Month struct {
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	LeadingBlanks int        `json:"leading_blanks"`
	Days          []Day      `json:"days"`
}

func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) Prev() (int, time.Month) {
	t := time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

func (m Month) Next() (int, time.Month) {
	t := time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Weeks lays the days out in rows of seven. Blank cells are nil.
func (m Month) Weeks() [][]*Day {
	cells := make([]*Day, m.LeadingBlanks, m.LeadingBlanks+len(m.Days)+6)
	for i := range m.Days {
		cells = append(cells, &m.Days[i])
	}
	for len(cells)%7 != 0 {
		cells = append(cells, nil)
	}
	weeks := make([][]*Day, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:i+7])
	}
	return weeks
}

// DaysIn returns the Gregorian length of month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// GroupByDate indexes events by their exact date string, keeping creation order.
func GroupByDate(events []*model.Event) map[string][]*model.Event {
	byDate := make(map[string][]*model.Event)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}
	return byDate
}

// ProjectCalendar derives the calendar of year/month from the full event and
// vendor collections.
func ProjectCalendar(events []*model.Event, vendors []*model.Vendor, year int, month time.Month) Month {
	return projectMonth(GroupByDate(events), vendors, year, month)
}

func projectMonth(byDate map[string][]*model.Event, vendors []*model.Vendor, year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()

	m := Month{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]Day, DaysIn(year, month)),
	}
	for i := range m.Days {
		date := model.FormatDate(year, month, i+1)
		m.Days[i] = Day{
			Day:     i + 1,
			Date:    date,
			Events:  byDate[date],
			Vendors: availableCategories(vendors, date),
		}
	}
	return m
}

// availableCategories counts available vendors per category, ordered by the
// first vendor of each category in insertion order.
func availableCategories(vendors []*model.Vendor, date string) []CategoryCount {
	var res []CategoryCount
	pos := make(map[model.Category]int)
	for _, v := range vendors {
		if !v.Availability.Has(date) {
			continue
		}
		idx, ok := pos[v.Category]
		if !ok {
			idx = len(res)
			pos[v.Category] = idx
			res = append(res, CategoryCount{Category: v.Category})
		}
		res[idx].Count++
	}
	return res
}
