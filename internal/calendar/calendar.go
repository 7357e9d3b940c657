// Package calendar holds the ISO date helpers shared by orders, production
// reports and exports. Dates travel as YYYY-MM-DD strings; arithmetic is done
// on time.Time in UTC so month and year boundaries come out right.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the ISO calendar date layout used everywhere in the API
const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// weekdayNames is Monday-first.
var weekdayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

// Range is an inclusive date range
type Range struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether date falls inside the range. ISO dates order
// lexicographically, so plain string comparison is enough.
func (r Range) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}

// Single returns the one-day range for date
func Single(date string) Range {
	return Range{Start: date, End: date}
}

// Parse parses an ISO date
func Parse(date string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// Format renders t as an ISO date
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Valid reports whether date is a well-formed ISO date
func Valid(date string) bool {
	_, err := Parse(date)
	return err == nil
}

// Today returns the calendar date of now in its own location
func Today(now time.Time) string {
	return Format(now)
}

// AddDays shifts date by n calendar days
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, n)), nil
}

// WeekRange returns the Monday-to-Sunday week containing date.
func WeekRange(date string) (Range, error) {
	t, err := Parse(date)
	if err != nil {
		return Range{}, err
	}

	// Sunday is 0 and belongs to the week that started six days earlier.
	back := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		back = 6
	}

	monday := t.AddDate(0, 0, -back)
	return Range{
		Start: Format(monday),
		End:   Format(monday.AddDate(0, 0, 6)),
	}, nil
}

// Weekday returns the weekday name of date, or "" when date is malformed
func Weekday(date string) string {
	t, err := Parse(date)
	if err != nil {
		return ""
	}
	return weekdayNames[(int(t.Weekday())+6)%7]
}
