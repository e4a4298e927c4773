// Package calendar puts every observation the report touches onto one
// timezone-naive daily grid and derives calendar-year and quarter boundaries.
//
// A normalized date is a time.Time at midnight in time.UTC. UTC stands in for
// "no timezone": values already in UTC are taken at their wall-clock date,
// values in any other location are first converted to the exchange timezone.
package calendar

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// ReferenceTimezone is the exchange timezone market timestamps are read in.
const ReferenceTimezone = "America/New_York"

// DateFormat is the canonical day key.
const DateFormat = "2006-01-02"

var referenceLocation = mustLoadLocation(ReferenceTimezone)

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err.Error())
	}
	return loc
}

type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// Quarters lists calendar quarters in order.
var Quarters = []Quarter{Q1, Q2, Q3, Q4}

// NormalizeDate truncates t to its day on the naive grid.
func NormalizeDate(t time.Time) time.Time {
	if t.Location() != time.UTC {
		t = t.In(referenceLocation)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FromUnix normalizes an exchange timestamp given in seconds since the epoch.
func FromUnix(sec int64) time.Time {
	return NormalizeDate(time.Unix(sec, 0).In(referenceLocation))
}

// YearBounds returns Jan 1 and Dec 31 of year.
func YearBounds(year int) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// QuarterOf maps the calendar month of t to its quarter.
func QuarterOf(t time.Time) Quarter {
	switch m := t.Month(); {
	case m <= time.March:
		return Q1
	case m <= time.June:
		return Q2
	case m <= time.September:
		return Q3
	default:
		return Q4
	}
}

// Key formats a normalized date as a map key.
func Key(t time.Time) string {
	return NormalizeDate(t).Format(DateFormat)
}

var parseLayouts = []string{
	DateFormat,
	"2006-1-2",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	"2006/01/02",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// ParseDate reads a date cell. Zone offsets present in the text are honoured
// before normalization; month comes before day in slash layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == time.RFC3339 {
			_, offset := t.Zone()
			if offset != 0 || strings.HasSuffix(s, "Z") {
				t = t.In(referenceLocation)
			}
		}
		return NormalizeDate(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
