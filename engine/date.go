package engine

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day in organization-local wall-clock time
// =============================================================================

// Date is a calendar day. All temporal values in the engine are
// organization-local; timezone normalization is a caller responsibility,
// so dates are anchored in a fixed location-free frame.
type Date struct {
	Time time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, &FormatError{Value: s, Reason: "expected YYYY-MM-DD"}
	}
	return Date{Time: t}, nil
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Comparison
func (d Date) Before(other Date) bool        { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool         { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool         { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// At returns the instant the given number of minutes after this date's
// midnight. Minutes beyond MinutesPerDay land on following days, which is
// how overnight shifts resolve past their start date.
func (d Date) At(minutes int) time.Time {
	return d.normalize().Add(time.Duration(minutes) * time.Minute)
}

// Properties
func (d Date) Weekday() time.Weekday { return d.normalize().Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

// WeekKey returns the ISO-8601 week identifier for this date, e.g.
// "2026-W05". ISO weeks run Monday through Sunday.
func (d Date) WeekKey() string {
	year, week := d.normalize().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfWeek returns the Monday of this date's ISO week.
func (d Date) StartOfWeek() Date {
	wd := d.Weekday()
	offset := int(wd - time.Monday)
	if wd == time.Sunday {
		offset = 6
	}
	return d.AddDays(-offset)
}

func (d Date) String() string { return d.normalize().Format("2006-01-02") }

// =============================================================================
// PERIOD - Inclusive evaluation window [Start, End]
// =============================================================================

// Period is the evaluation window for an engine pass. The natural window
// is one ISO week; callers may supply any range, typically bounded to a
// month to keep a pass O(shifts-in-window).
type Period struct {
	Start Date
	End   Date
}

// WeekOf returns the ISO week (Monday-Sunday) containing the date.
func WeekOf(d Date) Period {
	start := d.StartOfWeek()
	return Period{Start: start, End: start.AddDays(6)}
}

// Contains returns true if the date is within the period [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns all days in the period in chronological order.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// LengthDays returns the number of calendar days in the period.
func (p Period) LengthDays() int {
	return int(p.End.normalize().Sub(p.Start.normalize()).Hours()/24) + 1
}

// Valid reports whether the period is well-formed (end not before start).
func (p Period) Valid() bool { return !p.End.Before(p.Start) }

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
