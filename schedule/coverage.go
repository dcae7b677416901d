/*
coverage.go - Opening-hours coverage and staffing-bounds checks

PURPOSE:
  Verifies that the shift templates applicable to each enabled weekday
  jointly span the organization's opening interval, and that assigned
  shifts keep template headcounts inside their staffing bounds. Both
  checks are advisory: they warn the administrator ahead of bulk
  operations, they never block shift creation.

OVERNIGHT ANCHORING:
  Opening interval and templates resolve on the same reference midnight.
  A template whose own midnight wrap puts it a day off from the opening
  interval (open 20:00-04:00, template 00:00-04:00) is reconsidered
  shifted by one day in either direction before clipping, so coverage of
  the post-midnight tail is attributed correctly.

SEE ALSO:
  - engine/interval.go: Merge and Subtract primitives
*/
package schedule

import (
	"time"

	"github.com/warp/schedule-engine/engine"
)

// weekdayOrder fixes the reporting order to Monday-first, matching the
// ISO week used everywhere else.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// CheckCoverage reports, for each enabled weekday, the parts of the
// opening interval not covered by any applicable template. Disabled
// weekdays need no coverage. A weekday with no applicable template at
// all yields one gap spanning the whole opening interval.
func CheckCoverage(templates []ShiftTemplate, hours OpeningHours) ([]CoverageGap, []DataIssue) {
	var gaps []CoverageGap
	var issues []DataIssue

	for _, wd := range weekdayOrder {
		day, ok := hours[wd]
		if !ok || !day.Enabled {
			continue
		}
		open, err := resolveOpenInterval(day)
		if err != nil {
			issues = append(issues, DataIssue{RecordKind: "opening_hours", RecordID: wd.String(), Err: err})
			continue
		}
		if open.IsEmpty() {
			// open == close: a zero-length day has nothing to cover.
			continue
		}

		var covered []engine.Interval
		for _, t := range templates {
			if !t.AppliesTo(wd) {
				continue
			}
			iv, err := resolveTemplateInterval(t)
			if err != nil {
				issues = append(issues, DataIssue{RecordKind: "template", RecordID: string(t.ID), Err: err})
				continue
			}
			// Templates with zero overlap are ignored; Clip leaves them
			// empty and Merge drops them. The day-shifted copies catch
			// coverage across the open interval's midnight wrap.
			covered = append(covered,
				iv.Clip(open),
				iv.Shift(engine.MinutesPerDay).Clip(open),
				iv.Shift(-engine.MinutesPerDay).Clip(open),
			)
		}

		if uncovered := engine.Subtract(open, covered); len(uncovered) > 0 {
			gaps = append(gaps, CoverageGap{Weekday: wd, Open: open, Uncovered: uncovered})
		}
	}
	return gaps, issues
}

// CheckStaffing compares per-date headcounts of shifts seeded from each
// template against the template's staffing bounds over the window.
func CheckStaffing(templates []ShiftTemplate, shifts []Shift, window engine.Period) []StaffingIssue {
	counts := make(map[TemplateID]map[string]int)
	for _, sh := range shifts {
		if sh.Status == ShiftDeleted || sh.TemplateID == "" || !window.Contains(sh.Date) {
			continue
		}
		if counts[sh.TemplateID] == nil {
			counts[sh.TemplateID] = make(map[string]int)
		}
		counts[sh.TemplateID][sh.Date.String()]++
	}

	var out []StaffingIssue
	for _, day := range window.Days() {
		for _, t := range templates {
			if !t.AppliesTo(day.Weekday()) {
				continue
			}
			assigned := counts[t.ID][day.String()]
			if assigned < t.MinEmployees {
				out = append(out, StaffingIssue{
					Date: day, TemplateID: t.ID, Kind: StaffingUnder,
					Assigned: assigned, Bound: t.MinEmployees,
				})
			} else if t.MaxEmployees != nil && assigned > *t.MaxEmployees {
				out = append(out, StaffingIssue{
					Date: day, TemplateID: t.ID, Kind: StaffingOver,
					Assigned: assigned, Bound: *t.MaxEmployees,
				})
			}
		}
	}
	return out
}

func resolveOpenInterval(day OpeningDay) (engine.Interval, error) {
	openMin, err := engine.ParseClock(day.Open)
	if err != nil {
		return engine.Interval{}, err
	}
	closeMin, err := engine.ParseClock(day.Close)
	if err != nil {
		return engine.Interval{}, err
	}
	if openMin == closeMin {
		return engine.Interval{Start: openMin, End: openMin}, nil
	}
	return engine.NewInterval(openMin, closeMin), nil
}

func resolveTemplateInterval(t ShiftTemplate) (engine.Interval, error) {
	startMin, err := engine.ParseClock(t.StartTime)
	if err != nil {
		return engine.Interval{}, err
	}
	endMin, err := engine.ParseClock(t.EndTime)
	if err != nil {
		return engine.Interval{}, err
	}
	return engine.NewInterval(startMin, endMin), nil
}
