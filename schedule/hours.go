/*
hours.go - Worked-hours accounting

PURPOSE:
  Answers "how much did this employee actually work?" for a window.
  Sums net worked minutes (span minus unpaid break) per calendar day and
  per ISO week, excluding deleted shifts and shifts blocked by an
  approved absence.

REQUIRED HOURS:
  The contractual requirement comes from the employment type through the
  RuleSet fraction table, prorated to the window length. For the natural
  one-week window this is exactly the weekly table value.

PARTIAL FAILURE:
  One malformed record never blinds the caller: it is recorded as a
  DataIssue, contributes zero, and accounting continues.

SEE ALSO:
  - rules.go: Required-hours derivation
  - rest.go: Reuses the weekly totals for the statutory ceiling
*/
package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/warp/schedule-engine/engine"
)

// HoursReport is the worked-hours accounting for one employee over one
// window. Day keys are "YYYY-MM-DD"; week keys are ISO "YYYY-Www".
type HoursReport struct {
	EmployeeID      EmployeeID
	Window          engine.Period
	TotalMinutes    int
	PerDay          map[string]int
	PerWeek         map[string]int
	RequiredMinutes int
	Issues          []DataIssue
}

// Accountant aggregates worked minutes. It is stateless; a zero value
// with a RuleSet is ready to use.
type Accountant struct {
	Rules RuleSet
}

// ComputeHours produces the worked-hours accounting for one employee.
// Only the employee's own shifts and absences are considered; shifts
// outside the window, deleted shifts, and absence-blocked shifts are
// excluded.
func (ac Accountant) ComputeHours(emp Employee, shifts []Shift, absences []Absence, window engine.Period) HoursReport {
	report := HoursReport{
		EmployeeID:      emp.ID,
		Window:          window,
		PerDay:          make(map[string]int),
		PerWeek:         make(map[string]int),
		RequiredMinutes: ac.requiredMinutes(emp, window),
	}

	blocked, issues := blockingAbsences(absences)
	report.Issues = issues

	for _, sh := range shifts {
		if sh.EmployeeID != emp.ID || sh.Status == ShiftDeleted {
			continue
		}
		if !window.Contains(sh.Date) {
			continue
		}
		if coveredByAny(sh.Date, blocked) {
			continue
		}
		span, err := ResolveShift(sh)
		if err != nil {
			report.Issues = append(report.Issues, DataIssue{RecordKind: "shift", RecordID: string(sh.ID), Err: err})
			continue
		}
		net, err := span.NetMinutes()
		if err != nil {
			report.Issues = append(report.Issues, DataIssue{RecordKind: "shift", RecordID: string(sh.ID), Err: err})
		}
		report.TotalMinutes += net
		report.PerDay[sh.Date.String()] += net
		report.PerWeek[sh.Date.WeekKey()] += net
	}
	return report
}

// requiredMinutes prorates the weekly contractual requirement to the
// window length. A one-week window yields exactly the weekly table value.
func (ac Accountant) requiredMinutes(emp Employee, window engine.Period) int {
	if !window.Valid() {
		return 0
	}
	weekly := decimal.NewFromInt(int64(ac.Rules.RequiredWeeklyMinutes(emp)))
	days := decimal.NewFromInt(int64(window.LengthDays()))
	return int(weekly.Mul(days).Div(decimal.NewFromInt(7)).Round(0).IntPart())
}

// blockingAbsences filters out structurally inverted ranges, reporting
// them as data-quality issues. An inverted absence blocks nothing.
func blockingAbsences(absences []Absence) ([]Absence, []DataIssue) {
	var valid []Absence
	var issues []DataIssue
	for _, a := range absences {
		if a.EndDate.Before(a.StartDate) {
			issues = append(issues, DataIssue{
				RecordKind: "absence",
				RecordID:   string(a.ID),
				Err:        &engine.AbsenceRangeError{RecordID: string(a.ID), Start: a.StartDate, End: a.EndDate},
			})
			continue
		}
		valid = append(valid, a)
	}
	return valid, issues
}

func coveredByAny(d engine.Date, absences []Absence) bool {
	for _, a := range absences {
		if a.Covers(d) {
			return true
		}
	}
	return false
}
