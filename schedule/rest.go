/*
rest.go - Statutory rest-period and weekly-ceiling validation

PURPOSE:
  Detects the two statutory violation kinds per employee:

  WeeklyHoursExceeded: net worked minutes in an ISO week above the
  configured ceiling. Reported once per violating week with the excess.

  InsufficientRest: the gap between two consecutive resolved shifts is
  below the configured minimum. Overlapping shifts are the same rule with
  the gap clamped to zero, not a separate kind.

WHY GLOBAL ORDERING:
  Rest checking walks the employee's shifts sorted across the whole
  window, not day by day. The violations this rule exists to catch span a
  day boundary (evening shift on day N, morning shift on day N+1);
  evaluating per-day would miss exactly those.

SEE ALSO:
  - interval.go: Span resolution and gap computation
  - hours.go: Net-minute accounting shared by the weekly check
*/
package schedule

import (
	"fmt"
	"sort"

	"github.com/warp/schedule-engine/engine"
)

// Validator detects statutory violations over an evaluation window.
// Stateless and safe for concurrent use.
type Validator struct {
	Rules RuleSet
}

// FindViolations evaluates every employee in the snapshot over the
// window. Data-quality problems are returned alongside the findings;
// one bad record never suppresses the findings for other records.
func (v Validator) FindViolations(snap Snapshot, window engine.Period) ([]Violation, []DataIssue, error) {
	if err := snap.Validate(); err != nil {
		return nil, nil, err
	}

	shiftsByEmp := snap.shiftsByEmployee()
	absencesByEmp := snap.absencesByEmployee()

	var violations []Violation
	var issues []DataIssue

	for _, emp := range snap.Employees {
		spans, empIssues := v.resolveEmployeeShifts(emp, shiftsByEmp[emp.ID], absencesByEmp[emp.ID], window)
		issues = append(issues, empIssues...)

		violations = append(violations, v.checkWeeklyCeiling(emp.ID, spans)...)
		violations = append(violations, v.checkRestGaps(emp.ID, spans)...)
	}

	SortViolations(violations)
	return violations, issues, nil
}

// resolveEmployeeShifts filters and resolves one employee's shifts:
// deleted shifts, shifts outside the window, and shifts blocked by an
// approved absence are dropped; malformed ones become issues.
func (v Validator) resolveEmployeeShifts(emp Employee, shifts []Shift, absences []Absence, window engine.Period) ([]ShiftSpan, []DataIssue) {
	blocked, issues := blockingAbsences(absences)

	var spans []ShiftSpan
	for _, sh := range shifts {
		if sh.Status == ShiftDeleted || !window.Contains(sh.Date) || coveredByAny(sh.Date, blocked) {
			continue
		}
		span, err := ResolveShift(sh)
		if err != nil {
			issues = append(issues, DataIssue{RecordKind: "shift", RecordID: string(sh.ID), Err: err})
			continue
		}
		if _, err := span.NetMinutes(); err != nil {
			// Break at or over the span: the record is reported once here
			// and counts as zero net minutes downstream, while its resolved
			// span still takes part in the rest walk.
			issues = append(issues, DataIssue{RecordKind: "shift", RecordID: string(sh.ID), Err: err})
		}
		spans = append(spans, span)
	}

	// Chronological walk order. Identical starts tie-break on shift ID
	// so repeated evaluations order identically.
	sort.Slice(spans, func(i, j int) bool {
		if !spans[i].Start.Equal(spans[j].Start) {
			return spans[i].Start.Before(spans[j].Start)
		}
		return spans[i].Shift.ID < spans[j].Shift.ID
	})
	return spans, issues
}

// checkWeeklyCeiling reports each ISO week whose net worked minutes
// exceed the statutory ceiling. Working exactly the ceiling is compliant.
func (v Validator) checkWeeklyCeiling(emp EmployeeID, spans []ShiftSpan) []Violation {
	weekMinutes := make(map[string]int)
	weekDates := make(map[string][]engine.Date)

	for _, sp := range spans {
		net, err := sp.NetMinutes()
		if err != nil {
			// Surfaced as a duration issue during resolution; the shift
			// counts as zero here.
			net = 0
		}
		key := sp.Shift.Date.WeekKey()
		weekMinutes[key] += net
		weekDates[key] = append(weekDates[key], sp.Shift.Date)
	}

	var out []Violation
	for key, total := range weekMinutes {
		if total <= v.Rules.MaxWeeklyMinutes {
			continue
		}
		excess := total - v.Rules.MaxWeeklyMinutes
		out = append(out, Violation{
			EmployeeID: emp,
			Kind:       KindWeeklyHoursExceeded,
			Key:        key,
			Description: fmt.Sprintf("worked %s in week %s, %s over the %s ceiling",
				formatMinutes(total), key, formatMinutes(excess), formatMinutes(v.Rules.MaxWeeklyMinutes)),
			AffectedDates: dedupDates(weekDates[key]),
			Minutes:       excess,
		})
	}
	return out
}

// checkRestGaps walks consecutive resolved spans and reports every gap
// below the minimum rest. Zero-length shifts are excluded from the walk
// entirely, so the neighbors on either side are compared directly.
func (v Validator) checkRestGaps(emp EmployeeID, spans []ShiftSpan) []Violation {
	var walk []ShiftSpan
	for _, sp := range spans {
		if !sp.IsZeroLength() {
			walk = append(walk, sp)
		}
	}

	var out []Violation
	for i := 1; i < len(walk); i++ {
		earlier, later := walk[i-1], walk[i]
		gap := earlier.GapMinutes(later)
		if gap >= v.Rules.MinRestMinutes {
			continue
		}
		if gap < 0 {
			// Overlap: a stricter violation of the same rule.
			gap = 0
		}
		dates := []engine.Date{earlier.StartDate()}
		if !earlier.EndDate().Equal(earlier.StartDate()) {
			// The transition out of a midnight-spanning shift also
			// concerns its end date.
			dates = append(dates, earlier.EndDate())
		}
		dates = append(dates, later.StartDate())
		out = append(out, Violation{
			EmployeeID: emp,
			Kind:       KindInsufficientRest,
			Key:        later.StartDate().String(),
			Description: fmt.Sprintf("only %s rest between %s and %s, minimum is %s",
				formatMinutes(gap), earlier.StartDate(), later.StartDate(), formatMinutes(v.Rules.MinRestMinutes)),
			AffectedDates: dedupDates(dates),
			Minutes:       gap,
		})
	}
	return out
}

// SortViolations orders violations deterministically: first affected
// date, then kind, then employee, then key. Report building depends on
// this ordering for idempotent output.
func SortViolations(violations []Violation) {
	sort.Slice(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		ad, bd := firstDate(a), firstDate(b)
		if !ad.Equal(bd) {
			return ad.Before(bd)
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.Key < b.Key
	})
}

func firstDate(v Violation) engine.Date {
	if len(v.AffectedDates) == 0 {
		return engine.Date{}
	}
	return v.AffectedDates[0]
}

func dedupDates(dates []engine.Date) []engine.Date {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	var out []engine.Date
	for _, d := range dates {
		if len(out) == 0 || !out[len(out)-1].Equal(d) {
			out = append(out, d)
		}
	}
	return out
}

func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}
