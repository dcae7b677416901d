/*
report.go - Violation aggregation for cell-addressable consumption

PURPOSE:
  Merges validator and coverage outputs into one report keyed by employee
  and by (employee, date) cell, for direct consumption by a schedule
  grid. Pure aggregation over already-computed findings; calling it twice
  with identical inputs yields deep-equal output, including ordering.

SEE ALSO:
  - rest.go: Produces the violations aggregated here
  - coverage.go: Produces the coverage gaps carried alongside
*/
package schedule

import "github.com/warp/schedule-engine/engine"

// CellKey addresses one (employee, date) cell of the schedule grid.
type CellKey struct {
	EmployeeID EmployeeID
	Date       string // "YYYY-MM-DD"
}

// Report is the aggregated view over one evaluation pass.
type Report struct {
	ByEmployee   map[EmployeeID][]Violation
	ByCell       map[CellKey][]Violation
	CoverageGaps []CoverageGap
}

// BuildReport aggregates violations and coverage gaps. A violation
// appears in every cell named by its affected dates, so a
// midnight-spanning finding highlights both days.
func BuildReport(violations []Violation, gaps []CoverageGap) *Report {
	sorted := make([]Violation, len(violations))
	copy(sorted, violations)
	SortViolations(sorted)

	report := &Report{
		ByEmployee:   make(map[EmployeeID][]Violation),
		ByCell:       make(map[CellKey][]Violation),
		CoverageGaps: gaps,
	}
	for _, v := range sorted {
		report.ByEmployee[v.EmployeeID] = append(report.ByEmployee[v.EmployeeID], v)
		for _, d := range v.AffectedDates {
			key := CellKey{EmployeeID: v.EmployeeID, Date: d.String()}
			report.ByCell[key] = append(report.ByCell[key], v)
		}
	}
	return report
}

// HasViolations reports whether any finding concerns the employee.
func (r *Report) HasViolations(emp EmployeeID) bool {
	return len(r.ByEmployee[emp]) > 0
}

// ViolationsForCell returns the findings addressing one schedule cell,
// in the report's stable order.
func (r *Report) ViolationsForCell(emp EmployeeID, date engine.Date) []Violation {
	return r.ByCell[CellKey{EmployeeID: emp, Date: date.String()}]
}
