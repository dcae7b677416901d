package schedule

import (
	"fmt"

	"github.com/warp/schedule-engine/engine"
)

// =============================================================================
// ENGINE - Facade over the accountant and validators
// =============================================================================

// Engine bundles the compute entry points under one rule set. It holds
// no mutable state; every method recomputes fully from the supplied
// snapshot, so callers own write-then-read ordering and may share one
// Engine across goroutines.
type Engine struct {
	Rules RuleSet
}

// New returns an engine evaluating under the given rules.
func New(rules RuleSet) *Engine {
	return &Engine{Rules: rules}
}

// ComputeHours produces worked-hours accounting for one employee of the
// snapshot over the window.
func (e *Engine) ComputeHours(snap Snapshot, emp EmployeeID, window engine.Period) (HoursReport, error) {
	if err := snap.Validate(); err != nil {
		return HoursReport{}, err
	}
	if !window.Valid() {
		return HoursReport{}, fmt.Errorf("%w: window end before start", engine.ErrInvalidSnapshot)
	}
	for _, candidate := range snap.Employees {
		if candidate.ID == emp {
			ac := Accountant{Rules: e.Rules}
			return ac.ComputeHours(candidate, snap.shiftsByEmployee()[emp], snap.absencesByEmployee()[emp], window), nil
		}
	}
	return HoursReport{}, fmt.Errorf("%w: unknown employee %s", engine.ErrInvalidSnapshot, emp)
}

// FindViolations evaluates the statutory rules over the window.
func (e *Engine) FindViolations(snap Snapshot, window engine.Period) ([]Violation, []DataIssue, error) {
	return Validator{Rules: e.Rules}.FindViolations(snap, window)
}

// CheckCoverage checks the snapshot's templates against its opening hours.
func (e *Engine) CheckCoverage(snap Snapshot) ([]CoverageGap, []DataIssue) {
	return CheckCoverage(snap.Templates, snap.OpeningHours)
}

// Evaluation is the full output of one engine pass.
type Evaluation struct {
	Report         *Report
	StaffingIssues []StaffingIssue
	DataIssues     []DataIssue
}

// Evaluate runs every check and aggregates the results into one report.
func (e *Engine) Evaluate(snap Snapshot, window engine.Period) (*Evaluation, error) {
	violations, issues, err := e.FindViolations(snap, window)
	if err != nil {
		return nil, err
	}
	gaps, coverageIssues := e.CheckCoverage(snap)
	issues = append(issues, coverageIssues...)

	return &Evaluation{
		Report:         BuildReport(violations, gaps),
		StaffingIssues: CheckStaffing(snap.Templates, snap.Shifts, window),
		DataIssues:     issues,
	}, nil
}
