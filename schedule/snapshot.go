package schedule

import (
	"fmt"

	"github.com/warp/schedule-engine/engine"
)

// =============================================================================
// SNAPSHOT - Immutable input bundle for one evaluation pass
// =============================================================================

// Snapshot is the read-only input the engine computes over. The caller
// (typically the persistence layer) assembles it; the engine never
// mutates it and keeps no state between passes, so a snapshot may be
// shared across concurrent evaluations.
type Snapshot struct {
	Employees    []Employee
	Shifts       []Shift
	Absences     []Absence
	Templates    []ShiftTemplate
	OpeningHours OpeningHours
}

// Validate checks structural validity: the presence of required fields
// without which no partial result is meaningful. Data-quality problems
// in individual records (malformed times, inverted absence ranges) are
// NOT structural; they surface as per-record issues during evaluation.
func (s Snapshot) Validate() error {
	seen := make(map[EmployeeID]bool, len(s.Employees))
	for i, emp := range s.Employees {
		if emp.ID == "" {
			return fmt.Errorf("%w: employee %d has no id", engine.ErrInvalidSnapshot, i)
		}
		if seen[emp.ID] {
			return fmt.Errorf("%w: duplicate employee id %s", engine.ErrInvalidSnapshot, emp.ID)
		}
		seen[emp.ID] = true
		if !emp.Employment.Valid() {
			return fmt.Errorf("%w: employee %s has unknown employment type %q",
				engine.ErrInvalidSnapshot, emp.ID, emp.Employment)
		}
		if emp.Employment == EmploymentCustom && !emp.CustomHoursPerDay.IsPositive() {
			return fmt.Errorf("%w: employee %s is custom without customHoursPerDay",
				engine.ErrInvalidSnapshot, emp.ID)
		}
	}
	for i, sh := range s.Shifts {
		if sh.ID == "" {
			return fmt.Errorf("%w: shift %d has no id", engine.ErrInvalidSnapshot, i)
		}
		if sh.EmployeeID == "" {
			return fmt.Errorf("%w: shift %s has no employee", engine.ErrInvalidSnapshot, sh.ID)
		}
		if sh.Date.IsZero() {
			return fmt.Errorf("%w: shift %s has no date", engine.ErrInvalidSnapshot, sh.ID)
		}
	}
	for i, a := range s.Absences {
		if a.ID == "" {
			return fmt.Errorf("%w: absence %d has no id", engine.ErrInvalidSnapshot, i)
		}
		if a.EmployeeID == "" {
			return fmt.Errorf("%w: absence %s has no employee", engine.ErrInvalidSnapshot, a.ID)
		}
	}
	for i, t := range s.Templates {
		if t.ID == "" {
			return fmt.Errorf("%w: template %d has no id", engine.ErrInvalidSnapshot, i)
		}
	}
	return nil
}

// shiftsByEmployee groups the snapshot's shifts, preserving input order.
func (s Snapshot) shiftsByEmployee() map[EmployeeID][]Shift {
	out := make(map[EmployeeID][]Shift)
	for _, sh := range s.Shifts {
		out[sh.EmployeeID] = append(out[sh.EmployeeID], sh)
	}
	return out
}

// absencesByEmployee groups the snapshot's absences.
func (s Snapshot) absencesByEmployee() map[EmployeeID][]Absence {
	out := make(map[EmployeeID][]Absence)
	for _, a := range s.Absences {
		out[a.EmployeeID] = append(out[a.EmployeeID], a)
	}
	return out
}
