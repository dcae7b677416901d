/*
Package schedule implements the scheduling compliance and coverage engine.

PURPOSE:
  Given a snapshot of employees, shifts, absences, shift templates and
  opening hours, this package computes worked-hours accounting, statutory
  rest and weekly-hour violations, and whether templates cover the
  organization's opening hours. It is a pure read-and-compute layer: no
  entity is ever mutated and no state survives between calls, so every
  entry point is safe to invoke concurrently.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee, Shift, Absence, ShiftTemplate, OpeningHours: input records
  - Violation, CoverageGap, StaffingIssue: computed findings, never stored
  - EmploymentType: closed contract-type enum driving required hours

SEE ALSO:
  - hours.go: Worked-minutes accounting per employee
  - rest.go: Rest-period and weekly-ceiling validation
  - coverage.go: Opening-hours coverage checks
  - report.go: Aggregation into a per-cell addressable report
*/
package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/schedule-engine/engine"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string
type ShiftID string
type AbsenceID string
type TemplateID string

// =============================================================================
// EMPLOYEE - Contract holder
// =============================================================================

// EmploymentType is the closed set of contract types. It drives the
// required weekly hours an employee is expected to work.
type EmploymentType string

const (
	EmploymentFull         EmploymentType = "full"
	EmploymentThreeQuarter EmploymentType = "three_quarter"
	EmploymentHalf         EmploymentType = "half"
	EmploymentOneThird     EmploymentType = "one_third"
	EmploymentCustom       EmploymentType = "custom"
)

// WeeklyFraction returns the fraction of a full working week this
// contract type covers. Custom contracts derive hours from
// CustomHoursPerDay instead and return zero here.
func (t EmploymentType) WeeklyFraction() decimal.Decimal {
	switch t {
	case EmploymentFull:
		return decimal.NewFromInt(1)
	case EmploymentThreeQuarter:
		return engine.MustParseDecimal("0.75")
	case EmploymentHalf:
		return engine.MustParseDecimal("0.5")
	case EmploymentOneThird:
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(3))
	default:
		return decimal.Zero
	}
}

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFull, EmploymentThreeQuarter, EmploymentHalf, EmploymentOneThird, EmploymentCustom:
		return true
	}
	return false
}

// Employee is a contract holder. Name and Color are cosmetic and carried
// only for callers; the engine reads the contract fields.
type Employee struct {
	ID                EmployeeID
	Name              string
	Color             string
	Employment        EmploymentType
	CustomHoursPerDay decimal.Decimal // required when Employment == EmploymentCustom
	IsSupervisor      bool
}

// =============================================================================
// SHIFT - One scheduled work interval
// =============================================================================

type ShiftStatus string

const (
	ShiftActive  ShiftStatus = "active"
	ShiftDeleted ShiftStatus = "deleted" // excluded from every calculation
)

// Shift is one scheduled work interval for one employee on one calendar
// date. Times are organization-local wall-clock and may wrap past
// midnight (EndTime at or before StartTime). The engine treats shifts as
// immutable reads for the duration of one pass.
type Shift struct {
	ID           ShiftID
	EmployeeID   EmployeeID
	Date         engine.Date
	StartTime    string // "HH:MM"
	EndTime      string // "HH:MM"
	BreakMinutes int    // unpaid, subtracted from worked time
	Status       ShiftStatus
	TemplateID   TemplateID // optional, non-owning back-reference
}

// =============================================================================
// ABSENCE - Approved period overriding scheduled shifts
// =============================================================================

type AbsenceType string

const (
	AbsenceVacation AbsenceType = "vacation"
	AbsenceSick     AbsenceType = "sick"
	AbsencePersonal AbsenceType = "personal"
	AbsenceUnpaid   AbsenceType = "unpaid"
)

// Absence blocks an employee's shifts over an inclusive date range.
// A blocked shift is excluded from hours accounting and rest-gap
// computation; the scheduling conflict itself is a UI concern.
type Absence struct {
	ID         AbsenceID
	EmployeeID EmployeeID
	StartDate  engine.Date
	EndDate    engine.Date
	Type       AbsenceType
	Paid       bool
}

// Covers reports whether the date falls inside the absence range.
func (a Absence) Covers(d engine.Date) bool {
	return d.AfterOrEqual(a.StartDate) && d.BeforeOrEqual(a.EndDate)
}

// =============================================================================
// SHIFT TEMPLATE - Reusable shift definition
// =============================================================================

// ShiftTemplate is an organization-scoped reusable shift definition. It
// seeds new shifts and is the unit of opening-hours coverage validation.
type ShiftTemplate struct {
	ID           TemplateID
	Name         string
	StartTime    string // "HH:MM"
	EndTime      string // "HH:MM"
	BreakMinutes int
	MinEmployees int
	MaxEmployees *int           // nil = unbounded
	Days         []time.Weekday // nil = applicable every day
	Color        string
}

// AppliesTo reports whether the template is applicable on the weekday.
func (t ShiftTemplate) AppliesTo(wd time.Weekday) bool {
	if t.Days == nil {
		return true
	}
	for _, d := range t.Days {
		if d == wd {
			return true
		}
	}
	return false
}

// =============================================================================
// OPENING HOURS - One record per weekday
// =============================================================================

// OpeningDay is the opening interval for a single weekday. Close may be
// numerically before Open, signifying an overnight closing time.
type OpeningDay struct {
	Enabled bool
	Open    string // "HH:MM"
	Close   string // "HH:MM"
}

// OpeningHours maps each weekday to its opening record. Weekdays absent
// from the map are treated as closed.
type OpeningHours map[time.Weekday]OpeningDay

// =============================================================================
// FINDINGS - Computed value objects, produced fresh on every evaluation
// =============================================================================

type ViolationKind string

const (
	KindInsufficientRest    ViolationKind = "insufficient_rest"
	KindWeeklyHoursExceeded ViolationKind = "weekly_hours_exceeded"
)

// Violation is one statutory finding for one employee. Key is the ISO
// week for weekly-ceiling findings and the calendar day on which the
// violated rest ends for rest findings. AffectedDates reference calendar
// dates so a cell-level UI can highlight the correct day(s).
type Violation struct {
	EmployeeID    EmployeeID
	Kind          ViolationKind
	Key           string
	Description   string
	AffectedDates []engine.Date

	// Minutes carries the measured quantity: the rest gap for
	// KindInsufficientRest, the excess over the ceiling for
	// KindWeeklyHoursExceeded.
	Minutes int
}

// CoverageGap reports the parts of one weekday's opening interval not
// covered by any applicable template.
type CoverageGap struct {
	Weekday   time.Weekday
	Open      engine.Interval
	Uncovered []engine.Interval
}

func (g CoverageGap) String() string {
	return fmt.Sprintf("%s %s: %d uncovered", g.Weekday, g.Open, len(g.Uncovered))
}

// StaffingKind classifies a headcount finding against template bounds.
type StaffingKind string

const (
	StaffingUnder StaffingKind = "understaffed"
	StaffingOver  StaffingKind = "overstaffed"
)

// StaffingIssue reports a date on which the number of shifts assigned
// from a template falls outside its staffing bounds. Advisory only.
type StaffingIssue struct {
	Date       engine.Date
	TemplateID TemplateID
	Kind       StaffingKind
	Assigned   int
	Bound      int
}

// DataIssue attaches a data-quality error to the record that caused it.
// One corrupt record is excluded from aggregates without suppressing the
// findings for every other record.
type DataIssue struct {
	RecordKind string // "shift", "absence", "template", "opening_hours"
	RecordID   string
	Err        error
}

func (i DataIssue) Error() string {
	return fmt.Sprintf("%s %s: %v", i.RecordKind, i.RecordID, i.Err)
}

func (i DataIssue) Unwrap() error { return i.Err }
