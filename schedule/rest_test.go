package schedule_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
)

func TestFindViolations_StructuralInvalidityFailsTheCall(t *testing.T) {
	snap := schedule.Snapshot{
		Employees: []schedule.Employee{
			{ID: "emp-1", Employment: schedule.EmploymentFull},
			{ID: "emp-1", Employment: schedule.EmploymentFull}, // duplicate
		},
	}

	_, _, err := newValidator().FindViolations(snap, testWeek())

	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrInvalidSnapshot))
}

func TestFindViolations_BadRecordDoesNotSuppressOthers(t *testing.T) {
	// emp-1 carries a malformed shift; emp-2 carries a genuine rest
	// violation. The bad record becomes an issue and emp-2 is still found.
	snap := schedule.Snapshot{
		Employees: []schedule.Employee{fullTimer("emp-1"), fullTimer("emp-2")},
		Shifts: []schedule.Shift{
			shiftOn("s1", "emp-1", monday2026, "25:00", "17:00"),
			shiftOn("s2", "emp-2", monday2026, "14:00", "22:00"),
			shiftOn("s3", "emp-2", monday2026.AddDays(1), "06:00", "14:00"),
		},
	}

	violations, issues, err := newValidator().FindViolations(snap, testWeek())

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "s1", issues[0].RecordID)
	assert.True(t, errors.Is(issues[0].Err, engine.ErrBadFormat))

	require.Len(t, violations, 1)
	assert.Equal(t, schedule.EmployeeID("emp-2"), violations[0].EmployeeID)
	assert.Equal(t, schedule.KindInsufficientRest, violations[0].Kind)
}

func TestFindViolations_BreakSwallowingShiftReportedOnItsRecord(t *testing.T) {
	// A shift whose break meets its span counts as zero worked minutes
	// but must still surface as a data issue on this path, not only in
	// hours accounting.
	swallowed := shiftOn("s1", "emp-1", monday2026, "09:00", "10:00")
	swallowed.BreakMinutes = 90
	snap := schedule.Snapshot{
		Employees: []schedule.Employee{fullTimer("emp-1")},
		Shifts:    []schedule.Shift{swallowed},
	}

	violations, issues, err := newValidator().FindViolations(snap, testWeek())

	require.NoError(t, err)
	require.Len(t, issues, 1, "the record is reported exactly once")
	assert.Equal(t, "s1", issues[0].RecordID)
	assert.True(t, errors.Is(issues[0].Err, engine.ErrInvalidShiftDuration))
	assert.Empty(t, findKind(violations, schedule.KindWeeklyHoursExceeded),
		"a zero-net shift cannot trip the ceiling")
}

func TestFindViolations_DeterministicAcrossInputOrder(t *testing.T) {
	shifts := []schedule.Shift{
		shiftOn("s1", "emp-1", monday2026, "14:00", "22:00"),
		shiftOn("s2", "emp-1", monday2026.AddDays(1), "06:00", "14:00"),
		shiftOn("s3", "emp-2", monday2026.AddDays(2), "14:00", "22:00"),
		shiftOn("s4", "emp-2", monday2026.AddDays(3), "06:00", "14:00"),
	}
	employees := []schedule.Employee{fullTimer("emp-1"), fullTimer("emp-2")}

	forward := schedule.Snapshot{Employees: employees, Shifts: shifts}
	reversed := schedule.Snapshot{
		Employees: []schedule.Employee{employees[1], employees[0]},
		Shifts:    []schedule.Shift{shifts[3], shifts[2], shifts[1], shifts[0]},
	}

	a, _, err := newValidator().FindViolations(forward, testWeek())
	require.NoError(t, err)
	b, _, err := newValidator().FindViolations(reversed, testWeek())
	require.NoError(t, err)

	assert.Equal(t, a, b, "evaluation must not depend on input order")
	require.Len(t, a, 2)
	assert.True(t, a[0].AffectedDates[0].Before(a[1].AffectedDates[0]))
}

func TestFindViolations_IdenticalStartsTieBreakOnShiftID(t *testing.T) {
	// Two shifts starting at the same instant walk in ID order, so the
	// produced findings are stable however the snapshot lists them.
	shifts := []schedule.Shift{
		shiftOn("s-b", "emp-1", monday2026, "09:00", "17:00"),
		shiftOn("s-a", "emp-1", monday2026, "09:00", "13:00"),
	}
	forward := schedule.Snapshot{Employees: []schedule.Employee{fullTimer("emp-1")}, Shifts: shifts}
	reversed := schedule.Snapshot{
		Employees: []schedule.Employee{fullTimer("emp-1")},
		Shifts:    []schedule.Shift{shifts[1], shifts[0]},
	}

	a, _, err := newValidator().FindViolations(forward, testWeek())
	require.NoError(t, err)
	b, _, err := newValidator().FindViolations(reversed, testWeek())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFindViolations_ConfigurableThresholds(t *testing.T) {
	// A stricter rule set turns a compliant 12h gap into a finding.
	rules := schedule.DefaultRules()
	rules.MinRestMinutes = 13 * 60

	snap := schedule.Snapshot{
		Employees: []schedule.Employee{fullTimer("emp-1")},
		Shifts: []schedule.Shift{
			shiftOn("s1", "emp-1", monday2026, "09:00", "21:00"),
			shiftOn("s2", "emp-1", monday2026.AddDays(1), "09:00", "17:00"),
		},
	}

	violations, _, err := schedule.Validator{Rules: rules}.FindViolations(snap, testWeek())
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, 12*60, violations[0].Minutes)
}

func TestFindViolations_WeeklyCeilingIgnoresOtherWeeks(t *testing.T) {
	// 56h in week one, 16h in week two: only week one is reported.
	window := engine.Period{Start: monday2026, End: monday2026.AddDays(13)}
	var shifts []schedule.Shift
	for i := 0; i < 7; i++ {
		shifts = append(shifts, shiftOn(
			"w1-"+string(rune('0'+i)), "emp-1", monday2026.AddDays(i), "08:00", "16:00"))
	}
	shifts = append(shifts,
		shiftOn("w2-a", "emp-1", monday2026.AddDays(7), "08:00", "16:00"),
		shiftOn("w2-b", "emp-1", monday2026.AddDays(9), "08:00", "16:00"),
	)
	snap := schedule.Snapshot{Employees: []schedule.Employee{fullTimer("emp-1")}, Shifts: shifts}

	violations, _, err := newValidator().FindViolations(snap, window)
	require.NoError(t, err)

	weekly := findKind(violations, schedule.KindWeeklyHoursExceeded)
	require.Len(t, weekly, 1)
	assert.Equal(t, monday2026.WeekKey(), weekly[0].Key)
}

func TestSortViolations_OrdersByDateKindEmployeeKey(t *testing.T) {
	d1, d2 := monday2026, monday2026.AddDays(1)
	violations := []schedule.Violation{
		{EmployeeID: "b", Kind: schedule.KindWeeklyHoursExceeded, Key: "2026-W10", AffectedDates: []engine.Date{d2}},
		{EmployeeID: "b", Kind: schedule.KindInsufficientRest, Key: d1.String(), AffectedDates: []engine.Date{d1}},
		{EmployeeID: "a", Kind: schedule.KindInsufficientRest, Key: d1.String(), AffectedDates: []engine.Date{d1}},
	}

	schedule.SortViolations(violations)

	assert.Equal(t, schedule.EmployeeID("a"), violations[0].EmployeeID)
	assert.Equal(t, schedule.EmployeeID("b"), violations[1].EmployeeID)
	assert.Equal(t, schedule.KindWeeklyHoursExceeded, violations[2].Kind)
}
