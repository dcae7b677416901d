package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var testMonday = engine.NewDate(2026, time.March, 2)

func testWindow() engine.Period {
	return engine.Period{Start: testMonday, End: testMonday.AddDays(6)}
}

func seedEmployee(t *testing.T, store *sqlite.Store, id string) {
	t.Helper()
	require.NoError(t, store.SaveEmployee(context.Background(), schedule.Employee{
		ID: schedule.EmployeeID(id), Name: id, Employment: schedule.EmploymentFull,
	}))
}

func TestEmployeeRoundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	emp := schedule.Employee{
		ID: "emp-1", Name: "Ana", Color: "#ff8800",
		Employment:        schedule.EmploymentCustom,
		CustomHoursPerDay: decimal.NewFromFloat(6.5),
		IsSupervisor:      true,
	}
	require.NoError(t, store.SaveEmployee(ctx, emp))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emp.Name, got.Name)
	assert.Equal(t, emp.Color, got.Color)
	assert.Equal(t, schedule.EmploymentCustom, got.Employment)
	assert.True(t, emp.CustomHoursPerDay.Equal(got.CustomHoursPerDay))
	assert.True(t, got.IsSupervisor)
}

func TestGetEmployee_MissingIsNilNotError(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetEmployee(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveEmployee_UpsertOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	require.NoError(t, store.SaveEmployee(ctx, schedule.Employee{
		ID: "emp-1", Name: "Renamed", Employment: schedule.EmploymentHalf,
	}))

	got, err := store.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, schedule.EmploymentHalf, got.Employment)

	all, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDeleteEmployee_CascadesToShiftsAndAbsences(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	require.NoError(t, store.SaveShift(ctx, schedule.Shift{
		ID: "s1", EmployeeID: "emp-1", Date: testMonday,
		StartTime: "09:00", EndTime: "17:00",
	}))
	require.NoError(t, store.SaveAbsence(ctx, schedule.Absence{
		ID: "a1", EmployeeID: "emp-1", Type: schedule.AbsenceVacation,
		StartDate: testMonday, EndDate: testMonday,
	}))

	require.NoError(t, store.DeleteEmployee(ctx, "emp-1"))

	shifts, err := store.ListShifts(ctx, testWindow())
	require.NoError(t, err)
	assert.Empty(t, shifts)
	absences, err := store.ListAbsences(ctx, testWindow())
	require.NoError(t, err)
	assert.Empty(t, absences)
}

func TestShiftSoftDelete_RowSurvivesWithDeletedStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	require.NoError(t, store.SaveShift(ctx, schedule.Shift{
		ID: "s1", EmployeeID: "emp-1", Date: testMonday,
		StartTime: "09:00", EndTime: "17:00", BreakMinutes: 30,
	}))
	require.NoError(t, store.DeleteShift(ctx, "s1"))

	shifts, err := store.ListShifts(ctx, testWindow())
	require.NoError(t, err)
	require.Len(t, shifts, 1, "the audit row stays")
	assert.Equal(t, schedule.ShiftDeleted, shifts[0].Status)
}

func TestListShifts_WindowBoundsInclusive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	for i, d := range []engine.Date{
		testMonday.AddDays(-1), testMonday, testMonday.AddDays(6), testMonday.AddDays(7),
	} {
		require.NoError(t, store.SaveShift(ctx, schedule.Shift{
			ID: schedule.ShiftID("s" + string(rune('0'+i))), EmployeeID: "emp-1",
			Date: d, StartTime: "09:00", EndTime: "17:00",
		}))
	}

	shifts, err := store.ListShifts(ctx, testWindow())
	require.NoError(t, err)
	require.Len(t, shifts, 2)
	assert.Equal(t, "2026-03-02", shifts[0].Date.String())
	assert.Equal(t, "2026-03-08", shifts[1].Date.String())
}

func TestListAbsences_ReturnsOverlappingRanges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	// Straddles the window start; must be returned.
	require.NoError(t, store.SaveAbsence(ctx, schedule.Absence{
		ID: "a1", EmployeeID: "emp-1", Type: schedule.AbsenceVacation,
		StartDate: testMonday.AddDays(-3), EndDate: testMonday.AddDays(1),
	}))
	// Entirely before the window; must not.
	require.NoError(t, store.SaveAbsence(ctx, schedule.Absence{
		ID: "a2", EmployeeID: "emp-1", Type: schedule.AbsenceSick,
		StartDate: testMonday.AddDays(-10), EndDate: testMonday.AddDays(-8),
	}))

	absences, err := store.ListAbsences(ctx, testWindow())
	require.NoError(t, err)
	require.Len(t, absences, 1)
	assert.Equal(t, schedule.AbsenceID("a1"), absences[0].ID)
}

func TestTemplateRoundtrip_DaysAndMaxEmployees(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	maxThree := 3
	withDays := schedule.ShiftTemplate{
		ID: "t1", Name: "Morning", StartTime: "09:00", EndTime: "13:00",
		BreakMinutes: 15, MinEmployees: 1, MaxEmployees: &maxThree,
		Days: []time.Weekday{time.Monday, time.Saturday}, Color: "#00cc88",
	}
	everyday := schedule.ShiftTemplate{
		ID: "t2", Name: "Afternoon", StartTime: "13:00", EndTime: "17:00",
	}
	require.NoError(t, store.SaveTemplate(ctx, withDays))
	require.NoError(t, store.SaveTemplate(ctx, everyday))

	templates, err := store.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)

	assert.Equal(t, withDays.Days, templates[0].Days)
	require.NotNil(t, templates[0].MaxEmployees)
	assert.Equal(t, 3, *templates[0].MaxEmployees)

	assert.Nil(t, templates[1].Days, "nil days means applicable every day")
	assert.Nil(t, templates[1].MaxEmployees)
}

func TestOpeningHoursUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetOpeningDay(ctx, time.Monday,
		schedule.OpeningDay{Enabled: true, Open: "09:00", Close: "17:00"}))
	require.NoError(t, store.SetOpeningDay(ctx, time.Monday,
		schedule.OpeningDay{Enabled: true, Open: "08:00", Close: "18:00"}))

	hours, err := store.GetOpeningHours(ctx)
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.Equal(t, "08:00", hours[time.Monday].Open)
	assert.Equal(t, "18:00", hours[time.Monday].Close)
}

func TestLoadSnapshot_AssemblesAllCollections(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	require.NoError(t, store.SaveShift(ctx, schedule.Shift{
		ID: "s1", EmployeeID: "emp-1", Date: testMonday,
		StartTime: "09:00", EndTime: "17:00",
	}))
	require.NoError(t, store.SaveAbsence(ctx, schedule.Absence{
		ID: "a1", EmployeeID: "emp-1", Type: schedule.AbsenceSick,
		StartDate: testMonday.AddDays(2), EndDate: testMonday.AddDays(2),
	}))
	require.NoError(t, store.SaveTemplate(ctx, schedule.ShiftTemplate{
		ID: "t1", Name: "Morning", StartTime: "09:00", EndTime: "13:00",
	}))
	require.NoError(t, store.SetOpeningDay(ctx, time.Monday,
		schedule.OpeningDay{Enabled: true, Open: "09:00", Close: "17:00"}))

	snap, err := store.LoadSnapshot(ctx, testWindow())
	require.NoError(t, err)

	assert.Len(t, snap.Employees, 1)
	assert.Len(t, snap.Shifts, 1)
	assert.Len(t, snap.Absences, 1)
	assert.Len(t, snap.Templates, 1)
	assert.Len(t, snap.OpeningHours, 1)
	assert.NoError(t, snap.Validate())
}

func TestLoadSnapshot_FeedsEngineEndToEnd(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seedEmployee(t, store, "emp-1")
	require.NoError(t, store.SaveShift(ctx, schedule.Shift{
		ID: "s1", EmployeeID: "emp-1", Date: testMonday,
		StartTime: "14:00", EndTime: "22:00",
	}))
	require.NoError(t, store.SaveShift(ctx, schedule.Shift{
		ID: "s2", EmployeeID: "emp-1", Date: testMonday.AddDays(1),
		StartTime: "06:00", EndTime: "14:00",
	}))

	snap, err := store.LoadSnapshot(ctx, testWindow())
	require.NoError(t, err)

	violations, issues, err := schedule.New(schedule.DefaultRules()).FindViolations(snap, testWindow())
	require.NoError(t, err)
	assert.Empty(t, issues)
	require.Len(t, violations, 1)
	assert.Equal(t, schedule.KindInsufficientRest, violations[0].Kind)
}
