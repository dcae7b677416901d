/*
scenarios.go - Demo data for exercising the engine

PURPOSE:
  Seeds a small reference organization so every compute endpoint has
  something to chew on immediately after startup: opening hours, two
  templates covering them, four employees across contract types, one
  absence, and a week of shifts that trips both violation kinds.

SEE ALSO:
  - handlers.go: Compute endpoints this data feeds
*/
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
)

// LoadDemoScenario seeds the demo organization. Idempotent: entities use
// fixed IDs, so reloading overwrites rather than duplicates.
func (h *Handler) LoadDemoScenario(w http.ResponseWriter, r *http.Request) {
	if err := h.seedDemo(r.Context()); err != nil {
		h.internalError(w, "load demo scenario", err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": "demo-week"})
}

func (h *Handler) seedDemo(ctx context.Context) error {
	// Opening hours: Monday-Friday 09:00-17:00, Saturday 09:00-13:00.
	weekdays := map[time.Weekday]schedule.OpeningDay{
		time.Monday:    {Enabled: true, Open: "09:00", Close: "17:00"},
		time.Tuesday:   {Enabled: true, Open: "09:00", Close: "17:00"},
		time.Wednesday: {Enabled: true, Open: "09:00", Close: "17:00"},
		time.Thursday:  {Enabled: true, Open: "09:00", Close: "17:00"},
		time.Friday:    {Enabled: true, Open: "09:00", Close: "17:00"},
		time.Saturday:  {Enabled: true, Open: "09:00", Close: "13:00"},
		time.Sunday:    {Enabled: false, Open: "00:00", Close: "00:00"},
	}
	for wd, day := range weekdays {
		if err := h.Store.SetOpeningDay(ctx, wd, day); err != nil {
			return err
		}
	}

	// Templates: morning and afternoon jointly cover weekdays; the
	// afternoon template does not apply on Saturday, leaving a visible
	// coverage gap there.
	maxTwo := 2
	templates := []schedule.ShiftTemplate{
		{
			ID: "tpl-morning", Name: "Morning", StartTime: "09:00", EndTime: "13:00",
			MinEmployees: 1, MaxEmployees: &maxTwo, Color: "#8bc34a",
		},
		{
			ID: "tpl-afternoon", Name: "Afternoon", StartTime: "13:00", EndTime: "17:00",
			MinEmployees: 1, MaxEmployees: &maxTwo, Color: "#03a9f4",
			Days: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		},
	}
	for _, t := range templates {
		if err := h.Store.SaveTemplate(ctx, t); err != nil {
			return err
		}
	}

	employees := []schedule.Employee{
		{ID: "emp-ana", Name: "Ana", Employment: schedule.EmploymentFull, Color: "#e91e63", IsSupervisor: true},
		{ID: "emp-ben", Name: "Ben", Employment: schedule.EmploymentFull, Color: "#9c27b0"},
		{ID: "emp-cleo", Name: "Cleo", Employment: schedule.EmploymentHalf, Color: "#ff9800"},
		{ID: "emp-dmitri", Name: "Dmitri", Employment: schedule.EmploymentCustom,
			CustomHoursPerDay: engine.NewAmountHours(6).Hours, Color: "#009688"},
	}
	for _, emp := range employees {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return err
		}
	}

	monday := engine.NewDate(2026, time.March, 2) // a Monday
	shifts := []schedule.Shift{
		// Ana works seven 8h days: 56h trips the weekly ceiling.
		{ID: "demo-ana-0", EmployeeID: "emp-ana", Date: monday, StartTime: "09:00", EndTime: "17:00"},
		{ID: "demo-ana-1", EmployeeID: "emp-ana", Date: monday.AddDays(1), StartTime: "09:00", EndTime: "17:00"},
		{ID: "demo-ana-2", EmployeeID: "emp-ana", Date: monday.AddDays(2), StartTime: "09:00", EndTime: "17:00"},
		{ID: "demo-ana-3", EmployeeID: "emp-ana", Date: monday.AddDays(3), StartTime: "09:00", EndTime: "17:00"},
		{ID: "demo-ana-4", EmployeeID: "emp-ana", Date: monday.AddDays(4), StartTime: "09:00", EndTime: "17:00"},
		{ID: "demo-ana-5", EmployeeID: "emp-ana", Date: monday.AddDays(5), StartTime: "09:00", EndTime: "17:00"},
		{ID: "demo-ana-6", EmployeeID: "emp-ana", Date: monday.AddDays(6), StartTime: "09:00", EndTime: "17:00"},

		// Ben closes late and opens early: 8h rest instead of 11h.
		{ID: "demo-ben-0", EmployeeID: "emp-ben", Date: monday, StartTime: "14:00", EndTime: "22:00"},
		{ID: "demo-ben-1", EmployeeID: "emp-ben", Date: monday.AddDays(1), StartTime: "06:00", EndTime: "14:00"},

		// Cleo is on vacation; this shift is blocked, not counted.
		{ID: "demo-cleo-0", EmployeeID: "emp-cleo", Date: monday.AddDays(2), StartTime: "09:00", EndTime: "13:00"},

		// Dmitri works clean template shifts.
		{ID: "demo-dmitri-0", EmployeeID: "emp-dmitri", Date: monday, StartTime: "09:00", EndTime: "13:00", TemplateID: "tpl-morning"},
		{ID: "demo-dmitri-1", EmployeeID: "emp-dmitri", Date: monday.AddDays(1), StartTime: "13:00", EndTime: "17:00", TemplateID: "tpl-afternoon"},
	}
	for _, sh := range shifts {
		sh.Status = schedule.ShiftActive
		if err := h.Store.SaveShift(ctx, sh); err != nil {
			return err
		}
	}

	absence := schedule.Absence{
		ID: "demo-cleo-vacation", EmployeeID: "emp-cleo",
		StartDate: monday.AddDays(1), EndDate: monday.AddDays(4),
		Type: schedule.AbsenceVacation, Paid: true,
	}
	return h.Store.SaveAbsence(ctx, absence)
}
