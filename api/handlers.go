/*
handlers.go - HTTP API handlers for the scheduling engine

PURPOSE:
  Exposes the compliance and coverage engine via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Entities:
    GET/POST       /api/employees            List / save employees
    GET/DELETE     /api/employees/{id}       Get / delete one employee
    GET/POST       /api/shifts               List / save shifts
    DELETE         /api/shifts/{id}          Soft-delete a shift
    GET/POST       /api/absences             List / save absences
    DELETE         /api/absences/{id}        Delete an absence
    GET/POST       /api/templates            List / save templates
    DELETE         /api/templates/{id}       Delete a template
    GET/PUT        /api/opening-hours        Weekday opening table

  Compute (read-only, always a fresh pass over a snapshot):
    GET /api/employees/{id}/hours?from&to    Worked-hours accounting
    GET /api/violations?from&to              Statutory violations
    GET /api/coverage                        Opening-hours coverage gaps
    GET /api/report?from&to                  Aggregated report

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed dates or times
  - 404: Resource not found
  - 422: Structurally invalid snapshot
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo data loader
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
	"github.com/warp/schedule-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store    *sqlite.Store
	Engine   *schedule.Engine
	Log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler with the given store and engine.
func NewHandler(store *sqlite.Store, eng *schedule.Engine, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:    store,
		Engine:   eng,
		Log:      log,
		validate: validator.New(),
	}
}

// =============================================================================
// EMPLOYEES
// =============================================================================

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		h.internalError(w, "list employees", err)
		return
	}
	out := make([]EmployeeDTO, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeDTO(emp))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.EmploymentType == string(schedule.EmploymentCustom) && req.CustomHoursPerDay <= 0 {
		h.respondError(w, http.StatusBadRequest, "custom employment requires custom_hours_per_day")
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	emp := schedule.Employee{
		ID:                schedule.EmployeeID(req.ID),
		Name:              req.Name,
		Color:             req.Color,
		Employment:        schedule.EmploymentType(req.EmploymentType),
		CustomHoursPerDay: engine.NewAmountHours(req.CustomHoursPerDay).Hours,
		IsSupervisor:      req.IsSupervisor,
	}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		h.internalError(w, "save employee", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		h.internalError(w, "get employee", err)
		return
	}
	if emp == nil {
		h.respondError(w, http.StatusNotFound, "employee not found")
		return
	}
	h.respondJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		h.internalError(w, "delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetEmployeeHours runs the hours accountant for one employee.
func (h *Handler) GetEmployeeHours(w http.ResponseWriter, r *http.Request) {
	id := schedule.EmployeeID(chi.URLParam(r, "id"))
	window, ok := h.windowParam(w, r)
	if !ok {
		return
	}
	snap, err := h.Store.LoadSnapshot(r.Context(), window)
	if err != nil {
		h.internalError(w, "load snapshot", err)
		return
	}
	report, err := h.Engine.ComputeHours(snap, id, window)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, toHoursDTO(report))
}

// =============================================================================
// SHIFTS
// =============================================================================

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowParam(w, r)
	if !ok {
		return
	}
	shifts, err := h.Store.ListShifts(r.Context(), window)
	if err != nil {
		h.internalError(w, "list shifts", err)
		return
	}
	out := make([]ShiftDTO, 0, len(shifts))
	for _, sh := range shifts {
		out = append(out, toShiftDTO(sh))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SaveShift(w http.ResponseWriter, r *http.Request) {
	var req SaveShiftRequest
	if !h.decode(w, r, &req) {
		return
	}
	for _, clock := range []string{req.StartTime, req.EndTime} {
		if _, err := engine.ParseClock(clock); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	date, err := engine.ParseDate(req.Date)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	sh := schedule.Shift{
		ID:           schedule.ShiftID(req.ID),
		EmployeeID:   schedule.EmployeeID(req.EmployeeID),
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		Status:       schedule.ShiftActive,
		TemplateID:   schedule.TemplateID(req.TemplateID),
	}
	if err := h.Store.SaveShift(r.Context(), sh); err != nil {
		h.internalError(w, "save shift", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toShiftDTO(sh))
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id := schedule.ShiftID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteShift(r.Context(), id); err != nil {
		h.internalError(w, "delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ABSENCES
// =============================================================================

func (h *Handler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowParam(w, r)
	if !ok {
		return
	}
	absences, err := h.Store.ListAbsences(r.Context(), window)
	if err != nil {
		h.internalError(w, "list absences", err)
		return
	}
	out := make([]AbsenceDTO, 0, len(absences))
	for _, a := range absences {
		out = append(out, toAbsenceDTO(a))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SaveAbsence(w http.ResponseWriter, r *http.Request) {
	var req SaveAbsenceRequest
	if !h.decode(w, r, &req) {
		return
	}
	start, err := engine.ParseDate(req.StartDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	end, err := engine.ParseDate(req.EndDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if end.Before(start) {
		h.respondError(w, http.StatusBadRequest, "end_date before start_date")
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	a := schedule.Absence{
		ID:         schedule.AbsenceID(req.ID),
		EmployeeID: schedule.EmployeeID(req.EmployeeID),
		StartDate:  start,
		EndDate:    end,
		Type:       schedule.AbsenceType(req.Type),
		Paid:       req.IsPaid,
	}
	if err := h.Store.SaveAbsence(r.Context(), a); err != nil {
		h.internalError(w, "save absence", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toAbsenceDTO(a))
}

func (h *Handler) DeleteAbsence(w http.ResponseWriter, r *http.Request) {
	id := schedule.AbsenceID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteAbsence(r.Context(), id); err != nil {
		h.internalError(w, "delete absence", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// TEMPLATES
// =============================================================================

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Store.ListTemplates(r.Context())
	if err != nil {
		h.internalError(w, "list templates", err)
		return
	}
	out := make([]TemplateDTO, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateDTO(t))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var req SaveTemplateRequest
	if !h.decode(w, r, &req) {
		return
	}
	for _, clock := range []string{req.StartTime, req.EndTime} {
		if _, err := engine.ParseClock(clock); err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.MaxEmployees != nil && *req.MaxEmployees < req.MinEmployees {
		h.respondError(w, http.StatusBadRequest, "max_employees below min_employees")
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	t := schedule.ShiftTemplate{
		ID:           schedule.TemplateID(req.ID),
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		BreakMinutes: req.BreakMinutes,
		MinEmployees: req.MinEmployees,
		MaxEmployees: req.MaxEmployees,
		Days:         toWeekdays(req.Days),
		Color:        req.Color,
	}
	if err := h.Store.SaveTemplate(r.Context(), t); err != nil {
		h.internalError(w, "save template", err)
		return
	}
	h.respondJSON(w, http.StatusCreated, toTemplateDTO(t))
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := schedule.TemplateID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteTemplate(r.Context(), id); err != nil {
		h.internalError(w, "delete template", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// OPENING HOURS
// =============================================================================

func (h *Handler) GetOpeningHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.Store.GetOpeningHours(r.Context())
	if err != nil {
		h.internalError(w, "get opening hours", err)
		return
	}
	out := make([]OpeningDayDTO, 0, len(hours))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day, ok := hours[wd]
		if !ok {
			continue
		}
		out = append(out, OpeningDayDTO{
			Weekday: int(wd), Enabled: day.Enabled, Open: day.Open, Close: day.Close,
		})
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) SetOpeningDay(w http.ResponseWriter, r *http.Request) {
	var req SetOpeningDayRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Enabled {
		openMin, err := engine.ParseClock(req.Open)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		closeMin, err := engine.ParseClock(req.Close)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if openMin == closeMin {
			h.respondError(w, http.StatusBadRequest, "open and close must differ on an enabled day")
			return
		}
	}
	day := schedule.OpeningDay{Enabled: req.Enabled, Open: req.Open, Close: req.Close}
	if err := h.Store.SetOpeningDay(r.Context(), time.Weekday(req.Weekday), day); err != nil {
		h.internalError(w, "set opening day", err)
		return
	}
	h.respondJSON(w, http.StatusOK, OpeningDayDTO{
		Weekday: req.Weekday, Enabled: day.Enabled, Open: day.Open, Close: day.Close,
	})
}

// =============================================================================
// COMPUTE ENDPOINTS
// =============================================================================

func (h *Handler) GetViolations(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowParam(w, r)
	if !ok {
		return
	}
	snap, err := h.Store.LoadSnapshot(r.Context(), window)
	if err != nil {
		h.internalError(w, "load snapshot", err)
		return
	}
	violations, issues, err := h.Engine.FindViolations(snap, window)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	out := struct {
		Violations []ViolationDTO `json:"violations"`
		DataIssues []IssueDTO     `json:"data_issues,omitempty"`
	}{Violations: make([]ViolationDTO, 0, len(violations))}
	for _, v := range violations {
		out.Violations = append(out.Violations, toViolationDTO(v))
	}
	for _, i := range issues {
		out.DataIssues = append(out.DataIssues, toIssueDTO(i))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Store.ListTemplates(r.Context())
	if err != nil {
		h.internalError(w, "list templates", err)
		return
	}
	hours, err := h.Store.GetOpeningHours(r.Context())
	if err != nil {
		h.internalError(w, "get opening hours", err)
		return
	}
	gaps, issues := schedule.CheckCoverage(templates, hours)
	out := struct {
		Gaps       []CoverageGapDTO `json:"gaps"`
		DataIssues []IssueDTO       `json:"data_issues,omitempty"`
	}{Gaps: make([]CoverageGapDTO, 0, len(gaps))}
	for _, g := range gaps {
		out.Gaps = append(out.Gaps, toCoverageGapDTO(g))
	}
	for _, i := range issues {
		out.DataIssues = append(out.DataIssues, toIssueDTO(i))
	}
	h.respondJSON(w, http.StatusOK, out)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowParam(w, r)
	if !ok {
		return
	}
	snap, err := h.Store.LoadSnapshot(r.Context(), window)
	if err != nil {
		h.internalError(w, "load snapshot", err)
		return
	}
	eval, err := h.Engine.Evaluate(snap, window)
	if err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	dto := ReportDTO{
		WindowStart: window.Start.String(),
		WindowEnd:   window.End.String(),
		ByEmployee:  make(map[string][]ViolationDTO, len(eval.Report.ByEmployee)),
	}
	for emp, violations := range eval.Report.ByEmployee {
		list := make([]ViolationDTO, 0, len(violations))
		for _, v := range violations {
			list = append(list, toViolationDTO(v))
		}
		dto.ByEmployee[string(emp)] = list
	}
	for _, g := range eval.Report.CoverageGaps {
		dto.CoverageGaps = append(dto.CoverageGaps, toCoverageGapDTO(g))
	}
	for _, si := range eval.StaffingIssues {
		dto.StaffingIssues = append(dto.StaffingIssues, StaffingIssueDTO{
			Date:       si.Date.String(),
			TemplateID: string(si.TemplateID),
			Kind:       string(si.Kind),
			Assigned:   si.Assigned,
			Bound:      si.Bound,
		})
	}
	for _, i := range eval.DataIssues {
		dto.DataIssues = append(dto.DataIssues, toIssueDTO(i))
	}
	h.respondJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HELPERS
// =============================================================================

// windowParam parses the from/to query parameters. Absent parameters
// default to the current ISO week.
func (h *Handler) windowParam(w http.ResponseWriter, r *http.Request) (engine.Period, bool) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" && to == "" {
		now := time.Now()
		return engine.WeekOf(engine.NewDate(now.Year(), now.Month(), now.Day())), true
	}
	window, err := parseWindow(from, to)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return engine.Period{}, false
	}
	if !window.Valid() {
		h.respondError(w, http.StatusBadRequest, "to before from")
		return engine.Period{}, false
	}
	return window, true
}

// decode parses and validates a JSON request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Log.WithError(err).Error("encode response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.Log.WithError(err).WithField("op", op).Error("internal error")
	h.respondError(w, http.StatusInternalServerError, "internal error")
}
