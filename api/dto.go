/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them through a shared validator before touching the domain.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: The domain model behind them
*/
package api

import (
	"time"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
)

// =============================================================================
// ENTITY TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Color             string  `json:"color,omitempty"`
	EmploymentType    string  `json:"employment_type"`
	CustomHoursPerDay float64 `json:"custom_hours_per_day,omitempty"`
	IsSupervisor      bool    `json:"is_supervisor"`
}

// SaveEmployeeRequest creates or updates an employee. An empty ID asks
// the server to generate one.
type SaveEmployeeRequest struct {
	ID                string  `json:"id"`
	Name              string  `json:"name" validate:"required"`
	Color             string  `json:"color"`
	EmploymentType    string  `json:"employment_type" validate:"required,oneof=full three_quarter half one_third custom"`
	CustomHoursPerDay float64 `json:"custom_hours_per_day" validate:"gte=0,lte=24"`
	IsSupervisor      bool    `json:"is_supervisor"`
}

// ShiftDTO represents a shift in API responses.
type ShiftDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	Status       string `json:"status"`
	TemplateID   string `json:"template_id,omitempty"`
}

// SaveShiftRequest creates or updates a shift.
type SaveShiftRequest struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
	TemplateID   string `json:"template_id"`
}

// AbsenceDTO represents an absence in API responses.
type AbsenceDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Type       string `json:"type"`
	IsPaid     bool   `json:"is_paid"`
}

// SaveAbsenceRequest creates or updates an absence.
type SaveAbsenceRequest struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Type       string `json:"type" validate:"required"`
	IsPaid     bool   `json:"is_paid"`
}

// TemplateDTO represents a shift template in API responses.
type TemplateDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	BreakMinutes int    `json:"break_minutes"`
	MinEmployees int    `json:"min_employees"`
	MaxEmployees *int   `json:"max_employees,omitempty"`
	Days         []int  `json:"applicable_days,omitempty"` // 0=Sunday .. 6=Saturday, absent = all days
	Color        string `json:"color,omitempty"`
}

// SaveTemplateRequest creates or updates a shift template.
type SaveTemplateRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name" validate:"required"`
	StartTime    string `json:"start_time" validate:"required"`
	EndTime      string `json:"end_time" validate:"required"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
	MinEmployees int    `json:"min_employees" validate:"gte=0"`
	MaxEmployees *int   `json:"max_employees" validate:"omitempty,gte=0"`
	Days         []int  `json:"applicable_days" validate:"omitempty,dive,gte=0,lte=6"`
	Color        string `json:"color"`
}

// OpeningDayDTO is the opening record for one weekday.
type OpeningDayDTO struct {
	Weekday int    `json:"weekday"` // 0=Sunday .. 6=Saturday
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// SetOpeningDayRequest upserts one weekday's opening record.
type SetOpeningDayRequest struct {
	Weekday int    `json:"weekday" validate:"gte=0,lte=6"`
	Enabled bool   `json:"enabled"`
	Open    string `json:"open" validate:"required"`
	Close   string `json:"close" validate:"required"`
}

// =============================================================================
// COMPUTE TYPES
// =============================================================================

// HoursDTO is the worked-hours accounting for one employee.
type HoursDTO struct {
	EmployeeID      string         `json:"employee_id"`
	WindowStart     string         `json:"window_start"`
	WindowEnd       string         `json:"window_end"`
	TotalMinutes    int            `json:"total_minutes"`
	RequiredMinutes int            `json:"required_minutes"`
	PerDayMinutes   map[string]int `json:"per_day_minutes"`
	PerWeekMinutes  map[string]int `json:"per_week_minutes"`
	Issues          []IssueDTO     `json:"issues,omitempty"`
}

// ViolationDTO is one statutory finding.
type ViolationDTO struct {
	EmployeeID    string   `json:"employee_id"`
	Kind          string   `json:"kind"`
	Key           string   `json:"key"`
	Description   string   `json:"description"`
	AffectedDates []string `json:"affected_dates"`
	Minutes       int      `json:"minutes"`
}

// CoverageGapDTO reports uncovered opening time for one weekday.
type CoverageGapDTO struct {
	Weekday   int      `json:"weekday"`
	Open      string   `json:"open_interval"`
	Uncovered []string `json:"uncovered"`
}

// StaffingIssueDTO reports a headcount outside template bounds.
type StaffingIssueDTO struct {
	Date       string `json:"date"`
	TemplateID string `json:"template_id"`
	Kind       string `json:"kind"`
	Assigned   int    `json:"assigned"`
	Bound      int    `json:"bound"`
}

// IssueDTO is a data-quality problem attached to one record.
type IssueDTO struct {
	RecordKind string `json:"record_kind"`
	RecordID   string `json:"record_id"`
	Message    string `json:"message"`
}

// ReportDTO is the aggregated evaluation output.
type ReportDTO struct {
	WindowStart    string                    `json:"window_start"`
	WindowEnd      string                    `json:"window_end"`
	ByEmployee     map[string][]ViolationDTO `json:"by_employee"`
	CoverageGaps   []CoverageGapDTO          `json:"coverage_gaps"`
	StaffingIssues []StaffingIssueDTO        `json:"staffing_issues,omitempty"`
	DataIssues     []IssueDTO                `json:"data_issues,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(emp schedule.Employee) EmployeeDTO {
	custom, _ := emp.CustomHoursPerDay.Float64()
	return EmployeeDTO{
		ID:                string(emp.ID),
		Name:              emp.Name,
		Color:             emp.Color,
		EmploymentType:    string(emp.Employment),
		CustomHoursPerDay: custom,
		IsSupervisor:      emp.IsSupervisor,
	}
}

func toShiftDTO(sh schedule.Shift) ShiftDTO {
	return ShiftDTO{
		ID:           string(sh.ID),
		EmployeeID:   string(sh.EmployeeID),
		Date:         sh.Date.String(),
		StartTime:    sh.StartTime,
		EndTime:      sh.EndTime,
		BreakMinutes: sh.BreakMinutes,
		Status:       string(sh.Status),
		TemplateID:   string(sh.TemplateID),
	}
}

func toAbsenceDTO(a schedule.Absence) AbsenceDTO {
	return AbsenceDTO{
		ID:         string(a.ID),
		EmployeeID: string(a.EmployeeID),
		StartDate:  a.StartDate.String(),
		EndDate:    a.EndDate.String(),
		Type:       string(a.Type),
		IsPaid:     a.Paid,
	}
}

func toTemplateDTO(t schedule.ShiftTemplate) TemplateDTO {
	dto := TemplateDTO{
		ID:           string(t.ID),
		Name:         t.Name,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		BreakMinutes: t.BreakMinutes,
		MinEmployees: t.MinEmployees,
		MaxEmployees: t.MaxEmployees,
		Color:        t.Color,
	}
	if t.Days != nil {
		dto.Days = make([]int, len(t.Days))
		for i, d := range t.Days {
			dto.Days[i] = int(d)
		}
	}
	return dto
}

func toViolationDTO(v schedule.Violation) ViolationDTO {
	dates := make([]string, len(v.AffectedDates))
	for i, d := range v.AffectedDates {
		dates[i] = d.String()
	}
	return ViolationDTO{
		EmployeeID:    string(v.EmployeeID),
		Kind:          string(v.Kind),
		Key:           v.Key,
		Description:   v.Description,
		AffectedDates: dates,
		Minutes:       v.Minutes,
	}
}

func toCoverageGapDTO(g schedule.CoverageGap) CoverageGapDTO {
	uncovered := make([]string, len(g.Uncovered))
	for i, iv := range g.Uncovered {
		uncovered[i] = iv.String()
	}
	return CoverageGapDTO{
		Weekday:   int(g.Weekday),
		Open:      g.Open.String(),
		Uncovered: uncovered,
	}
}

func toIssueDTO(i schedule.DataIssue) IssueDTO {
	return IssueDTO{RecordKind: i.RecordKind, RecordID: i.RecordID, Message: i.Err.Error()}
}

func toWeekdays(days []int) []time.Weekday {
	if days == nil {
		return nil
	}
	out := make([]time.Weekday, len(days))
	for i, d := range days {
		out[i] = time.Weekday(d)
	}
	return out
}

func toHoursDTO(r schedule.HoursReport) HoursDTO {
	dto := HoursDTO{
		EmployeeID:      string(r.EmployeeID),
		WindowStart:     r.Window.Start.String(),
		WindowEnd:       r.Window.End.String(),
		TotalMinutes:    r.TotalMinutes,
		RequiredMinutes: r.RequiredMinutes,
		PerDayMinutes:   r.PerDay,
		PerWeekMinutes:  r.PerWeek,
	}
	for _, issue := range r.Issues {
		dto.Issues = append(dto.Issues, toIssueDTO(issue))
	}
	return dto
}

func parseWindow(startStr, endStr string) (engine.Period, error) {
	start, err := engine.ParseDate(startStr)
	if err != nil {
		return engine.Period{}, err
	}
	end, err := engine.ParseDate(endStr)
	if err != nil {
		return engine.Period{}, err
	}
	return engine.Period{Start: start, End: end}, nil
}
