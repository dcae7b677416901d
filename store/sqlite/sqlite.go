/*
Package sqlite provides the SQLite-backed persistence for schedule data.

PURPOSE:
  Stores the five entity collections the engine computes over: employees,
  shifts, absences, shift templates and opening hours. The engine itself
  never touches the database; LoadSnapshot assembles an immutable
  schedule.Snapshot and everything downstream is pure computation.

KEY TABLES:
  employees:        Contract holders
  shifts:           Assigned work intervals (soft-deleted via status)
  absences:         Approved absence ranges
  shift_templates:  Reusable shift definitions
  opening_hours:    One row per weekday

SOFT DELETION:
  Shifts are never removed; DeleteShift flips status to 'deleted'.
  LoadSnapshot carries deleted rows so the engine applies its own
  exclusion rule, and the audit trail stays intact.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  store, err := sqlite.New("./data/schedule.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  snap, err := store.LoadSnapshot(ctx, window)

SEE ALSO:
  - schedule/snapshot.go: The snapshot shape this store produces
  - api/handlers.go: The HTTP surface mutating these tables
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/schedule-engine/engine"
	"github.com/warp/schedule-engine/schedule"
)

// Store implements schedule persistence using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection to :memory: opens its own empty
		// database; pin the pool to one connection.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT,
		employment_type TEXT NOT NULL,
		custom_hours_per_day TEXT,
		is_supervisor INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		template_id TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_employee_date
		ON shifts(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_shifts_date
		ON shifts(date);
	CREATE INDEX IF NOT EXISTS idx_shifts_template
		ON shifts(template_id) WHERE template_id IS NOT NULL;

	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		absence_type TEXT NOT NULL,
		is_paid INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_absences_employee
		ON absences(employee_id, start_date, end_date);

	CREATE TABLE IF NOT EXISTS shift_templates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		min_employees INTEGER NOT NULL DEFAULT 0,
		max_employees INTEGER,
		applicable_days TEXT,
		color TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS opening_hours (
		weekday INTEGER PRIMARY KEY,
		enabled INTEGER NOT NULL DEFAULT 0,
		open_time TEXT NOT NULL,
		close_time TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp schedule.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	custom := ""
	if emp.Employment == schedule.EmploymentCustom {
		custom = emp.CustomHoursPerDay.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, color, employment_type, custom_hours_per_day, is_supervisor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			employment_type = excluded.employment_type,
			custom_hours_per_day = excluded.custom_hours_per_day,
			is_supervisor = excluded.is_supervisor`,
		string(emp.ID), emp.Name, emp.Color, string(emp.Employment), custom,
		boolToInt(emp.IsSupervisor), time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetEmployee fetches one employee by id.
func (s *Store) GetEmployee(ctx context.Context, id schedule.EmployeeID) (*schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color, employment_type, custom_hours_per_day, is_supervisor
		FROM employees WHERE id = ?`, string(id))
	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return emp, nil
}

// ListEmployees returns all employees ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, employment_type, custom_hours_per_day, is_supervisor
		FROM employees ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

// DeleteEmployee removes an employee; shifts and absences cascade.
func (s *Store) DeleteEmployee(ctx context.Context, id schedule.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, string(id))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*schedule.Employee, error) {
	var emp schedule.Employee
	var id, employment, custom string
	var supervisor int
	if err := row.Scan(&id, &emp.Name, &emp.Color, &employment, &custom, &supervisor); err != nil {
		return nil, err
	}
	emp.ID = schedule.EmployeeID(id)
	emp.Employment = schedule.EmploymentType(employment)
	emp.IsSupervisor = supervisor != 0
	if custom != "" {
		emp.CustomHoursPerDay = engine.MustParseDecimal(custom)
	}
	return &emp, nil
}

// =============================================================================
// SHIFTS
// =============================================================================

// SaveShift inserts or updates a shift.
func (s *Store) SaveShift(ctx context.Context, sh schedule.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := sh.Status
	if status == "" {
		status = schedule.ShiftActive
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, employee_id, date, start_time, end_time, break_minutes, status, template_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			date = excluded.date,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			break_minutes = excluded.break_minutes,
			status = excluded.status,
			template_id = excluded.template_id`,
		string(sh.ID), string(sh.EmployeeID), sh.Date.String(), sh.StartTime, sh.EndTime,
		sh.BreakMinutes, string(status), nullable(string(sh.TemplateID)),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteShift soft-deletes a shift by flipping its status.
func (s *Store) DeleteShift(ctx context.Context, id schedule.ShiftID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`UPDATE shifts SET status = ? WHERE id = ?`, string(schedule.ShiftDeleted), string(id))
	return err
}

// ListShifts returns every shift dated inside the window, deleted rows
// included; exclusion is the engine's rule, not the store's.
func (s *Store) ListShifts(ctx context.Context, window engine.Period) ([]schedule.Shift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, date, start_time, end_time, break_minutes, status, COALESCE(template_id, '')
		FROM shifts WHERE date >= ? AND date <= ?
		ORDER BY date, start_time, id`,
		window.Start.String(), window.End.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Shift
	for rows.Next() {
		var sh schedule.Shift
		var id, employeeID, date, status, templateID string
		if err := rows.Scan(&id, &employeeID, &date, &sh.StartTime, &sh.EndTime,
			&sh.BreakMinutes, &status, &templateID); err != nil {
			return nil, err
		}
		d, err := engine.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("shift %s: %w", id, err)
		}
		sh.ID = schedule.ShiftID(id)
		sh.EmployeeID = schedule.EmployeeID(employeeID)
		sh.Date = d
		sh.Status = schedule.ShiftStatus(status)
		sh.TemplateID = schedule.TemplateID(templateID)
		out = append(out, sh)
	}
	return out, rows.Err()
}

// =============================================================================
// ABSENCES
// =============================================================================

// SaveAbsence inserts or updates an absence.
func (s *Store) SaveAbsence(ctx context.Context, a schedule.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO absences (id, employee_id, start_date, end_date, absence_type, is_paid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_id = excluded.employee_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			absence_type = excluded.absence_type,
			is_paid = excluded.is_paid`,
		string(a.ID), string(a.EmployeeID), a.StartDate.String(), a.EndDate.String(),
		string(a.Type), boolToInt(a.Paid), time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteAbsence removes an absence.
func (s *Store) DeleteAbsence(ctx context.Context, id schedule.AbsenceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM absences WHERE id = ?`, string(id))
	return err
}

// ListAbsences returns every absence overlapping the window.
func (s *Store) ListAbsences(ctx context.Context, window engine.Period) ([]schedule.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, employee_id, start_date, end_date, absence_type, is_paid
		FROM absences WHERE end_date >= ? AND start_date <= ?
		ORDER BY start_date, id`,
		window.Start.String(), window.End.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Absence
	for rows.Next() {
		var a schedule.Absence
		var id, employeeID, start, end, kind string
		var paid int
		if err := rows.Scan(&id, &employeeID, &start, &end, &kind, &paid); err != nil {
			return nil, err
		}
		startDate, err := engine.ParseDate(start)
		if err != nil {
			return nil, fmt.Errorf("absence %s: %w", id, err)
		}
		endDate, err := engine.ParseDate(end)
		if err != nil {
			return nil, fmt.Errorf("absence %s: %w", id, err)
		}
		a.ID = schedule.AbsenceID(id)
		a.EmployeeID = schedule.EmployeeID(employeeID)
		a.StartDate = startDate
		a.EndDate = endDate
		a.Type = schedule.AbsenceType(kind)
		a.Paid = paid != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// SHIFT TEMPLATES
// =============================================================================

// SaveTemplate inserts or updates a shift template. Applicable days are
// stored as a JSON array; NULL means applicable every day.
func (s *Store) SaveTemplate(ctx context.Context, t schedule.ShiftTemplate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var daysJSON any
	if t.Days != nil {
		encoded, err := json.Marshal(t.Days)
		if err != nil {
			return err
		}
		daysJSON = string(encoded)
	}
	var maxEmployees any
	if t.MaxEmployees != nil {
		maxEmployees = *t.MaxEmployees
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shift_templates (id, name, start_time, end_time, break_minutes, min_employees, max_employees, applicable_days, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			break_minutes = excluded.break_minutes,
			min_employees = excluded.min_employees,
			max_employees = excluded.max_employees,
			applicable_days = excluded.applicable_days,
			color = excluded.color`,
		string(t.ID), t.Name, t.StartTime, t.EndTime, t.BreakMinutes,
		t.MinEmployees, maxEmployees, daysJSON, t.Color,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// DeleteTemplate removes a template. Shifts keep their back-reference;
// it is non-owning.
func (s *Store) DeleteTemplate(ctx context.Context, id schedule.TemplateID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM shift_templates WHERE id = ?`, string(id))
	return err
}

// ListTemplates returns all templates.
func (s *Store) ListTemplates(ctx context.Context) ([]schedule.ShiftTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, start_time, end_time, break_minutes, min_employees, max_employees, applicable_days, color
		FROM shift_templates ORDER BY start_time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.ShiftTemplate
	for rows.Next() {
		var t schedule.ShiftTemplate
		var id string
		var maxEmployees sql.NullInt64
		var daysJSON sql.NullString
		if err := rows.Scan(&id, &t.Name, &t.StartTime, &t.EndTime, &t.BreakMinutes,
			&t.MinEmployees, &maxEmployees, &daysJSON, &t.Color); err != nil {
			return nil, err
		}
		t.ID = schedule.TemplateID(id)
		if maxEmployees.Valid {
			v := int(maxEmployees.Int64)
			t.MaxEmployees = &v
		}
		if daysJSON.Valid {
			var days []time.Weekday
			if err := json.Unmarshal([]byte(daysJSON.String), &days); err != nil {
				return nil, fmt.Errorf("template %s: %w", id, err)
			}
			t.Days = days
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// =============================================================================
// OPENING HOURS
// =============================================================================

// SetOpeningDay upserts the opening record for one weekday.
func (s *Store) SetOpeningDay(ctx context.Context, wd time.Weekday, day schedule.OpeningDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO opening_hours (weekday, enabled, open_time, close_time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(weekday) DO UPDATE SET
			enabled = excluded.enabled,
			open_time = excluded.open_time,
			close_time = excluded.close_time`,
		int(wd), boolToInt(day.Enabled), day.Open, day.Close)
	return err
}

// GetOpeningHours returns the full weekday table. Weekdays without a row
// are simply absent, which the engine treats as closed.
func (s *Store) GetOpeningHours(ctx context.Context) (schedule.OpeningHours, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT weekday, enabled, open_time, close_time FROM opening_hours`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make(schedule.OpeningHours)
	for rows.Next() {
		var wd, enabled int
		var day schedule.OpeningDay
		if err := rows.Scan(&wd, &enabled, &day.Open, &day.Close); err != nil {
			return nil, err
		}
		day.Enabled = enabled != 0
		hours[time.Weekday(wd)] = day
	}
	return hours, rows.Err()
}

// =============================================================================
// SNAPSHOT ASSEMBLY
// =============================================================================

// LoadSnapshot assembles the engine's read-only input for one window.
func (s *Store) LoadSnapshot(ctx context.Context, window engine.Period) (schedule.Snapshot, error) {
	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	shifts, err := s.ListShifts(ctx, window)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	absences, err := s.ListAbsences(ctx, window)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	templates, err := s.ListTemplates(ctx)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	hours, err := s.GetOpeningHours(ctx)
	if err != nil {
		return schedule.Snapshot{}, err
	}
	return schedule.Snapshot{
		Employees:    employees,
		Shifts:       shifts,
		Absences:     absences,
		Templates:    templates,
		OpeningHours: hours,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
