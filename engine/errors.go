/*
errors.go - Centralized error types for the temporal engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The schedule package wraps these with record-level context.

ERROR CATEGORIES:
  1. Data-quality errors - One bad record; excluded, never fatal
  2. Structural errors - The input snapshot itself is unusable

USAGE:
  Callers classify with errors.Is:

    if engine.IsDataQuality(err) {
        // attach to the offending record, keep processing
    }

SEE ALSO:
  - clock.go: Produces FormatError
  - schedule/snapshot.go: Produces ErrInvalidSnapshot
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBadFormat is the class of malformed wall-clock or date strings.
	ErrBadFormat = errors.New("malformed time value")

	// ErrInvalidShiftDuration is the class of shifts whose unpaid break
	// meets or exceeds the shift span.
	ErrInvalidShiftDuration = errors.New("break exceeds shift span")

	// ErrInvalidAbsenceRange is the class of absences ending before they start.
	ErrInvalidAbsenceRange = errors.New("absence ends before it starts")

	// ErrInvalidSnapshot is returned when the input snapshot is structurally
	// invalid (missing required fields). No partial result is produced.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// FormatError reports a wall-clock or date string that could not be parsed.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed time %q: %s", e.Value, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrBadFormat }

// ShiftDurationError reports a shift or template whose break leaves no
// positive worked time.
type ShiftDurationError struct {
	RecordID     string
	SpanMinutes  int
	BreakMinutes int
}

func (e *ShiftDurationError) Error() string {
	return fmt.Sprintf("record %s: break of %dm exceeds span of %dm",
		e.RecordID, e.BreakMinutes, e.SpanMinutes)
}

func (e *ShiftDurationError) Unwrap() error { return ErrInvalidShiftDuration }

// AbsenceRangeError reports an absence whose end date precedes its start.
type AbsenceRangeError struct {
	RecordID string
	Start    Date
	End      Date
}

func (e *AbsenceRangeError) Error() string {
	return fmt.Sprintf("absence %s: end %s before start %s", e.RecordID, e.End, e.Start)
}

func (e *AbsenceRangeError) Unwrap() error { return ErrInvalidAbsenceRange }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsDataQuality reports whether the error concerns a single bad record.
// Such errors are attached to the record and excluded from aggregates
// rather than aborting the computation.
func IsDataQuality(err error) bool {
	return errors.Is(err, ErrBadFormat) ||
		errors.Is(err, ErrInvalidShiftDuration) ||
		errors.Is(err, ErrInvalidAbsenceRange)
}

// IsStructural reports whether the error invalidates the whole call.
func IsStructural(err error) bool {
	return errors.Is(err, ErrInvalidSnapshot)
}
