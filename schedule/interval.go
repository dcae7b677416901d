/*
interval.go - Resolving shifts to absolute instants

PURPOSE:
  A shift stores wall-clock strings; every comparison across records must
  happen on absolute instants anchored to the shift's date, never on raw
  "HH:MM" strings. ResolveShift is the single place that anchoring
  happens, including the overnight case where the end instant lands on
  the next calendar date.

SEE ALSO:
  - engine/clock.go: Span arithmetic with midnight wrap-around
  - rest.go: Consumes resolved spans for rest-gap walking
*/
package schedule

import (
	"time"

	"github.com/warp/schedule-engine/engine"
)

// ShiftSpan is a shift resolved to absolute instants. Start is anchored
// to the shift's date; End is Start plus the wall-clock span, so a
// 22:00-06:00 shift ends on the following calendar date.
type ShiftSpan struct {
	Shift Shift
	Start time.Time
	End   time.Time
}

// ResolveShift anchors a shift's wall-clock times to its calendar date.
// Malformed times return a *engine.FormatError.
func ResolveShift(s Shift) (ShiftSpan, error) {
	startMin, err := engine.ParseClock(s.StartTime)
	if err != nil {
		return ShiftSpan{}, err
	}
	endMin, err := engine.ParseClock(s.EndTime)
	if err != nil {
		return ShiftSpan{}, err
	}
	start := s.Date.At(startMin)
	span := engine.SpanMinutes(startMin, endMin)
	return ShiftSpan{
		Shift: s,
		Start: start,
		End:   start.Add(time.Duration(span) * time.Minute),
	}, nil
}

// SpanMinutes returns the gross length of the resolved shift.
func (sp ShiftSpan) SpanMinutes() int {
	return int(sp.End.Sub(sp.Start).Minutes())
}

// NetMinutes returns the worked minutes after subtracting the unpaid
// break, floored at zero. A break that meets or exceeds the span is a
// configuration error: the shift counts as zero and the error is
// reported, not thrown.
func (sp ShiftSpan) NetMinutes() (int, error) {
	span := sp.SpanMinutes()
	if span > 0 && sp.Shift.BreakMinutes >= span {
		return 0, &engine.ShiftDurationError{
			RecordID:     string(sp.Shift.ID),
			SpanMinutes:  span,
			BreakMinutes: sp.Shift.BreakMinutes,
		}
	}
	net := span - sp.Shift.BreakMinutes
	if net < 0 {
		net = 0
	}
	return net, nil
}

// IsZeroLength reports a degenerate shift (start equals end). Such
// shifts contribute zero to hours accounting and are excluded from
// rest-gap computation.
func (sp ShiftSpan) IsZeroLength() bool { return !sp.End.After(sp.Start) }

// Overlaps reports whether two resolved spans share any instant.
func (sp ShiftSpan) Overlaps(other ShiftSpan) bool {
	return sp.Start.Before(other.End) && other.Start.Before(sp.End)
}

// GapMinutes returns the rest time between the end of this span and the
// start of the later one. Negative when the spans overlap; the rest
// validator clamps that to zero rest.
func (sp ShiftSpan) GapMinutes(later ShiftSpan) int {
	return int(later.Start.Sub(sp.End).Minutes())
}

// StartDate returns the calendar date the span begins on.
func (sp ShiftSpan) StartDate() engine.Date { return engine.DateOf(sp.Start) }

// EndDate returns the calendar date the span ends on. For a span ending
// exactly at midnight the preceding day is returned, since the half-open
// interval contains no minute of the next date.
func (sp ShiftSpan) EndDate() engine.Date {
	end := sp.End
	if end.Hour() == 0 && end.Minute() == 0 && end.After(sp.Start) {
		end = end.Add(-time.Minute)
	}
	return engine.DateOf(end)
}
