/*
interval.go - Half-open minute intervals

PURPOSE:
  The unit of coverage reasoning. An Interval is a half-open range
  [Start, End) of minutes relative to a reference midnight. Opening hours
  and shift templates resolve to Intervals on the same reference frame,
  which makes union and subtraction plain integer arithmetic.

OVERNIGHT HANDLING:
  An interval that crosses midnight simply has End > MinutesPerDay.
  Intervals are never compared as raw wall-clock strings; callers resolve
  through SpanMinutes first so ordering is always numeric.

SEE ALSO:
  - clock.go: Wall-clock parsing feeding interval endpoints
  - schedule/coverage.go: Merge/Subtract consumer
*/
package engine

import (
	"fmt"
	"sort"
)

// Interval is a half-open minute range [Start, End) relative to a
// reference midnight. End may exceed MinutesPerDay for overnight ranges.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds an interval from wall-clock minute offsets, treating
// an end at or before the start as crossing midnight.
func NewInterval(startMin, endMin int) Interval {
	return Interval{Start: startMin, End: startMin + SpanMinutes(startMin, endMin)}
}

// Duration returns the interval length in minutes.
func (iv Interval) Duration() int { return iv.End - iv.Start }

// IsEmpty reports whether the interval has no extent.
func (iv Interval) IsEmpty() bool { return iv.End <= iv.Start }

// Overlaps reports whether two intervals share any minute.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Gap returns the minutes strictly between this interval's end and the
// later interval's start. Negative when the intervals overlap.
func (iv Interval) Gap(later Interval) int { return later.Start - iv.End }

// Clip restricts the interval to the given bounds. The result may be
// empty when there is no overlap.
func (iv Interval) Clip(bounds Interval) Interval {
	out := iv
	if out.Start < bounds.Start {
		out.Start = bounds.Start
	}
	if out.End > bounds.End {
		out.End = bounds.End
	}
	return out
}

// Shift translates the interval by the given number of minutes.
func (iv Interval) Shift(minutes int) Interval {
	return Interval{Start: iv.Start + minutes, End: iv.End + minutes}
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s-%s", FormatClock(iv.Start), FormatClock(iv.End))
}

// =============================================================================
// SET OPERATIONS - Union and subtraction over interval collections
// =============================================================================

// Merge returns the union of the given intervals as a sorted list of
// disjoint intervals. Overlapping and adjacent intervals coalesce; empty
// intervals are dropped. The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	var in []Interval
	for _, iv := range intervals {
		if !iv.IsEmpty() {
			in = append(in, iv)
		}
	}
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool {
		if in[i].Start != in[j].Start {
			return in[i].Start < in[j].Start
		}
		return in[i].End < in[j].End
	})

	merged := []Interval{in[0]}
	for _, iv := range in[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract removes the union of covered from span, returning the
// uncovered leftovers in order. covered need not be merged or sorted.
func Subtract(span Interval, covered []Interval) []Interval {
	if span.IsEmpty() {
		return nil
	}
	var gaps []Interval
	cursor := span.Start
	for _, iv := range Merge(covered) {
		clipped := iv.Clip(span)
		if clipped.IsEmpty() {
			continue
		}
		if clipped.Start > cursor {
			gaps = append(gaps, Interval{Start: cursor, End: clipped.Start})
		}
		if clipped.End > cursor {
			cursor = clipped.End
		}
	}
	if cursor < span.End {
		gaps = append(gaps, Interval{Start: cursor, End: span.End})
	}
	return gaps
}
