/*
Package engine provides the temporal primitives for the scheduling engine.

PURPOSE:
  This package contains domain-agnostic building blocks for reasoning about
  wall-clock times, calendar dates, and minute intervals. The schedule
  package composes these into worked-hours accounting, rest-period checks,
  and opening-hours coverage.

KEY CONCEPTS IN THIS FILE (clock.go):
  - Wall-clock parsing: "HH:MM" strings to minutes since midnight
  - Span arithmetic: interval length with overnight wrap-around

DESIGN PRINCIPLES:
  1. Purity: every function here is a pure function of its inputs
  2. Wrap-around: end <= start means the interval crosses midnight
  3. Explicit failure: malformed input yields *FormatError, never a panic

USAGE:
  start, err := engine.ParseClock("22:00")
  end, err := engine.ParseClock("06:00")
  span := engine.SpanMinutes(start, end) // 480, crossing midnight

SEE ALSO:
  - interval.go: Minute intervals built from clock values
  - date.go: Calendar dates and evaluation periods
  - errors.go: The data-quality error taxonomy
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the length of one calendar day in minutes.
const MinutesPerDay = 24 * 60

// ParseClock parses an "HH:MM" wall-clock string into minutes since
// midnight. Hours must be 0-23 and minutes 0-59; anything else returns
// a *FormatError.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, &FormatError{Value: s, Reason: "expected HH:MM"}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, &FormatError{Value: s, Reason: "hour is not numeric"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, &FormatError{Value: s, Reason: "minute is not numeric"}
	}
	if hour < 0 || hour > 23 {
		return 0, &FormatError{Value: s, Reason: fmt.Sprintf("hour %d out of range", hour)}
	}
	if minute < 0 || minute > 59 {
		return 0, &FormatError{Value: s, Reason: fmt.Sprintf("minute %d out of range", minute)}
	}
	return hour*60 + minute, nil
}

// SpanMinutes returns the length of the interval from start to end, both
// given as minutes since midnight. An end at or before the start is taken
// to mean the interval crosses midnight, so the result is always in
// [0, 2*MinutesPerDay). Zero occurs only for equal inputs; callers treat
// that as a degenerate interval.
func SpanMinutes(start, end int) int {
	span := end - start
	if span < 0 {
		span += MinutesPerDay
	}
	return span
}

// FormatClock renders minutes since midnight as "HH:MM". Values outside a
// single day are wrapped, so 1500 renders as "01:00".
func FormatClock(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
