package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/schedule-engine/engine"
)

func TestParseDate(t *testing.T) {
	d, err := engine.ParseDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", d.String())
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = engine.ParseDate("02.03.2026")
	var formatErr *engine.FormatError
	assert.ErrorAs(t, err, &formatErr)
}

func TestDate_At_ResolvesPastMidnight(t *testing.T) {
	d := engine.NewDate(2026, time.March, 2)
	end := d.At(22*60 + 480) // 22:00 start plus an 8h overnight span
	assert.Equal(t, 3, end.Day(), "lands on the next calendar date")
	assert.Equal(t, 6, end.Hour())
}

func TestDate_WeekKey(t *testing.T) {
	// ISO weeks run Monday through Sunday.
	monday := engine.NewDate(2026, time.March, 2)
	sunday := monday.AddDays(6)
	nextMonday := monday.AddDays(7)

	assert.Equal(t, monday.WeekKey(), sunday.WeekKey())
	assert.NotEqual(t, monday.WeekKey(), nextMonday.WeekKey())

	// Early January can belong to the previous ISO year.
	assert.Equal(t, "2020-W53", engine.NewDate(2021, time.January, 1).WeekKey())
}

func TestDate_StartOfWeek(t *testing.T) {
	monday := engine.NewDate(2026, time.March, 2)
	for i := 0; i < 7; i++ {
		assert.True(t, monday.AddDays(i).StartOfWeek().Equal(monday), "day %d", i)
	}
}

func TestWeekOf(t *testing.T) {
	week := engine.WeekOf(engine.NewDate(2026, time.March, 4)) // a Wednesday
	assert.Equal(t, "2026-03-02", week.Start.String())
	assert.Equal(t, "2026-03-08", week.End.String())
	assert.Equal(t, 7, week.LengthDays())
	assert.Len(t, week.Days(), 7)
}

func TestPeriod_Contains(t *testing.T) {
	p := engine.Period{Start: engine.NewDate(2026, time.March, 2), End: engine.NewDate(2026, time.March, 8)}
	assert.True(t, p.Contains(p.Start))
	assert.True(t, p.Contains(p.End))
	assert.False(t, p.Contains(p.Start.AddDays(-1)))
	assert.False(t, p.Contains(p.End.AddDays(1)))
	assert.True(t, p.Valid())
	assert.False(t, engine.Period{Start: p.End, End: p.Start}.Valid())
}
