package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate_Keywords(t *testing.T) {
	loc := time.UTC
	now := time.Now().In(loc)

	got, err := ParseFlexibleDate("today", loc)
	require.NoError(t, err)
	assert.Equal(t, now.Year(), got.Year())
	assert.Equal(t, now.YearDay(), got.YearDay())
	assert.Equal(t, 0, got.Hour())

	got, err = ParseFlexibleDate("tomorrow", loc)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 1).YearDay(), got.YearDay())
}

func TestParseFlexibleDate_RelativeOffsets(t *testing.T) {
	loc := time.UTC

	got, err := ParseFlexibleDate("in 2h", loc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), got, time.Minute)

	got, err = ParseFlexibleDate("30m ago", loc)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-30*time.Minute), got, time.Minute)
}

func TestParseFlexibleDate_DayWithClock(t *testing.T) {
	loc := time.UTC

	got, err := ParseFlexibleDate("tomorrow 09:30", loc)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, time.Now().In(loc).AddDate(0, 0, 1).YearDay(), got.YearDay())
}

func TestParseFlexibleDate_Layouts(t *testing.T) {
	loc := time.UTC

	got, err := ParseFlexibleDate("2026-09-03 14:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 3, 14, 0, 0, 0, loc), got)

	got, err = ParseFlexibleDate("2026-09-03", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, loc), got)
}

func TestParseFlexibleDate_Garbage(t *testing.T) {
	_, err := ParseFlexibleDate("whenever", time.UTC)
	assert.Error(t, err)

	_, err = ParseFlexibleDate("", time.UTC)
	assert.Error(t, err)
}

func TestDayLabel(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 7, 6, 12, 0, 0, 0, loc) // a Monday

	assert.Equal(t, "Today", DayLabel(now.Add(2*time.Hour).UnixMilli(), now, loc))
	assert.Equal(t, "Tomorrow", DayLabel(now.Add(24*time.Hour).UnixMilli(), now, loc))
	assert.Equal(t, "Wednesday, Jul 8", DayLabel(now.Add(48*time.Hour).UnixMilli(), now, loc))
}
