package prayer

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcAt(hh, mm int) time.Time {
	return time.Date(2024, 1, 1, hh, mm, 0, 0, time.UTC)
}

func TestHasCrossedIsInclusive(t *testing.T) {
	r := NewResolverIn(time.UTC)
	assert.False(t, r.HasCrossed(utcAt(4, 59), "05:00"))
	assert.True(t, r.HasCrossed(utcAt(5, 0), "05:00"))
	assert.True(t, r.HasCrossed(utcAt(13, 0), "05:00"))
	assert.False(t, r.HasCrossed(utcAt(0, 0), "00:01"))
}

func TestResolverUsesReferenceZoneNotInstantZone(t *testing.T) {
	r := NewResolver("Asia/Karachi")
	require.False(t, r.Fallback())

	// 00:30 UTC is 05:30 in Karachi (UTC+5), whatever zone the instant carries.
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC).In(ny)

	assert.Equal(t, "05:30", r.ClockTime(now))
	assert.True(t, r.HasCrossed(now, "05:00"))
	assert.Equal(t, "2024-01-01", r.Today(now))
}

func TestResolverFallsBackToLocal(t *testing.T) {
	r := NewResolver("Not/AZone")
	assert.True(t, r.Fallback())
	assert.Equal(t, time.Local, r.Location())
}

func TestTodayCrossesMidnightInZone(t *testing.T) {
	r := NewResolver("Asia/Karachi")
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC) // 01:00 next day in Karachi
	assert.Equal(t, "2024-01-02", r.Today(now))
}

func TestDaysBetweenIgnoresDST(t *testing.T) {
	// US DST started 2024-03-10; civil counting must still give whole days.
	n, err := DaysBetween("2024-03-09", "2024-03-11")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = DaysBetween("2024-02-28", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = DaysBetween("yesterday", "2024-03-01")
	assert.Error(t, err)
}

func TestAt(t *testing.T) {
	r := NewResolver("Asia/Karachi")
	at, err := r.At("2024-01-01", "05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), at.UTC())
}
