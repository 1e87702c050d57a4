package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryAbsentIsPending(t *testing.T) {
	h := History{}
	assert.Equal(t, StatusPending, h.Status("2024-01-01", Fajr))
	assert.Empty(t, h, "reading must not create entries")
}

func TestHistoryFullDay(t *testing.T) {
	h := History{}
	for _, s := range Slots {
		h.Set("2024-01-01", s.ID, StatusPrayed)
	}
	assert.True(t, h.IsFullDay("2024-01-01"))
	assert.Equal(t, 5, h.CompletedCount("2024-01-01"))

	h.Set("2024-01-01", Isha, StatusLate)
	assert.True(t, h.IsFullDay("2024-01-01"))

	h.Set("2024-01-01", Isha, StatusMissed)
	assert.False(t, h.IsFullDay("2024-01-01"))
	assert.Equal(t, 4, h.CompletedCount("2024-01-01"))
}

func TestHistoryCloneIsDeep(t *testing.T) {
	h := History{}
	h.Set("2024-01-01", Fajr, StatusPrayed)
	c := h.Clone()
	c.Set("2024-01-01", Fajr, StatusPending)
	c.Set("2024-01-02", Fajr, StatusLate)

	assert.Equal(t, StatusPrayed, h.Status("2024-01-01", Fajr))
	assert.NotContains(t, h, "2024-01-02")
}

func TestHistoryDatesDescending(t *testing.T) {
	h := History{}
	h.Set("2024-01-02", Fajr, StatusPrayed)
	h.Set("2023-12-31", Fajr, StatusPrayed)
	h.Set("2024-01-10", Fajr, StatusPrayed)
	assert.Equal(t, []string{"2024-01-10", "2024-01-02", "2023-12-31"}, h.Dates())
}

func TestEarnedBadgesAppendOnly(t *testing.T) {
	e := NewEarnedBadges()
	assert.True(t, e.Add(BadgeFirstStep))
	assert.False(t, e.Add(BadgeFirstStep))
	assert.Equal(t, []BadgeID{BadgeFirstStep}, e.List())
}
