package prayer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

func def(id model.BadgeID) model.BadgeDefinition {
	d, _ := model.BadgeByID(id)
	return d
}

func TestBadgeProgressLatePrayers(t *testing.T) {
	h := model.History{}
	for i := 1; i <= 5; i++ {
		date := fmt.Sprintf("2024-01-%02d", i)
		h.Set(date, model.Fajr, model.StatusLate)
		h.Set(date, model.Isha, model.StatusLate)
		h.Set(date, model.Asr, model.StatusMissed)
	}
	p := BadgeProgress(def(model.BadgeLateButPresent), h, 0)
	assert.Equal(t, Progress{Current: 10, Total: 10}, p)
	assert.True(t, p.Reached())
}

func TestBadgeProgressFullDays(t *testing.T) {
	h := model.History{}
	fullDay(h, "2024-01-01")
	h.Set("2024-01-02", model.Fajr, model.StatusPrayed)
	assert.Equal(t, 1, BadgeProgress(def(model.BadgeFirstStep), h, 0).Current)
}

func TestBadgeProgressStreakUsesLiveValue(t *testing.T) {
	assert.Equal(t, Progress{Current: 12, Total: 30}, BadgeProgress(def(model.BadgeStreakMaster), model.History{}, 12))
}

func TestFajrStreakStopsAtMissAndGap(t *testing.T) {
	h := model.History{}
	for _, d := range []string{"2024-01-10", "2024-01-09", "2024-01-08"} {
		h.Set(d, model.Fajr, model.StatusPrayed)
	}
	// 2024-01-07 absent: the run stops even though earlier days are done.
	h.Set("2024-01-06", model.Fajr, model.StatusPrayed)
	h.Set("2024-01-05", model.Fajr, model.StatusPrayed)
	assert.Equal(t, 3, BadgeProgress(def(model.BadgeFajrWarrior), h, 0).Current)

	h.Set("2024-01-11", model.Fajr, model.StatusMissed)
	assert.Equal(t, 0, BadgeProgress(def(model.BadgeFajrWarrior), h, 0).Current)
}

func TestFajrStreakCountsLate(t *testing.T) {
	h := model.History{}
	for i := 1; i <= 7; i++ {
		status := model.StatusPrayed
		if i%2 == 0 {
			status = model.StatusLate
		}
		h.Set(fmt.Sprintf("2024-02-%02d", i), model.Fajr, status)
	}
	assert.Equal(t, []model.BadgeID{model.BadgeFajrWarrior}, UnlockableBadges(model.NewEarnedBadges(), h, 0))
}

func TestUnlockableBadgesSkipsEarned(t *testing.T) {
	h := model.History{}
	fullDay(h, "2024-01-01")
	earned := model.NewEarnedBadges()

	first := UnlockableBadges(earned, h, 30)
	assert.Equal(t, []model.BadgeID{model.BadgeFirstStep, model.BadgeStreakMaster}, first)

	for _, id := range first {
		earned.Add(id)
	}
	assert.Empty(t, UnlockableBadges(earned, h, 30))
}

func TestWeeklyProgressAndRatio(t *testing.T) {
	h := model.History{}
	fullDay(h, "2024-01-07")
	h.Set("2024-01-01", model.Fajr, model.StatusLate)
	h.Set("2024-01-01", model.Dhuhr, model.StatusMissed)
	h.Set("2023-12-31", model.Fajr, model.StatusPrayed)

	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 5}, WeeklyProgress(h, "2024-01-07"))
	assert.Equal(t, Ratio{Completed: 5, Total: 5}, TodayRatio(h, "2024-01-07"))
	assert.Equal(t, Ratio{Completed: 0, Total: 5}, TodayRatio(h, "2024-01-08"))
}
