package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
)

func TestBuildScheduleSkipsPastAlerts(t *testing.T) {
	r := prayer.NewResolverIn(time.UTC)
	now := time.Date(2024, 1, 1, 16, 0, 0, 0, time.UTC)

	alerts := BuildSchedule(model.DefaultSettings(), "2024-01-01", r, now)

	ids := make([]string, 0, len(alerts))
	for _, a := range alerts {
		assert.True(t, a.At.After(now), a.ID)
		ids = append(ids, a.ID)
	}
	// Asr started 15:45 but its reminder (18:15 - 15m) is still ahead.
	assert.Equal(t, []string{"3_reminder", "4_start", "4_reminder", "5_start", "5_reminder"}, ids)
}

func TestBuildScheduleMosqueTime(t *testing.T) {
	r := prayer.NewResolverIn(time.UTC)
	settings := model.DefaultSettings()
	settings.ReminderLeadTime = 30
	settings.PrayerTimes = []model.SlotConfig{
		{ID: model.Dhuhr, StartTime: "12:30", MosqueTime: "13:15", EndTime: "15:45"},
	}
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	alerts := BuildSchedule(settings, "2024-01-01", r, now)
	require.Len(t, alerts, 2)

	assert.Equal(t, "2_start", alerts[0].ID)
	assert.Equal(t, "Time for Dhuhr", alerts[0].Title)
	assert.Equal(t, "Jamaat time for Dhuhr.", alerts[0].Body)
	assert.Equal(t, time.Date(2024, 1, 1, 13, 15, 0, 0, time.UTC), alerts[0].At)

	assert.Equal(t, AlertReminder, alerts[1].Kind)
	assert.Equal(t, "30 minutes remaining for Dhuhr!", alerts[1].Body)
	assert.Equal(t, time.Date(2024, 1, 1, 15, 15, 0, 0, time.UTC), alerts[1].At)
}
