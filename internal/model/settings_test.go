package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, DefaultReminderLeadTime, s.ReminderLeadTime)
	assert.Len(t, s.PrayerTimes, SlotCount)
}

func TestSlotConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  SlotConfig
		ok   bool
	}{
		{"start and end", SlotConfig{ID: Fajr, StartTime: "05:00", EndTime: "06:30"}, true},
		{"mosque only", SlotConfig{ID: Dhuhr, MosqueTime: "13:15", EndTime: "15:45"}, true},
		{"no gate", SlotConfig{ID: Asr, EndTime: "18:15"}, false},
		{"no end", SlotConfig{ID: Asr, StartTime: "15:45"}, false},
		{"end before start", SlotConfig{ID: Maghrib, StartTime: "19:40", EndTime: "18:15"}, false},
		{"end equals start", SlotConfig{ID: Maghrib, StartTime: "18:15", EndTime: "18:15"}, false},
		{"not zero padded", SlotConfig{ID: Fajr, StartTime: "5:00", EndTime: "06:30"}, false},
		{"bad hour", SlotConfig{ID: Isha, StartTime: "24:00", EndTime: "23:59"}, false},
		{"unknown slot", SlotConfig{ID: "6", StartTime: "01:00", EndTime: "02:00"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSlot)
			}
		})
	}
}

func TestGateTimePrefersMosqueTime(t *testing.T) {
	c := SlotConfig{ID: Dhuhr, StartTime: "12:30", MosqueTime: "13:15", EndTime: "15:45"}
	assert.Equal(t, "13:15", c.GateTime())
	c.MosqueTime = ""
	assert.Equal(t, "12:30", c.GateTime())
}

func TestSettingsValidateRejectsDuplicateSlots(t *testing.T) {
	s := DefaultSettings()
	s.PrayerTimes[1].ID = Fajr
	assert.ErrorIs(t, s.Validate(), ErrInvalidSlot)
}

func TestSettingsApplyDoesNotAlias(t *testing.T) {
	base := DefaultSettings()
	enabled := true
	lead := 30
	next := base.Apply(SettingsPatch{NotificationsEnabled: &enabled, ReminderLeadTime: &lead})

	assert.True(t, next.NotificationsEnabled)
	assert.Equal(t, 30, next.ReminderLeadTime)
	assert.False(t, base.NotificationsEnabled)

	next.PrayerTimes[0].StartTime = "04:45"
	assert.Equal(t, "05:00", base.PrayerTimes[0].StartTime)
}

func TestSlotNamesRoundTrip(t *testing.T) {
	assert.Len(t, Slots, SlotCount)
	for _, s := range Slots {
		name, ok := SlotName(s.ID)
		assert.True(t, ok)
		assert.Equal(t, s.Name, name)
		id, ok := SlotByName(name)
		assert.True(t, ok)
		assert.Equal(t, s.ID, id)
	}
	_, ok := SlotByName("Tahajjud")
	assert.False(t, ok)
}
