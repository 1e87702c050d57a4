package model

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidSlot = errors.New("invalid prayer slot config")

// SlotConfig holds the configured times of one prayer in zero-padded 24h HH:mm.
type SlotConfig struct {
	ID         SlotID `json:"id"`
	StartTime  string `json:"startTime,omitempty"`
	MosqueTime string `json:"mosqueTime,omitempty"`
	EndTime    string `json:"endTime"`
}

// GateTime is the time after which the prayer may be marked. Mosque time wins over start time.
func (c SlotConfig) GateTime() string {
	if c.MosqueTime != "" {
		return c.MosqueTime
	}
	return c.StartTime
}

func (c SlotConfig) Validate() error {
	if _, ok := SlotName(c.ID); !ok {
		return fmt.Errorf("%w: unknown slot %q", ErrInvalidSlot, c.ID)
	}
	if c.StartTime == "" && c.MosqueTime == "" {
		return fmt.Errorf("%w: slot %s needs a start or mosque time", ErrInvalidSlot, c.ID)
	}
	end, err := MinutesSinceMidnight(c.EndTime)
	if err != nil {
		return fmt.Errorf("%w: slot %s end time: %v", ErrInvalidSlot, c.ID, err)
	}
	if c.MosqueTime != "" {
		if _, err := MinutesSinceMidnight(c.MosqueTime); err != nil {
			return fmt.Errorf("%w: slot %s mosque time: %v", ErrInvalidSlot, c.ID, err)
		}
	}
	if c.StartTime != "" {
		start, err := MinutesSinceMidnight(c.StartTime)
		if err != nil {
			return fmt.Errorf("%w: slot %s start time: %v", ErrInvalidSlot, c.ID, err)
		}
		if end <= start {
			return fmt.Errorf("%w: slot %s ends (%s) before it starts (%s)", ErrInvalidSlot, c.ID, c.EndTime, c.StartTime)
		}
	}
	return nil
}

// MinutesSinceMidnight parses a strict "HH:mm" value. Only the zero-padded
// form is accepted since window checks compare these strings lexicographically.
func MinutesSinceMidnight(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("time %q is not HH:mm", hhmm)
	}
	h, err := strconv.Atoi(hhmm[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("time %q has an invalid hour", hhmm)
	}
	m, err := strconv.Atoi(hhmm[3:])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q has invalid minutes", hhmm)
	}
	return h*60 + m, nil
}

// Settings is the per-user prayer-time configuration plus notification prefs.
// It is stored locally and mirrored in the profile's prayer_settings blob.
type Settings struct {
	NotificationsEnabled bool         `json:"notificationsEnabled"`
	ReminderLeadTime     int          `json:"reminderLeadTime"` // minutes
	PrayerTimes          []SlotConfig `json:"prayerTimes"`
}

const DefaultReminderLeadTime = 15

func DefaultPrayerTimes() []SlotConfig {
	return []SlotConfig{
		{ID: Fajr, StartTime: "05:00", EndTime: "06:30"},
		{ID: Dhuhr, StartTime: "12:30", EndTime: "15:45"},
		{ID: Asr, StartTime: "15:45", EndTime: "18:15"},
		{ID: Maghrib, StartTime: "18:15", EndTime: "19:40"},
		{ID: Isha, StartTime: "19:40", EndTime: "23:59"},
	}
}

func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: false,
		ReminderLeadTime:     DefaultReminderLeadTime,
		PrayerTimes:          DefaultPrayerTimes(),
	}
}

// Slot returns the config for id, if present.
func (s Settings) Slot(id SlotID) (SlotConfig, bool) {
	for _, c := range s.PrayerTimes {
		if c.ID == id {
			return c, true
		}
	}
	return SlotConfig{}, false
}

// Validate checks that all five slots are configured exactly once and valid.
func (s Settings) Validate() error {
	if s.ReminderLeadTime < 0 {
		return fmt.Errorf("%w: reminder lead time must not be negative", ErrInvalidSlot)
	}
	if len(s.PrayerTimes) != SlotCount {
		return fmt.Errorf("%w: expected %d slots, got %d", ErrInvalidSlot, SlotCount, len(s.PrayerTimes))
	}
	seen := make(map[SlotID]bool, SlotCount)
	for _, c := range s.PrayerTimes {
		if seen[c.ID] {
			return fmt.Errorf("%w: slot %s configured twice", ErrInvalidSlot, c.ID)
		}
		seen[c.ID] = true
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy that does not share the PrayerTimes slice.
func (s Settings) Clone() Settings {
	out := s
	out.PrayerTimes = append([]SlotConfig(nil), s.PrayerTimes...)
	return out
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	NotificationsEnabled *bool        `json:"notificationsEnabled,omitempty"`
	ReminderLeadTime     *int         `json:"reminderLeadTime,omitempty"`
	PrayerTimes          []SlotConfig `json:"prayerTimes,omitempty"`
}

func (s Settings) Apply(p SettingsPatch) Settings {
	out := s.Clone()
	if p.NotificationsEnabled != nil {
		out.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.ReminderLeadTime != nil {
		out.ReminderLeadTime = *p.ReminderLeadTime
	}
	if p.PrayerTimes != nil {
		out.PrayerTimes = append([]SlotConfig(nil), p.PrayerTimes...)
	}
	return out
}
