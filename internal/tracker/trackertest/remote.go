// Package trackertest provides in-memory collaborators for tracker tests.
package trackertest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

type prayerKey struct {
	user uuid.UUID
	date string
	name string
}

// Remote is an in-memory remote store. Error fields, when set, are returned
// by the matching calls.
type Remote struct {
	mu           sync.Mutex
	prayers      map[prayerKey]model.PrayerRecord
	achievements map[uuid.UUID][]model.BadgeID
	settings     map[uuid.UUID]model.Settings

	UpsertErr       error
	ListErr         error
	AchievementErr  error
	SettingsErr     error
	Upserts         int
	AchievementRows int
}

func NewRemote() *Remote {
	return &Remote{
		prayers:      make(map[prayerKey]model.PrayerRecord),
		achievements: make(map[uuid.UUID][]model.BadgeID),
		settings:     make(map[uuid.UUID]model.Settings),
	}
}

func (r *Remote) UpsertPrayer(_ context.Context, rec model.PrayerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	r.Upserts++
	r.prayers[prayerKey{rec.UserID, rec.Date, rec.PrayerName}] = rec
	return nil
}

func (r *Remote) ListPrayers(_ context.Context, userID uuid.UUID, date string) ([]model.PrayerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	var out []model.PrayerRecord
	for k, rec := range r.prayers {
		if k.user == userID && k.date == date {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PrayerName < out[j].PrayerName })
	return out, nil
}

// Prayer returns the stored row for the key, if any.
func (r *Remote) Prayer(userID uuid.UUID, date, name string) (model.PrayerRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.prayers[prayerKey{userID, date, name}]
	return rec, ok
}

// PutPrayer stores a row directly, as another device would.
func (r *Remote) PutPrayer(rec model.PrayerRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prayers[prayerKey{rec.UserID, rec.Date, rec.PrayerName}] = rec
}

func (r *Remote) InsertAchievement(_ context.Context, userID uuid.UUID, badge model.BadgeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AchievementErr != nil {
		return r.AchievementErr
	}
	r.AchievementRows++
	r.achievements[userID] = append(r.achievements[userID], badge)
	return nil
}

func (r *Remote) ListAchievements(_ context.Context, userID uuid.UUID) ([]model.BadgeID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AchievementErr != nil {
		return nil, r.AchievementErr
	}
	return append([]model.BadgeID(nil), r.achievements[userID]...), nil
}

func (r *Remote) GetPrayerSettings(_ context.Context, userID uuid.UUID) (*model.SettingsPatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SettingsErr != nil {
		return nil, r.SettingsErr
	}
	s, ok := r.settings[userID]
	if !ok {
		return nil, nil
	}
	return &model.SettingsPatch{
		NotificationsEnabled: &s.NotificationsEnabled,
		ReminderLeadTime:     &s.ReminderLeadTime,
		PrayerTimes:          s.PrayerTimes,
	}, nil
}

func (r *Remote) UpdatePrayerSettings(_ context.Context, userID uuid.UUID, settings model.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SettingsErr != nil {
		return r.SettingsErr
	}
	r.settings[userID] = settings.Clone()
	return nil
}

func (r *Remote) StoredSettings(userID uuid.UUID) (model.Settings, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	return s, ok
}
