package tracker

import (
	"context"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/notify"
)

// UpdateSettings validates and stores a partial settings update, mirrors it
// to the profile and reschedules or cancels notifications as needed.
func (t *Tracker) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.settings
	next := prev.Apply(patch)
	if err := next.Validate(); err != nil {
		return prev.Clone(), err
	}

	t.settings = next
	if err := t.saveSettings(ctx); err != nil {
		t.settings = prev
		return prev.Clone(), fmt.Errorf("persist settings: %w", err)
	}

	rctx, cancel := t.remoteCtx(ctx)
	if err := t.deps.Remote.UpdatePrayerSettings(rctx, t.userID, next); err != nil {
		log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("settings sync error")
	}
	cancel()

	timesChanged := !reflect.DeepEqual(prev.PrayerTimes, next.PrayerTimes) || prev.ReminderLeadTime != next.ReminderLeadTime
	switch {
	case next.NotificationsEnabled && (!prev.NotificationsEnabled || timesChanged):
		t.scheduleLocked(ctx)
	case !next.NotificationsEnabled && prev.NotificationsEnabled:
		if err := t.deps.Notifier.CancelAll(ctx, t.userID); err != nil {
			log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("failed to cancel notifications")
		}
	}
	return next.Clone(), nil
}

// ToggleNotifications turns reminders on or off.
func (t *Tracker) ToggleNotifications(ctx context.Context, enabled bool) (model.Settings, error) {
	return t.UpdateSettings(ctx, model.SettingsPatch{NotificationsEnabled: &enabled})
}

func (t *Tracker) scheduleLocked(ctx context.Context) {
	today, now := t.today()
	alerts := notify.BuildSchedule(t.settings, today, t.deps.Resolver, now)
	if err := t.deps.Notifier.Schedule(ctx, t.userID, alerts); err != nil {
		log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("failed to schedule notifications")
		return
	}
	log.Debug().Str("user_id", t.userID.String()).Int("alerts", len(alerts)).Msg("notifications scheduled")
}
