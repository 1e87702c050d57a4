package tracker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
)

// SweepMissed marks today's pending prayers whose window has closed as Missed.
func (t *Tracker) SweepMissed(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return nil
	}
	return t.sweepLocked(ctx)
}

func (t *Tracker) sweepLocked(ctx context.Context) error {
	today, now := t.today()
	h, changed := prayer.AutoMiss(t.history, today, t.settings, t.deps.Resolver, now)
	if !changed {
		return nil
	}

	prev := t.history
	t.history = h
	if err := t.saveHistory(ctx); err != nil {
		t.history = prev
		return fmt.Errorf("persist auto-missed prayers: %w", err)
	}
	log.Debug().Str("user_id", t.userID.String()).Str("date", today).Msg("auto-missed prayers past their end time")
	return nil
}

// Refresh pulls today's rows from the remote store and overwrites the local
// entries they cover. The remote store wins; nothing is merged.
func (t *Tracker) Refresh(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	today, _ := t.today()
	rctx, cancel := t.remoteCtx(ctx)
	rows, err := t.deps.Remote.ListPrayers(rctx, t.userID, today)
	cancel()
	if err != nil {
		log.Error().Err(err).Str("user_id", t.userID.String()).Msg("error refreshing today's prayers")
		return fmt.Errorf("refresh today's prayers: %w", err)
	}

	h := t.history.Clone()
	for _, row := range rows {
		id, ok := model.SlotByName(row.PrayerName)
		if !ok || !row.Status.Valid() {
			log.Warn().Str("prayer", row.PrayerName).Str("status", string(row.Status)).Msg("skipping unknown remote prayer row")
			continue
		}
		h.Set(today, id, row.Status)
	}

	prev := t.history
	t.history = h
	if err := t.saveHistory(ctx); err != nil {
		t.history = prev
		return fmt.Errorf("persist refreshed history: %w", err)
	}

	if next := prayer.RecomputeStreak(t.streak, t.history, today); next != t.streak {
		t.streak = next
		if err := t.saveStreak(ctx); err != nil {
			return fmt.Errorf("persist streak: %w", err)
		}
	}
	return nil
}

// SyncCloud pulls the profile's prayer settings and the achievement log.
// Both reads are background work: failures are logged and local state kept.
func (t *Tracker) SyncCloud(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	logger := log.With().Str("user_id", t.userID.String()).Logger()

	rctx, cancel := t.remoteCtx(ctx)
	patch, err := t.deps.Remote.GetPrayerSettings(rctx, t.userID)
	cancel()
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("error syncing cloud settings")
	case patch != nil:
		merged := t.settings.Apply(*patch)
		if err := merged.Validate(); err != nil {
			logger.Warn().Err(err).Msg("ignoring invalid cloud settings")
			break
		}
		t.settings = merged
		if err := t.saveSettings(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to persist cloud settings locally")
		}
	}

	rctx, cancel = t.remoteCtx(ctx)
	ids, err := t.deps.Remote.ListAchievements(rctx, t.userID)
	cancel()
	if err != nil {
		logger.Warn().Err(err).Msg("error syncing achievements")
		return
	}
	added := false
	for _, id := range ids {
		if _, ok := model.BadgeByID(id); ok && t.earned.Add(id) {
			added = true
		}
	}
	if added {
		if err := t.saveBadges(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to persist badges locally")
		}
	}
}
