package tracker

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/notify"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
)

type snapshot struct {
	history model.History
	streak  model.StreakState
}

// Mark handles a tap on a prayer of today: it marks a Pending/Missed prayer
// as Prayed or Late, or unmarks a Prayed/Late one.
//
// The change is applied and persisted locally first, then upserted remotely.
// If either step fails the previous history and streak are restored and a
// *SyncError is returned. Window rejections come back as *prayer.TooEarlyError
// with nothing changed.
func (t *Tracker) Mark(ctx context.Context, id model.SlotID) (MarkResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today, now := t.today()
	current := t.history.Status(today, id)
	res := MarkResult{SlotID: id, Date: today, Previous: current, Status: current, Phase: PhaseValidating, Streak: t.streak}
	logger := log.With().Str("user_id", t.userID.String()).Str("slot", string(id)).Str("date", today).Logger()

	name, ok := model.SlotName(id)
	if !ok {
		res.Phase = PhaseIdle
		return res, fmt.Errorf("%w: unknown prayer %q", ErrSlotNotConfigured, id)
	}
	cfg, ok := t.settings.Slot(id)
	if !ok && !current.Completed() {
		res.Phase = PhaseIdle
		return res, fmt.Errorf("%w: %s", ErrSlotNotConfigured, name)
	}

	target, err := prayer.Transition(current, cfg, t.deps.Resolver, now)
	if err != nil {
		logger.Debug().Err(err).Msg("mark rejected")
		res.Phase = PhaseIdle
		return res, err
	}

	snap := snapshot{history: t.history.Clone(), streak: t.streak}

	res.Phase = PhaseApplying
	unlocked, err := t.apply(ctx, today, id, target)
	if err != nil {
		logger.Error().Err(err).Str("target", string(target)).Msg("local apply failed, rolling back")
		t.rollback(ctx, snap)
		res.Phase = PhaseRolledBack
		res.Streak = t.streak
		return res, &SyncError{Status: target, Phase: PhaseApplying, Err: err}
	}
	res.Status = target
	res.Streak = t.streak
	res.Unlocked = unlocked

	res.Phase = PhaseSyncing
	rctx, cancel := t.remoteCtx(ctx)
	err = t.deps.Remote.UpsertPrayer(rctx, model.PrayerRecord{
		UserID:     t.userID,
		Date:       today,
		PrayerName: name,
		Status:     target,
	})
	cancel()
	if err != nil {
		logger.Error().Err(err).Str("target", string(target)).Msg("remote upsert failed, rolling back")
		t.rollback(ctx, snap)
		res.Phase = PhaseRolledBack
		res.Status = current
		res.Streak = t.streak
		return res, &SyncError{Status: target, Phase: PhaseSyncing, Err: err}
	}

	res.Phase = PhaseCommitted
	logger.Info().Str("from", string(current)).Str("to", string(target)).Int("streak", t.streak.Current).Msg("prayer marked")
	return res, nil
}

// apply is the optimistic phase: merge, persist, recompute streak and badges.
func (t *Tracker) apply(ctx context.Context, today string, id model.SlotID, target model.PrayerStatus) ([]model.BadgeID, error) {
	h := t.history.Clone()
	h.Set(today, id, target)
	t.history = h
	if err := t.saveHistory(ctx); err != nil {
		return nil, fmt.Errorf("persist history: %w", err)
	}

	if next := prayer.RecomputeStreak(t.streak, t.history, today); next != t.streak {
		t.streak = next
		if err := t.saveStreak(ctx); err != nil {
			return nil, fmt.Errorf("persist streak: %w", err)
		}
	}

	unlocked := t.unlockBadges(ctx)

	if target.Completed() {
		if err := t.deps.Notifier.Cancel(ctx, t.userID, notify.ReminderAlertID(id)); err != nil {
			log.Warn().Err(err).Str("user_id", t.userID.String()).Str("slot", string(id)).Msg("failed to cancel reminder")
		}
	}
	return unlocked, nil
}

// rollback restores the pre-apply snapshot in memory and in the local store.
// Badges unlocked meanwhile stay earned.
func (t *Tracker) rollback(ctx context.Context, snap snapshot) {
	ctx = context.WithoutCancel(ctx)
	t.history = snap.history
	t.streak = snap.streak
	if err := t.saveHistory(ctx); err != nil {
		log.Error().Err(err).Str("user_id", t.userID.String()).Msg("rollback: failed to restore history")
	}
	if err := t.saveStreak(ctx); err != nil {
		log.Error().Err(err).Str("user_id", t.userID.String()).Msg("rollback: failed to restore streak")
	}
}

// unlockBadges adds every newly reached badge. The remote achievement log is
// best effort: a failed insert is logged and the local unlock stands.
func (t *Tracker) unlockBadges(ctx context.Context) []model.BadgeID {
	ids := prayer.UnlockableBadges(t.earned, t.history, t.streak.Current)
	if len(ids) == 0 {
		return nil
	}

	var unlocked []model.BadgeID
	for _, id := range ids {
		if !t.earned.Add(id) {
			continue
		}
		unlocked = append(unlocked, id)
		t.newBadge = id

		rctx, cancel := t.remoteCtx(ctx)
		if err := t.deps.Remote.InsertAchievement(rctx, t.userID, id); err != nil {
			log.Warn().Err(err).Str("user_id", t.userID.String()).Str("badge", string(id)).Msg("failed to record achievement remotely")
		} else {
			log.Info().Str("user_id", t.userID.String()).Str("badge", string(id)).Msg("achievement unlocked")
		}
		cancel()
	}

	if err := t.saveBadges(ctx); err != nil {
		log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("failed to persist badges locally")
	}
	return unlocked
}

// EvaluateBadges unlocks any badge whose requirement is met by the current
// state. Calling it again without changes unlocks nothing.
func (t *Tracker) EvaluateBadges(ctx context.Context) []model.BadgeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unlockBadges(ctx)
}
