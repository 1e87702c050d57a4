package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// Backup is the JSON export written before a full reset.
type Backup struct {
	UserID     string            `json:"user_id"`
	ExportedAt time.Time         `json:"exported_at"`
	History    model.History     `json:"history"`
	Streak     model.StreakState `json:"streak"`
	Settings   model.Settings    `json:"settings"`
	Badges     []model.BadgeID   `json:"badges"`
}

// Reset wipes the user's local data and restores default settings. A backup
// is exported first when backup storage is configured; its location is
// returned, empty when no backup was taken. Earned badges are kept.
func (t *Tracker) Reset(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	location := ""
	if t.deps.Backups != nil {
		blob, err := json.Marshal(Backup{
			UserID:     t.userID.String(),
			ExportedAt: t.deps.Clock.Now().UTC(),
			History:    t.history,
			Streak:     t.streak,
			Settings:   t.settings,
			Badges:     t.earned.List(),
		})
		if err == nil {
			location, err = t.deps.Backups.SaveBackup(ctx, t.userID.String(), blob)
		}
		if err != nil {
			log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("backup before reset failed")
			location = ""
		}
	}

	if err := t.local.Clear(ctx); err != nil {
		return location, fmt.Errorf("clear local data: %w", err)
	}

	t.history = model.History{}
	t.streak = model.StreakState{}
	t.settings = model.DefaultSettings()
	t.newBadge = ""
	if err := t.saveBadges(ctx); err != nil {
		log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("failed to persist badges after reset")
	}

	if err := t.deps.Notifier.CancelAll(ctx, t.userID); err != nil {
		log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("failed to cancel notifications")
	}
	log.Info().Str("user_id", t.userID.String()).Str("backup", location).Msg("prayer data reset")
	return location, nil
}
