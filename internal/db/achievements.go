package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

func (s *pgStore) InsertAchievement(ctx context.Context, userID uuid.UUID, badge model.BadgeID) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO achievements (user_id, badge_type, created_at)
	VALUES ($1, $2, now())
	ON CONFLICT DO NOTHING;
	`, userID, badge)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("badge", string(badge)).Msg("InsertAchievement failed")
	}
	return err
}

func (s *pgStore) ListAchievements(ctx context.Context, userID uuid.UUID) ([]model.BadgeID, error) {
	var out []model.BadgeID
	err := s.db.SelectContext(ctx, &out, `
	SELECT DISTINCT badge_type
	  FROM achievements
	 WHERE user_id = $1
	 ORDER BY badge_type;
	`, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("ListAchievements failed")
		return nil, err
	}
	return out, nil
}
