package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// writes one status, overwriting any earlier mark for the same user/date/prayer.
func (s *pgStore) UpsertPrayer(ctx context.Context, rec model.PrayerRecord) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO prayers (user_id, date, prayer_name, status, updated_at)
	VALUES ($1, $2::date, $3, $4, now())
	ON CONFLICT (user_id, date, prayer_name)
	DO UPDATE SET status = EXCLUDED.status, updated_at = now();
	`, rec.UserID, rec.Date, rec.PrayerName, rec.Status)
	if err != nil {
		log.Error().Err(err).
			Str("user_id", rec.UserID.String()).
			Str("date", rec.Date).
			Str("prayer", rec.PrayerName).
			Msg("UpsertPrayer failed")
	}
	return err
}

func (s *pgStore) ListPrayers(ctx context.Context, userID uuid.UUID, date string) ([]model.PrayerRecord, error) {
	var out []model.PrayerRecord
	err := s.db.SelectContext(ctx, &out, `
	SELECT user_id, to_char(date, 'YYYY-MM-DD') AS date, prayer_name, status
	  FROM prayers
	 WHERE user_id = $1 AND date = $2::date
	 ORDER BY prayer_name;
	`, userID, date)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("date", date).Msg("ListPrayers failed")
		return nil, err
	}
	return out, nil
}
