package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// ErrPolicy marks a backend row-policy misconfiguration. Retrying the same
// query will not help, so callers should offer retry/sign-out only.
var ErrPolicy = errors.New("database policy error")

// ErrUsernameTaken is returned when another profile already holds the username.
var ErrUsernameTaken = errors.New("username already taken")

// ClassifyProfileError maps a profile fetch error onto the client-facing status.
func ClassifyProfileError(err error) model.ProfileStatus {
	switch {
	case err == nil:
		return model.ProfileSuccess
	case errors.Is(err, sql.ErrNoRows):
		return model.ProfileMissing
	case errors.Is(err, ErrPolicy), isPolicyMessage(err.Error()):
		return model.ProfilePolicyError
	default:
		return model.ProfileError
	}
}

func isPolicyMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "recursion") || strings.Contains(msg, "policy")
}

// fetches the profile row. returns sql.ErrNoRows when missing and wraps ErrPolicy
// when the backend reports a recursive or misconfigured row policy.
func (s *pgStore) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := s.db.GetContext(ctx, &p, `
	SELECT id, username, full_name, avatar_url, COALESCE(prayer_settings, 'null'::jsonb) AS prayer_settings, updated_at
	FROM profiles
	WHERE id = $1;
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to fetch profile")
		if isPolicyMessage(err.Error()) {
			return nil, fmt.Errorf("%w: %v", ErrPolicy, err)
		}
		return nil, err
	}
	return &p, nil
}

// returns the stored prayer_settings blob as a patch, or nil when unset.
func (s *pgStore) GetPrayerSettings(ctx context.Context, userID uuid.UUID) (*model.SettingsPatch, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `SELECT prayer_settings FROM profiles WHERE id = $1;`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get prayer settings")
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var patch model.SettingsPatch
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, fmt.Errorf("decode prayer_settings: %w", err)
	}
	return &patch, nil
}

func (s *pgStore) UpdatePrayerSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode prayer_settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
	UPDATE profiles
	SET prayer_settings = $2,
	updated_at = now()
	WHERE id = $1;
	`, userID, blob)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update prayer settings")
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// applies the non-nil fields of u. returns sql.ErrNoRows when the profile is missing.
func (s *pgStore) UpdateProfile(ctx context.Context, userID uuid.UUID, u model.ProfileUpdate) error {
	res, err := s.db.ExecContext(ctx, `
	UPDATE profiles
	SET username = COALESCE($2, username),
	full_name = COALESCE($3, full_name),
	avatar_url = COALESCE($4, avatar_url),
	updated_at = now()
	WHERE id = $1;
	`, userID, u.Username, u.FullName, u.AvatarURL)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update profile")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// stores the username and initial prayer settings chosen during onboarding,
// creating the profile row when it does not exist yet.
func (s *pgStore) CompleteOnboarding(ctx context.Context, userID uuid.UUID, username string, settings model.Settings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode prayer_settings: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
	INSERT INTO profiles (id, username, prayer_settings, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (id) DO UPDATE
	SET username = EXCLUDED.username,
	prayer_settings = EXCLUDED.prayer_settings,
	updated_at = now();
	`, userID, username, blob)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to save onboarding profile")
	}
	return err
}
