package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// inserts a new user and an empty profile, returns the new user ID.
func (s *pgStore) CreateUser(ctx context.Context, email, hashedPassword string) (uuid.UUID, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowxContext(ctx, `
	INSERT INTO users (email, hashed_password, created_at, updated_at)
	VALUES ($1, $2, now(), now())
	RETURNING id;
	`, email, hashedPassword).Scan(&id)
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")
		return uuid.Nil, err
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO profiles (id, updated_at) VALUES ($1, now())
	ON CONFLICT (id) DO NOTHING;
	`, id); err != nil {
		log.Error().Err(err).Str("user_id", id.String()).Msg("failed to create profile")
		return uuid.Nil, err
	}

	return id, tx.Commit()
}

// fetches user by email. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, `
	SELECT id, email, hashed_password, created_at, updated_at
	FROM users
	WHERE email = $1;
	`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

// fetches a user by ID. returns nil, sql.ErrNoRows if not found.
func (s *pgStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, `
	SELECT id, email, hashed_password, created_at, updated_at
	FROM users
	WHERE id = $1;
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}
