// exposes a Store interface that is passed to the tracker and API layers
package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

type Store interface {
	// user functions
	CreateUser(ctx context.Context, email, hashedPassword string) (uuid.UUID, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// profile functions
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, u model.ProfileUpdate) error
	CompleteOnboarding(ctx context.Context, userID uuid.UUID, username string, settings model.Settings) error
	GetPrayerSettings(ctx context.Context, userID uuid.UUID) (*model.SettingsPatch, error)
	UpdatePrayerSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) error

	// prayer functions
	UpsertPrayer(ctx context.Context, rec model.PrayerRecord) error
	ListPrayers(ctx context.Context, userID uuid.UUID, date string) ([]model.PrayerRecord, error)

	// achievement functions
	InsertAchievement(ctx context.Context, userID uuid.UUID, badge model.BadgeID) error
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]model.BadgeID, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(db *sqlx.DB) Store {
	return &pgStore{db: db}
}
