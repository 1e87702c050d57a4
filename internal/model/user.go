package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Profile is the public profile row; PrayerSettings is the raw prayer_settings blob.
type Profile struct {
	ID             uuid.UUID       `db:"id"              json:"id"`
	Username       *string         `db:"username"        json:"username"`
	FullName       *string         `db:"full_name"       json:"full_name,omitempty"`
	AvatarURL      *string         `db:"avatar_url"      json:"avatar_url,omitempty"`
	PrayerSettings json.RawMessage `db:"prayer_settings" json:"prayer_settings,omitempty"`
	UpdatedAt      time.Time       `db:"updated_at"      json:"updated_at"`
}

// ProfileStatus mirrors the states a client can be in after fetching its profile.
type ProfileStatus string

const (
	ProfileSuccess     ProfileStatus = "success"
	ProfileMissing     ProfileStatus = "missing"
	ProfilePolicyError ProfileStatus = "policy_error"
	ProfileError       ProfileStatus = "error"
)

// ProfileUpdate changes the editable profile fields; nil leaves a field as is.
type ProfileUpdate struct {
	Username  *string
	FullName  *string
	AvatarURL *string
}

// Empty reports whether the update changes nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Username == nil && u.FullName == nil && u.AvatarURL == nil
}
