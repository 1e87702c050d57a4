package model

import (
	"time"

	"github.com/google/uuid"
)

// PrayerRecord is one row of the remote prayers table, unique on (user_id, date, prayer_name).
type PrayerRecord struct {
	UserID     uuid.UUID    `db:"user_id"     json:"user_id"`
	Date       string       `db:"date"        json:"date"`
	PrayerName string       `db:"prayer_name" json:"prayer_name"`
	Status     PrayerStatus `db:"status"      json:"status"`
}

type Achievement struct {
	UserID    uuid.UUID `db:"user_id"    json:"user_id"`
	BadgeType BadgeID   `db:"badge_type" json:"badge_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
