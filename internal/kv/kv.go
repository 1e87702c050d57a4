package kv

import "context"

// Store is the local durable key-value store: string keys, JSON string values.
type Store interface {
	// Get returns ok=false when the key was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Clear removes every key of the store.
	Clear(ctx context.Context) error
}

// Keys recognised by the tracker.
const (
	KeyHistory       = "@prayer_streak_data"
	KeyStreak        = "@prayer_streak_count"
	KeyLongestStreak = "@prayer_streak_longest"
	KeyLastCompleted = "@prayer_streak_last_date"
	KeySettings      = "@prayer_streak_settings_v2"
	KeyBadges        = "@prayer_streak_badges"
)
