package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/clock"
	"github.com/Nixie-Tech-LLC/salah/internal/kv"
	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/notify"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
	"github.com/Nixie-Tech-LLC/salah/internal/storage"
)

// RemoteStore is the hosted row store. db.Store satisfies it.
type RemoteStore interface {
	UpsertPrayer(ctx context.Context, rec model.PrayerRecord) error
	ListPrayers(ctx context.Context, userID uuid.UUID, date string) ([]model.PrayerRecord, error)
	InsertAchievement(ctx context.Context, userID uuid.UUID, badge model.BadgeID) error
	ListAchievements(ctx context.Context, userID uuid.UUID) ([]model.BadgeID, error)
	GetPrayerSettings(ctx context.Context, userID uuid.UUID) (*model.SettingsPatch, error)
	UpdatePrayerSettings(ctx context.Context, userID uuid.UUID, settings model.Settings) error
}

// Deps are the collaborators shared by every tracker.
type Deps struct {
	Clock    clock.Clock
	Resolver *prayer.Resolver
	Remote   RemoteStore
	Notifier notify.Notifier
	Backups  storage.Storage // optional

	// SyncTimeout bounds each remote call; zero means no local bound.
	SyncTimeout time.Duration
}

// Tracker owns one user's prayer history, streak, settings and badges.
// Every exported method runs as a critical section: marks, sweeps and
// refreshes never interleave.
type Tracker struct {
	mu     sync.Mutex
	userID uuid.UUID
	local  kv.Store
	deps   Deps

	history  model.History
	streak   model.StreakState
	settings model.Settings
	earned   model.EarnedBadges
	newBadge model.BadgeID
	loaded   bool
}

func New(userID uuid.UUID, local kv.Store, deps Deps) *Tracker {
	if deps.Clock == nil {
		deps.Clock = clock.Real{}
	}
	if deps.Resolver == nil {
		deps.Resolver = prayer.NewResolver(prayer.DefaultZone)
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	return &Tracker{
		userID:   userID,
		local:    local,
		deps:     deps,
		history:  model.History{},
		settings: model.DefaultSettings(),
		earned:   model.NewEarnedBadges(),
	}
}

func (t *Tracker) UserID() uuid.UUID { return t.userID }

func (t *Tracker) today() (string, time.Time) {
	now := t.deps.Clock.Now()
	return t.deps.Resolver.Today(now), now
}

func (t *Tracker) remoteCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if t.deps.SyncTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.deps.SyncTimeout)
}

// Load reads local state, applies the lazy streak reset and runs one auto-miss sweep.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	history := model.History{}
	if err := t.readJSON(ctx, kv.KeyHistory, &history); err != nil {
		return err
	}
	current, err := t.readInt(ctx, kv.KeyStreak)
	if err != nil {
		return err
	}
	longest, err := t.readInt(ctx, kv.KeyLongestStreak)
	if err != nil {
		return err
	}
	last, _, err := t.local.Get(ctx, kv.KeyLastCompleted)
	if err != nil {
		return fmt.Errorf("read %s: %w", kv.KeyLastCompleted, err)
	}

	var patch model.SettingsPatch
	if err := t.readJSON(ctx, kv.KeySettings, &patch); err != nil {
		return err
	}
	settings := model.DefaultSettings().Apply(patch)
	if err := settings.Validate(); err != nil {
		log.Warn().Err(err).Str("user_id", t.userID.String()).Msg("stored settings invalid, using defaults")
		settings = model.DefaultSettings()
	}

	var badges []model.BadgeID
	if err := t.readJSON(ctx, kv.KeyBadges, &badges); err != nil {
		return err
	}

	if longest < current {
		longest = current
	}
	t.history = history
	t.streak = model.StreakState{Current: current, Longest: longest, LastCompletedDate: last}
	t.settings = settings
	for _, id := range badges {
		t.earned.Add(id)
	}

	if err := t.resetLapsedLocked(ctx); err != nil {
		return err
	}
	t.loaded = true

	return t.sweepLocked(ctx)
}

// RefreshDay re-applies the lazy streak reset for the current date. Cached
// trackers outlive a day, so the registry and the sweeper call it.
func (t *Tracker) RefreshDay(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return nil
	}
	return t.resetLapsedLocked(ctx)
}

func (t *Tracker) resetLapsedLocked(ctx context.Context) error {
	today, _ := t.today()
	s, reset := prayer.ResetLapsedStreak(t.streak, today)
	if !reset {
		return nil
	}
	log.Info().
		Str("user_id", t.userID.String()).
		Str("last_completed", t.streak.LastCompletedDate).
		Int("was", t.streak.Current).
		Msg("streak lapsed, resetting")
	prev := t.streak
	t.streak = s
	if err := t.local.Set(ctx, kv.KeyStreak, "0"); err != nil {
		t.streak = prev
		return fmt.Errorf("persist streak reset: %w", err)
	}
	return nil
}

func (t *Tracker) readJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := t.local.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Warn().Err(err).Str("key", key).Str("user_id", t.userID.String()).Msg("ignoring unreadable local value")
	}
	return nil
}

func (t *Tracker) readInt(ctx context.Context, key string) (int, error) {
	raw, ok, err := t.local.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Warn().Str("key", key).Str("value", raw).Msg("ignoring unreadable counter")
		return 0, nil
	}
	return n, nil
}

func (t *Tracker) saveHistory(ctx context.Context) error {
	blob, err := json.Marshal(t.history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return t.local.Set(ctx, kv.KeyHistory, string(blob))
}

func (t *Tracker) saveStreak(ctx context.Context) error {
	if err := t.local.Set(ctx, kv.KeyStreak, strconv.Itoa(t.streak.Current)); err != nil {
		return err
	}
	if err := t.local.Set(ctx, kv.KeyLongestStreak, strconv.Itoa(t.streak.Longest)); err != nil {
		return err
	}
	return t.local.Set(ctx, kv.KeyLastCompleted, t.streak.LastCompletedDate)
}

func (t *Tracker) saveSettings(ctx context.Context) error {
	blob, err := json.Marshal(t.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return t.local.Set(ctx, kv.KeySettings, string(blob))
}

func (t *Tracker) saveBadges(ctx context.Context) error {
	blob, err := json.Marshal(t.earned.List())
	if err != nil {
		return fmt.Errorf("encode badges: %w", err)
	}
	return t.local.Set(ctx, kv.KeyBadges, string(blob))
}
