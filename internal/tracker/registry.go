package tracker

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/Nixie-Tech-LLC/salah/internal/kv"
)

// LocalFactory returns the local store of one user.
type LocalFactory func(userID uuid.UUID) kv.Store

// Registry lazily creates, loads and caches one Tracker per user.
type Registry struct {
	mu       sync.RWMutex
	trackers map[uuid.UUID]*Tracker
	loading  singleflight.Group
	local    LocalFactory
	deps     Deps
}

func NewRegistry(local LocalFactory, deps Deps) *Registry {
	return &Registry{
		trackers: make(map[uuid.UUID]*Tracker),
		local:    local,
		deps:     deps,
	}
}

// Get returns the user's tracker, loading it on first use. Concurrent first
// requests for the same user share a single load.
func (r *Registry) Get(ctx context.Context, userID uuid.UUID) (*Tracker, error) {
	if t, ok := r.lookup(userID); ok {
		if err := t.RefreshDay(ctx); err != nil {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to refresh streak for a new day")
		}
		return t, nil
	}

	v, err, _ := r.loading.Do(userID.String(), func() (any, error) {
		if t, ok := r.lookup(userID); ok {
			return t, nil
		}
		t := New(userID, r.local(userID), r.deps)
		if err := t.Load(ctx); err != nil {
			return nil, err
		}
		t.SyncCloud(ctx)

		r.mu.Lock()
		r.trackers[userID] = t
		r.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Tracker), nil
}

func (r *Registry) lookup(userID uuid.UUID) (*Tracker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trackers[userID]
	return t, ok
}

// Resync pulls cloud settings and achievements into the user's tracker when
// it is loaded. An unloaded tracker syncs on its first Get anyway.
func (r *Registry) Resync(ctx context.Context, userID uuid.UUID) {
	if t, ok := r.lookup(userID); ok {
		t.SyncCloud(ctx)
	}
}

// Each calls fn for every loaded tracker.
func (r *Registry) Each(fn func(*Tracker)) {
	r.mu.RLock()
	list := make([]*Tracker, 0, len(r.trackers))
	for _, t := range r.trackers {
		list = append(list, t)
	}
	r.mu.RUnlock()

	for _, t := range list {
		fn(t)
	}
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trackers)
}
