package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultSweepInterval is how often pending prayers are checked for auto-miss.
const DefaultSweepInterval = 60 * time.Second

// Sweeper periodically runs SweepMissed on every loaded tracker.
type Sweeper struct {
	registry *Registry
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewSweeper(registry *Registry, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		registry: registry,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start blocks until ctx is done or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("starting auto-miss sweeper")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepAll(ctx)

		case <-s.stopChan:
			log.Info().Msg("stopping auto-miss sweeper")
			return

		case <-ctx.Done():
			log.Info().Msg("context cancelled, stopping auto-miss sweeper")
			return
		}
	}
}

func (s *Sweeper) SweepAll(ctx context.Context) {
	s.registry.Each(func(t *Tracker) {
		if err := t.RefreshDay(ctx); err != nil {
			log.Error().Err(err).Str("user_id", t.UserID().String()).Msg("streak refresh failed")
		}
		if err := t.SweepMissed(ctx); err != nil {
			log.Error().Err(err).Str("user_id", t.UserID().String()).Msg("auto-miss sweep failed")
		}
	})
}

func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}
