package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/salah/internal/config"
	"github.com/Nixie-Tech-LLC/salah/internal/kv"
	"github.com/Nixie-Tech-LLC/salah/internal/notify"
	"github.com/Nixie-Tech-LLC/salah/internal/storage"
	"github.com/Nixie-Tech-LLC/salah/internal/tracker"
)

// InitStorage selects and returns the configured backup backend
func InitStorage(cfg *config.Config) storage.Storage {
	if cfg.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesCDNURL,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", cfg.SpacesCDNURL).Msg("using DigitalOcean Spaces for backups")
		return spacesStorage
	}

	log.Info().Str("dir", cfg.BackupDir).Msg("using local file storage for backups")
	return storage.NewLocalStorage(cfg.BackupDir)
}

// InitLocalStore returns the per-user key-value store factory: Redis when
// REDIS_ADDRESS is set, process memory otherwise.
func InitLocalStore(ctx context.Context, cfg *config.Config) tracker.LocalFactory {
	if cfg.RedisAddress == "" {
		log.Warn().Msg("REDIS_ADDRESS not set, prayer state is kept in memory only")
		return func(uuid.UUID) kv.Store { return kv.NewMemoryStore() }
	}

	rdb, err := kv.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis init")
	}
	return func(userID uuid.UUID) kv.Store {
		return kv.NewRedisStore(rdb, "salah:"+userID.String())
	}
}

// InitNotifier connects the MQTT notifier when a broker is configured.
func InitNotifier(cfg *config.Config) (notify.Notifier, func()) {
	if cfg.MQTTBrokerURL == "" {
		log.Warn().Msg("MQTT_BROKER_URL not set, notifications disabled")
		return notify.Nop{}, func() {}
	}

	n, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, fmt.Sprintf("salah-server-%s", uuid.NewString()[:8]))
	if err != nil {
		log.Error().Err(err).Msg("MQTT unavailable, notifications disabled")
		return notify.Nop{}, func() {}
	}
	return n, n.Close
}
