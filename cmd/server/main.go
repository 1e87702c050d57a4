package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "time/tzdata"

	"github.com/Nixie-Tech-LLC/salah/internal/clock"
	"github.com/Nixie-Tech-LLC/salah/internal/config"
	"github.com/Nixie-Tech-LLC/salah/internal/db"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
	"github.com/Nixie-Tech-LLC/salah/internal/tracker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	// run pending migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(db.DB)

	resolver := prayer.NewResolver(cfg.ReferenceTimezone)
	log.Info().Str("zone", resolver.Location().String()).Bool("fallback", resolver.Fallback()).Msg("reference timezone")

	notifier, closeNotifier := InitNotifier(cfg)
	defer closeNotifier()

	registry := tracker.NewRegistry(InitLocalStore(ctx, cfg), tracker.Deps{
		Clock:       clock.Real{},
		Resolver:    resolver,
		Remote:      store,
		Notifier:    notifier,
		Backups:     InitStorage(cfg),
		SyncTimeout: cfg.SyncTimeout,
	})

	sweeper := tracker.NewSweeper(registry, cfg.SweepInterval)
	go sweeper.Start(ctx)
	defer sweeper.Stop()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, registry)

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Development() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
