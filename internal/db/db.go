package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	DB *sqlx.DB
)

// opens a PostgreSQL connection and assigns it to DB.
func Init(databaseURL string) error {
	const maxRetries = 10
	const retryInterval = 2 * time.Second
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		DB, err = sqlx.Connect("postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		time.Sleep(retryInterval)
	}

	return fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// RunMigrations applies every "*.up.sql" file in migrationsPath that is not
// yet recorded in schema_migrations, in name order, each in its own
// transaction. "*.down.sql" files are ignored.
func RunMigrations(migrationsPath string) error {
	files, err := filepath.Glob(filepath.Join(migrationsPath, "*.up.sql"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list up migrations")
		return fmt.Errorf("failed to glob migrations: %w", err)
	}
	sort.Strings(files)

	if _, err := DB.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var done []string
	if err := DB.Select(&done, `SELECT name FROM schema_migrations;`); err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, name := range done {
		applied[name] = true
	}

	count := 0
	for _, file := range files {
		name := filepath.Base(file)
		if applied[name] {
			continue
		}
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("failed to read migration file")
			return fmt.Errorf("could not read migration %q: %w", file, err)
		}
		if err := applyMigration(name, string(sqlBytes)); err != nil {
			return err
		}
		log.Debug().Str("migration", name).Msg("migration applied")
		count++
	}

	log.Info().Int("applied", count).Int("total", len(files)).Msg("database schema up to date")
	return nil
}

func applyMigration(name, stmt string) error {
	tx, err := DB.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if strings.TrimSpace(stmt) != "" {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("error executing migration %q: %w", name, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES ($1);`, name); err != nil {
		return fmt.Errorf("record migration %q: %w", name, err)
	}
	return tx.Commit()
}
