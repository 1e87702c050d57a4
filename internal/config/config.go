package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	LogLevel       string
	DatabaseURL    string
	MigrationsPath string
	JWTSecret      string
	ServerAddress  string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	ReferenceTimezone string
	SweepInterval     time.Duration
	SyncTimeout       time.Duration

	BackupDir       string
	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

// Development reports whether APP_ENV is "development".
func (c *Config) Development() bool { return c.Environment == "development" }

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	jwt := os.Getenv("JWT_SECRET")
	if jwt == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	sweep, err := duration("SWEEP_INTERVAL", 60*time.Second)
	if err != nil {
		return nil, err
	}
	syncTimeout, err := duration("SYNC_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	useSpaces := false
	if raw := os.Getenv("USE_SPACES"); raw != "" {
		useSpaces, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("USE_SPACES: %w", err)
		}
	}

	cfg := &Config{
		Environment:    getenv("APP_ENV", "production"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		DatabaseURL:    dbURL,
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:      jwt,
		ServerAddress:  getenv("SERVER_ADDRESS", ":8080"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		ReferenceTimezone: getenv("REFERENCE_TIMEZONE", "Asia/Karachi"),
		SweepInterval:     sweep,
		SyncTimeout:       syncTimeout,

		BackupDir:       getenv("BACKUP_DIR", "./backups"),
		UseSpaces:       useSpaces,
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if cfg.UseSpaces && (cfg.SpacesBucket == "" || cfg.SpacesEndpoint == "") {
		return nil, fmt.Errorf("SPACES_BUCKET and SPACES_ENDPOINT are required when USE_SPACES is set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}
