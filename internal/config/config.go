package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	WorkerCount       int
	WorkerQueueSize   int
	SeedFile          string
	ChallengeSize     int
	ChallengeRotation string
	SessionDefault    int
	SessionMax        int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:sqeprep.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		WorkerCount:       envIntOr("WORKER_COUNT", 2),
		WorkerQueueSize:   envIntOr("WORKER_QUEUE_SIZE", 64),
		SeedFile:          envOr("SEED_FILE", ""),
		ChallengeSize:     envIntOr("CHALLENGE_SIZE", 10),
		ChallengeRotation: envOr("CHALLENGE_ROTATION", "00:00"),
		SessionDefault:    envIntOr("SESSION_DEFAULT", 20),
		SessionMax:        envIntOr("SESSION_MAX", 100),
	}
}

// Validate checks the configuration for values the server cannot start with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	if c.WorkerQueueSize <= 0 {
		return fmt.Errorf("WORKER_QUEUE_SIZE must be positive, got %d", c.WorkerQueueSize)
	}
	if c.ChallengeSize <= 0 {
		return fmt.Errorf("CHALLENGE_SIZE must be positive, got %d", c.ChallengeSize)
	}
	if c.SessionDefault <= 0 || c.SessionDefault > c.SessionMax {
		return fmt.Errorf("SESSION_DEFAULT must be between 1 and SESSION_MAX (%d), got %d", c.SessionMax, c.SessionDefault)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
