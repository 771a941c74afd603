package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhartley/sqeprep/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:              ":8080",
		DBPath:            "test.db",
		LogLevel:          "INFO",
		WorkerCount:       2,
		WorkerQueueSize:   64,
		ChallengeSize:     10,
		ChallengeRotation: "00:00",
		SessionDefault:    20,
		SessionMax:        100,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_NonPositiveWorkers(t *testing.T) {
	cfg := validConfig()
	cfg.WorkerCount = 0

	assert.Error(t, cfg.Validate())
}

func TestValidate_SessionDefaultAboveMax(t *testing.T) {
	cfg := validConfig()
	cfg.SessionDefault = 200

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_DEFAULT")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10, cfg.ChallengeSize)
	assert.Equal(t, "00:00", cfg.ChallengeRotation)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("CHALLENGE_SIZE", "15")
	t.Setenv("WORKER_COUNT", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 15, cfg.ChallengeSize)
	// Unparseable values fall back to the default.
	assert.Equal(t, 2, cfg.WorkerCount)
}
