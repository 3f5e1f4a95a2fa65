package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/eduplay/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                    ":8080",
		DBPath:                  "test.db",
		LogLevel:                "INFO",
		ActivityFeedSize:        20,
		MathRoundDelay:          600 * time.Millisecond,
		WordRoundDelay:          800 * time.Millisecond,
		DefaultLeaderboardEntry: 1,
		SchedulerWorkers:        1,
		SchedulerQueueSize:      16,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
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
	cfg.DBPath = "  "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug lowercase", level: "debug"},
		{name: "warn", level: "WARN"},
		{name: "error", level: "ERROR"},
		{name: "invalid", level: "LOUD", wantErr: true},
		{name: "empty", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_NegativeDelays(t *testing.T) {
	cfg := validConfig()
	cfg.MathRoundDelay = -time.Millisecond
	cfg.WordRoundDelay = -time.Millisecond

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MATH_ROUND_DELAY_MS")
	assert.Contains(t, err.Error(), "WORD_ROUND_DELAY_MS")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID"}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "ACTIVITY_FEED_SIZE")
	assert.Contains(t, errStr, "DEFAULT_LEADERBOARD_ENTRY")
	assert.Contains(t, errStr, "SCHEDULER_WORKERS")
	assert.Contains(t, errStr, "SCHEDULER_QUEUE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("WORD_ROUND_DELAY_MS", "1000")
	t.Setenv("ACTIVITY_FEED_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, time.Second, cfg.WordRoundDelay)
	assert.Equal(t, 20, cfg.ActivityFeedSize)
}
