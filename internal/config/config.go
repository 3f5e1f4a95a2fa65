package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                    string
	DBPath                  string
	LogLevel                string
	ActivityFeedSize        int
	MathRoundDelay          time.Duration
	WordRoundDelay          time.Duration
	DefaultLeaderboardEntry int64
	SchedulerWorkers        int
	SchedulerQueueSize      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:                    envOr("ADDR", ":8080"),
		DBPath:                  envOr("DB_PATH", "file:eduplay.db"),
		LogLevel:                envOr("LOG_LEVEL", "INFO"),
		ActivityFeedSize:        envIntOr("ACTIVITY_FEED_SIZE", 20),
		MathRoundDelay:          time.Duration(envIntOr("MATH_ROUND_DELAY_MS", 600)) * time.Millisecond,
		WordRoundDelay:          time.Duration(envIntOr("WORD_ROUND_DELAY_MS", 800)) * time.Millisecond,
		DefaultLeaderboardEntry: int64(envIntOr("DEFAULT_LEADERBOARD_ENTRY", 1)),
		SchedulerWorkers:        envIntOr("SCHEDULER_WORKERS", 1),
		SchedulerQueueSize:      envIntOr("SCHEDULER_QUEUE_SIZE", 16),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.ActivityFeedSize <= 0 {
		errs = append(errs, fmt.Errorf("ACTIVITY_FEED_SIZE must be positive (got %d)", c.ActivityFeedSize))
	}
	if c.MathRoundDelay < 0 {
		errs = append(errs, fmt.Errorf("MATH_ROUND_DELAY_MS cannot be negative (got %v)", c.MathRoundDelay))
	}
	if c.WordRoundDelay < 0 {
		errs = append(errs, fmt.Errorf("WORD_ROUND_DELAY_MS cannot be negative (got %v)", c.WordRoundDelay))
	}
	if c.DefaultLeaderboardEntry <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_LEADERBOARD_ENTRY must be positive (got %d)", c.DefaultLeaderboardEntry))
	}
	if c.SchedulerWorkers <= 0 {
		errs = append(errs, fmt.Errorf("SCHEDULER_WORKERS must be positive (got %d)", c.SchedulerWorkers))
	}
	if c.SchedulerQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("SCHEDULER_QUEUE_SIZE must be positive (got %d)", c.SchedulerQueueSize))
	}
	return errors.Join(errs...)
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
