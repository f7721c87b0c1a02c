package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env  string // "local", "production"
	Port string

	RedisURL  string
	RedisPass string
	RedisDB   int

	JWTSecret  string
	SessionTTL time.Duration

	// Round timing, fixed at process start.
	RoundDuration time.Duration
	GuardDuration time.Duration

	// PlayLogPath is the sqlite file for the per-bet audit log.
	// Empty disables the log.
	PlayLogPath string
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("ENV", "local"),
		Port:        getEnv("PORT", "8080"),
		RedisURL:    getEnv("REDIS_URL", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		SessionTTL:  24 * time.Hour,
		PlayLogPath: getEnv("PLAYLOG_PATH", "casino.db"),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
	}
	cfg.RedisDB = redisDB

	roundSeconds, err := strconv.Atoi(getEnv("ROUND_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROUND_SECONDS: %v", err)
	}
	guardSeconds, err := strconv.Atoi(getEnv("GUARD_SECONDS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid GUARD_SECONDS: %v", err)
	}
	if roundSeconds <= 0 || guardSeconds < 0 {
		return nil, fmt.Errorf("round/guard seconds out of range: %d/%d", roundSeconds, guardSeconds)
	}
	if guardSeconds >= roundSeconds {
		return nil, fmt.Errorf("GUARD_SECONDS (%d) must be shorter than ROUND_SECONDS (%d)", guardSeconds, roundSeconds)
	}

	cfg.RoundDuration = time.Duration(roundSeconds) * time.Second
	cfg.GuardDuration = time.Duration(guardSeconds) * time.Second

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
