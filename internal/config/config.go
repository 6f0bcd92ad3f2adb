// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable is malformed, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the collector service.
type Config struct {
	Port        string
	DatabaseURL string // optional — empty disables the Postgres sink and keyword persistence
	RedisURL    string // optional — empty falls back to the SQLite cache store

	CacheDBPath   string // SQLite fallback for the durable dedup tier
	CacheCapacity int    // memory-tier LRU size
	CacheTTLDays  int    // durable-tier entry lifetime, 0 = no expiry

	MaintenanceIntervalHours int // how often the cron maintenance job fires
	KeywordBatchSize         int // keywords per collection cycle

	FilterConfigPath string   // optional YAML overlay for the relevance filter
	Keywords         []string // seed keywords for the yield tracker
	Source           string   // collector tag stored with durable cache entries
}

// Load reads .env (if present) and environment variables, returning a
// validated Config.
func Load() (*Config, error) {
	// .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8085"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		CacheDBPath:   getEnv("CACHE_DB_PATH", "data/seen_posts.db"),
		CacheCapacity: 4096,
		CacheTTLDays:  30,

		MaintenanceIntervalHours: 6,
		KeywordBatchSize:         5,

		FilterConfigPath: os.Getenv("FILTER_CONFIG_PATH"),
		Source:           getEnv("SOURCE", "linkedin"),
	}

	var err error
	if cfg.CacheCapacity, err = positiveInt("CACHE_CAPACITY", cfg.CacheCapacity); err != nil {
		return nil, err
	}
	if cfg.CacheTTLDays, err = nonNegativeInt("CACHE_TTL_DAYS", cfg.CacheTTLDays); err != nil {
		return nil, err
	}
	if cfg.MaintenanceIntervalHours, err = positiveInt("MAINTENANCE_INTERVAL_HOURS", cfg.MaintenanceIntervalHours); err != nil {
		return nil, err
	}
	if cfg.KeywordBatchSize, err = positiveInt("KEYWORD_BATCH_SIZE", cfg.KeywordBatchSize); err != nil {
		return nil, err
	}

	if raw := os.Getenv("KEYWORDS"); raw != "" {
		for _, kw := range strings.Split(raw, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				cfg.Keywords = append(cfg.Keywords, kw)
			}
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func positiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, s)
	}
	return v, nil
}

func nonNegativeInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, s)
	}
	return v, nil
}
