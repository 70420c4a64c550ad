// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/zizouhuweidi/trivia/internal/database"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds every setting the API needs at startup
type Config struct {
	Port           string
	LogLevel       string
	RequestTimeout time.Duration

	StoreDriver string
	Migrate     bool
	Seed        bool
	Postgres    *database.PostgresConfig

	RedisEnabled     bool
	Redis            *database.RedisConfig
	CategoryCacheTTL time.Duration
	WriteRateLimit   int
	WriteRateWindow  time.Duration
}

// Load reads a .env file if present, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	redisCfg, err := database.NewRedisConfig()
	if err != nil {
		return nil, err
	}

	p := parser{}
	cfg := &Config{
		Port:           getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: p.duration("REQUEST_TIMEOUT", 5*time.Second),

		StoreDriver: getEnv("STORE_DRIVER", DriverPostgres),
		Migrate:     p.boolean("DB_MIGRATE", true),
		Seed:        p.boolean("DB_SEED", false),
		Postgres:    database.NewPostgresConfig(),

		RedisEnabled:     p.boolean("REDIS_ENABLED", false),
		Redis:            redisCfg,
		CategoryCacheTTL: p.duration("CATEGORY_CACHE_TTL", 5*time.Minute),
		WriteRateLimit:   p.integer("WRITE_RATE_LIMIT", 60),
		WriteRateWindow:  p.duration("WRITE_RATE_WINDOW", time.Minute),
	}
	if p.err != nil {
		return nil, p.err
	}

	switch cfg.StoreDriver {
	case DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want %s or %s", cfg.StoreDriver, DriverPostgres, DriverMemory)
	}

	return cfg, nil
}

// parser remembers the first malformed variable
type parser struct {
	err error
}

func (p *parser) boolean(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) integer(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return v
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
