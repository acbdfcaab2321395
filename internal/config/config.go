// Package config loads the demo server settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string
	// Key signs session cookies and seals stored trees. Nil means a random
	// key per process.
	Key      []byte
	LogLevel slog.Level
	Session  SessionConfig
	Redis    RedisConfig
}

type SessionConfig struct {
	TTL       time.Duration
	CacheSize int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether trees should be stored in Redis.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// IsLocal reports whether the server runs in a development environment.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Env, "local")
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := firstNonEmpty(strings.TrimSpace(os.Getenv("PORT")), ":8080")
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	cfg := &Config{
		Port: port,
		Env:  firstNonEmpty(strings.TrimSpace(os.Getenv("APP_ENV")), "local"),
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
	}

	var err error
	if cfg.Key, err = loadKey(os.Getenv("HXTREE_KEY")); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = loadLevel(os.Getenv("LOG_LEVEL")); err != nil {
		return nil, err
	}
	if cfg.Session.TTL, err = loadDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Session.CacheSize, err = loadInt("SESSION_CACHE_SIZE", 4096); err != nil {
		return nil, err
	}
	if cfg.Redis.DB, err = loadInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadKey accepts a 64 character hex string or a raw 32 byte string.
func loadKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return nil, nil
	case len(raw) == 64:
		key, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("HXTREE_KEY: %w", err)
		}
		return key, nil
	case len(raw) == 32:
		return []byte(raw), nil
	default:
		return nil, fmt.Errorf("HXTREE_KEY: want 32 bytes or 64 hex characters, got %d characters", len(raw))
	}
}

func loadLevel(raw string) (slog.Level, error) {
	var level slog.Level
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func loadDuration(name string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive", name)
	}
	return d, nil
}

func loadInt(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative", name)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
