package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Content sources.
const (
	SourceEmbedded = "embedded" // Packages compiled into the binary
	SourceFile     = "file"     // Packages under DataDir
	SourceRedis    = "redis"    // Packages published to Redis
)

type Config struct {
	Environment    string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName   string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string `env:"LOG_FILE"` // Empty discards console logs
	DataDir        string `env:"DATA_DIR" envDefault:"./data/packages"`
	ContentSource  string `env:"CONTENT_SOURCE" envDefault:"embedded"`
	ContentPackage string `env:"CONTENT_PACKAGE" envDefault:"mystery_manor"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	PlayerName     string `env:"PLAYER_NAME"`

	LogLevel slog.Level `env:"-"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	cfg.ContentSource = strings.ToLower(cfg.ContentSource)

	switch cfg.ContentSource {
	case SourceEmbedded, SourceFile, SourceRedis:
	default:
		return nil, fmt.Errorf("invalid CONTENT_SOURCE %q: want %s, %s or %s", cfg.ContentSource, SourceEmbedded, SourceFile, SourceRedis)
	}
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
