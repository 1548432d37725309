package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	SaveDir  string     `env:"TRACKER_SAVE_DIR" envDefault:".saves"`
	Store    string     `env:"TRACKER_STORE" envDefault:"file"`
	DBPath   string     `env:"TRACKER_DB_PATH" envDefault:".saves/tracker.db"`
	Lang     string     `env:"TRACKER_LANG"`
	SysLang  string     `env:"LANG"`
	LogFile  string     `env:"TRACKER_LOG_FILE" envDefault:"tracker.log"`
	LogLevel slog.Level `env:"TRACKER_LOG_LEVEL" envDefault:"INFO"`

	// Recaps are disabled without a key.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	RecapModel   string `env:"TRACKER_RECAP_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Store != StoreFile && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("TRACKER_STORE must be %q or %q, got %q", StoreFile, StoreSQLite, cfg.Store)
	}
	return &cfg, nil
}

// LanguagePrefs lists the locale preferences, most specific first.
func (c *Config) LanguagePrefs() []string {
	return []string{c.Lang, c.SysLang}
}

// RecapEnabled reports whether a Gemini key is configured.
func (c *Config) RecapEnabled() bool {
	return c.GeminiAPIKey != ""
}

// OpenLog creates the slog logger writing to the log file. The terminal
// belongs to the UI, so nothing is logged to stdout. The returned file must
// be closed by the caller.
func (c *Config) OpenLog() (*slog.Logger, *os.File, error) {
	if dir := filepath.Dir(c.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: c.LogLevel}))
	return logger, f, nil
}
