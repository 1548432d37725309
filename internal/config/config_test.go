package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"TRACKER_SAVE_DIR", "TRACKER_STORE", "TRACKER_DB_PATH", "TRACKER_LANG", "TRACKER_LOG_FILE", "TRACKER_LOG_LEVEL", "GEMINI_API_KEY", "TRACKER_RECAP_MODEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.SaveDir != ".saves" || cfg.Store != StoreFile || cfg.DBPath != ".saves/tracker.db" {
		t.Errorf("Unexpected storage defaults %+v", cfg)
	}
	if cfg.LogFile != "tracker.log" || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Unexpected log defaults %q %v", cfg.LogFile, cfg.LogLevel)
	}
	if cfg.RecapEnabled() || cfg.RecapModel != "gemini-2.5-flash" {
		t.Errorf("Expected recaps disabled with the default model, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TRACKER_STORE", "sqlite")
	t.Setenv("TRACKER_LANG", "de-DE")
	t.Setenv("LANG", "en_US.UTF-8")
	t.Setenv("TRACKER_LOG_LEVEL", "DEBUG")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.LogLevel != slog.LevelDebug || !cfg.RecapEnabled() {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if prefs := cfg.LanguagePrefs(); prefs[0] != "de-DE" || prefs[1] != "en_US.UTF-8" {
		t.Errorf("Unexpected language preferences %v", prefs)
	}
}

func TestLoadConfigRejectsUnknownStore(t *testing.T) {
	t.Setenv("TRACKER_STORE", "redis")
	if _, err := LoadConfig(); err == nil || !strings.Contains(err.Error(), "TRACKER_STORE") {
		t.Errorf("Expected a store error, got %v", err)
	}
}

func TestOpenLog(t *testing.T) {
	cfg := &Config{LogFile: filepath.Join(t.TempDir(), "logs", "tracker.log"), LogLevel: slog.LevelInfo}
	logger, f, err := cfg.OpenLog()
	if err != nil {
		t.Fatalf("Failed to open log: %v", err)
	}
	logger.Info("hello", "round", 2)
	logger.Debug("hidden")
	f.Close()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("Failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello round=2") || strings.Contains(string(data), "hidden") {
		t.Errorf("Unexpected log contents %q", data)
	}
}
