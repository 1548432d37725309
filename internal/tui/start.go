package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tatianab/spirit-tracker/internal/catalog"
	"github.com/tatianab/spirit-tracker/internal/config"
	"github.com/tatianab/spirit-tracker/internal/engine"
	"github.com/tatianab/spirit-tracker/internal/history"
	"github.com/tatianab/spirit-tracker/internal/i18n"
	"github.com/tatianab/spirit-tracker/internal/recap"
	"github.com/tatianab/spirit-tracker/internal/session"
	"github.com/tatianab/spirit-tracker/internal/storage"
)

// App is a fully wired tracker. Close releases everything Open acquired.
type App struct {
	Deps

	store   storage.RecordStore
	recap   *recap.Client
	logFile *os.File
}

// Open wires the tracker from cfg.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, logFile, err := cfg.OpenLog()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	app := &App{logFile: logFile}

	bundle, err := i18n.LoadEmbedded()
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("load locales: %w", err)
	}
	locale := bundle.Match(cfg.LanguagePrefs()...)
	tr := bundle.NewTranslator(locale)

	eng, err := engine.NewEngine(catalog.Default(), logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create engine: %w", err)
	}

	switch cfg.Store {
	case config.StoreSQLite:
		db, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.store = db
	default:
		app.store = storage.NewFileStore(cfg.SaveDir)
	}

	hist, err := history.Open(ctx, app.store, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	sess := session.New(eng, hist, session.WithTranslator(tr), session.WithLogger(logger))

	app.Deps = Deps{
		Session:    sess,
		History:    hist,
		Translator: tr,
		ExportDir:  cfg.SaveDir,
		Logger:     logger,
	}

	if cfg.RecapEnabled() {
		client, err := recap.NewClient(ctx, cfg.GeminiAPIKey, cfg.RecapModel, tr, locale)
		if err != nil {
			logger.Warn("recaps disabled", "error", err)
		} else {
			app.recap = client
			app.Recap = client
		}
	}

	logger.Info("tracker started", "locale", locale, "store", cfg.Store, "games", hist.Len(), "recaps", app.recap != nil)
	return app, nil
}

func (a *App) Close() {
	if a.Session != nil {
		a.Session.Close()
	}
	if a.recap != nil {
		a.recap.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.Logger != nil {
			a.Logger.Error("failed to close store", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// Run starts the UI on the wired dependencies.
func (a *App) Run() error {
	return Run(a.Deps)
}

// Start loads the configuration from the environment and runs the tracker.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	app, err := Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Run()
}
