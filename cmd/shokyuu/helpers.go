package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/config"
	"github.com/at-ishikawa/shokyuu/internal/database"
	"github.com/at-ishikawa/shokyuu/internal/logging"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
	"github.com/at-ishikawa/shokyuu/schemas"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// loadConfigAndLogger loads the configuration and builds the logger, honoring --debug.
func loadConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logCfg := cfg.Log
	if debugMode {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("logging.New() > %w", err)
	}
	return cfg, logger, nil
}

func newCatalog(cfg *config.Config) (*vocabulary.Catalog, error) {
	reader, err := vocabulary.NewReader(cfg.Lessons.Directories)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.NewReader() > %w", err)
	}
	return vocabulary.NewCatalog(reader, vocabulary.NewCustomDeckStore(cfg.Lessons.CustomDecksFile)), nil
}

// openReviewStore returns the store for the backend and a function that releases it.
func openReviewStore(ctx context.Context, cfg *config.Config, backend string) (review.Store, func() error, error) {
	noop := func() error { return nil }
	switch backend {
	case config.ReviewBackendFile:
		return review.NewFileStore(cfg.Review.File), noop, nil
	case config.ReviewBackendSQLite:
		db, err := database.OpenSQLite(cfg.Review.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("database.OpenSQLite() > %w", err)
		}
		if _, err := database.Migrate(ctx, db, schemas.Migrations); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
		}
		return review.NewSQLStore(db, review.LocalOwner), db.Close, nil
	case config.ReviewBackendRemote:
		if cfg.Review.RemoteURL == "" {
			return nil, nil, fmt.Errorf("review.remote_url is required for the remote backend")
		}
		return review.NewRemoteStore(nil, cfg.Review.RemoteURL, cfg.Review.RemoteToken), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown review backend: %s", backend)
	}
}
