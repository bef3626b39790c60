package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/sportshub/internal/repositories"
	"github.com/desertthunder/sportshub/internal/services"
	"github.com/desertthunder/sportshub/internal/session"
	"github.com/desertthunder/sportshub/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	config.ApplyEnv()
	shared.SetLogLevel(logger, shared.ParseLogLevel(config.Log.Level))

	opts := RunnerOpts{
		Config: config,
		Client: services.NewClient(services.NewAPIServiceFromConfig(config.API, logger)),
		Logger: logger,
	}

	db, err := shared.OpenStorage(context.Background(), config.Storage)
	if err != nil {
		logger.Warn("local storage unavailable, session will not persist", "error", err)
		opts.Persistence = session.NewMemoryPersistence()
	} else {
		opts.Persistence = repositories.NewLocalStorage(db)
		opts.Cache = repositories.NewFavoritesCache(db)
	}

	runner := NewRunner(opts)
	err = runner.app().Run(context.Background(), os.Args)
	if db != nil {
		db.Close()
	}

	switch {
	case err == nil:
	case errors.Is(err, shared.ErrNotImplemented):
		logger.Warn("not implemented")
	case errors.Is(err, shared.ErrCancelled):
		logger.Info("cancelled")
	default:
		logger.Fatalf("%v", err)
	}
}
