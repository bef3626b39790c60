package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when missing, then migrates (or with --rollback, rolls back) the local database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadOrCreateConfig(configPath)

	r.logger.Info("initializing database", "path", config.Storage.Path)
	db, err := shared.NewDatabase(config.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()
	shared.ConfigureDatabase(db, config.Storage.MaxOpenConns, config.Storage.MaxIdleConns)

	if cmd.Bool("rollback") {
		r.logger.Info("rolling back last migration")
		if err := shared.RollbackMigration(ctx, db); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		r.writePlain("✓ Rolled back the last migration on %s\n", config.Storage.Path)
	} else {
		r.logger.Info("running database migrations")
		if err := shared.RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		r.writePlain("✓ Ready: config %s, database %s\n", configPath, config.Storage.Path)
	}

	states, err := shared.MigrationStatus(ctx, db)
	if err != nil {
		return err
	}
	for _, s := range states {
		applied := "pending"
		if s.Applied() {
			applied = "applied " + s.AppliedAt.Local().Format(time.DateTime)
		}
		r.writePlain("  %04d %-28s %s\n", s.Version, s.Name, applied)
	}
	return nil
}

// loadOrCreateConfig reads path, writing the template there first when it does not exist.
// Any failure falls back to the defaults with a warning.
func (r *Runner) loadOrCreateConfig(path string) *shared.Config {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return shared.DefaultConfig()
		}
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return shared.DefaultConfig()
	}
	return config
}
