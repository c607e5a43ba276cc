package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/campus/internal/repositories"
	"github.com/desertthunder/campus/internal/shared"
	"github.com/desertthunder/campus/internal/store"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the embedded template when it is missing, then opens the
// database, which ensures the schema and seeds the first account.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	if err := r.prepare(ctx, cmd); err != nil {
		return err
	}
	defer r.close()

	count, err := store.Do(ctx, r.store, func(ctx context.Context, tx *sqlx.Tx) (int, error) {
		return repositories.CountUsers(ctx, tx)
	}).Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}

	path := r.config.DatabasePath()
	r.logger.Infof("setup complete for database: %v", path)

	r.writePlainHeader("Setup complete")
	r.writePlain("Database: %s\n", path)
	r.writePlain("Accounts: %d\n", count)
	if r.config.Seed.Enabled && r.config.Seed.Email != "" {
		r.writePlain("Seed account: %s\n", r.config.Seed.Email)
	}
	return nil
}
