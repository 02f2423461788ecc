package main

import (
	"fmt"
	"log/slog"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/repository"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and the in-progress session index",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()
		cfg := &config.Cfg

		db, err := repository.NewDB(cfg.Database, cfg.App.Env, logger)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer repository.Close(db)

		if err := repository.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("Migration completed")
		return nil
	},
}
