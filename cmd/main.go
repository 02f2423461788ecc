package main

import (
	"fmt"
	"log/slog"
	"os"

	"go_climb_keep/internal/config"

	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "climbkeep",
	Short: "ClimbKeep - climbing session tracker",
	Long: `ClimbKeep records climbing sessions and the projects (attempts at a grade)
logged within them.

Subcommands:
  serve   - start the HTTP server
  migrate - create tables and indexes
  seed    - create or update a verified user`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 設定ファイル読み込み用の一時的なロガー
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

		if err := config.LoadConfig(configDir); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		// 設定の読み込み後にアプリケーション全体のロガーを差し替える
		slog.SetDefault(newLogger(&config.Cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "configs", "directory containing config.yaml")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
