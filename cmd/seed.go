package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/repository"
	"go_climb_keep/internal/service"

	"github.com/spf13/cobra"
)

var (
	seedEmail    string
	seedName     string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or update a verified user",
	Long: `Creates a user whose email address is already confirmed, or updates the
name and password of an existing one.

Example:
  climbkeep seed --email me@example.com --name Me --password secret123`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", "", "email address of the user")
	seedCmd.Flags().StringVar(&seedName, "name", "", "display name of the user")
	seedCmd.Flags().StringVar(&seedPassword, "password", "", "password (generated when empty)")
	_ = seedCmd.MarkFlagRequired("email")
	_ = seedCmd.MarkFlagRequired("name")
}

func runSeed(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	cfg := &config.Cfg
	ctx := middleware.WithLogger(cmd.Context(), logger)

	password := seedPassword
	if password == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
		password = hex.EncodeToString(buf)
		fmt.Fprintf(cmd.OutOrStdout(), "generated password: %s\n", password)
	}

	db, err := repository.NewDB(cfg.Database, cfg.App.Env, logger)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer repository.Close(db)

	identityProvider := service.NewLocalIdentityProvider(db, repository.NewGormIdentityRepository())
	authService := service.NewAuthService(db, repository.NewGormUserRepository(), repository.NewGormTokenRepository(), identityProvider, &service.LogMailer{}, cfg)

	user, err := authService.SeedUser(ctx, seedEmail, seedName, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded user %s (%s)\n", user.Email, user.ID)
	return nil
}
