package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/handlers"
	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/repository"
	"go_climb_keep/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), &config.Cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "run migrations before serving")
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default()
	logger.Info("Application starting...", slog.String("version", config.AppVersion))

	db, err := repository.NewDB(cfg.Database, cfg.App.Env, logger)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		} else {
			logger.Info("Database connection closed.")
		}
	}()

	if autoMigrate {
		if err := repository.Migrate(ctx, db); err != nil {
			return err
		}
	}

	router, err := buildRouter(ctx, db, cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Server.Port, err)
		}
	case <-quit:
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("Server exiting")
	return nil
}

// buildRouter は依存関係を組み立ててルーターを返します
func buildRouter(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	mailer, err := service.NewMailer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize mailer: %w", err)
	}

	userRepo := repository.NewGormUserRepository()
	identityRepo := repository.NewGormIdentityRepository()
	tokenRepo := repository.NewGormTokenRepository()
	sessionRepo := repository.NewGormSessionRepository()
	projectRepo := repository.NewGormProjectRepository()

	identityProvider := service.NewLocalIdentityProvider(db, identityRepo)
	authService := service.NewAuthService(db, userRepo, tokenRepo, identityProvider, mailer, cfg)
	sessionService := service.NewSessionService(db, sessionRepo, projectRepo)

	cookies := middleware.NewSessionCookies(cfg)

	return handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Cookies: cookies,
		Auth:    handlers.NewAuthHandler(authService, cookies),
		Session: handlers.NewSessionHandler(sessionService),
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			return repository.Ping(ctx, db)
		}),
	}), nil
}
