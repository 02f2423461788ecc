package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// RouterDeps はルーターの組み立てに必要なハンドラと設定です
type RouterDeps struct {
	Config  *config.Config
	Logger  *slog.Logger
	Cookies *middleware.SessionCookies
	Auth    *AuthHandler
	Session *SessionHandler
	Health  *HealthHandler
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(deps.Logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   deps.Config.CORS.AllowedMethods,
		AllowedHeaders:   deps.Config.CORS.AllowedHeaders,
		ExposedHeaders:   deps.Config.CORS.ExposedHeaders,
		AllowCredentials: deps.Config.CORS.AllowCredentials,
		MaxAge:           deps.Config.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// --- Public routes ---
	r.Get("/login", deps.Auth.LoginPage)
	r.Post("/login", deps.Auth.Login)
	r.Get("/create-account", deps.Auth.CreateAccountPage)
	r.Post("/create-account", deps.Auth.CreateAccount)
	r.Get("/verify-email", deps.Auth.VerifyEmail)
	r.Get("/health", deps.Health.Health)

	// ログアウトはセッションが無効でも受け付ける
	r.Post("/", deps.Auth.Logout)
	r.Post("/private", deps.Auth.Logout)

	// --- Protected routes ---
	r.Group(func(r chi.Router) {
		if deps.Config.Auth.DevHeaderAuth {
			deps.Logger.Warn("Dev header authentication enabled, session cookies are not checked")
			r.Use(middleware.DevUserContextMiddleware)
		} else {
			r.Use(middleware.RequireSession(deps.Cookies))
		}

		r.Get("/", deps.Auth.Home)
		r.Get("/private", deps.Auth.Private)
		r.Get("/sessions/new", deps.Session.GetSession)
		r.Post("/sessions/new", deps.Session.PostSession)
	})

	return r
}
