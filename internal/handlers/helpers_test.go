package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/handlers"
	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "climbkeep", Env: config.EnvDev},
		Auth: config.AuthConfig{
			SessionSecret: "handler-test-secret",
			SessionTTL:    time.Hour,
			CookieName:    "sb",
		},
	}
}

// testLogger はテスト出力を汚さないロガーです
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter は本番と同じルーター構成にサービスのモックを差し込みます
func newTestRouter(authSvc service.AuthService, sessionSvc service.SessionService) (http.Handler, *middleware.SessionCookies) {
	cfg := testConfig()
	cookies := middleware.NewSessionCookies(cfg)
	router := handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Logger:  testLogger(),
		Cookies: cookies,
		Auth:    handlers.NewAuthHandler(authSvc, cookies),
		Session: handlers.NewSessionHandler(sessionSvc),
		Health:  handlers.NewHealthHandler(func(ctx context.Context) error { return nil }),
	})
	return router, cookies
}

func testUser() *model.User {
	return &model.User{ID: uuid.New(), Email: "climber@example.com", Name: "Climber", EmailVerified: true}
}

// withSession はリクエストにログイン済みのセッションCookieを付けます
func withSession(t *testing.T, cookies *middleware.SessionCookies, user *model.User, req *http.Request) *http.Request {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, cookies.Issue(rr, user))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func newFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeErrorDetail(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var detail model.ErrorDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail), rr.Body.String())
	return detail
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
