package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go_climb_keep/internal/handlers"
	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRouter_DevHeaderAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.DevHeaderAuth = true
	cookies := middleware.NewSessionCookies(cfg)
	sessionSvc := mocks.NewSessionService(t)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Logger:  testLogger(),
		Cookies: cookies,
		Auth:    handlers.NewAuthHandler(mocks.NewAuthService(t), cookies),
		Session: handlers.NewSessionHandler(sessionSvc),
		Health:  handlers.NewHealthHandler(func(ctx context.Context) error { return nil }),
	})

	user := testUser()
	sessionSvc.On("GetSessionView", mock.Anything, user.ID).
		Return(&model.SessionResponse{Session: &model.Session{ID: 1, UserID: user.ID}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/sessions/new", nil)
	req.Header.Set(middleware.DevUserHeader, user.ID.String())
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// ヘッダーがなければ 401 (リダイレクトではない)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sessions/new", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestNewRouter_HealthUnavailable(t *testing.T) {
	cfg := testConfig()
	cookies := middleware.NewSessionCookies(cfg)
	router := handlers.NewRouter(handlers.RouterDeps{
		Config:  cfg,
		Logger:  testLogger(),
		Cookies: cookies,
		Auth:    handlers.NewAuthHandler(mocks.NewAuthService(t), cookies),
		Session: handlers.NewSessionHandler(mocks.NewSessionService(t)),
		Health:  handlers.NewHealthHandler(func(ctx context.Context) error { return context.DeadlineExceeded }),
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, rr.Body.String())
}
