package handlers

import (
	"context"
	"net/http"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/webutil"
)

// HealthHandler はDBへの疎通を確認します
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())
	if err := h.ping(r.Context()); err != nil {
		logger.Error("Health check failed: could not ping DB", "error", err)
		webutil.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"}, logger)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}
