package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/service"
	"go_climb_keep/internal/webutil"
)

type SessionHandler struct {
	service service.SessionService
}

func NewSessionHandler(s service.SessionService) *SessionHandler {
	return &SessionHandler{service: s}
}

// GetSession は進行中セッションを (なければ作成して) グレード別の一覧と一緒に返します
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.GetSessionView(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, view, logger)
}

// PostSession は隠しフィールドのメソッドに応じてプロジェクトを作成/更新/削除します
func (h *SessionHandler) PostSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With("user_id", userID.String())

	form, method, err := webutil.DecodeFormMethod(w, r)
	if err != nil {
		var invalid *webutil.InvalidMethodError
		if errors.As(err, &invalid) {
			webutil.HandleError(w, logger, unsupportedMethodError(invalid.Raw))
			return
		}
		webutil.HandleError(w, logger, err)
		return
	}
	logger = logger.With("method", method)

	action, err := ParseSessionAction(form)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	switch a := action.(type) {
	case CreateProjectAction:
		projects, err := h.service.CreateProject(r.Context(), userID, a.SessionID, a.Grade)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"projects": projects}, logger)

	case UpdateAttemptsAction:
		stored, err := h.service.UpdateProjectAttempts(r.Context(), userID, a.ProjectID, a.Attempts)
		if err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]int{"attempts": stored}, logger)

	case DeleteProjectAction:
		if err := h.service.DeleteProject(r.Context(), userID, a.ProjectID); err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
		webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"deleted": true}, logger)

	default:
		// ParseSessionAction が返す型はすべて上で処理している
		panic(fmt.Sprintf("unhandled session action %T", action))
	}
}
