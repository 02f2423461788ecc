package middleware

import (
	"net/http"

	"go_climb_keep/internal/model"
	"go_climb_keep/internal/webutil"

	"github.com/google/uuid"
)

// DevUserHeader は開発・テスト時にユーザーIDを渡すヘッダーです
const DevUserHeader = "X-User-ID"

// DevUserContextMiddleware は開発時用ミドルウェアです。
// X-User-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// Cookieの検証とDBでのユーザー存在チェックは行いません。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get(DevUserHeader)
		if userIDStr == "" {
			logger.Warn("[DEV AUTH] Failed: X-User-ID header missing")
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] Missing X-User-ID header", "", model.ErrUnauthorized))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: Invalid X-User-ID format", "value", userIDStr)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "[DEV] Invalid X-User-ID format", "", model.ErrUnauthorized))
			return
		}

		logger.Debug("[DEV AUTH] User ID set to context (no validation)", "user_id", userID)
		ctx := WithUser(r.Context(), userID, r.Header.Get("X-User-Email"), r.Header.Get("X-User-Name"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
