package middleware

import (
	"context"
	"net/http"

	"go_climb_keep/internal/model"

	"github.com/google/uuid"
)

// LoginPath は未ログイン時のリダイレクト先です
const LoginPath = "/login"

// RequireSession はセッションCookieを検証するミドルウェアです。
// Cookieがない、または無効な場合は /login にリダイレクトします。
func RequireSession(cookies *SessionCookies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			claims, userID, err := cookies.Parse(r)
			if err != nil {
				logger.Info("Session required, redirecting to login", "error", err)
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			ctx := WithUser(r.Context(), userID, claims.Email, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser は認証済みユーザーの情報をコンテキストに格納します
func WithUser(ctx context.Context, userID uuid.UUID, email, name string) context.Context {
	ctx = context.WithValue(ctx, model.UserIDKey, userID)
	ctx = context.WithValue(ctx, model.UserEmailKey, email)
	ctx = context.WithValue(ctx, model.UserNameKey, name)
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok || value == uuid.Nil {
		// ミドルウェアを通っていない (ルーティングの設定ミス等)
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "No user in request context", "", model.ErrUnauthorized)
	}
	return value, nil
}

// GetUserEmailFromContext はセッションに含まれるメールアドレスを返します
func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(model.UserEmailKey).(string)
	return email
}

// GetUserNameFromContext はセッションに含まれる表示名を返します
func GetUserNameFromContext(ctx context.Context) string {
	name, _ := ctx.Value(model.UserNameKey).(string)
	return name
}
