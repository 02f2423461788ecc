package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims はセッションCookieに含めるクレームです。
// Subject にユーザーIDを入れます。
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// LoginError はログイン画面に返すフラッシュエラーです
type LoginError struct {
	Message string `json:"message"`
}
