package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go_climb_keep/internal/config"
	"go_climb_keep/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// FlashCookieSuffix はセッションCookie名に付けてフラッシュ用Cookie名にします (sb -> sb_error)
const FlashCookieSuffix = "_error"

var ErrInvalidSessionCookie = errors.New("invalid session cookie")

// SessionCookies はセッションCookieとフラッシュCookieの発行と検証を担当します
type SessionCookies struct {
	name   string
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionCookies(cfg *config.Config) *SessionCookies {
	name := cfg.Auth.CookieName
	if name == "" {
		name = config.DefaultCookieName
	}
	ttl := cfg.Auth.SessionTTL
	if ttl <= 0 {
		ttl = config.DefaultSessionTTL
	}
	return &SessionCookies{
		name:   name,
		secret: []byte(cfg.Auth.SessionSecret),
		ttl:    ttl,
		secure: cfg.IsProduction(),
		now:    time.Now,
	}
}

func (c *SessionCookies) Name() string      { return c.name }
func (c *SessionCookies) FlashName() string { return c.name + FlashCookieSuffix }

// Issue はユーザー情報を署名付きトークンにしてCookieに書き込みます
func (c *SessionCookies) Issue(w http.ResponseWriter, user *model.User) error {
	now := c.now()
	claims := model.SessionClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("SessionCookies.Issue: %w", err)
	}

	http.SetCookie(w, c.cookie(c.name, signed, int(c.ttl.Seconds())))
	return nil
}

// Parse はリクエストのセッションCookieを検証し、クレームを返します
func (c *SessionCookies) Parse(r *http.Request) (*model.SessionClaims, uuid.UUID, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return nil, uuid.Nil, ErrInvalidSessionCookie
	}

	claims := &model.SessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidSessionCookie, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: subject: %v", ErrInvalidSessionCookie, err)
	}
	return claims, userID, nil
}

// Clear はセッションCookieを削除します (ログアウト)
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(c.name, "", -1))
}

// SetFlash はログイン画面に表示するエラーメッセージを一時Cookieに書き込みます
func (c *SessionCookies) SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, c.cookie(c.FlashName(), url.QueryEscape(message), 60))
}

// PopFlash はフラッシュメッセージを読み出し、同時に削除します。ない場合は空文字です。
func (c *SessionCookies) PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(c.FlashName())
	if err != nil {
		return ""
	}
	http.SetCookie(w, c.cookie(c.FlashName(), "", -1))
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func (c *SessionCookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   c.secure,
	}
}
