package model

import (
	"time"

	"github.com/google/uuid"
)

// User はアプリケーションの利用者です。
// ID は認証プロバイダ側のユーザーと同じ値を使います。
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Name          string    `gorm:"not null" json:"name"`
	EmailVerified bool      `gorm:"not null;default:false" json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// GORM用のリレーション (JSONには含めない)
	Identities []Identity `gorm:"foreignKey:UserID" json:"-"`
	Sessions   []Session  `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	UserIDKey    ContextKey = "userID"
	UserEmailKey ContextKey = "userEmail"
	UserNameKey  ContextKey = "userName"
)

// SignUpRequest はアカウント作成フォームの内容です
type SignUpRequest struct {
	Name     string `form:"name" validate:"required,min=1,max=100"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=6,max=72"`
}

// LoginRequest はログインフォームの内容です
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}
