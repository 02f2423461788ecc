package model

import "github.com/google/uuid"

const (
	AuthProviderLocal = "local"
)

// Identity は認証情報を表します
type Identity struct {
	ID     uint      `gorm:"primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"` // usersテーブルへの外部キー

	// どのプロバイダで、どのIDかを示す複合キー
	AuthProvider string `gorm:"type:varchar(50);not null;uniqueIndex:uq_identity_provider"`
	ProviderID   string `gorm:"not null;uniqueIndex:uq_identity_provider"` // localの場合はemail

	// パスワードハッシュは local プロバイダの場合のみ使用
	PasswordHash *string `gorm:"default:null"`
}

func (Identity) TableName() string {
	return "identities"
}
