package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "inProgress"
	// SessionStatusCompleted へ遷移させる操作はまだ存在しない
	SessionStatusCompleted SessionStatus = "completed"
)

// Session は1回の練習期間です。
// ユーザーごとに inProgress のセッションは高々1件 (部分ユニークインデックスで保証)。
type Session struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	UserID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"userId"`
	Status    SessionStatus `gorm:"type:varchar(20);not null;default:'inProgress'" json:"status"`
	StartTime *time.Time    `json:"startTime"`
	EndTime   *time.Time    `json:"endTime"`
	CreatedAt time.Time     `json:"createdAt"`

	Projects []Project `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"projects"`
}

func (Session) TableName() string {
	return "sessions"
}

// Project はあるグレードに対する1件の課題 (トライ回数の記録) です
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"sessionId"`
	Grade     Grade     `gorm:"type:varchar(10);not null" json:"grade"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Project) TableName() string {
	return "projects"
}

// SessionResponse は GET /sessions/new のレスポンスです
type SessionResponse struct {
	Session         *Session            `json:"session"`
	ProjectsByGrade map[Grade][]Project `json:"projectsByGrade"`
	Grades          []GradeOption       `json:"grades"`
}
