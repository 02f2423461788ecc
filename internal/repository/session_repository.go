//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// projectOrder はプロジェクト一覧の並び順 (新しい順) です
const projectOrder = "created_at DESC, id DESC"

type SessionRepository interface {
	FindInProgressByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Session, error)
	FindByIDForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, sessionID uint) (*model.Session, error)
	Create(ctx context.Context, tx *gorm.DB, session *model.Session) error
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

// FindInProgressByUser はユーザーの進行中セッションをプロジェクト付きで取得します
func (r *gormSessionRepository) FindInProgressByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.Session, error) {
	logger := middleware.GetLogger(ctx)
	var session model.Session

	result := db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order(projectOrder)
		}).
		Where("user_id = ? AND status = ?", userID, model.SessionStatusInProgress).
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding in-progress session in DB",
			"error", result.Error,
			"user_id", userID.String(),
		)
		return nil, fmt.Errorf("gormSessionRepository.FindInProgressByUser: %w", result.Error)
	}
	if session.Projects == nil {
		session.Projects = []model.Project{}
	}
	return &session, nil
}

// FindByIDForUser は所有者が一致するセッションだけを返します。他人のセッションは ErrNotFound です。
func (r *gormSessionRepository) FindByIDForUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, sessionID uint) (*model.Session, error) {
	logger := middleware.GetLogger(ctx)
	var session model.Session

	result := db.WithContext(ctx).Where("id = ? AND user_id = ?", sessionID, userID).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding session by ID in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"session_id", sessionID,
		)
		return nil, fmt.Errorf("gormSessionRepository.FindByIDForUser: %w", result.Error)
	}
	return &session, nil
}

// Create はセッションを作成します。進行中セッションが既にある場合は ErrConflict を返します。
func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.Session) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(session)
	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			logger.Warn("In-progress session already exists",
				"error", result.Error,
				"user_id", session.UserID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating session in DB",
			"error", result.Error,
			"user_id", session.UserID.String(),
		)
		return fmt.Errorf("gormSessionRepository.Create: %w", result.Error)
	}
	if session.Projects == nil {
		session.Projects = []model.Project{}
	}
	return nil
}
