//go:generate mockery --name ProjectRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository のうち更新系はすべて呼び出し元ユーザーのセッションに限定されます
type ProjectRepository interface {
	Create(ctx context.Context, tx *gorm.DB, project *model.Project) error
	ListBySession(ctx context.Context, db *gorm.DB, sessionID uint) ([]model.Project, error)
	UpdateAttemptsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, projectID uint, attempts int) error
	DeleteForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, projectID uint) error
}

type gormProjectRepository struct{}

func NewGormProjectRepository() ProjectRepository {
	return &gormProjectRepository{}
}

// ownedSessionIDs はユーザーが所有するセッションIDのサブクエリです
func ownedSessionIDs(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Model(&model.Session{}).Select("id").Where("user_id = ?", userID)
}

func (r *gormProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *model.Project) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Create(project)
	if result.Error != nil {
		logger.Error("Error creating project in DB",
			"error", result.Error,
			"session_id", project.SessionID,
			"grade", project.Grade,
		)
		return fmt.Errorf("gormProjectRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProjectRepository) ListBySession(ctx context.Context, db *gorm.DB, sessionID uint) ([]model.Project, error) {
	logger := middleware.GetLogger(ctx)
	projects := []model.Project{}

	result := db.WithContext(ctx).Where("session_id = ?", sessionID).Order(projectOrder).Find(&projects)
	if result.Error != nil {
		logger.Error("Error listing projects by session in DB",
			"error", result.Error,
			"session_id", sessionID,
		)
		return nil, fmt.Errorf("gormProjectRepository.ListBySession: %w", result.Error)
	}
	return projects, nil
}

func (r *gormProjectRepository) UpdateAttemptsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, projectID uint, attempts int) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ? AND session_id IN (?)", projectID, ownedSessionIDs(tx.WithContext(ctx), userID)).
		Update("attempts", attempts)
	if result.Error != nil {
		logger.Error("Error updating project attempts in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"project_id", projectID,
		)
		return fmt.Errorf("gormProjectRepository.UpdateAttemptsForUser: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormProjectRepository) DeleteForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, projectID uint) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).
		Where("id = ? AND session_id IN (?)", projectID, ownedSessionIDs(tx.WithContext(ctx), userID)).
		Delete(&model.Project{})
	if result.Error != nil {
		logger.Error("Error deleting project in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"project_id", projectID,
		)
		return fmt.Errorf("gormProjectRepository.DeleteForUser: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
