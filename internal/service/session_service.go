//go:generate mockery --name SessionService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_climb_keep/internal/middleware"
	"go_climb_keep/internal/model"
	"go_climb_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// findOrCreateAttempts は進行中セッション作成が競合したときの最大試行回数です
const findOrCreateAttempts = 3

const (
	MsgInvalidGrade    = "Invalid grade"
	MsgSessionNotFound = "Session not found"
	MsgProjectNotFound = "Project not found"
	MsgSessionsFailed  = "Failed to load session"
	MsgProjectsFailed  = "Failed to update projects"
)

type SessionService interface {
	GetSessionView(ctx context.Context, userID uuid.UUID) (*model.SessionResponse, error)
	FindOrCreateInProgressSession(ctx context.Context, userID uuid.UUID) (*model.Session, error)
	CreateProject(ctx context.Context, userID uuid.UUID, sessionID uint, grade model.Grade) ([]model.Project, error)
	UpdateProjectAttempts(ctx context.Context, userID uuid.UUID, projectID uint, attempts int) (int, error)
	DeleteProject(ctx context.Context, userID uuid.UUID, projectID uint) error
}

type sessionService struct {
	db          *gorm.DB
	sessionRepo repository.SessionRepository
	projectRepo repository.ProjectRepository
}

func NewSessionService(db *gorm.DB, sessionRepo repository.SessionRepository, projectRepo repository.ProjectRepository) SessionService {
	return &sessionService{
		db:          db,
		sessionRepo: sessionRepo,
		projectRepo: projectRepo,
	}
}

// ClampNonNegative はトライ回数の下限を0に丸めます。負の値はエラーにせず0として保存します。
func ClampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// GetSessionView は進行中セッションとグレード別のプロジェクト一覧を返します
func (s *sessionService) GetSessionView(ctx context.Context, userID uuid.UUID) (*model.SessionResponse, error) {
	session, err := s.FindOrCreateInProgressSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	byGrade, err := model.GroupProjectsByGrade(session.Projects)
	if err != nil {
		middleware.GetLogger(ctx).Error("Stored project has unknown grade", "error", err, "session_id", session.ID)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", MsgSessionsFailed, "", err)
	}

	return &model.SessionResponse{
		Session:         session,
		ProjectsByGrade: byGrade,
		Grades:          model.GradeOptions(),
	}, nil
}

// FindOrCreateInProgressSession はユーザーの進行中セッションを返し、なければ作成します。
// 同時作成は部分ユニークインデックスで弾かれるので、競合したら勝者の行を読み直します。
func (s *sessionService) FindOrCreateInProgressSession(ctx context.Context, userID uuid.UUID) (*model.Session, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	for attempt := 1; attempt <= findOrCreateAttempts; attempt++ {
		session, err := s.sessionRepo.FindInProgressByUser(ctx, s.db, userID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", MsgSessionsFailed, "", err)
		}

		session = &model.Session{
			UserID:   userID,
			Status:   model.SessionStatusInProgress,
			Projects: []model.Project{},
		}
		err = s.sessionRepo.Create(ctx, s.db, session)
		if err == nil {
			logger.Info("Created in-progress session", "session_id", session.ID)
			return session, nil
		}
		if !errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", MsgSessionsFailed, "", err)
		}
		logger.Warn("Concurrent session creation detected, re-reading", "attempt", attempt)
	}

	return nil, model.NewAppError("SESSION_CONFLICT", "Could not resolve in-progress session", "", model.ErrConflict)
}

// CreateProject は呼び出し元のセッションにプロジェクトを追加し、更新後の一覧 (新しい順) を返します
func (s *sessionService) CreateProject(ctx context.Context, userID uuid.UUID, sessionID uint, grade model.Grade) ([]model.Project, error) {
	logger := middleware.GetLogger(ctx)
	if !model.IsGrade(string(grade)) {
		return nil, model.NewAppError("INVALID_GRADE", MsgInvalidGrade, "grade", model.ErrInvalidGrade)
	}

	var projects []model.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.sessionRepo.FindByIDForUser(ctx, tx, userID, sessionID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Session not found for user", "user_id", userID, "session_id", sessionID)
				return model.NewAppError("SESSION_NOT_FOUND", MsgSessionNotFound, "sessionId", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", MsgProjectsFailed, "", err)
		}

		project := &model.Project{SessionID: sessionID, Grade: grade}
		if err := s.projectRepo.Create(ctx, tx, project); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", MsgProjectsFailed, "", err)
		}

		list, err := s.projectRepo.ListBySession(ctx, tx, sessionID)
		if err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", MsgProjectsFailed, "", err)
		}
		projects = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Project created", "session_id", sessionID, "grade", grade)
	return projects, nil
}

// UpdateProjectAttempts はトライ回数を更新し、実際に保存した値を返します
func (s *sessionService) UpdateProjectAttempts(ctx context.Context, userID uuid.UUID, projectID uint, attempts int) (int, error) {
	stored := ClampNonNegative(attempts)

	if err := s.projectRepo.UpdateAttemptsForUser(ctx, s.db, userID, projectID, stored); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAppError("PROJECT_NOT_FOUND", MsgProjectNotFound, "id", model.ErrNotFound)
		}
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", MsgProjectsFailed, "", err)
	}
	return stored, nil
}

func (s *sessionService) DeleteProject(ctx context.Context, userID uuid.UUID, projectID uint) error {
	if err := s.projectRepo.DeleteForUser(ctx, s.db, userID, projectID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("PROJECT_NOT_FOUND", MsgProjectNotFound, "id", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", MsgProjectsFailed, "", err)
	}
	middleware.GetLogger(ctx).Info("Project deleted", "project_id", projectID)
	return nil
}
