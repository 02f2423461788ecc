package service

import (
	"context"
	"errors"
	"testing"

	"go_climb_keep/internal/model"
	"go_climb_keep/internal/repository"
	"go_climb_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SessionServiceSuite struct {
	suite.Suite
	ctx         context.Context
	userID      uuid.UUID
	sessionRepo *mocks.SessionRepository
	projectRepo *mocks.ProjectRepository
	service     SessionService
}

func (s *SessionServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = uuid.New()
	s.sessionRepo = mocks.NewSessionRepository(s.T())
	s.projectRepo = mocks.NewProjectRepository(s.T())
	s.service = NewSessionService(setupTestDB(s.T()), s.sessionRepo, s.projectRepo)
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}

// requireAppError は err が期待したコードの AppError であることを確認します
func requireAppError(t require.TestingT, err error, code string, target error) {
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Detail.Code)
	assert.ErrorIs(t, err, target)
}

func (s *SessionServiceSuite) TestFindOrCreate_Existing() {
	existing := &model.Session{ID: 7, UserID: s.userID, Status: model.SessionStatusInProgress, Projects: []model.Project{}}
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(existing, nil).Once()

	got, err := s.service.FindOrCreateInProgressSession(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(existing, got)
	s.sessionRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SessionServiceSuite) TestFindOrCreate_CreatesWhenMissing() {
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(nil, model.ErrNotFound).Once()
	s.sessionRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Session")).
		Run(func(args mock.Arguments) {
			session := args.Get(2).(*model.Session)
			s.Equal(s.userID, session.UserID)
			s.Equal(model.SessionStatusInProgress, session.Status)
			session.ID = 11
		}).Return(nil).Once()

	got, err := s.service.FindOrCreateInProgressSession(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(uint(11), got.ID)
	s.NotNil(got.Projects)
	s.Empty(got.Projects)
}

func (s *SessionServiceSuite) TestFindOrCreate_ConflictRereadsWinner() {
	winner := &model.Session{ID: 3, UserID: s.userID, Status: model.SessionStatusInProgress, Projects: []model.Project{}}
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(nil, model.ErrNotFound).Once()
	s.sessionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Once()
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(winner, nil).Once()

	got, err := s.service.FindOrCreateInProgressSession(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(uint(3), got.ID)
}

func (s *SessionServiceSuite) TestFindOrCreate_ConflictExhausted() {
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(nil, model.ErrNotFound).Times(findOrCreateAttempts)
	s.sessionRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(model.ErrConflict).Times(findOrCreateAttempts)

	_, err := s.service.FindOrCreateInProgressSession(s.ctx, s.userID)
	requireAppError(s.T(), err, "SESSION_CONFLICT", model.ErrConflict)
}

func (s *SessionServiceSuite) TestFindOrCreate_DBError() {
	dbErr := errors.New("connection reset")
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(nil, dbErr).Once()

	_, err := s.service.FindOrCreateInProgressSession(s.ctx, s.userID)
	requireAppError(s.T(), err, "INTERNAL_SERVER_ERROR", dbErr)
}

func (s *SessionServiceSuite) TestGetSessionView_GroupsByGrade() {
	session := &model.Session{
		ID:     5,
		UserID: s.userID,
		Status: model.SessionStatusInProgress,
		Projects: []model.Project{
			{ID: 3, SessionID: 5, Grade: model.GradeV3V4},
			{ID: 2, SessionID: 5, Grade: model.GradeVBV0},
			{ID: 1, SessionID: 5, Grade: model.GradeV3V4},
		},
	}
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(session, nil).Once()

	view, err := s.service.GetSessionView(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(session, view.Session)
	s.Len(view.ProjectsByGrade, len(model.Grades))
	s.Len(view.Grades, len(model.Grades))

	s.Require().Len(view.ProjectsByGrade[model.GradeV3V4], 2)
	s.Equal(uint(3), view.ProjectsByGrade[model.GradeV3V4][0].ID)
	s.Equal(uint(1), view.ProjectsByGrade[model.GradeV3V4][1].ID)
	s.Len(view.ProjectsByGrade[model.GradeVBV0], 1)
	s.NotNil(view.ProjectsByGrade[model.GradeV11Up])
	s.Empty(view.ProjectsByGrade[model.GradeV11Up])
}

func (s *SessionServiceSuite) TestGetSessionView_UnknownStoredGrade() {
	session := &model.Session{ID: 5, UserID: s.userID, Projects: []model.Project{{ID: 1, Grade: "v99"}}}
	s.sessionRepo.On("FindInProgressByUser", mock.Anything, mock.Anything, s.userID).Return(session, nil).Once()

	_, err := s.service.GetSessionView(s.ctx, s.userID)
	requireAppError(s.T(), err, "INTERNAL_SERVER_ERROR", model.ErrInvalidGrade)
}

func (s *SessionServiceSuite) TestCreateProject_InvalidGrade() {
	_, err := s.service.CreateProject(s.ctx, s.userID, 1, "v99")
	requireAppError(s.T(), err, "INVALID_GRADE", model.ErrInvalidGrade)
}

func (s *SessionServiceSuite) TestCreateProject_SessionNotOwned() {
	s.sessionRepo.On("FindByIDForUser", mock.Anything, mock.Anything, s.userID, uint(9)).Return(nil, model.ErrNotFound).Once()

	_, err := s.service.CreateProject(s.ctx, s.userID, 9, model.GradeV1V2)
	requireAppError(s.T(), err, "SESSION_NOT_FOUND", model.ErrNotFound)
	s.projectRepo.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (s *SessionServiceSuite) TestCreateProject_ReturnsUpdatedList() {
	list := []model.Project{{ID: 2, SessionID: 4, Grade: model.GradeV1V2}, {ID: 1, SessionID: 4, Grade: model.GradeVBV0}}
	s.sessionRepo.On("FindByIDForUser", mock.Anything, mock.Anything, s.userID, uint(4)).
		Return(&model.Session{ID: 4, UserID: s.userID}, nil).Once()
	s.projectRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*model.Project")).
		Run(func(args mock.Arguments) {
			project := args.Get(2).(*model.Project)
			s.Equal(uint(4), project.SessionID)
			s.Equal(model.GradeV1V2, project.Grade)
			s.Zero(project.Attempts)
		}).Return(nil).Once()
	s.projectRepo.On("ListBySession", mock.Anything, mock.Anything, uint(4)).Return(list, nil).Once()

	got, err := s.service.CreateProject(s.ctx, s.userID, 4, model.GradeV1V2)
	s.Require().NoError(err)
	s.Equal(list, got)
}

func (s *SessionServiceSuite) TestUpdateProjectAttempts() {
	s.Run("負の値は0に丸めて保存", func() {
		s.projectRepo.On("UpdateAttemptsForUser", mock.Anything, mock.Anything, s.userID, uint(1), 0).Return(nil).Once()
		got, err := s.service.UpdateProjectAttempts(s.ctx, s.userID, 1, -4)
		s.Require().NoError(err)
		s.Equal(0, got)
	})

	s.Run("そのまま保存", func() {
		s.projectRepo.On("UpdateAttemptsForUser", mock.Anything, mock.Anything, s.userID, uint(1), 12).Return(nil).Once()
		got, err := s.service.UpdateProjectAttempts(s.ctx, s.userID, 1, 12)
		s.Require().NoError(err)
		s.Equal(12, got)
	})

	s.Run("見つからない", func() {
		s.projectRepo.On("UpdateAttemptsForUser", mock.Anything, mock.Anything, s.userID, uint(2), 1).Return(model.ErrNotFound).Once()
		_, err := s.service.UpdateProjectAttempts(s.ctx, s.userID, 2, 1)
		requireAppError(s.T(), err, "PROJECT_NOT_FOUND", model.ErrNotFound)
	})
}

func (s *SessionServiceSuite) TestDeleteProject() {
	s.projectRepo.On("DeleteForUser", mock.Anything, mock.Anything, s.userID, uint(1)).Return(nil).Once()
	s.NoError(s.service.DeleteProject(s.ctx, s.userID, 1))

	dbErr := errors.New("disk full")
	s.projectRepo.On("DeleteForUser", mock.Anything, mock.Anything, s.userID, uint(2)).Return(dbErr).Once()
	requireAppError(s.T(), s.service.DeleteProject(s.ctx, s.userID, 2), "INTERNAL_SERVER_ERROR", dbErr)

	s.projectRepo.On("DeleteForUser", mock.Anything, mock.Anything, s.userID, uint(3)).Return(model.ErrNotFound).Once()
	requireAppError(s.T(), s.service.DeleteProject(s.ctx, s.userID, 3), "PROJECT_NOT_FOUND", model.ErrNotFound)
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, 0, ClampNonNegative(-1))
	assert.Equal(t, 0, ClampNonNegative(0))
	assert.Equal(t, 5, ClampNonNegative(5))
}

// TestSessionService_WithSQLite はリポジトリ実装と組み合わせた一連の流れを確認します
func TestSessionService_WithSQLite(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	userRepo := repository.NewGormUserRepository()
	svc := NewSessionService(db, repository.NewGormSessionRepository(), repository.NewGormProjectRepository())

	user := &model.User{ID: uuid.New(), Email: "climber@example.com", Name: "Climber"}
	require.NoError(t, userRepo.Create(ctx, db, user))
	other := &model.User{ID: uuid.New(), Email: "other@example.com", Name: "Other"}
	require.NoError(t, userRepo.Create(ctx, db, other))

	first, err := svc.FindOrCreateInProgressSession(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.FindOrCreateInProgressSession(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the same in-progress session is reused")

	projects, err := svc.CreateProject(ctx, user.ID, first.ID, model.GradeV5V6)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	projects, err = svc.CreateProject(ctx, user.ID, first.ID, model.GradeV1V2)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, model.GradeV1V2, projects[0].Grade)

	_, err = svc.CreateProject(ctx, other.ID, first.ID, model.GradeV1V2)
	requireAppError(t, err, "SESSION_NOT_FOUND", model.ErrNotFound)

	stored, err := svc.UpdateProjectAttempts(ctx, user.ID, projects[0].ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, stored)

	_, err = svc.UpdateProjectAttempts(ctx, other.ID, projects[0].ID, 2)
	requireAppError(t, err, "PROJECT_NOT_FOUND", model.ErrNotFound)

	require.NoError(t, svc.DeleteProject(ctx, user.ID, projects[1].ID))

	view, err := svc.GetSessionView(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, view.Session.ID)
	assert.Len(t, view.Session.Projects, 1)
	assert.Len(t, view.ProjectsByGrade[model.GradeV1V2], 1)
	assert.Empty(t, view.ProjectsByGrade[model.GradeV5V6])
}
