package repository

import (
	"context"
	"testing"

	"go_climb_keep/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSessionRepository(t *testing.T) {
	db := newTestDB(t)
	sessions := NewGormSessionRepository()
	projects := NewGormProjectRepository()
	ctx := context.Background()

	user := createTestUser(t, db, "climber@example.com")
	other := createTestUser(t, db, "other@example.com")

	_, err := sessions.FindInProgressByUser(ctx, db, user.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	session := &model.Session{UserID: user.ID}
	require.NoError(t, sessions.Create(ctx, db, session))
	require.NotZero(t, session.ID)
	assert.Equal(t, model.SessionStatusInProgress, session.Status)
	assert.NotNil(t, session.Projects)

	t.Run("進行中セッションは1ユーザー1件まで", func(t *testing.T) {
		err := sessions.Create(ctx, db, &model.Session{UserID: user.ID})
		assert.ErrorIs(t, err, model.ErrConflict)

		// 完了済みセッションは制約の対象外
		done := &model.Session{UserID: user.ID, Status: model.SessionStatusCompleted}
		assert.NoError(t, sessions.Create(ctx, db, done))
	})

	t.Run("プロジェクトは新しい順で取得される", func(t *testing.T) {
		for _, grade := range []model.Grade{model.GradeVBV0, model.GradeV3V4, model.GradeV5V6} {
			require.NoError(t, projects.Create(ctx, db, &model.Project{SessionID: session.ID, Grade: grade}))
		}

		found, err := sessions.FindInProgressByUser(ctx, db, user.ID)
		require.NoError(t, err)
		assert.Equal(t, session.ID, found.ID)
		require.Len(t, found.Projects, 3)
		assert.Equal(t, model.GradeV5V6, found.Projects[0].Grade)
		assert.Equal(t, model.GradeVBV0, found.Projects[2].Grade)

		listed, err := projects.ListBySession(ctx, db, session.ID)
		require.NoError(t, err)
		assert.Equal(t, found.Projects[0].ID, listed[0].ID)
	})

	t.Run("他ユーザーのセッションは見えない", func(t *testing.T) {
		_, err := sessions.FindByIDForUser(ctx, db, other.ID, session.ID)
		assert.ErrorIs(t, err, model.ErrNotFound)

		found, err := sessions.FindByIDForUser(ctx, db, user.ID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.UserID)
	})

	t.Run("プロジェクトのないセッションは空スライス", func(t *testing.T) {
		empty := &model.Session{UserID: other.ID}
		require.NoError(t, sessions.Create(ctx, db, empty))

		found, err := sessions.FindInProgressByUser(ctx, db, other.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.Projects)
		assert.Empty(t, found.Projects)
	})

	_, err = sessions.FindByIDForUser(ctx, db, user.ID, session.ID+1000)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = sessions.FindInProgressByUser(ctx, db, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}
