package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"trackjobs/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleSession() *entity.Session {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    uuid.New(),
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
}

func TestSessionRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	session := sampleSession()

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(session.ID, session.UserID, session.ExpiresAt, session.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	session := sampleSession()

	mock.ExpectQuery(`FROM sessions`).
		WithArgs(session.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}).
			AddRow(session.ID, session.UserID, session.ExpiresAt, session.CreatedAt))

	got, err := repo.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.UserID, got.UserID)
	assert.Equal(t, session.ExpiresAt, got.ExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindByIDReturnsExpiredRows(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())

	session := sampleSession()
	session.ExpiresAt = session.CreatedAt.Add(-time.Hour)

	// Staleness is judged by the caller's clock, not filtered in SQL.
	mock.ExpectQuery(`FROM sessions`).
		WithArgs(session.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}).
			AddRow(session.ID, session.UserID, session.ExpiresAt, session.CreatedAt))

	got, err := repo.FindByID(context.Background(), session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestSessionRepository_FindByIDMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectQuery(`FROM sessions`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "expires_at", "created_at"}))

	got, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), id))

	// Re-deleting a revoked session stays silent.
	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_DeleteAllForUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM sessions WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	require.NoError(t, repo.DeleteAllForUser(context.Background(), userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_CreateError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSessionRepository(mock, zap.NewNop())
	session := sampleSession()

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(session.ID, session.UserID, session.ExpiresAt, session.CreatedAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), session)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
