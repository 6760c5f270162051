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

func sampleOTP() *entity.OneTimeCode {
	return &entity.OneTimeCode{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Code:   "482913",
		SentAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOTPRepository_Upsert(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOTPRepository(mock, zap.NewNop())
	otp := sampleOTP()

	mock.ExpectExec(`INSERT INTO email_verifications`).
		WithArgs(otp.ID, otp.UserID, otp.Code, otp.SentAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), otp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPRepository_UpsertError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOTPRepository(mock, zap.NewNop())
	otp := sampleOTP()

	mock.ExpectExec(`INSERT INTO email_verifications`).
		WithArgs(otp.ID, otp.UserID, otp.Code, otp.SentAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Upsert(context.Background(), otp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestOTPRepository_FindByUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOTPRepository(mock, zap.NewNop())
	otp := sampleOTP()

	mock.ExpectQuery(`FROM email_verifications`).
		WithArgs(otp.UserID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "code", "sent_at"}).
			AddRow(otp.ID, otp.UserID, otp.Code, otp.SentAt))

	got, err := repo.FindByUser(context.Background(), otp.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, otp.Code, got.Code)
	assert.Equal(t, otp.SentAt, got.SentAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPRepository_FindByUserMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOTPRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectQuery(`FROM email_verifications`).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "code", "sent_at"}))

	got, err := repo.FindByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPRepository_Delete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOTPRepository(mock, zap.NewNop())
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM email_verifications WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), userID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOTPRepository_DeleteMissing(t *testing.T) {
	mock := newMockPool(t)
	repo := NewOTPRepository(mock, zap.NewNop())
	userID := uuid.New()

	// No live slot is fine; consumption is idempotent.
	mock.ExpectExec(`DELETE FROM email_verifications WHERE user_id = \$1`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), userID))
}
