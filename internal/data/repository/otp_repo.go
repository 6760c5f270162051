package repository

import (
	"context"
	"fmt"

	"trackjobs/internal/data/entity"
	"trackjobs/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OTPRepository interface {
	Upsert(ctx context.Context, otp *entity.OneTimeCode) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.OneTimeCode, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type otpRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOTPRepository(db database.PgxIface, log *zap.Logger) OTPRepository {
	return &otpRepository{
		db:  db,
		log: log.With(zap.String("repository", "otp")),
	}
}

// Upsert writes the single OTP slot for a user. The unique constraint on
// user_id makes the overwrite atomic: two concurrent resends cannot leave
// two live rows.
func (r *otpRepository) Upsert(ctx context.Context, otp *entity.OneTimeCode) error {
	query := `
		INSERT INTO email_verifications (id, user_id, code, sent_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET code = EXCLUDED.code, sent_at = EXCLUDED.sent_at
	`

	_, err := r.db.Exec(ctx, query,
		otp.ID,
		otp.UserID,
		otp.Code,
		otp.SentAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert OTP",
			zap.Error(err),
			zap.String("user_id", otp.UserID.String()),
		)
		return fmt.Errorf("upsert OTP for user %s: %w", otp.UserID.String(), err)
	}

	return nil
}

func (r *otpRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.OneTimeCode, error) {
	query := `
		SELECT id, user_id, code, sent_at
		FROM email_verifications
		WHERE user_id = $1
	`

	var otp entity.OneTimeCode
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&otp.ID,
		&otp.UserID,
		&otp.Code,
		&otp.SentAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find OTP",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find OTP for user %s: %w", userID.String(), err)
	}

	return &otp, nil
}

// Delete removes the OTP slot. Deleting an absent slot is not an error, so
// consumption stays idempotent.
func (r *otpRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM email_verifications WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to delete OTP",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return fmt.Errorf("delete OTP for user %s: %w", userID.String(), err)
	}

	return nil
}
