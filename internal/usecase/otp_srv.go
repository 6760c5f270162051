package usecase

import (
	"context"
	"fmt"
	"time"

	"trackjobs/internal/data/entity"
	"trackjobs/internal/data/repository"
	"trackjobs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const otpLength = 6

// OTPService owns the single OTP slot per account. It never tracks a
// "consumed" state itself; the orchestrator calls Consume after a successful
// Validate.
type OTPService interface {
	// Request issues a fresh code for the account, overwriting any prior
	// one, and returns it for out-of-band delivery.
	Request(ctx context.Context, userID uuid.UUID) (string, error)
	// Validate returns nil when the submitted code is live and correct,
	// or one of ErrOTPNotFound, ErrOTPMismatch, ErrOTPExpired.
	Validate(ctx context.Context, userID uuid.UUID, code string) error
	// Consume deletes the slot. Idempotent.
	Consume(ctx context.Context, userID uuid.UUID) error
}

type otpService struct {
	otpRepo repository.OTPRepository
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time
}

func NewOTPService(otpRepo repository.OTPRepository, ttl time.Duration, log *zap.Logger) OTPService {
	return &otpService{
		otpRepo: otpRepo,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

func (s *otpService) Request(ctx context.Context, userID uuid.UUID) (string, error) {
	code := utils.GenerateOTP(otpLength)

	otp := &entity.OneTimeCode{
		ID:     utils.GenerateUUID(),
		UserID: userID,
		Code:   code,
		SentAt: s.now(),
	}

	if err := s.otpRepo.Upsert(ctx, otp); err != nil {
		s.log.Error("Failed to store OTP", zap.Error(err), zap.String("user_id", userID.String()))
		return "", fmt.Errorf("store OTP: %w", err)
	}

	return code, nil
}

func (s *otpService) Validate(ctx context.Context, userID uuid.UUID, code string) error {
	otp, err := s.otpRepo.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load OTP", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("load OTP: %w", err)
	}

	if otp == nil {
		return ErrOTPNotFound
	}

	if otp.Code != code {
		return ErrOTPMismatch
	}

	// Expired strictly after the window: a code sent at t is still accepted
	// at exactly t+ttl.
	if s.now().Sub(otp.SentAt) > s.ttl {
		return ErrOTPExpired
	}

	return nil
}

func (s *otpService) Consume(ctx context.Context, userID uuid.UUID) error {
	if err := s.otpRepo.Delete(ctx, userID); err != nil {
		s.log.Error("Failed to consume OTP", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("consume OTP: %w", err)
	}
	return nil
}
