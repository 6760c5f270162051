package usecase

import (
	"trackjobs/internal/data/repository"
	"trackjobs/internal/mailer"
	"trackjobs/pkg/oauth"
	"trackjobs/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Session SessionService
	OTP     OTPService
	User    UserService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	sender mailer.Sender,
	provider oauth.Provider,
	log *zap.Logger,
) *Service {
	otp := NewOTPService(repo.OTP, config.OTP.TTL, log)
	sessions := NewSessionService(repo.Session, repo.User, config.Session, log)

	return &Service{
		Auth:    NewAuthService(repo, otp, sessions, sender, provider, log),
		Session: sessions,
		OTP:     otp,
		User:    NewUserService(repo.User, log),
	}
}
