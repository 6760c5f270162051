package wire

import (
	"trackjobs/internal/adaptor"
	"trackjobs/internal/usecase"
	"trackjobs/pkg/middleware"
	"trackjobs/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/sign-up", handler.Auth.SignUp)
	r.Post("/api/sign-up/verify-otp", handler.Auth.VerifySignupOTP)
	r.Post("/api/sign-up/resend-otp", handler.Auth.ResendOTP)
	r.Post("/api/account-reset", handler.Auth.InitiateAccountReset)
	r.Post("/api/account-reset/verify-otp", handler.Auth.VerifyAccountReset)
	r.Post("/api/sign-in", handler.Auth.SignIn)
	r.Post("/api/forgot-password", handler.Auth.ForgotPassword)
	r.Post("/api/reset-password", handler.Auth.ResetPassword)

	r.Get("/api/oauth/google", handler.OAuth.GoogleStart)
	r.Get("/api/oauth/google/callback", handler.OAuth.GoogleCallback)

	// ==================== PROTECTED ROUTES ====================
	auth := middleware.AuthSession(service.Session, config.Session.CookieName, log)
	r.With(auth).Post("/api/sign-out", handler.Auth.SignOut)
}
