package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"trackjobs/internal/dto/request"
	"trackjobs/internal/usecase"
	"trackjobs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, writing the error response itself when either step fails.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// SignUp handles POST /api/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.service.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err, "sign up")
		return
	}

	utils.ResponseCreated(w, "Check your email for a verification code.", resp)
}

// VerifySignupOTP handles POST /api/sign-up/verify-otp
func (h *AuthHandler) VerifySignupOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	resp, cookie, err := h.service.VerifySignupOTP(r.Context(), userID, req.OTP)
	if err != nil {
		h.handleServiceError(w, err, "verify signup OTP")
		return
	}

	http.SetCookie(w, cookie)
	utils.ResponseSuccess(w, "Email verified successfully", resp)
}

// ResendOTP handles POST /api/sign-up/resend-otp
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req request.ResendOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	if err := h.service.ResendVerificationEmail(r.Context(), userID); err != nil {
		h.handleServiceError(w, err, "resend OTP")
		return
	}

	utils.ResponseSuccess(w, "A new code has been sent to your email.", nil)
}

// InitiateAccountReset handles POST /api/account-reset
func (h *AuthHandler) InitiateAccountReset(w http.ResponseWriter, r *http.Request) {
	var req request.AccountResetRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	if err := h.service.InitiateAccountReset(r.Context(), userID); err != nil {
		h.handleServiceError(w, err, "initiate account reset")
		return
	}

	utils.ResponseSuccess(w, "Check your email for an account reset code.", nil)
}

// VerifyAccountReset handles POST /api/account-reset/verify-otp
func (h *AuthHandler) VerifyAccountReset(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	if err := h.service.VerifyOTPAndResetAccount(r.Context(), userID, req.OTP); err != nil {
		h.handleServiceError(w, err, "verify account reset")
		return
	}

	utils.ResponseSuccess(w, "Account reset successfully. You can sign up again.", nil)
}

// SignIn handles POST /api/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, cookie, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err, "sign in")
		return
	}

	http.SetCookie(w, cookie)
	utils.ResponseSuccess(w, "Logged in successfully", resp)
}

// SignOut handles POST /api/sign-out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	cookie, err := h.service.SignOut(r.Context(), sessionID)
	if err != nil {
		h.handleServiceError(w, err, "sign out")
		return
	}

	http.SetCookie(w, cookie)
	utils.ResponseSuccess(w, "Logged out successfully", nil)
}

// ForgotPassword handles POST /api/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.handleServiceError(w, err, "request password reset")
		return
	}

	utils.ResponseSuccess(w, usecase.MsgPasswordResetRequested, nil)
}

// ResetPassword handles POST /api/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	userID, _ := uuid.Parse(req.UserID)

	if err := h.service.VerifyOTPAndResetPassword(r.Context(), userID, req.OTP, req.NewPassword); err != nil {
		h.handleServiceError(w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successfully.", nil)
}

// handleServiceError maps service sentinels onto the response envelope.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var existsErr *usecase.AlreadyExistsError

	switch {
	case errors.As(err, &existsErr):
		h.log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseJSON(w, http.StatusBadRequest, false, "User already exists",
			map[string]string{"user_id": existsErr.UserID.String()}, nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Incorrect email or password")

	case errors.Is(err, usecase.ErrEmailNotVerified):
		h.log.Warn(operation+" failed - email not verified", zap.Error(err))
		utils.ResponseForbidden(w, "Email not verified")

	case errors.Is(err, usecase.ErrAlreadyVerified):
		utils.ResponseBadRequest(w, "Email already verified", nil)

	case errors.Is(err, usecase.ErrOTPNotFound), errors.Is(err, usecase.ErrOTPMismatch):
		h.log.Warn(operation+" failed - invalid OTP", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid email or OTP.", nil)

	case errors.Is(err, usecase.ErrOTPExpired):
		utils.ResponseBadRequest(w, "OTP has expired.", nil)

	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, "User not found")

	case errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "Unauthorized")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
