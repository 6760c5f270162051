package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trackjobs/internal/data/entity"
	"trackjobs/internal/data/repository"
	"trackjobs/internal/dto/response"
	"trackjobs/internal/mailer"
	"trackjobs/pkg/oauth"
	"trackjobs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MsgPasswordResetRequested is returned for every forgot-password request,
// whether or not the account exists.
const MsgPasswordResetRequested = "If an account with that email exists, a password reset email has been sent."

type AuthService interface {
	SignUp(ctx context.Context, email, password string) (*response.SignUpResponse, error)
	VerifySignupOTP(ctx context.Context, userID uuid.UUID, code string) (*response.AuthResponse, *http.Cookie, error)
	ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error
	InitiateAccountReset(ctx context.Context, userID uuid.UUID) error
	VerifyOTPAndResetAccount(ctx context.Context, userID uuid.UUID, code string) error
	SignIn(ctx context.Context, email, password string) (*response.AuthResponse, *http.Cookie, error)
	SignOut(ctx context.Context, sessionID uuid.UUID) (*http.Cookie, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyOTPAndResetPassword(ctx context.Context, userID uuid.UUID, code, newPassword string) error
	GoogleAuthURL(state string) string
	GoogleCallback(ctx context.Context, code string) (*response.AuthResponse, *http.Cookie, error)
}

type authService struct {
	repo     *repository.Repository
	otp      OTPService
	sessions SessionService
	sender   mailer.Sender
	provider oauth.Provider
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	otp OTPService,
	sessions SessionService,
	sender mailer.Sender,
	provider oauth.Provider,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		otp:      otp,
		sessions: sessions,
		sender:   sender,
		provider: provider,
		log:      log,
		now:      time.Now,
	}
}

// dummyDigest is compared against when a sign-in misses the account lookup,
// so unknown emails cost the same argon2 work as wrong passwords.
var dummyDigest = func() string {
	digest, err := utils.HashPassword("timing-equalizer")
	if err != nil {
		panic(err)
	}
	return digest
}()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) SignUp(ctx context.Context, email, password string) (*response.SignUpResponse, error) {
	email = normalizeEmail(email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if existing != nil {
		if existing.EmailVerified {
			return nil, &AlreadyExistsError{UserID: existing.ID}
		}
		// Abandoned sign-up retry: the email was never proven, so the
		// newest submission wins. Adopt its password and re-issue the
		// code against the existing record instead of duplicating it.
		hash, err := utils.HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		existing.PasswordHash = &hash
		existing.UpdatedAt = s.now()
		if err := s.repo.User.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update pending user: %w", err)
		}

		if err := s.issueOTP(ctx, existing, "Verify your email", "Your verification code is: %s"); err != nil {
			return nil, err
		}

		s.log.Info("Sign-up retried for pending account", zap.String("user_id", existing.ID.String()))
		return &response.SignUpResponse{UserID: existing.ID.String()}, nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:         email,
		PasswordHash:  &hash,
		EmailVerified: false,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.issueOTP(ctx, user, "Verify your email", "Your verification code is: %s"); err != nil {
		return nil, err
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.SignUpResponse{UserID: user.ID.String()}, nil
}

func (s *authService) VerifySignupOTP(ctx context.Context, userID uuid.UUID, code string) (*response.AuthResponse, *http.Cookie, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrOTPNotFound
	}

	if err := s.otp.Validate(ctx, userID, code); err != nil {
		return nil, nil, err
	}
	if err := s.otp.Consume(ctx, userID); err != nil {
		return nil, nil, err
	}

	user.EmailVerified = true
	user.UpdatedAt = s.now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("mark email verified: %w", err)
	}

	session, cookie, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))

	return response.AuthToResponse(user, session), cookie, nil
}

func (s *authService) ResendVerificationEmail(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	return s.issueOTP(ctx, user, "Verify your email", "Your verification code is: %s")
}

func (s *authService) InitiateAccountReset(ctx context.Context, userID uuid.UUID) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}
	// Account reset only recovers abandoned unverified sign-ups.
	if user.EmailVerified {
		return ErrAlreadyVerified
	}

	return s.issueOTP(ctx, user, "Reset your account", "Your account reset code is: %s")
}

func (s *authService) VerifyOTPAndResetAccount(ctx context.Context, userID uuid.UUID, code string) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrOTPNotFound
	}

	if err := s.otp.Validate(ctx, userID, code); err != nil {
		return err
	}
	if err := s.otp.Consume(ctx, userID); err != nil {
		return err
	}

	// Return the record to a fresh state: identity kept, credentials gone.
	// Sign-up can now proceed again with the same email.
	user.PasswordHash = nil
	user.EmailVerified = false
	user.UpdatedAt = s.now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return fmt.Errorf("reset account: %w", err)
	}

	s.log.Info("Account reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*response.AuthResponse, *http.Cookie, error) {
	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || user.PasswordHash == nil {
		// Burn the same hashing work as the real comparison below.
		utils.CheckPasswordHash(password, dummyDigest)
		return nil, nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	session, cookie, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID.String()))

	return response.AuthToResponse(user, session), cookie, nil
}

func (s *authService) SignOut(ctx context.Context, sessionID uuid.UUID) (*http.Cookie, error) {
	cookie, err := s.sessions.Invalidate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.log.Info("User signed out", zap.String("session_id", sessionID.String()))
	return cookie, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	// Unknown and unverified accounts get no code, but the caller returns
	// the same message either way.
	if user == nil || !user.EmailVerified {
		s.log.Debug("Password reset requested for ineligible email")
		return nil
	}

	return s.issueOTP(ctx, user, "Password Reset", "Your password reset code is: %s")
}

func (s *authService) VerifyOTPAndResetPassword(ctx context.Context, userID uuid.UUID, code, newPassword string) error {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrOTPNotFound
	}

	if err := s.otp.Validate(ctx, userID, code); err != nil {
		return err
	}
	if err := s.otp.Consume(ctx, userID); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = &hash
	user.UpdatedAt = s.now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// A changed password revokes every live session for the account.
	if err := s.sessions.InvalidateAllForUser(ctx, user.ID); err != nil {
		return err
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) GoogleAuthURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*response.AuthResponse, *http.Cookie, error) {
	profile, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("provider exchange: %w", err)
	}

	email := normalizeEmail(profile.Email)

	user, err := s.repo.User.FindByProvider(ctx, s.provider.Name(), profile.ProviderUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("find user by provider: %w", err)
	}

	if user == nil {
		user, err = s.repo.User.FindByEmail(ctx, email)
		if err != nil {
			return nil, nil, fmt.Errorf("find user by email: %w", err)
		}

		provider := s.provider.Name()
		providerID := profile.ProviderUserID

		if user != nil {
			// Existing password account with the same email: link it.
			// The provider vouches for the address, which also settles
			// any pending verification.
			user.OAuthProvider = &provider
			user.OAuthProviderID = &providerID
			user.EmailVerified = true
			user.UpdatedAt = s.now()
			if err := s.repo.User.Update(ctx, user); err != nil {
				return nil, nil, fmt.Errorf("link provider: %w", err)
			}
			s.log.Info("Linked Google account", zap.String("user_id", user.ID.String()))
		} else {
			now := s.now()
			user = &entity.User{
				Base: entity.Base{
					ID:        utils.GenerateUUID(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				Email:           email,
				EmailVerified:   true,
				OAuthProvider:   &provider,
				OAuthProviderID: &providerID,
			}
			if err := s.repo.User.Create(ctx, user); err != nil {
				return nil, nil, fmt.Errorf("create oauth user: %w", err)
			}
			s.log.Info("User signed up via Google", zap.String("user_id", user.ID.String()))
		}
	}

	session, cookie, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return response.AuthToResponse(user, session), cookie, nil
}

// issueOTP requests a fresh code and dispatches the email asynchronously.
// Delivery failures are logged; they never turn into an auth failure and
// never change the response the caller sends.
func (s *authService) issueOTP(ctx context.Context, user *entity.User, subject, bodyFormat string) error {
	code, err := s.otp.Request(ctx, user.ID)
	if err != nil {
		return err
	}

	go s.deliver(user.Email, subject, fmt.Sprintf(bodyFormat, code))

	return nil
}

func (s *authService) deliver(to, subject, html string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.sender.Send(ctx, mailer.Message{To: to, Subject: subject, HTML: html}); err != nil {
		s.log.Error("Failed to send email", zap.Error(err), zap.String("to", to))
	}
}
