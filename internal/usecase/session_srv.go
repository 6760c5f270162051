package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"trackjobs/internal/data/entity"
	"trackjobs/internal/data/repository"
	"trackjobs/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService mints, validates and revokes server-side sessions and
// produces the cookie directives the HTTP layer attaches to responses.
type SessionService interface {
	Create(ctx context.Context, userID uuid.UUID) (*entity.Session, *http.Cookie, error)
	// Validate resolves a bearer token to its user and session. Unknown,
	// malformed and expired tokens all yield ErrUnauthorized; expired rows
	// are lazily deleted on the way out.
	Validate(ctx context.Context, token string) (*entity.User, *entity.Session, error)
	// Invalidate revokes a session and returns the blank cookie that
	// clears the browser. Idempotent.
	Invalidate(ctx context.Context, sessionID uuid.UUID) (*http.Cookie, error)
	InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	config      utils.SessionConfig
	log         *zap.Logger
	now         func() time.Time
}

func NewSessionService(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	config utils.SessionConfig,
	log *zap.Logger,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		config:      config,
		log:         log,
		now:         time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, userID uuid.UUID) (*entity.Session, *http.Cookie, error) {
	now := s.now()

	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        utils.GenerateSessionToken(),
			CreatedAt: now,
		},
		UserID:    userID,
		ExpiresAt: now.Add(s.config.TTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return session, s.cookie(session.ID.String(), int(s.config.TTL.Seconds())), nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*entity.User, *entity.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, nil, ErrUnauthorized
	}

	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find session: %w", err)
	}
	if session == nil {
		return nil, nil, ErrUnauthorized
	}

	// Fixed expiry, no sliding renewal. A session expiring at T is rejected
	// for every read at or after T.
	if !session.ExpiresAt.After(s.now()) {
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.log.Warn("Failed to reap expired session",
				zap.Error(err), zap.String("session_id", session.ID.String()))
		}
		return nil, nil, ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("find session user: %w", err)
	}
	if user == nil {
		// Orphaned session, account is gone.
		if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
			s.log.Warn("Failed to delete orphaned session",
				zap.Error(err), zap.String("session_id", session.ID.String()))
		}
		return nil, nil, ErrUnauthorized
	}

	return user, session, nil
}

func (s *sessionService) Invalidate(ctx context.Context, sessionID uuid.UUID) (*http.Cookie, error) {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("invalidate session: %w", err)
	}

	return s.cookie("", -1), nil
}

func (s *sessionService) InvalidateAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessionRepo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("invalidate user sessions: %w", err)
	}
	return nil
}

func (s *sessionService) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.config.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
