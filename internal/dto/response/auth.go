package response

import (
	"time"

	"trackjobs/internal/data/entity"
)

type SignUpResponse struct {
	UserID string `json:"user_id"`
}

type AuthResponse struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	IsVerified bool      `json:"is_verified"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	IsVerified  bool      `json:"is_verified"`
	HasPassword bool      `json:"has_password"`
	Provider    *string   `json:"provider,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converters

func UserToResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		IsVerified:  user.EmailVerified,
		HasPassword: user.PasswordHash != nil,
		Provider:    user.OAuthProvider,
		CreatedAt:   user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) *AuthResponse {
	resp := &AuthResponse{
		UserID:     user.ID.String(),
		Email:      user.Email,
		IsVerified: user.EmailVerified,
	}

	if session != nil {
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
