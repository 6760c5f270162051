package middleware

import (
	"errors"
	"net/http"
	"strings"

	"trackjobs/internal/usecase"
	"trackjobs/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession validates the session cookie on every protected request. A
// Bearer token in the Authorization header is accepted as a fallback for
// non-browser clients.
func AuthSession(sessions usecase.SessionService, cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing session")
				return
			}

			user, session, err := sessions.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, usecase.ErrUnauthorized) {
					utils.ResponseUnauthorized(w, "Invalid or expired session")
					return
				}
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetAuthContext(r.Context(), user.ID, session.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return token
	}

	return ""
}
