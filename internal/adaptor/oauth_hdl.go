package adaptor

import (
	"crypto/subtle"
	"net/http"

	"trackjobs/internal/usecase"
	"trackjobs/pkg/utils"

	"go.uber.org/zap"
)

const oauthStateCookie = "oauth_state"

type OAuthHandler struct {
	service      usecase.AuthService
	secureCookie bool
	log          *zap.Logger
}

func NewOAuthHandler(service usecase.AuthService, secureCookie bool, log *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		service:      service,
		secureCookie: secureCookie,
		log:          log,
	}
}

// GoogleStart handles GET /api/oauth/google. The random state is mirrored in
// a short-lived cookie and checked on the callback.
func (h *OAuthHandler) GoogleStart(w http.ResponseWriter, r *http.Request) {
	state := utils.GenerateUUID().String()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.service.GoogleAuthURL(state), http.StatusFound)
}

// GoogleCallback handles GET /api/oauth/google/callback
func (h *OAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.log.Warn("Google callback returned an error", zap.String("error", errParam))
		utils.ResponseBadRequest(w, "Google sign-in was cancelled or failed", nil)
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		utils.ResponseBadRequest(w, "Missing code or state", nil)
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || subtle.ConstantTimeCompare([]byte(stateCookie.Value), []byte(state)) != 1 {
		h.log.Warn("Google callback state mismatch")
		utils.ResponseBadRequest(w, "Invalid state", nil)
		return
	}

	// The state is single use.
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	_, cookie, err := h.service.GoogleCallback(r.Context(), code)
	if err != nil {
		h.log.Error("Google callback failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Google sign-in failed", nil)
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
