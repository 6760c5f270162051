package adaptor

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOAuthHandlerTest(err error) *OAuthHandler {
	svc := &stubAuthService{err: err, userID: uuid.New()}
	return NewOAuthHandler(svc, true, zap.NewNop())
}

func stateCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == oauthStateCookie {
			return cookie
		}
	}
	t.Fatal("state cookie not set")
	return nil
}

func TestGoogleStart(t *testing.T) {
	handler := newOAuthHandlerTest(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google", nil)
	rec := httptest.NewRecorder()
	handler.GoogleStart(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)

	cookie := stateCookieFrom(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 600, cookie.MaxAge)

	// The redirect carries the same state the cookie does.
	location, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, cookie.Value, location.Query().Get("state"))
}

func TestGoogleCallback(t *testing.T) {
	handler := newOAuthHandlerTest(nil)
	state := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?code=auth-code&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	rec := httptest.NewRecorder()
	handler.GoogleCallback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	var sessionSet, stateCleared bool
	for _, cookie := range rec.Result().Cookies() {
		switch cookie.Name {
		case "auth_session":
			sessionSet = cookie.Value != ""
		case oauthStateCookie:
			stateCleared = cookie.Value == "" && cookie.MaxAge == -1
		}
	}
	assert.True(t, sessionSet, "session cookie must be set")
	assert.True(t, stateCleared, "state cookie must be cleared")
}

func TestGoogleCallbackStateMismatch(t *testing.T) {
	handler := newOAuthHandlerTest(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?code=auth-code&state="+uuid.NewString(), nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: uuid.NewString()})
	rec := httptest.NewRecorder()
	handler.GoogleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleCallbackMissingStateCookie(t *testing.T) {
	handler := newOAuthHandlerTest(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?code=auth-code&state="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	handler.GoogleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleCallbackProviderError(t *testing.T) {
	handler := newOAuthHandlerTest(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?error=access_denied", nil)
	rec := httptest.NewRecorder()
	handler.GoogleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleCallbackMissingParams(t *testing.T) {
	handler := newOAuthHandlerTest(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback", nil)
	rec := httptest.NewRecorder()
	handler.GoogleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleCallbackExchangeFailure(t *testing.T) {
	handler := newOAuthHandlerTest(assert.AnError)
	state := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/oauth/google/callback?code=auth-code&state="+state, nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: state})
	rec := httptest.NewRecorder()
	handler.GoogleCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
