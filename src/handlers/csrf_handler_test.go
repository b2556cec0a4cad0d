package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/taxmate/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

var testCSRFKey = []byte("test-csrf-auth-key-32-bytes-long!!!")

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGetCSRFTokenSetsCookieAndBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/csrf", nil)

	GetCSRFToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	token := body["csrfToken"]
	require.NotEmpty(t, token)
	assert.Equal(t, token, rec.Header().Get("X-CSRF-Token"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	found := false
	for _, c := range cookies {
		if c.Name == csrfCookieName {
			found = true
			assert.Equal(t, token, c.Value)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "CSRF cookie must be set")
}

func TestCSRFMiddlewareAllowsMatchingTokens(t *testing.T) {
	handler := CSRFMiddleware(testCSRFKey)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/records", nil)
	req.Header.Set("X-CSRF-Token", "token-value")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "token-value"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCSRFMiddlewareRejectsMismatchedTokens(t *testing.T) {
	handler := CSRFMiddleware(testCSRFKey)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/records", nil)
	req.Header.Set("X-CSRF-Token", "token-value")
	req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: "different-value"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFMiddlewareRejectsMissingToken(t *testing.T) {
	handler := CSRFMiddleware(testCSRFKey)(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/records", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCSRFMiddlewareSkipsSafeMethods(t *testing.T) {
	handler := CSRFMiddleware(testCSRFKey)(okHandler())

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		req := httptest.NewRequest(method, "/api/snapshot", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "method %s must bypass CSRF", method)
	}
}
