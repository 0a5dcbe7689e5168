package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/linkedin-post-agent/internal/config"
)

// newTestServer builds a server wired against the given LinkedIn API base
// URL (usually an httptest stub).
func newTestServer(t *testing.T, linkedInURL string) *Server {
	t.Helper()

	app := &config.Config{
		ClientID:               "client-id",
		ClientSecret:           "client-secret",
		SessionSecret:          "signing-secret",
		BaseURL:                "http://localhost:8080",
		SessionExpirationHours: 1,
	}

	s, err := New(Config{Port: 8080, App: app, LinkedInBaseURL: linkedInURL})
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

// withSession adds a valid session cookie carrying the given token.
func withSession(t *testing.T, s *Server, r *http.Request, accessToken string) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, s.sessions.IssueSession(w, accessToken))
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew_RequiresAppConfig(t *testing.T) {
	_, err := New(Config{Port: 8080})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestRoutes_UnknownPath(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWithCORS_Preflight(t *testing.T) {
	s := newTestServer(t, "")

	handler := s.withCORS(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not run for OPTIONS")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/generate-post", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:4567"
	assert.Equal(t, "10.1.2.3", s.extractClientID(req))

	req.RemoteAddr = "not-host-port"
	assert.Equal(t, "not-host-port", s.extractClientID(req))
}
