package server

import (
	"context"
	"log"
	"net/http"

	"github.com/jonathan/linkedin-post-agent/internal/session"
)

// identityClient looks up the signed-in member after the OAuth exchange.
type identityClient interface {
	Profile(ctx context.Context, accessToken string) (map[string]any, error)
}

// AuthHandler handles the OAuth login endpoints. The authorization-code
// exchange itself is delegated to the session gateway's OAuth library.
type AuthHandler struct {
	sessions *session.Gateway
	identity identityClient
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(sessions *session.Gateway, identity identityClient) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		identity: identity,
	}
}

// Login redirects the browser to the identity provider's authorization page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := session.NewState()
	if err != nil {
		http.Error(w, "Failed to start sign-in", http.StatusInternalServerError)
		return
	}

	h.sessions.SetStateCookie(w, state)
	http.Redirect(w, r, h.sessions.LoginURL(state), http.StatusFound)
}

// Callback completes the OAuth dance: verifies the state parameter,
// exchanges the code for an access token, and issues the session cookie.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		http.Error(w, "LinkedIn sign-in was denied: "+errParam, http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	if err := h.sessions.VerifyState(w, r, query.Get("state")); err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	accessToken, err := h.sessions.Exchange(r.Context(), code)
	if err != nil {
		log.Printf("[auth] code exchange failed: %v", err)
		http.Error(w, "LinkedIn sign-in failed", http.StatusBadGateway)
		return
	}

	if err := h.sessions.IssueSession(w, accessToken); err != nil {
		http.Error(w, "Failed to establish session", http.StatusInternalServerError)
		return
	}

	// Best effort: log who signed in. A failure here does not break login.
	if record, err := h.identity.Profile(r.Context(), accessToken); err == nil {
		log.Printf("[auth] LinkedIn session established for member %v", record["id"])
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearSession(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
