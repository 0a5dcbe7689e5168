// Package session implements the OAuth session gateway. The authorization
// code dance itself is delegated to golang.org/x/oauth2; this package only
// wires the LinkedIn endpoint and carries the resulting access token in a
// signed session cookie for the duration of the browser session. The token is
// never written to durable storage.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"

	"github.com/jonathan/linkedin-post-agent/internal/config"
)

const (
	sessionCookieName = "post_agent_session"
	stateCookieName   = "post_agent_oauth_state"
	stateTTL          = 10 * time.Minute
)

// ErrNoSession is returned when the request carries no valid session cookie.
var ErrNoSession = errors.New("not authenticated with LinkedIn")

// Scopes requested from the identity provider: profile read and post write.
var Scopes = []string{"openid", "profile", "email", "w_member_social"}

// sessionClaims is the JWT payload of the session cookie.
type sessionClaims struct {
	AccessToken string `json:"access_token"`
	jwt.RegisteredClaims
}

// Gateway exchanges OAuth codes for access tokens and exposes the current
// token to handlers via a signed cookie.
type Gateway struct {
	oauth      *oauth2.Config
	secret     []byte
	expiration time.Duration
	secure     bool
}

// NewGateway creates a session gateway from the process configuration.
func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL(),
			Scopes:       Scopes,
			Endpoint:     linkedin.Endpoint,
		},
		secret:     []byte(cfg.SessionSecret),
		expiration: time.Duration(cfg.SessionExpirationHours) * time.Hour,
		secure:     strings.HasPrefix(cfg.BaseURL, "https://"),
	}
}

// NewState returns a fresh random state parameter.
func NewState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// LoginURL returns the provider authorization URL for the given state.
func (g *Gateway) LoginURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token via the OAuth
// library. The refresh machinery is the library's concern, not ours.
func (g *Gateway) Exchange(ctx context.Context, code string) (string, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("OAuth code exchange failed: %w", err)
	}
	return token.AccessToken, nil
}

// SetStateCookie stores the state parameter in a short-lived cookie so the
// callback can verify it.
func (g *Gateway) SetStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// VerifyState checks the callback's state parameter against the cookie set
// at login time and clears the cookie.
func (g *Gateway) VerifyState(w http.ResponseWriter, r *http.Request, state string) error {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != state {
		return errors.New("OAuth state mismatch")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secure,
	})
	return nil
}

// IssueSession signs the access token into the session cookie.
func (g *Gateway) IssueSession(w http.ResponseWriter, accessToken string) error {
	now := time.Now()
	claims := &sessionClaims{
		AccessToken: accessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(g.expiration.Seconds()),
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// AccessToken returns the access token from the request's session cookie.
// A missing, tampered, or expired cookie yields ErrNoSession.
func (g *Gateway) AccessToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid || claims.AccessToken == "" {
		return "", ErrNoSession
	}
	return claims.AccessToken, nil
}

// ClearSession removes the session cookie.
func (g *Gateway) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secure,
	})
}
