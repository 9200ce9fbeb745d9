// internal/session/session.go
//
// Browser session identity.
// A session ID (UUID) travels in an HS256-signed JWT cookie so a player keeps
// the same game across requests without any server-side login.
//
// Notes:
//   - Tokens may also arrive as "Authorization: Bearer <token>" (API clients).
//   - Cookies are Secure + SameSite=None in production, Lax otherwise.

package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no session")

// Manager issues and verifies session cookies.
type Manager struct {
	secret     []byte
	cookieName string
	secure     bool
	ttl        time.Duration
	now        func() time.Time
}

// NewManager builds a Manager. secure controls the cookie's Secure/SameSite attributes.
func NewManager(secret, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		secret:     []byte(secret),
		cookieName: cookieName,
		secure:     secure,
		ttl:        ttl,
		now:        time.Now,
	}
}

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Sign creates a token for sid valid for the manager's TTL.
func (m *Manager) Sign(sid string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return ss, exp, nil
}

// Parse verifies a token and returns its session ID.
func (m *Manager) Parse(token string) (string, error) {
	var c claims
	t, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !t.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrNoSession)
	}
	if _, err := uuid.Parse(c.SID); err != nil {
		return "", fmt.Errorf("%w: bad sid", ErrNoSession)
	}
	return c.SID, nil
}

// Resolve returns the session ID carried by r, if any.
func (m *Manager) Resolve(r *http.Request) (string, error) {
	tok := m.bearerOrCookie(r)
	if tok == "" {
		return "", ErrNoSession
	}
	return m.Parse(tok)
}

// Ensure returns r's session ID, issuing a fresh cookie when r has none
// or carries an invalid one.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) (string, error) {
	if sid, err := m.Resolve(r); err == nil {
		return sid, nil
	}
	sid := uuid.NewString()
	tok, exp, err := m.Sign(sid)
	if err != nil {
		return "", err
	}
	m.setCookie(w, tok, exp)
	return sid, nil
}

// Clear deletes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite(),
		MaxAge:   -1,
	})
}

func (m *Manager) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite(),
		Expires:  exp,
	})
}

func (m *Manager) sameSite() http.SameSite {
	if m.secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// bearerOrCookie extracts a bearer token from the Authorization header or the session cookie.
func (m *Manager) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(m.cookieName); err == nil {
		return c.Value
	}
	return ""
}
