// Package session issues and verifies the signed cookie that carries the
// current username between requests. The workflows never read it themselves:
// the HTTP layer resolves the cookie into an explicit username parameter.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sneakhead/sneakhead-backend/pkg/config"
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the typed token stored in the session cookie.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager mints and parses session cookies.
type Manager struct {
	cfg config.SessionConfig
}

func NewManager(cfg config.SessionConfig) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{cfg: cfg}, nil
}

// Issue mints a signed token for the username. Remember-me selects the long TTL.
func (m *Manager) Issue(username string, rememberMe bool, now time.Time) (string, time.Time, error) {
	if username == "" {
		return "", time.Time{}, fmt.Errorf("username is required")
	}

	ttl := m.cfg.TTL
	if rememberMe && m.cfg.RememberMeTTL > ttl {
		ttl = m.cfg.RememberMeTTL
	}
	expiry := now.Add(ttl)

	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(m.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing session token: %w", err)
	}
	return signed, expiry, nil
}

// Parse validates the token string and returns the username it carries.
func (m *Manager) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != signingMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(m.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
	)
	if err != nil {
		return "", err
	}
	if claims.Username == "" {
		return "", fmt.Errorf("session token carries no username")
	}
	return claims.Username, nil
}

// Cookie builds the session cookie for a signed token.
func (m *Manager) Cookie(token string, expiry time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiry,
		HttpOnly: m.cfg.CookieHTTPOnly,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie immediately.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: m.cfg.CookieHTTPOnly,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieName exposes the configured cookie name for the middleware.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}
