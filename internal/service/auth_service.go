package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stemsi/quiz-app/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong admin username/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionClaims is the signed content of the browser session cookie.
// The registered ID claim carries the session id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin,omitempty"`
}

// AuthService handles the admin credential check, admin grants and session
// token signing.
type AuthService struct {
	cfg    *config.Config
	grants AdminGrantStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, grants AdminGrantStore) *AuthService {
	return &AuthService{cfg: cfg, grants: grants}
}

// CheckAdminCredentials compares the pair against the configured admin credential.
// A configured bcrypt hash takes precedence over the plaintext password.
func (s *AuthService) CheckAdminCredentials(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1

	var passOK bool
	if s.cfg.AdminPasswordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// GrantAdmin records a successful admin login for the session.
func (s *AuthService) GrantAdmin(ctx context.Context, sessionID string) error {
	return s.grants.Grant(ctx, sessionID)
}

// RevokeAdmin ends the admin login of the session. Cookies still claiming
// admin for it are no longer honoured.
func (s *AuthService) RevokeAdmin(ctx context.Context, sessionID string) error {
	return s.grants.Revoke(ctx, sessionID)
}

// IsAdmin reports whether the session currently holds an admin login.
func (s *AuthService) IsAdmin(ctx context.Context, sessionID string) (bool, error) {
	return s.grants.IsGranted(ctx, sessionID)
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// IssueSessionToken signs a session cookie value for sessionID.
func (s *AuthService) IssueSessionToken(sessionID string, admin bool) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.SessionTTL)),
		},
		Admin: admin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session cookie value and returns its claims.
func (s *AuthService) ParseSessionToken(tokenStr string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errors.New("invalid session claims")
	}
	return claims, nil
}

// SessionTTL is the lifetime of issued session tokens.
func (s *AuthService) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}
