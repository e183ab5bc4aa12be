package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocksphere/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionKeyPrefix namespaces session flags in the storage backend.
const SessionKeyPrefix = "stock_sphere_auth"

const (
	issuer          = "stocksphere"
	sessionFlag     = "true"
	defaultTokenTTL = 12 * time.Hour
)

var (
	ErrAuthDisabled = errors.New("authentication is disabled")
	ErrInvalidToken = errors.New("invalid token")
)

// SessionClaims is the JWT payload. The registered ID (jti) is the session id.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is returned on a successful login
type Session struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionManager issues and revokes login sessions. A session is logged in
// while its flag key exists in the backend; the flag expires with the token.
type SessionManager interface {
	Enabled() bool
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	Active(ctx context.Context, sessionID string) (bool, error)
	ParseToken(token string) (*SessionClaims, error)
}

type sessionManager struct {
	backend  storage.Backend
	verifier CredentialVerifier
	secret   []byte
	ttl      time.Duration
	log      *zap.Logger
	now      func() time.Time
}

// NewSessionManager returns a manager backed by backend. A nil verifier
// disables the gate entirely.
func NewSessionManager(backend storage.Backend, verifier CredentialVerifier, secret string, ttl time.Duration, log *zap.Logger) SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if verifier == nil {
		log.Warn("no credentials configured, authentication is disabled")
	}
	return &sessionManager{
		backend:  backend,
		verifier: verifier,
		secret:   []byte(secret),
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

// SessionKey is the backend key of a session flag.
func SessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", SessionKeyPrefix, sessionID)
}

func (m *sessionManager) Enabled() bool {
	return m.verifier != nil
}

func (m *sessionManager) Login(ctx context.Context, username, password string) (*Session, error) {
	if !m.Enabled() {
		return nil, ErrAuthDisabled
	}
	if err := m.verifier.Verify(ctx, username, password); err != nil {
		m.log.Info("login rejected", zap.String("username", username))
		return nil, err
	}

	now := m.now()
	sessionID := uuid.NewString()
	expiresAt := now.Add(m.ttl)
	claims := SessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}
	if err := m.backend.SetWithTTL(ctx, SessionKey(sessionID), sessionFlag, m.ttl); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	m.log.Info("session started", zap.String("username", username), zap.String("session_id", sessionID))
	return &Session{
		Token:     token,
		TokenType: "Bearer",
		SessionID: sessionID,
		Username:  username,
		ExpiresAt: expiresAt,
	}, nil
}

func (m *sessionManager) Logout(ctx context.Context, sessionID string) error {
	if err := m.backend.Delete(ctx, SessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.log.Info("session ended", zap.String("session_id", sessionID))
	return nil
}

func (m *sessionManager) Active(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	_, err := m.backend.Get(ctx, SessionKey(sessionID))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrKeyNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to read session: %w", err)
	}
}

func (m *sessionManager) ParseToken(token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
