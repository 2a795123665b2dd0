// Package auth implements admin authentication for the API: credential
// verification against the admin store and opaque bearer tokens with a TTL.
// Token issuance is deliberately minimal; there is no token protocol beyond
// an opaque random value the server remembers.
package auth

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdallah-SE/ecommerce-api/model"
	"github.com/Abdallah-SE/ecommerce-api/storage"
)

// ErrUnauthenticated is the authentication failure signal. The response
// renderer maps it to 401 with code "auth.unauthenticated".
var ErrUnauthenticated = stderrors.New("unauthenticated")

// AdminFinder is the slice of the admin store that authentication needs.
type AdminFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// Token is an issued bearer token with its expiry.
type Token struct {
	Value     string
	AdminID   int64
	ExpiresAt time.Time
}

// TokenManager issues and validates opaque bearer tokens. Safe for concurrent
// use.
type TokenManager struct {
	mu     sync.RWMutex
	ttl    time.Duration
	tokens map[string]Token

	// now allows tests to control time.
	now func() time.Time
}

// NewTokenManager creates a TokenManager with the given token lifetime.
func NewTokenManager(ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenManager{
		ttl:    ttl,
		tokens: make(map[string]Token),
		now:    time.Now,
	}
}

// TTL returns the configured token lifetime.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a new token for an admin. Expired tokens are purged here so
// abandoned sessions do not accumulate for the life of the process.
func (m *TokenManager) Issue(adminID int64) Token {
	now := m.now()
	token := Token{
		Value:     uuid.NewString(),
		AdminID:   adminID,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	for value, existing := range m.tokens {
		if now.After(existing.ExpiresAt) {
			delete(m.tokens, value)
		}
	}
	m.tokens[token.Value] = token
	m.mu.Unlock()

	return token
}

// Validate resolves a bearer token to the admin it belongs to. Unknown or
// expired tokens return ErrUnauthenticated; expired tokens are dropped.
func (m *TokenManager) Validate(value string) (int64, error) {
	if value == "" {
		return 0, ErrUnauthenticated
	}

	m.mu.RLock()
	token, ok := m.tokens[value]
	m.mu.RUnlock()

	if !ok {
		return 0, ErrUnauthenticated
	}
	if m.now().After(token.ExpiresAt) {
		m.mu.Lock()
		delete(m.tokens, value)
		m.mu.Unlock()
		return 0, ErrUnauthenticated
	}
	return token.AdminID, nil
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (m *TokenManager) Revoke(value string) {
	m.mu.Lock()
	delete(m.tokens, value)
	m.mu.Unlock()
}

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate verifies credentials against the admin store. Unknown emails
// and wrong passwords both return ErrUnauthenticated; store failures other
// than a miss propagate unchanged.
func Authenticate(ctx context.Context, store AdminFinder, email, password string) (*model.Admin, error) {
	admin, err := store.FindByEmail(ctx, email)
	if err != nil {
		var miss *storage.RecordNotFoundError
		if stderrors.As(err, &miss) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrUnauthenticated
	}
	return admin, nil
}
