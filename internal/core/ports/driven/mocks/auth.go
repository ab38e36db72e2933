package mocks

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// MockAuthAdapter is an in-memory implementation of driven.AuthAdapter
// for testing. Tokens are opaque handles into an internal map rather
// than real JWTs.
type MockAuthAdapter struct {
	mu     sync.Mutex
	tokens map[string]*domain.TokenClaims
	serial int

	GenerateErr error
	ParseErr    error
}

func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{tokens: make(map[string]*domain.TokenClaims)}
}

// HashPassword returns a reversible fake hash.
func (m *MockAuthAdapter) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

// VerifyPassword checks a password against a fake hash.
func (m *MockAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

// GenerateToken returns an opaque token bound to the claims.
func (m *MockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serial++
	token := fmt.Sprintf("token-%d", m.serial)
	c := *claims
	m.tokens[token] = &c
	return token, nil
}

// ParseToken resolves a token issued by GenerateToken.
func (m *MockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	if m.ParseErr != nil {
		return nil, m.ParseErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	claims, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	c := *claims
	return &c, nil
}
