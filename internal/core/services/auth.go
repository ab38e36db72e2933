package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/custodia-labs/claro-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService authenticates the single content-maintainer identity that
// may trigger rebuilds and read validation reports. There is no user
// store: the credential is supplied at startup, bcrypt-hashed, and
// tokens are stateless JWTs.
type authService struct {
	authAdapter  driven.AuthAdapter
	username     string
	passwordHash string
	tokenTTL     time.Duration
}

// NewAuthService creates an AuthService for the given maintainer
// credential. The password hash is produced with the adapter's
// HashPassword, typically at process start.
func NewAuthService(authAdapter driven.AuthAdapter, username, passwordHash string) driving.AuthService {
	return &authService{
		authAdapter:  authAdapter,
		username:     username,
		passwordHash: passwordHash,
		tokenTTL:     24 * time.Hour,
	}
}

// Authenticate validates credentials and issues a token
func (s *authService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.authAdapter.VerifyPassword(req.Password, s.passwordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &domain.TokenClaims{
		Subject:   s.username,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	token, err := s.authAdapter.GenerateToken(claims)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken validates a JWT token and returns the auth context
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims, err := s.authAdapter.ParseToken(token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	return &domain.AuthContext{
		Subject:  claims.Subject,
		IssuedAt: claims.IssuedAt,
	}, nil
}
