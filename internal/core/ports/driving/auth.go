package driving

import (
	"context"

	"github.com/custodia-labs/claro-core/internal/core/domain"
)

// AuthService handles maintainer authentication for the admin endpoints
type AuthService interface {
	// Authenticate validates credentials and issues a token
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a JWT token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
