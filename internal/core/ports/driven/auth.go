package driven

import "github.com/custodia-labs/claro-core/internal/core/domain"

// AuthAdapter handles authentication cryptographic operations for the
// maintainer boundary. Authentication is not part of the registry core;
// this port exists only so the HTTP adapter can gate the rebuild and
// report endpoints.
type AuthAdapter interface {
	// Password operations
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool

	// Token operations
	GenerateToken(claims *domain.TokenClaims) (string, error)
	ParseToken(token string) (*domain.TokenClaims, error)
}
