package domain

import "time"

// AuthContext contains the authenticated maintainer info for request context
type AuthContext struct {
	Subject  string `json:"subject"`
	IssuedAt int64  `json:"iat"`
}

// LoginRequest represents a maintainer login attempt
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful authentication
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
