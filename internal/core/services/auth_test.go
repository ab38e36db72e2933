package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven/mocks"
)

func newTestAuthService(t *testing.T) (*authService, *mocks.MockAuthAdapter) {
	t.Helper()
	adapter := mocks.NewMockAuthAdapter()
	hash, err := adapter.HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	svc := NewAuthService(adapter, "maintainer", hash).(*authService)
	return svc, adapter
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	resp, err := svc.Authenticate(ctx, domain.LoginRequest{
		Username: "maintainer",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Error("token must expire in the future")
	}

	auth, err := svc.ValidateToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if auth.Subject != "maintainer" {
		t.Errorf("expected subject maintainer, got %s", auth.Subject)
	}
}

func TestAuthService_Authenticate_BadCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.LoginRequest
		want error
	}{
		{"empty", domain.LoginRequest{}, domain.ErrInvalidInput},
		{"wrong user", domain.LoginRequest{Username: "intruder", Password: "correct horse"}, domain.ErrInvalidCredentials},
		{"wrong password", domain.LoginRequest{Username: "maintainer", Password: "guess"}, domain.ErrInvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Authenticate(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.ValidateToken(ctx, ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("empty token: expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ValidateToken(ctx, "token-never-issued"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("unknown token: expected ErrTokenInvalid, got %v", err)
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc, adapter := newTestAuthService(t)
	ctx := context.Background()

	token, err := adapter.GenerateToken(&domain.TokenClaims{
		Subject:   "maintainer",
		IssuedAt:  time.Now().Add(-48 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-24 * time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}
