package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/sango-pay/sango_pay/internal/config"
	"github.com/sango-pay/sango_pay/internal/identity"
)

func testConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTokenTTL: time.Hour}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService(testConfig())
	user := identity.User{ID: "user-1", AccountID: "acct-1"}

	token, expiresIn, err := svc.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expected ttl 3600, got %d", expiresIn)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.AccountID != "acct-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := NewService(testConfig())
	token, _, err := svc.Issue(identity.User{ID: "user-1", AccountID: "acct-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	other := NewService(config.Config{JWTSecret: "different-secret", AccessTokenTTL: time.Hour})
	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	if _, err := svc.Verify(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := NewService(config.Config{JWTSecret: "test-secret", AccessTokenTTL: -time.Minute})
	token, _, err := svc.Issue(identity.User{ID: "user-1", AccountID: "acct-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
