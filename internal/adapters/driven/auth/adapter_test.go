package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
)

func testClaims() *domain.TokenClaims {
	return &domain.TokenClaims{
		UserID:    "user-1",
		SessionID: "session-1",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4) // Low cost for faster tests

	hash, err := adapter.HashPassword("mypassword")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "mypassword" {
		t.Fatal("hash equals plaintext")
	}

	if !adapter.VerifyPassword("mypassword", hash) {
		t.Error("correct password did not verify")
	}
	if adapter.VerifyPassword("wrongpassword", hash) {
		t.Error("wrong password verified")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	h1, _ := adapter.HashPassword("same")
	h2, _ := adapter.HashPassword("same")
	if h1 == h2 {
		t.Error("expected different hashes for the same password")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	adapter := NewAdapter("test-secret")
	claims := testClaims()

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	parsed, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if parsed.UserID != claims.UserID {
		t.Errorf("expected user %s, got %s", claims.UserID, parsed.UserID)
	}
	if parsed.SessionID != claims.SessionID {
		t.Errorf("expected session %s, got %s", claims.SessionID, parsed.SessionID)
	}
	if parsed.ExpiresAt != claims.ExpiresAt {
		t.Errorf("expected expiry %d, got %d", claims.ExpiresAt, parsed.ExpiresAt)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := NewAdapter("secret-a").GenerateToken(testClaims())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = NewAdapter("secret-b").ParseToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	adapter := NewAdapter("test-secret")
	claims := testClaims()
	claims.IssuedAt = time.Now().Add(-2 * time.Hour).Unix()
	claims.ExpiresAt = time.Now().Add(-time.Hour).Unix()

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	_, err = adapter.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_WrongIssuer(t *testing.T) {
	adapter := NewAdapter("test-secret")

	// Signed with the right secret but minted by someone else
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "other-service",
		Subject:   "user-1",
		ID:        "session-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := foreign.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = adapter.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_NoSessionBinding(t *testing.T) {
	adapter := NewAdapter("test-secret")

	// A token without a session ID cannot be revoked, so it is refused
	unbound := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unbound.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	_, err = adapter.ParseToken(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	adapter := NewAdapter("test-secret")

	_, err := adapter.ParseToken("not.a.token")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
