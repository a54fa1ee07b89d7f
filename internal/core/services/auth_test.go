package services

import (
	"context"
	"errors"
	"testing"

	"github.com/covenant-labs/covenant-core/internal/core/domain"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driven/mocks"
	"github.com/covenant-labs/covenant-core/internal/core/ports/driving"
)

type authFixture struct {
	userStore    *mocks.MockUserStore
	sessionStore *mocks.MockSessionStore
	svc          driving.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		userStore:    mocks.NewMockUserStore(),
		sessionStore: mocks.NewMockSessionStore(),
	}
	f.svc = NewAuthService(f.userStore, f.sessionStore, mocks.NewMockAuthAdapter())

	err := f.userStore.Save(context.Background(), &domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: "hashed:correct-password",
		Name:         "Alice",
		Role:         domain.RoleMember,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return f
}

func TestAuthenticate(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected token")
	}
	if resp.RefreshToken == "" {
		t.Error("expected refresh token")
	}
	if resp.User.Email != "alice@example.com" {
		t.Errorf("unexpected user %+v", resp.User)
	}

	user, _ := f.userStore.Get(context.Background(), "user-1")
	if user.LastLoginAt == nil {
		t.Error("expected last login timestamp to be set")
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newAuthFixture(t)

	tests := []struct {
		name string
		req  domain.LoginRequest
		want error
	}{
		{"empty email", domain.LoginRequest{Password: "x"}, domain.ErrInvalidInput},
		{"empty password", domain.LoginRequest{Email: "alice@example.com"}, domain.ErrInvalidInput},
		{"unknown user", domain.LoginRequest{Email: "nobody@example.com", Password: "x"}, domain.ErrInvalidCredentials},
		{"wrong password", domain.LoginRequest{Email: "alice@example.com", Password: "wrong"}, domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Authenticate(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	_ = f.userStore.Save(context.Background(), &domain.User{
		ID:           "user-2",
		Email:        "bob@example.com",
		PasswordHash: "hashed:pw",
		Active:       false,
	})

	_, err := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "bob@example.com",
		Password: "pw",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	f := newAuthFixture(t)
	resp, err := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	authCtx, err := f.svc.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", authCtx.UserID)
	}
	if authCtx.Role != domain.RoleMember {
		t.Errorf("expected member role, got %s", authCtx.Role)
	}
	if authCtx.SessionID == "" {
		t.Error("expected session ID in auth context")
	}
}

func TestValidateToken_Rejections(t *testing.T) {
	f := newAuthFixture(t)

	if _, err := f.svc.ValidateToken(context.Background(), ""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for empty token, got %v", err)
	}
	if _, err := f.svc.ValidateToken(context.Background(), "garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage token, got %v", err)
	}
}

func TestValidateToken_LoggedOutSession(t *testing.T) {
	f := newAuthFixture(t)
	resp, _ := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})

	authCtx, err := f.svc.ValidateToken(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if err := f.svc.Logout(context.Background(), authCtx.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := f.svc.ValidateToken(context.Background(), resp.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	first, _ := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})

	second, err := f.svc.RefreshToken(context.Background(), domain.RefreshRequest{
		RefreshToken: first.RefreshToken,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Token == first.Token {
		t.Error("expected a new token after refresh")
	}

	// The old refresh token is single-use
	if _, err := f.svc.RefreshToken(context.Background(), domain.RefreshRequest{
		RefreshToken: first.RefreshToken,
	}); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for reused refresh token, got %v", err)
	}
}

func TestLogoutAll(t *testing.T) {
	f := newAuthFixture(t)
	first, _ := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	second, _ := f.svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})

	if err := f.svc.LogoutAll(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, token := range []string{first.Token, second.Token} {
		if _, err := f.svc.ValidateToken(context.Background(), token); err == nil {
			t.Error("expected token to be invalid after logout-all")
		}
	}
}
