package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"haulhub/internal/domain"
	"haulhub/internal/service"
)

func newAuthService(userRepo *MockUserRepository) *service.AuthService {
	return service.NewAuthService(userRepo, "test-signing-key", "haulhub-test", time.Hour)
}

func seedUser(t *testing.T, userRepo *MockUserRepository, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	userRepo.AddUser(user)
	return user
}

func TestLoginAndVerify(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo)
	user := seedUser(t, userRepo, "dispatch@haulhub.test", "s3cret", domain.RoleDispatcher)

	token, loggedIn, err := svc.Login(context.Background(), "dispatch@haulhub.test", "s3cret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, loggedIn.ID)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != domain.RoleDispatcher {
		t.Errorf("claims do not match user: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	userRepo := NewMockUserRepository()
	svc := newAuthService(userRepo)
	seedUser(t, userRepo, "driver@haulhub.test", "correct", domain.RoleDriver)
	ctx := context.Background()

	// Wrong password and unknown email must be indistinguishable.
	if _, _, err := svc.Login(ctx, "driver@haulhub.test", "wrong"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@haulhub.test", "correct"); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for empty input, got %v", err)
	}
}

func TestVerifyTokenRejectsForgedToken(t *testing.T) {
	userRepo := NewMockUserRepository()
	seedUser(t, userRepo, "admin@haulhub.test", "pw", domain.RoleAdmin)

	// Token signed with a different key must not verify.
	other := service.NewAuthService(userRepo, "other-key", "haulhub-test", time.Hour)
	token, _, err := other.Login(context.Background(), "admin@haulhub.test", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	svc := newAuthService(userRepo)
	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("token signed with a different key should not verify")
	}
	if _, err := svc.VerifyToken("not-a-token"); err == nil {
		t.Error("garbage input should not verify")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	userRepo := NewMockUserRepository()
	seedUser(t, userRepo, "admin@haulhub.test", "pw", domain.RoleAdmin)

	expired := service.NewAuthService(userRepo, "test-signing-key", "haulhub-test", -time.Minute)
	token, _, err := expired.Login(context.Background(), "admin@haulhub.test", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	svc := newAuthService(userRepo)
	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("expired token should not verify")
	}
}
