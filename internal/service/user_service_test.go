package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/forum-service/internal/config"
	"github.com/spec-kit/forum-service/internal/domain"
	apperrors "github.com/spec-kit/forum-service/pkg/util"
)

func newUserFixture() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "unit-test-secret",
		Issuer:                "forum-service",
		AccessTokenTTLSeconds: 3600,
		BcryptCost:            bcrypt.MinCost,
	}}
	return NewUserService(cfg, repo), repo
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, _ := newUserFixture()

	user, token, _, err := svc.Register(context.Background(), "Ada", "Lovelace", "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("new accounts must default to MEMBER, got %s", user.Role)
	}

	claims, err := svc.TokenManager().Verify(token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.ID != user.ID || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "Ada", "", "ada@example.com", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, _, err := svc.Register(ctx, "Imposter", "", "ada@example.com", "other")
	assertCode(t, err, apperrors.CodeConflict)
}

func TestLoginSuccessAndFailure(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	if _, _, _, err := svc.Register(ctx, "Ada", "", "ada@example.com", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "ada@example.com", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}

	_, _, _, err := svc.Login(ctx, "ada@example.com", "wrong")
	assertCode(t, err, apperrors.CodeUnauthorized)

	// Unknown account and wrong password are indistinguishable.
	_, _, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assertCode(t, err, apperrors.CodeUnauthorized)
}

func TestListUsersAdminOnly(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	_, err := svc.ListUsers(ctx, memberIdentity(1), 20, 0)
	assertCode(t, err, apperrors.CodeForbidden)

	if _, err := svc.ListUsers(ctx, adminIdentity(1), 20, 0); err != nil {
		t.Fatalf("admin list: %v", err)
	}
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "Ada", "", "ada@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	identity := memberIdentity(user.ID)

	assertCode(t, svc.ChangePassword(ctx, identity, "wrong", "newpass"), apperrors.CodeUnauthorized)

	if err := svc.ChangePassword(ctx, identity, "s3cret", "newpass"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "ada@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	_, _, _, err = svc.Login(ctx, "ada@example.com", "s3cret")
	assertCode(t, err, apperrors.CodeUnauthorized)
}
