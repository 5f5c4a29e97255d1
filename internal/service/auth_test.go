package service

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"shopcart-api/internal/model"
	"shopcart-api/internal/repository"
	"shopcart-api/pkg/apierror"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	users := repository.NewJSONUserRepository(filepath.Join(t.TempDir(), "users.json"))
	return NewAuthService(users)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	apiErr, ok := err.(*apierror.Error)
	if !ok {
		t.Fatalf("expected *apierror.Error, got %T: %v", err, err)
	}
	return apiErr.StatusCode
}

func TestRegisterThenAuthenticate(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q, want alice", user.Username)
	}
	if user.Role != model.RoleCustomer {
		t.Errorf("role = %q, want customer", user.Role)
	}
	if user.HashedPassword == "s3cret" {
		t.Error("password must not be stored in plain text")
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Authenticate(ctx, "alice", "wrong")
	if got := statusOf(t, err); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", got)
	}
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	if got := statusOf(t, err); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", got)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "one"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, "alice", "two")
	if got := statusOf(t, err); got != http.StatusConflict {
		t.Errorf("status = %d, want 409", got)
	}
}

func TestChangePassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "old"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := svc.ChangePassword(ctx, "alice", "old", "new"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "alice", "old"); err == nil {
		t.Error("old password must stop working after a change")
	}
	if _, err := svc.Authenticate(ctx, "alice", "new"); err != nil {
		t.Errorf("new password should authenticate: %v", err)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "old"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	err := svc.ChangePassword(ctx, "alice", "bogus", "new")
	if got := statusOf(t, err); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	svc := newAuthService(t)

	customer := &model.User{Username: "alice", Role: model.RoleCustomer}
	if err := svc.RequireAdmin(customer); err == nil {
		t.Error("customer must not pass the admin check")
	} else if got := statusOf(t, err); got != http.StatusForbidden {
		t.Errorf("status = %d, want 403", got)
	}

	admin := &model.User{Username: "root", Role: model.RoleAdmin}
	if err := svc.RequireAdmin(admin); err != nil {
		t.Errorf("admin should pass the admin check: %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin", "admin_password"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	user, err := svc.Authenticate(ctx, "admin", "admin_password")
	if err != nil {
		t.Fatalf("seeded admin should authenticate: %v", err)
	}
	if !user.IsAdmin() {
		t.Errorf("seeded user role = %q, want admin", user.Role)
	}

	// Seeding again must not clobber the account.
	if err := svc.EnsureAdmin(ctx, "admin", "different"); err != nil {
		t.Fatalf("second EnsureAdmin failed: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "admin", "admin_password"); err != nil {
		t.Errorf("original admin password should still work: %v", err)
	}
}
