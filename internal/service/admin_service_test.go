package service

import (
	"errors"
	"testing"

	"github.com/aerosite/internal/db"
)

func TestAdminRegisterAndAuthenticate(t *testing.T) {
	svc := NewAdminService(setupTestDB(t))

	admin, err := svc.Register("ops@example.com", "secret123", "Ops")
	if err != nil {
		t.Fatalf("failed to register admin: %v", err)
	}
	if admin.Role != db.RoleAdmin {
		t.Fatalf("expected default role %q, got %q", db.RoleAdmin, admin.Role)
	}
	if admin.Password == "secret123" {
		t.Fatalf("password must be stored hashed")
	}

	if _, err := svc.Register("ops@example.com", "other", "Dup"); !errors.Is(err, ErrAdminExists) {
		t.Fatalf("expected duplicate email error, got %v", err)
	}

	got, err := svc.Authenticate("ops@example.com", "secret123")
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if got.ID != admin.ID {
		t.Fatalf("authenticated wrong admin: %d", got.ID)
	}

	if _, err := svc.Authenticate("ops@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
}

func TestAdminUpdateProfile(t *testing.T) {
	svc := NewAdminService(setupTestDB(t))

	a, err := svc.Register("a@example.com", "secret123", "A")
	if err != nil {
		t.Fatalf("failed to register admin: %v", err)
	}
	if _, err := svc.Register("b@example.com", "secret123", "B"); err != nil {
		t.Fatalf("failed to register admin: %v", err)
	}

	updated, err := svc.UpdateProfile(a.ID, "A Prime", "")
	if err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}
	if updated.Name != "A Prime" || updated.Email != "a@example.com" {
		t.Fatalf("blank email must keep existing, got %+v", updated)
	}

	if _, err := svc.UpdateProfile(a.ID, "", "b@example.com"); !errors.Is(err, ErrAdminExists) {
		t.Fatalf("expected email conflict error, got %v", err)
	}

	moved, err := svc.UpdateProfile(a.ID, "", "a2@example.com")
	if err != nil {
		t.Fatalf("failed to change email: %v", err)
	}
	if moved.Email != "a2@example.com" || moved.Name != "A Prime" {
		t.Fatalf("unexpected profile after email change: %+v", moved)
	}
}

func TestAdminChangePassword(t *testing.T) {
	svc := NewAdminService(setupTestDB(t))

	admin, err := svc.Register("ops@example.com", "secret123", "Ops")
	if err != nil {
		t.Fatalf("failed to register admin: %v", err)
	}

	if err := svc.ChangePassword(admin.ID, "wrong", "newsecret"); !errors.Is(err, ErrCurrentPasswordInvalid) {
		t.Fatalf("expected current password error, got %v", err)
	}
	if err := svc.ChangePassword(admin.ID, "secret123", "newsecret"); err != nil {
		t.Fatalf("failed to change password: %v", err)
	}

	if _, err := svc.Authenticate("ops@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, err := svc.Authenticate("ops@example.com", "newsecret"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestEnsureAdminBootstrap(t *testing.T) {
	gdb := setupTestDB(t)

	if err := db.EnsureAdmin(gdb, "root@example.com", "secret123", "Root"); err != nil {
		t.Fatalf("failed to bootstrap admin: %v", err)
	}
	// 重复调用不应新建记录
	if err := db.EnsureAdmin(gdb, "root@example.com", "secret123", "Root"); err != nil {
		t.Fatalf("bootstrap must be idempotent: %v", err)
	}

	var count int64
	if err := gdb.Model(&db.Admin{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count admins: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one admin, got %d", count)
	}

	svc := NewAdminService(gdb)
	admin, err := svc.Authenticate("root@example.com", "secret123")
	if err != nil {
		t.Fatalf("failed to authenticate bootstrap admin: %v", err)
	}
	if admin.Role != db.RoleSuperAdmin {
		t.Fatalf("bootstrap admin must be super-admin, got %q", admin.Role)
	}
}
