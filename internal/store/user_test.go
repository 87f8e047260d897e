package store

import (
	"testing"

	"atelier/internal/models"
)

func TestUserCreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	t.Cleanup(func() { cleanUsers(t, db, "store-test@example.com") })

	created, err := s.Create("store-test@example.com", "s3cret-pass", "Store Tester", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Role != models.RoleAdmin {
		t.Errorf("role: got %q", created.Role)
	}
	if created.TOTPEnabled {
		t.Error("new user should not have 2FA enabled")
	}

	found, err := s.FindByEmail("store-test@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found == nil {
		t.Fatal("user not found by email")
	}

	if !s.CheckPassword(found, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(found, "wrong-pass") {
		t.Error("wrong password accepted")
	}
}

func TestUserTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	t.Cleanup(func() { cleanUsers(t, db, "totp-test@example.com") })

	u, err := s.Create("totp-test@example.com", "pass", "TOTP Tester", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("set secret: %v", err)
	}
	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("enable: %v", err)
	}

	u, err = s.FindByID(u.ID)
	if err != nil || u == nil {
		t.Fatalf("reload: %v", err)
	}
	if !u.TOTPEnabled || u.TOTPSecret == nil {
		t.Error("2FA should be enabled with a stored secret")
	}

	if err := s.ResetTOTP(u.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	u, _ = s.FindByID(u.ID)
	if u.TOTPEnabled || u.TOTPSecret != nil {
		t.Error("reset should clear secret and disable 2FA")
	}
}

func TestUserFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	u, err := s.FindByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if u != nil {
		t.Error("expected nil for unknown email")
	}
}
