package db

import "testing"

func TestEnsureUserCreatesHashedUserOnce(t *testing.T) {
	gdb := setupTestDB(t)

	user, err := EnsureUser(gdb, " admin ", "admin123")
	if err != nil {
		t.Fatalf("EnsureUser returned error: %v", err)
	}
	if user == nil || user.ID == 0 {
		t.Fatalf("expected created user, got %+v", user)
	}
	if user.Password == "admin123" {
		t.Fatal("password should be hashed")
	}
	if !user.CheckPassword("admin123") {
		t.Fatal("expected hashed password to verify")
	}

	again, err := EnsureUser(gdb, "admin", "other")
	if err != nil {
		t.Fatalf("second EnsureUser returned error: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("expected existing user %d, got %d", user.ID, again.ID)
	}

	var count int64
	gdb.Model(&User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	gdb := setupTestDB(t)

	user, err := EnsureUser(gdb, "admin", "  ")
	if err != nil || user != nil {
		t.Fatalf("expected no-op, got user=%+v err=%v", user, err)
	}
}

func TestSetPasswordKeepsExistingHash(t *testing.T) {
	var u User
	if err := u.SetPassword("secret"); err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}
	hashed := u.Password

	var copyUser User
	if err := copyUser.SetPassword(hashed); err != nil {
		t.Fatalf("SetPassword with hash returned error: %v", err)
	}
	if copyUser.Password != hashed {
		t.Fatal("existing bcrypt hash should be stored as-is")
	}
	if err := copyUser.SetPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}
