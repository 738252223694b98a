package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/verdure/store"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestManager(t *testing.T) (*store.MemoryStore, *Manager, string) {
	t.Helper()
	st := store.NewMemoryStore()
	path := filepath.Join(t.TempDir(), "session.json")
	m := NewManager(st, path, testLogger())
	if _, err := m.Register(context.Background(), "anna", "terra-rossa"); err != nil {
		t.Fatalf("register: %v", err)
	}
	return st, m, path
}

func TestHashSecretStable(t *testing.T) {
	a := HashSecret("terra-rossa")
	b := HashSecret("terra-rossa")
	if a != b {
		t.Fatal("same secret hashed differently")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
	if a == HashSecret("terra-bianca") {
		t.Error("different secrets collide")
	}
}

func TestLoginSuccess(t *testing.T) {
	_, m, path := newTestManager(t)

	user, err := m.Login(context.Background(), "  anna  ", "terra-rossa")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "anna" || user.Role != RoleAdmin {
		t.Errorf("user = %+v", user)
	}
	if !m.IsAdmin() {
		t.Error("signed-in user is not admin")
	}
	if cur, ok := m.Current(); !ok || cur.Username != "anna" {
		t.Errorf("Current = %+v, %v", cur, ok)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("session file not written: %v", err)
	}
}

func TestLoginWrongSecret(t *testing.T) {
	_, m, _ := newTestManager(t)

	if _, err := m.Login(context.Background(), "anna", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if m.IsAdmin() {
		t.Error("failed login granted admin")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	_, m, _ := newTestManager(t)

	if _, err := m.Login(context.Background(), "nobody", "terra-rossa"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogoutClearsSessionAndRunsHooks(t *testing.T) {
	_, m, path := newTestManager(t)

	hookRuns := 0
	m.OnLogout(func() { hookRuns++ })

	if _, err := m.Login(context.Background(), "anna", "terra-rossa"); err != nil {
		t.Fatalf("login: %v", err)
	}
	m.Logout()

	if m.IsAdmin() {
		t.Error("still admin after logout")
	}
	if _, ok := m.Current(); ok {
		t.Error("Current returned a user after logout")
	}
	if hookRuns != 1 {
		t.Errorf("hook ran %d times, want 1", hookRuns)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file survived logout: %v", err)
	}
}

func TestRestoreFromSessionFile(t *testing.T) {
	st, m, path := newTestManager(t)

	if _, err := m.Login(context.Background(), "anna", "terra-rossa"); err != nil {
		t.Fatalf("login: %v", err)
	}

	// A fresh manager reading the same session file picks up the user.
	fresh := NewManager(st, path, testLogger())
	fresh.Restore()
	if !fresh.IsAdmin() {
		t.Fatal("restored session is not admin")
	}
	if cur, ok := fresh.Current(); !ok || cur.Username != "anna" {
		t.Errorf("Current = %+v, %v", cur, ok)
	}
}

func TestRestoreDiscardsCorruptSessionFile(t *testing.T) {
	st, _, _ := newTestManager(t)

	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := NewManager(st, path, testLogger())
	m.Restore()
	if _, ok := m.Current(); ok {
		t.Error("corrupt session restored a user")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt session file not removed")
	}
}

func TestRestoreMissingFileIsSilent(t *testing.T) {
	st := store.NewMemoryStore()
	m := NewManager(st, filepath.Join(t.TempDir(), "absent.json"), testLogger())
	m.Restore()
	if _, ok := m.Current(); ok {
		t.Error("missing session file restored a user")
	}
}

func TestRegisterRequiresUsernameAndSecret(t *testing.T) {
	st := store.NewMemoryStore()
	m := NewManager(st, "", testLogger())

	if _, err := m.Register(context.Background(), "   ", "secret"); err == nil {
		t.Error("blank username accepted")
	}
	if _, err := m.Register(context.Background(), "anna", ""); err == nil {
		t.Error("empty secret accepted")
	}
}
