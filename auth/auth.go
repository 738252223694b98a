// Package auth manages login state for the garden planner. Credentials are
// checked against the record store's user table and the signed-in user is
// persisted to a session file so a restart stays logged in.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/phanxgames/verdure/store"
)

// ErrInvalidCredentials is returned on a failed login. It deliberately does
// not say whether the user or the secret was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Role separates editing users from read-only ones.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// User is the signed-in identity.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Manager holds the current session. A nil current user means viewer access:
// anyone can look, only signed-in users can edit.
type Manager struct {
	mu sync.Mutex

	st          store.Store
	log         *logrus.Logger
	sessionPath string

	current  *User
	onLogout []func()
}

// NewManager creates a manager persisting its session at sessionPath; an
// empty path disables persistence.
func NewManager(st store.Store, sessionPath string, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{st: st, log: log, sessionPath: sessionPath}
}

// OnLogout registers a hook run after every logout, for state that must not
// outlive the session.
func (m *Manager) OnLogout(fn func()) {
	m.mu.Lock()
	m.onLogout = append(m.onLogout, fn)
	m.mu.Unlock()
}

// Current returns the signed-in user, or false when browsing as viewer.
func (m *Manager) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return User{}, false
	}
	return *m.current, true
}

// IsAdmin reports whether the session may edit.
func (m *Manager) IsAdmin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && m.current.Role == RoleAdmin
}

// Login verifies the credentials and starts a session.
func (m *Manager) Login(ctx context.Context, username, secret string) (User, error) {
	username = strings.TrimSpace(username)
	rec, err := m.st.GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("login: %w", err)
	}
	digest := HashSecret(secret)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(rec.SecretHash)) != 1 {
		return User{}, ErrInvalidCredentials
	}

	user := User{ID: rec.ID, Username: rec.Username, Role: RoleAdmin}
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	if err := m.saveSession(user); err != nil {
		m.log.WithError(err).Warn("session not persisted")
	}
	m.log.WithField("user", user.Username).Info("logged in")
	return user, nil
}

// Logout ends the session, removes the session file, and runs the hooks.
func (m *Manager) Logout() {
	m.mu.Lock()
	user := m.current
	m.current = nil
	hooks := make([]func(), len(m.onLogout))
	copy(hooks, m.onLogout)
	m.mu.Unlock()

	if m.sessionPath != "" {
		_ = os.Remove(m.sessionPath)
	}
	for _, fn := range hooks {
		fn()
	}
	if user != nil {
		m.log.WithField("user", user.Username).Info("logged out")
	}
}

// Restore loads a persisted session, if any. Missing or unreadable session
// files leave the manager signed out without error.
func (m *Manager) Restore() {
	if m.sessionPath == "" {
		return
	}
	data, err := os.ReadFile(m.sessionPath)
	if err != nil {
		return
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		m.log.WithError(err).Warn("discarding unreadable session file")
		_ = os.Remove(m.sessionPath)
		return
	}
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	m.log.WithField("user", user.Username).Debug("session restored")
}

// Register creates a user record with the hashed secret.
func (m *Manager) Register(ctx context.Context, username, secret string) (store.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return store.User{}, fmt.Errorf("register: username and secret required")
	}
	user := store.User{
		Username:   username,
		SecretHash: HashSecret(secret),
	}
	if err := m.st.InsertUser(ctx, &user); err != nil {
		return store.User{}, fmt.Errorf("register: %w", err)
	}
	return user, nil
}

func (m *Manager) saveSession(user User) error {
	if m.sessionPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.sessionPath), 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return os.WriteFile(m.sessionPath, data, 0o600)
}

// HashSecret returns the hex sha256 digest stored for a user secret.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
