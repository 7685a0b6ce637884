// Package session holds the signed-in player for the lifetime of the
// process and mirrors it into the preferences store so that it survives a
// restart.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/epicquest/internal/client/models"
	"github.com/dmitrijs2005/epicquest/internal/client/preferences"
	"github.com/dmitrijs2005/epicquest/internal/logging"
)

// Preference keys owned by the session.
const (
	KeyCurrentUser    = "current_user"
	KeyCurrentSession = "current_session"
	KeyFirstTime      = "first_time"
	userKeyPrefix     = "user:"
)

// UserKey is the per-user preference key a record is flushed to on logout.
func UserKey(username string) string {
	return userKeyPrefix + username
}

type Manager struct {
	store  *preferences.Store
	logger logging.Logger

	mu      sync.RWMutex
	current *models.User
}

// NewManager builds a manager and restores any persisted session.
func NewManager(ctx context.Context, store *preferences.Store, logger logging.Logger) *Manager {
	m := &Manager{
		store:  store,
		logger: logger.With("module", "session"),
	}
	m.restore(ctx)
	return m
}

var (
	sharedOnce sync.Once
	shared     *Manager
)

// Shared returns a process-wide manager, building it on first use with the
// given store. Later calls ignore their arguments.
func Shared(ctx context.Context, store *preferences.Store, logger logging.Logger) *Manager {
	sharedOnce.Do(func() {
		shared = NewManager(ctx, store, logger)
	})
	return shared
}

func (m *Manager) restore(ctx context.Context) {
	username := m.store.GetString(ctx, KeyCurrentSession, "")
	if username == "" {
		return
	}

	u := preferences.GetObject[*models.User](ctx, m.store, UserKey(username), nil)
	if u == nil {
		u = preferences.GetObject[*models.User](ctx, m.store, KeyCurrentUser, nil)
	}
	if u == nil || u.Username != username {
		m.logger.Warn(ctx, "session marker without a readable user, starting signed out", "user", username)
		return
	}

	m.current = u
	m.logger.Debug(ctx, "session restored", "user", username)
}

// Login makes u the current user and persists it together with the
// session marker. The manager keeps its own copy.
func (m *Manager) Login(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("login: nil user")
	}
	c := u.Clone()

	m.mu.Lock()
	m.current = c
	m.mu.Unlock()

	if err := m.store.PutObject(ctx, KeyCurrentUser, c); err != nil {
		return fmt.Errorf("persist current user: %w", err)
	}
	if err := m.store.PutString(ctx, KeyCurrentSession, c.Username); err != nil {
		return fmt.Errorf("persist session marker: %w", err)
	}
	if err := m.store.PutObject(ctx, UserKey(c.Username), c); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Logout flushes the current user to its per-user key and clears both
// session markers. It is a no-op when nobody is signed in.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	u := m.current
	m.current = nil
	m.mu.Unlock()

	if u != nil {
		if err := m.SaveUserData(ctx, u); err != nil {
			return err
		}
	}
	if err := m.store.Remove(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	if err := m.store.Remove(ctx, KeyCurrentSession); err != nil {
		return fmt.Errorf("clear session marker: %w", err)
	}
	return nil
}

// SaveUserData writes u under its per-user key without touching the session.
func (m *Manager) SaveUserData(ctx context.Context, u *models.User) error {
	if err := m.store.PutObject(ctx, UserKey(u.Username), u); err != nil {
		return fmt.Errorf("save user %s: %w", u.Username, err)
	}
	return nil
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

func (m *Manager) IsFirstTime(ctx context.Context) bool {
	return m.store.GetBool(ctx, KeyFirstTime, true)
}

func (m *Manager) SetFirstTimeCompleted(ctx context.Context) error {
	return m.store.PutBool(ctx, KeyFirstTime, false)
}
