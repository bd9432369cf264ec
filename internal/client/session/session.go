package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ondetemapp/ondetem/internal/client/kv"
)

// State of the client session.
type State int

const (
	StateUnknown State = iota
	StateResolving
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// User is the client-side profile mirror.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PushToken string `json:"pushToken,omitempty"`
}

// Provider abstracts the device's external-identity session (Firebase on the
// phone). Tokens are short-lived and refreshed on demand; auth-state changes
// arrive as push-style callbacks, not polling.
type Provider interface {
	SignedIn() bool
	IDToken(ctx context.Context) (string, error)
	OnAuthStateChanged(fn func(signedIn bool)) (unsubscribe func())
}

// ProfileFetcher loads the current user's profile from the API (the `me`
// query); the session falls back to the cached profile when it fails.
type ProfileFetcher func(ctx context.Context) (*User, error)

// Manager owns the session state machine:
// unknown → resolving → authenticated | anonymous.
type Manager struct {
	mu       sync.RWMutex
	store    *kv.Store
	provider Provider
	fetch    ProfileFetcher

	state State
	user  *User

	unsubscribe func()
}

func NewManager(store *kv.Store, provider Provider, fetch ProfileFetcher) *Manager {
	return &Manager{
		store:    store,
		provider: provider,
		fetch:    fetch,
		state:    StateUnknown,
	}
}

// SetProfileFetcher installs the remote profile loader. Separate from the
// constructor because the transport that backs it needs the manager as its
// token source first.
func (m *Manager) SetProfileFetcher(fetch ProfileFetcher) {
	m.fetch = fetch
}

// Start resolves the initial state and subscribes to provider auth changes.
func (m *Manager) Start(ctx context.Context) {
	m.Resolve(ctx)
	if m.provider != nil {
		m.unsubscribe = m.provider.OnAuthStateChanged(func(signedIn bool) {
			// Re-drive resolution off the caller's goroutine so an in-flight
			// UI action is never blocked by the callback.
			go m.Resolve(context.Background())
		})
	}
}

func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Resolve drives the state machine once. Provider sessions win over stored
// legacy tokens; a stored token is only checked for presence, never
// re-validated remotely.
func (m *Manager) Resolve(ctx context.Context) {
	m.setState(StateResolving, nil)

	if m.provider != nil && m.provider.SignedIn() {
		user := m.loadProfile(ctx)
		m.setState(StateAuthenticated, user)
		return
	}

	var token string
	if ok, err := m.store.Get(kv.KeyToken, &token); err == nil && ok && token != "" {
		var user User
		if ok, err := m.store.Get(kv.KeyUser, &user); err == nil && ok {
			m.setState(StateAuthenticated, &user)
			return
		}
		m.setState(StateAuthenticated, nil)
		return
	}

	m.setState(StateAnonymous, nil)
}

func (m *Manager) loadProfile(ctx context.Context) *User {
	if m.fetch != nil {
		if user, err := m.fetch(ctx); err == nil && user != nil {
			_ = m.store.Set(kv.KeyUser, user)
			return user
		}
	}
	// Cached profile keeps the session usable offline.
	var cached User
	if ok, err := m.store.Get(kv.KeyUser, &cached); err == nil && ok {
		return &cached
	}
	return nil
}

// Token picks the credential for an outgoing request: a live provider token
// (refreshed on demand), else the stored legacy token, else "".
func (m *Manager) Token(ctx context.Context) string {
	if m.provider != nil && m.provider.SignedIn() {
		token, err := m.provider.IDToken(ctx)
		if err == nil && token != "" {
			return token
		}
		slog.Warn("provider token refresh failed, using stored token", "error", err)
	}

	var token string
	if ok, err := m.store.Get(kv.KeyToken, &token); err == nil && ok {
		return token
	}
	return ""
}

// HasSession reports whether any credential is available.
func (m *Manager) HasSession(ctx context.Context) bool {
	return m.Token(ctx) != ""
}

// SetSession stores a fresh login/register result and moves to authenticated.
func (m *Manager) SetSession(token string, user *User) error {
	if err := m.store.Set(kv.KeyToken, token); err != nil {
		return err
	}
	if user != nil {
		if err := m.store.Set(kv.KeyUser, user); err != nil {
			return err
		}
	}
	m.setState(StateAuthenticated, user)
	return nil
}

// Clear drops the stored session and moves to anonymous.
func (m *Manager) Clear() {
	_ = m.store.Remove(kv.KeyToken)
	_ = m.store.Remove(kv.KeyUser)
	m.setState(StateAnonymous, nil)
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) User() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *Manager) setState(state State, user *User) {
	m.mu.Lock()
	m.state = state
	if user != nil || state != StateAuthenticated {
		m.user = user
	}
	m.mu.Unlock()
}
