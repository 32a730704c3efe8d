package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Session is the locally persisted view of a login: the bearer token, a few
// display fields, and a mirror of the cart item count for display continuity.
// The cart count is a convenience refreshed after each mutating cart call,
// not a cache with any consistency guarantee versus the server.
type Session struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CartCount int    `json:"cartCount"`
}

// LoggedIn reports whether the session holds a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// SessionStore persists the session to a JSON file with an explicit
// lifecycle: hydrate on construction, persist on every mutation.
type SessionStore struct {
	path string

	mu      sync.Mutex
	session Session
}

// NewSessionStore hydrates a store from the given file. A missing file means
// a fresh, logged-out session.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.session); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", path, err)
	}
	return s, nil
}

// Current returns a copy of the session.
func (s *SessionStore) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Update applies a mutation and persists the result.
func (s *SessionStore) Update(fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.session)
	return s.save()
}

// Clear resets the session to logged-out and persists it.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	return s.save()
}

func (s *SessionStore) save() error {
	data, err := json.MarshalIndent(s.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", s.path, err)
	}
	return nil
}
