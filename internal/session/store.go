package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"antunys/clientDesk/internal/api"
	"antunys/clientDesk/internal/storage"
)

const (
	tokenKey = "token"
	userKey  = "user"
)

type EventType int

const (
	EventLogin EventType = iota
	EventUserSet
	EventLogout
	EventError
)

type Event struct {
	Type EventType
}

// Store holds the authenticated session: the bearer token and the user
// profile, mirrored to durable storage, plus a single pending error shown by
// the blocking error modal. It is injected everywhere it is needed rather
// than held as a global.
//
// Login and SetUser are intentionally two separate operations, matching the
// backend's login flow; an interruption between the two can leave a persisted
// token without a user record, and readers must tolerate that.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend

	token string
	user  *api.User
	err   error

	subscribers []func(Event)
}

// NewStore loads any persisted session from the backend. A user record that
// no longer decodes is discarded; the token is kept.
func NewStore(backend storage.Backend) (*Store, error) {
	store := &Store{backend: backend}

	token, ok, err := backend.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session token: %w", err)
	}
	if ok {
		store.token = token
	}

	raw, ok, err := backend.Get(userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if ok {
		var user api.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			_ = backend.Delete(userKey)
		} else {
			store.user = &user
		}
	}

	return store, nil
}

// Login persists the token and updates the in-memory state.
func (s *Store) Login(token string) error {
	if err := s.backend.Set(tokenKey, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.notify(Event{Type: EventLogin})
	return nil
}

// SetUser persists the user record, or removes it when nil.
func (s *Store) SetUser(user *api.User) error {
	if user == nil {
		if err := s.backend.Delete(userKey); err != nil {
			return fmt.Errorf("failed to remove user record: %w", err)
		}
	} else {
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to encode user record: %w", err)
		}
		if err := s.backend.Set(userKey, string(data)); err != nil {
			return fmt.Errorf("failed to persist user record: %w", err)
		}
	}

	s.mu.Lock()
	if user == nil {
		s.user = nil
	} else {
		u := *user
		s.user = &u
	}
	s.mu.Unlock()

	s.notify(Event{Type: EventUserSet})
	return nil
}

// Logout removes the token and the user together. The in-memory state is
// cleared even when a storage delete fails, so the caller always observes an
// unauthenticated session afterwards.
func (s *Store) Logout() error {
	tokenErr := s.backend.Delete(tokenKey)
	userErr := s.backend.Delete(userKey)

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.notify(Event{Type: EventLogout})

	if tokenErr != nil {
		return fmt.Errorf("failed to remove token: %w", tokenErr)
	}
	if userErr != nil {
		return fmt.Errorf("failed to remove user record: %w", userErr)
	}
	return nil
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Store) User() *api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

func (s *Store) SetError(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()

	s.notify(Event{Type: EventError})
}

func (s *Store) ClearError() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.err
}

func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(event Event) {
	s.mu.RLock()
	subscribers := make([]func(Event), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subscribers {
		fn(event)
	}
}
