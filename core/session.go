package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// SessionStore is the single authoritative record of the current
// authenticated identity, kept in memory and mirrored to durable storage.
//
// Route guards must consult IsAuthenticated rather than checking token and
// user separately.
type SessionStore struct {
	storage KeyValueStore
	log     *logrus.Logger

	mu    sync.RWMutex
	token string
	user  *User
}

func NewSessionStore(storage KeyValueStore, log *logrus.Logger) *SessionStore {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SessionStore{storage: storage, log: log}
}

// Load hydrates in-memory state from durable storage at process start.
// It never fails the caller: a missing, partial, or corrupt stored session
// is logged and treated as "no session".
func (s *SessionStore) Load(ctx context.Context) {
	token, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		s.logLoadFailure("read stored token", err)
		return
	}

	rawUser, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		s.logLoadFailure("read stored user", err)
		return
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.log.WithError(err).Warn("stored user is corrupt, treating as signed out")
		return
	}

	if token == "" {
		return
	}

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
}

func (s *SessionStore) logLoadFailure(action string, err error) {
	if errors.Is(err, ErrKeyNotFound) {
		return // nothing stored, not a failure
	}
	s.log.WithError(err).Warnf("failed to %s, treating as signed out", action)
}

// Login persists the session as one atomic multi-key write, then updates
// in-memory state. If the durable write fails the error propagates and the
// session must not be treated as active.
func (s *SessionStore) Login(ctx context.Context, token string, user User) error {
	if token == "" {
		return ErrTokenRequired
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}

	err = s.storage.SetMany(ctx, map[string]string{
		KeyToken:    token,
		KeyUser:     string(rawUser),
		KeyUserRole: user.Role.String(),
		KeyUserID:   user.ID,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"userId": user.ID, "role": user.Role}).Debug("session established")
	return nil
}

// Logout removes every session key from durable storage, then clears
// in-memory state. Calling it with no active session is a no-op.
func (s *SessionStore) Logout(ctx context.Context) error {
	if err := s.storage.RemoveMany(ctx, SessionKeys()...); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.log.Debug("session cleared")
	return nil
}

// UpdateUser shallow-merges the patch into the current user and writes the
// result back to durable storage. With no active user it is a no-op.
func (s *SessionStore) UpdateUser(ctx context.Context, patch UserPatch) error {
	s.mu.RLock()
	current := s.user
	s.mu.RUnlock()
	if current == nil {
		return nil
	}

	updated := patch.Apply(*current)
	rawUser, err := json.Marshal(updated)
	if err != nil {
		return err
	}

	if err := s.storage.SetMany(ctx, map[string]string{KeyUser: string(rawUser)}); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &updated
	s.mu.Unlock()
	return nil
}

// IsAuthenticated is true iff both token and user are present.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// Token returns the in-memory token, or "" when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the current user, or nil when signed out.
func (s *SessionStore) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Role returns the current user's role, or "" when signed out.
func (s *SessionStore) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}
