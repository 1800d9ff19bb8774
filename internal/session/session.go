// Package session holds who is logged in. Authentication is a local mock:
// logging in only records the identity the user typed.
package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"taskmaster/internal/domain"
	apperrors "taskmaster/internal/errors"
	"taskmaster/internal/validation"
)

// MockUserID is the identity assigned to every login
const MockUserID = "user-1"

// State is a session snapshot. User is set exactly when IsAuthenticated is true.
type State struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// consistent reports whether the state is one of the two legal shapes
func (s State) consistent() bool {
	return (s.User != nil) == s.IsAuthenticated
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Store owns the session state and writes every transition through to storage
type Store struct {
	mu        sync.RWMutex
	state     State
	storage   Storage
	validator *validation.LoginValidator
	logger    *log.Logger
}

// Open restores the persisted session. A corrupt or half-written record
// restores as logged out.
func Open(storage Storage, logger *log.Logger) (*Store, error) {
	s := &Store{
		storage:   storage,
		validator: validation.NewLoginValidator(),
		logger:    logger,
	}

	state, err := storage.Load()
	switch {
	case errors.Is(err, ErrCorrupt):
		logger.Warn("discarding unreadable session", "err", err)
	case err != nil:
		return nil, apperrors.NewStorageError("load session", err)
	case !state.consistent():
		logger.Warn("discarding inconsistent session", "authenticated", state.IsAuthenticated)
	default:
		s.state = state
	}

	return s, nil
}

// Login authenticates with a synthesized identity. Nothing is checked
// beyond the shape of the input.
func (s *Store) Login(email, name string) (domain.User, error) {
	if err := s.validator.ValidateLogin(email, name); err != nil {
		return domain.User{}, validation.AsAppError(err)
	}

	user := domain.User{
		ID:    MockUserID,
		Email: strings.TrimSpace(email),
		Name:  strings.TrimSpace(name),
	}
	next := State{User: &user, IsAuthenticated: true}
	if err := s.commit(next); err != nil {
		return domain.User{}, err
	}

	s.logger.Debug("logged in", "email", user.Email)
	return user, nil
}

// Logout clears the session. Logging out twice is harmless.
func (s *Store) Logout() error {
	return s.commit(State{})
}

func (s *Store) commit(next State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(next); err != nil {
		return apperrors.NewStorageError("save session", err)
	}
	s.state = next.clone()
	return nil
}

// Current returns a copy of the session state
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// IsAuthenticated reports whether a user is logged in
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// User returns the logged in user, if any
func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return domain.User{}, false
	}
	return *s.state.User, true
}

// RequireUser returns the logged in user or a session error
func (s *Store) RequireUser() (domain.User, error) {
	if user, ok := s.User(); ok {
		return user, nil
	}
	return domain.User{}, apperrors.NewSessionError("not logged in; run 'tm login <email> <name>' first")
}
