package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

// Persistence stores the session between runs.
type Persistence interface {
	// Load returns the stored session, or nil when nothing complete is stored.
	Load(ctx context.Context) (*models.Session, error)
	// Save stores token and user together.
	Save(ctx context.Context, s models.Session) error
	// Clear removes token and user together.
	Clear(ctx context.Context) error
}

// Authenticator exchanges credentials for a session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
}

// EventKind identifies a session transition.
type EventKind int

const (
	LoggedIn EventKind = iota + 1
	LoggedOut
	ProfileUpdated
)

func (k EventKind) String() string {
	switch k {
	case LoggedIn:
		return "logged_in"
	case LoggedOut:
		return "logged_out"
	case ProfileUpdated:
		return "profile_updated"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a transition completes.
// Previous holds the session the transition replaced.
type Event struct {
	Kind     EventKind
	Session  models.Session
	Previous models.Session
	Revision uint64
}

// Store is the single owner of the current session.
type Store struct {
	persist Persistence
	auth    Authenticator
	logger  *log.Logger

	mu       sync.RWMutex
	session  models.Session
	ready    bool
	revision uint64
	subs     map[int]func(Event)
	nextSub  int
}

// NewStore creates an anonymous, not yet ready store.
func NewStore(persist Persistence, auth Authenticator, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		persist: persist,
		auth:    auth,
		logger:  logger,
		subs:    make(map[int]func(Event)),
	}
}

// Initialize restores a persisted session. The store is ready when it returns, even on error.
func (s *Store) Initialize(ctx context.Context) error {
	stored, err := s.persist.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true

	if err != nil {
		s.logger.Warn("could not read stored session", "error", err)
		return fmt.Errorf("failed to load session: %w", err)
	}
	if stored == nil || !stored.Authenticated() {
		s.logger.Debug("no stored session")
		return nil
	}

	s.session = stored.Clone()
	s.revision++
	s.logger.Debug("restored session", "user", s.session.User.Username)
	return nil
}

// Ready reports whether [Store.Initialize] has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Login authenticates and, on success, persists then publishes the new session.
// On any failure the current session is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (models.Session, error) {
	next, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		return models.Session{}, err
	}
	if !next.Authenticated() {
		return models.Session{}, fmt.Errorf("%w: incomplete session", shared.ErrLoginFailed)
	}

	if err := s.persist.Save(ctx, next); err != nil {
		return models.Session{}, fmt.Errorf("failed to save session: %w", err)
	}

	ev := s.swap(LoggedIn, next.Clone())
	s.logger.Info("logged in", "user", next.User.Username)
	s.notify(ev)
	return ev.Session, nil
}

// Logout clears stored and in-memory state and notifies subscribers with [LoggedOut].
func (s *Store) Logout(ctx context.Context) error {
	if err := s.persist.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	ev := s.swap(LoggedOut, models.Session{})
	s.logger.Info("logged out")
	s.notify(ev)
	return nil
}

// UpdateUser replaces the profile of the logged-in user, keeping the token.
// The user id is immutable.
func (s *Store) UpdateUser(ctx context.Context, user models.User) error {
	current := s.Current()
	if !current.Authenticated() {
		return shared.ErrUnauthenticated
	}
	if user.ID == "" {
		user.ID = current.User.ID
	}
	if user.ID != current.User.ID {
		return fmt.Errorf("%w: user id cannot change", shared.ErrInvalidArgument)
	}

	next := models.Session{User: &user, Token: current.Token}
	if err := s.persist.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	ev := s.swap(ProfileUpdated, next.Clone())
	s.notify(ev)
	return nil
}

// Current returns a copy of the session.
func (s *Store) Current() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// RequireToken returns the token or [shared.ErrUnauthenticated] for anonymous sessions.
func (s *Store) RequireToken() (string, error) {
	cur := s.Current()
	if !cur.Authenticated() {
		return "", shared.ErrUnauthenticated
	}
	return cur.Token, nil
}

// Revision increases on every transition.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Subscribe registers fn for transition events. Call the returned func to stop receiving them.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) swap(kind EventKind, next models.Session) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.session
	s.session = next
	s.revision++
	return Event{Kind: kind, Session: next.Clone(), Previous: prev.Clone(), Revision: s.revision}
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
