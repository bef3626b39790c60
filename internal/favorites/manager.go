package favorites

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

// Remote is the server side of the favorites collection.
type Remote interface {
	List(ctx context.Context, token string) ([]models.Favorite, error)
	Add(ctx context.Context, token string, fav models.Favorite) (models.Favorite, error)
	Remove(ctx context.Context, token string, teamID models.ID) error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to [Confirmer].
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// Approve confirms every prompt. For callers that already asked the user.
var Approve = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Decline rejects every prompt.
var Decline = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })

type confirmedKey struct{}

// Confirmed marks ctx as already approved by the user. [Manager.Remove] skips its prompt
// for such contexts.
func Confirmed(ctx context.Context) context.Context {
	return context.WithValue(ctx, confirmedKey{}, true)
}

func isConfirmed(ctx context.Context) bool {
	ok, _ := ctx.Value(confirmedKey{}).(bool)
	return ok
}

// Option configures a [Manager].
type Option func(*Manager)

// WithConfirmer sets the confirmation gate used by [Manager.Remove]. The default declines.
func WithConfirmer(c Confirmer) Option {
	return func(m *Manager) { m.confirm = c }
}

// WithLogger sets the manager's logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithObserver registers fn to receive a copy of the mirror after every applied change.
func WithObserver(fn func([]models.Favorite)) Option {
	return func(m *Manager) { m.observers = append(m.observers, fn) }
}

// Manager owns the local mirror of a user's favorites.
type Manager struct {
	remote    Remote
	confirm   Confirmer
	logger    *log.Logger
	observers []func([]models.Favorite)

	mu      sync.Mutex
	mirror  []models.Favorite
	loaded  bool
	issued  uint64
	applied uint64
	floor   uint64
	pending map[models.ID]uint64
}

// NewManager creates a manager with an empty mirror.
func NewManager(remote Remote, opts ...Option) *Manager {
	m := &Manager{
		remote:  remote,
		confirm: Decline,
		pending: make(map[models.ID]uint64),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// Load fetches the server collection and replaces the mirror with it, unless a newer request
// has already been applied. It returns the mirror as it stands afterwards.
func (m *Manager) Load(ctx context.Context, token string) ([]models.Favorite, error) {
	if token == "" {
		return nil, shared.ErrUnauthenticated
	}

	seq := m.issue()
	favs, err := m.remote.List(ctx, token)
	if err != nil {
		m.logger.Warn("failed to load favorites", "seq", seq, "error", err)
		return nil, err
	}

	m.mu.Lock()
	if seq <= m.applied {
		m.logger.Debug("discarding stale favorites load", "seq", seq, "applied", m.applied)
		out := slices.Clone(m.mirror)
		m.mu.Unlock()
		return out, nil
	}
	m.mirror = uniqueByTeam(favs)
	m.loaded = true
	m.applied = seq
	out := slices.Clone(m.mirror)
	m.mu.Unlock()

	m.logger.Debug("loaded favorites", "seq", seq, "count", len(out))
	m.notify(out)
	return slices.Clone(out), nil
}

// Add saves team as a favorite and appends the server's record to the mirror.
//
// The record's logo, league and country follow [models.FavoriteFromTeam].
func (m *Manager) Add(ctx context.Context, token, sport string, team models.Team) (models.Favorite, error) {
	if token == "" {
		return models.Favorite{}, shared.ErrUnauthenticated
	}
	fav := models.FavoriteFromTeam(sport, team)
	if fav.TeamID == "" {
		return models.Favorite{}, fmt.Errorf("%w: team has no id", shared.ErrInvalidArgument)
	}

	m.mu.Lock()
	if m.indexOfTeam(fav.TeamID) >= 0 || m.pending[fav.TeamID] != 0 {
		m.mu.Unlock()
		return models.Favorite{}, fmt.Errorf("%w: %s", shared.ErrDuplicateFavorite, fav.TeamName)
	}
	m.issued++
	seq := m.issued
	m.pending[fav.TeamID] = seq
	m.mu.Unlock()

	created, err := m.remote.Add(ctx, token, fav)

	m.mu.Lock()
	if m.pending[fav.TeamID] == seq {
		delete(m.pending, fav.TeamID)
	}
	if err != nil {
		m.mu.Unlock()
		m.logger.Warn("failed to add favorite", "team_id", fav.TeamID, "error", err)
		return models.Favorite{}, err
	}
	if seq <= m.floor {
		m.mu.Unlock()
		return created, nil
	}
	if created.TeamID == "" {
		created.TeamID = fav.TeamID
	}
	if i := m.indexOfTeam(created.TeamID); i >= 0 {
		m.mirror[i] = created
	} else {
		m.mirror = append(m.mirror, created)
	}
	m.advance(seq)
	out := slices.Clone(m.mirror)
	m.mu.Unlock()

	m.logger.Info("added favorite", "team", created.TeamName, "id", created.ID)
	m.notify(out)
	return created, nil
}

// Remove deletes the favorite with favoriteID after the user confirms.
//
// The server deletes by team id, resolved through the mirror. A declined prompt returns
// [shared.ErrCancelled] without a request.
func (m *Manager) Remove(ctx context.Context, token string, favoriteID models.ID) error {
	if token == "" {
		return shared.ErrUnauthenticated
	}

	m.mu.Lock()
	i := m.indexOfID(favoriteID)
	if i < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", shared.ErrFavoriteNotFound, favoriteID)
	}
	fav := m.mirror[i]
	m.mu.Unlock()

	if !isConfirmed(ctx) {
		ok, err := m.confirm.Confirm(ctx, fmt.Sprintf("Remove %s from favorites?", fav.TeamName))
		if err != nil {
			return err
		}
		if !ok {
			return shared.ErrCancelled
		}
	}

	seq := m.issue()
	if err := m.remote.Remove(ctx, token, fav.TeamID); err != nil {
		m.logger.Warn("failed to remove favorite", "team_id", fav.TeamID, "error", err)
		return err
	}

	m.mu.Lock()
	if seq <= m.floor {
		m.mu.Unlock()
		return nil
	}
	m.mirror = slices.DeleteFunc(m.mirror, func(f models.Favorite) bool { return f.ID == favoriteID })
	m.advance(seq)
	out := slices.Clone(m.mirror)
	m.mu.Unlock()

	m.logger.Info("removed favorite", "team", fav.TeamName, "id", favoriteID)
	m.notify(out)
	return nil
}

// Toggle adds team when it is not a favorite and removes it when it is.
// It reports whether the team is a favorite afterwards.
func (m *Manager) Toggle(ctx context.Context, token, sport string, team models.Team) (bool, error) {
	if fav, ok := m.Find(team.ID); ok {
		if err := m.Remove(ctx, token, fav.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := m.Add(ctx, token, sport, team); err != nil {
		return false, err
	}
	return true, nil
}

// List returns a copy of the mirror.
func (m *Manager) List() []models.Favorite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.mirror)
}

// Loaded reports whether a load has been applied since creation or the last [Manager.Reset].
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Contains reports whether teamID is in the mirror.
func (m *Manager) Contains(teamID models.ID) bool {
	_, ok := m.Find(teamID)
	return ok
}

// Find returns the favorite for teamID.
func (m *Manager) Find(teamID models.ID) (models.Favorite, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOfTeam(teamID); i >= 0 {
		return m.mirror[i], true
	}
	return models.Favorite{}, false
}

// Reset empties the mirror, for example after logout. Responses to requests issued
// before the reset are discarded.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.issued++
	m.applied = m.issued
	m.floor = m.issued
	m.mirror = nil
	m.loaded = false
	clear(m.pending)
	m.mu.Unlock()
	m.notify(nil)
}

// SearchResult is a team annotated with its favorite status.
type SearchResult struct {
	Team       models.Team
	Favorite   bool
	FavoriteID models.ID
}

// MarkFavorites annotates teams with whether each is already a favorite.
func (m *Manager) MarkFavorites(teams []models.Team) []SearchResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SearchResult, len(teams))
	for i, team := range teams {
		out[i] = SearchResult{Team: team}
		if j := m.indexOfTeam(team.ID); j >= 0 {
			out[i].Favorite = true
			out[i].FavoriteID = m.mirror[j].ID
		}
	}
	return out
}

func (m *Manager) issue() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	return m.issued
}

// advance must be called with mu held.
func (m *Manager) advance(seq uint64) {
	if seq > m.applied {
		m.applied = seq
	}
}

func (m *Manager) indexOfTeam(teamID models.ID) int {
	return slices.IndexFunc(m.mirror, func(f models.Favorite) bool { return f.TeamID == teamID })
}

func (m *Manager) indexOfID(id models.ID) int {
	return slices.IndexFunc(m.mirror, func(f models.Favorite) bool { return f.ID == id })
}

func (m *Manager) notify(snapshot []models.Favorite) {
	for _, fn := range m.observers {
		fn(slices.Clone(snapshot))
	}
}

// uniqueByTeam keeps the first favorite for each team id.
func uniqueByTeam(favs []models.Favorite) []models.Favorite {
	seen := make(map[models.ID]bool, len(favs))
	out := make([]models.Favorite, 0, len(favs))
	for _, f := range favs {
		if seen[f.TeamID] {
			continue
		}
		seen[f.TeamID] = true
		out = append(out, f)
	}
	return out
}
