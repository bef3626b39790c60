package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/sportshub/internal/favorites"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/services"
	"github.com/desertthunder/sportshub/internal/session"
	"github.com/desertthunder/sportshub/internal/shared"
)

// Route names a view.
type Route int

const (
	HomeRoute Route = iota
	LoginRoute
	SignupRoute
	ProfileRoute
	FavoritesRoute
	TeamRoute
)

func (r Route) String() string {
	switch r {
	case HomeRoute:
		return "home"
	case LoginRoute:
		return "login"
	case SignupRoute:
		return "signup"
	case ProfileRoute:
		return "profile"
	case FavoritesRoute:
		return "favorites"
	case TeamRoute:
		return "team"
	default:
		return "unknown"
	}
}

// Protected reports whether the route requires a logged-in session.
func (r Route) Protected() bool {
	return r == ProfileRoute || r == FavoritesRoute
}

// Nav is a navigation request.
type Nav struct {
	Route  Route
	Sport  string
	TeamID models.ID
	Back   Route
	Notice string
}

const (
	clockInterval = time.Second
	flashDuration = 3 * time.Second
)

// Deps are the services shared by every view.
type Deps struct {
	Session   *session.Store
	Favorites *favorites.Manager
	Client    *services.Client
	Config    shared.UIConfig
	Logger    *log.Logger
}

// env is what each view holds: the dependencies plus the program context.
type env struct {
	ctx context.Context
	Deps
	keys keyMap
	help help.Model
}

// screen is a mounted view.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
}

// Model represents the TUI application state.
type Model struct {
	env    *env
	nav    Nav
	gen    uint64
	screen screen
	width  int
	height int

	events      chan session.Event
	done        chan struct{}
	unsubscribe func()
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	defaults := shared.DefaultConfig().UI
	if deps.Config.DefaultSport == "" || !shared.IsSport(deps.Config.DefaultSport) {
		deps.Config.DefaultSport = defaults.DefaultSport
	}
	if deps.Config.LiveRefresh <= 0 {
		deps.Config.LiveRefresh = defaults.LiveRefresh
	}
	if deps.Config.LiveLimit <= 0 {
		deps.Config.LiveLimit = defaults.LiveLimit
	}
	if deps.Config.SearchLimit <= 0 {
		deps.Config.SearchLimit = defaults.SearchLimit
	}

	m := &Model{
		env:    &env{ctx: ctx, Deps: deps, keys: newKeyMap(), help: help.New()},
		events: make(chan session.Event, 8),
		done:   make(chan struct{}),
	}
	m.unsubscribe = deps.Session.Subscribe(func(ev session.Event) {
		select {
		case m.events <- ev:
		case <-m.done:
		case <-ctx.Done():
		}
	})
	return m
}

// Close stops forwarding session events.
func (m *Model) Close() {
	m.unsubscribe()
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Route returns the mounted view's route.
func (m *Model) Route() Route { return m.nav.Route }

// Init mounts the home view and starts listening for session events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.mount(Nav{Route: HomeRoute}), m.waitForSession())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.screen != nil {
			m.screen.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.env.keys.forceQuit) {
			return m, tea.Quit
		}

	case navigateMsg:
		return m, m.mount(msg.nav)

	case sessionEventMsg:
		cmd := m.waitForSession()
		if msg.event.Kind == session.LoggedOut && m.nav.Route != LoginRoute && m.nav.Route != SignupRoute {
			return m, tea.Batch(cmd, m.mount(Nav{Route: LoginRoute, Notice: "You have been logged out"}))
		}
		return m, cmd

	case Msg:
		if msg.gen != m.gen {
			m.env.Logger.Debug("dropping message for unmounted view", "kind", msg.kind, "gen", msg.gen, "current", m.gen)
			return m, nil
		}
	}

	if m.screen == nil {
		return m, nil
	}
	return m, m.screen.Update(msg)
}

// View renders the mounted view.
func (m *Model) View() string {
	if m.screen == nil {
		return ""
	}
	return m.screen.View()
}

// mount tears down the current view and mounts the one nav names. Protected routes
// redirect anonymous sessions to login.
func (m *Model) mount(nav Nav) tea.Cmd {
	if nav.Route.Protected() {
		if _, err := m.env.Session.RequireToken(); err != nil {
			nav = Nav{Route: LoginRoute, Notice: "Please log in to continue", Back: nav.Route}
		}
	}
	if nav.Sport == "" {
		nav.Sport = m.env.Config.DefaultSport
	}

	m.gen++
	m.nav = nav
	m.env.Logger.Debug("mounting view", "route", nav.Route, "gen", m.gen)

	switch nav.Route {
	case LoginRoute:
		m.screen = newLoginScreen(m.env, m.gen, nav)
	case SignupRoute:
		m.screen = newSignupScreen(m.env, m.gen)
	case ProfileRoute:
		m.screen = newProfileScreen(m.env, m.gen)
	case FavoritesRoute:
		m.screen = newFavoritesScreen(m.env, m.gen, nav)
	case TeamRoute:
		m.screen = newTeamScreen(m.env, m.gen, nav)
	default:
		m.screen = newHomeScreen(m.env, m.gen, nav)
	}
	if m.width > 0 {
		m.screen.SetSize(m.width, m.height)
	}
	return m.screen.Init()
}

func (m *Model) waitForSession() tea.Cmd {
	events, done := m.events, m.done
	return func() tea.Msg {
		select {
		case ev := <-events:
			return sessionEventMsg{event: ev}
		case <-done:
			return nil
		}
	}
}

// header renders the app title with the logged-in user.
func (e *env) header(title string) string {
	cur := e.Session.Current()
	who := styles.muted.Render("not logged in")
	if cur.Authenticated() {
		who = styles.muted.Render(fmt.Sprintf("logged in as %s", cur.User.DisplayName()))
	}
	return fmt.Sprintf("%s  %s", styles.title.Render(title), who)
}

func (e *env) helpView(bindings ...key.Binding) string {
	return e.help.ShortHelpView(bindings)
}

// flash is a transient status line.
type flash struct {
	id   int
	text string
	ok   bool
}

func (f *flash) show(gen uint64, text string, ok bool) tea.Cmd {
	f.id++
	f.text, f.ok = text, ok
	return tick(flashDuration, MsgFlashExpired, gen, f.id)
}

func (f *flash) expire(id int) {
	if id == f.id {
		f.text = ""
	}
}

func (f flash) View() string {
	if f.text == "" {
		return ""
	}
	if f.ok {
		return styles.ok.Render(f.text)
	}
	return styles.err.Render(f.text)
}

func sportIndex(sport string) int {
	for i, s := range shared.Sports {
		if s == sport {
			return i
		}
	}
	return 0
}

func sportTabs(active int) string {
	var out string
	for i, s := range shared.Sports {
		label := sportLabel(s)
		if i == active {
			out += styles.active.Render(label)
		} else {
			out += styles.tab.Render(label)
		}
	}
	return out
}

func sportLabel(sport string) string {
	switch sport {
	case "basketball":
		return "🏀 Basketball"
	case "baseball":
		return "⚾ Baseball"
	case "nfl":
		return "🏈 NFL"
	case "soccer":
		return "⚽ Soccer"
	default:
		return sport
	}
}
