package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/sportshub/internal/formatter"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/desertthunder/sportshub/internal/tasks"
)

// liveGames is the payload of [MsgLiveGames].
type liveGames struct {
	sport string
	games []models.Game
}

type homeScreen struct {
	*env
	gen   uint64
	sport int
	now   time.Time

	session   models.Session
	favorites []models.Favorite
	favErr    error
	games     []models.Game
	gamesErr  error
	loading   bool
	notice    string
}

func newHomeScreen(e *env, gen uint64, nav Nav) *homeScreen {
	return &homeScreen{
		env:     e,
		gen:     gen,
		sport:   sportIndex(nav.Sport),
		now:     time.Now(),
		session: e.Session.Current(),
		notice:  nav.Notice,
	}
}

func (s *homeScreen) currentSport() string { return shared.Sports[s.sport] }

func (s *homeScreen) Init() tea.Cmd {
	return tea.Batch(
		tick(clockInterval, MsgClockTick, s.gen, nil),
		tick(s.Config.LiveRefresh, MsgLiveTick, s.gen, nil),
		s.loadDashboard(),
	)
}

func (s *homeScreen) SetSize(int, int) {}

func (s *homeScreen) loadDashboard() tea.Cmd {
	s.loading = true
	e, gen, sport, token := s.env, s.gen, s.currentSport(), s.session.Token
	return func() tea.Msg {
		dash := tasks.NewDashboard(e.Favorites, e.Client.Sports)
		return newMsg(MsgDashboard, gen, dash.Load(e.ctx, token, sport, e.Config.LiveLimit, nil), nil)
	}
}

func (s *homeScreen) loadGames() tea.Cmd {
	e, gen, sport := s.env, s.gen, s.currentSport()
	return func() tea.Msg {
		games, err := e.Client.Sports.LiveGames(e.ctx, sport)
		if len(games) > e.Config.LiveLimit {
			games = games[:e.Config.LiveLimit]
		}
		return newMsg(MsgLiveGames, gen, liveGames{sport: sport, games: games}, err)
	}
}

func (s *homeScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgClockTick:
			if t, ok := msg.data.(time.Time); ok {
				s.now = t
			}
			return tick(clockInterval, MsgClockTick, s.gen, nil)

		case MsgLiveTick:
			return tea.Batch(s.loadGames(), tick(s.Config.LiveRefresh, MsgLiveTick, s.gen, nil))

		case MsgDashboard:
			res, ok := msg.data.(tasks.DashboardResult)
			if !ok || res.Sport != s.currentSport() {
				return nil
			}
			s.loading = false
			s.favorites, s.favErr = res.Favorites, res.FavoritesErr
			s.games, s.gamesErr = res.Games, res.GamesErr

		case MsgLiveGames:
			res, ok := msg.data.(liveGames)
			if !ok || res.sport != s.currentSport() {
				return nil
			}
			s.loading = false
			s.games, s.gamesErr = res.games, msg.err

		case MsgLoggedOut:
			if msg.err != nil {
				s.notice = shared.UserMessage(msg.err, "Could not log out")
			}
		}
	}
	return nil
}

func (s *homeScreen) handleKeys(msg tea.KeyMsg) tea.Cmd {
	authed := s.session.Authenticated()
	switch {
	case key.Matches(msg, s.keys.quit):
		return tea.Quit
	case key.Matches(msg, s.keys.next), msg.String() == "right":
		s.sport = (s.sport + 1) % len(shared.Sports)
		return s.loadDashboard()
	case key.Matches(msg, s.keys.prev), msg.String() == "left":
		s.sport = (s.sport - 1 + len(shared.Sports)) % len(shared.Sports)
		return s.loadDashboard()
	case key.Matches(msg, s.keys.refresh):
		return s.loadDashboard()
	case key.Matches(msg, s.keys.favorites):
		return navigate(Nav{Route: FavoritesRoute, Sport: s.currentSport()})
	case key.Matches(msg, s.keys.profile):
		return navigate(Nav{Route: ProfileRoute})
	case key.Matches(msg, s.keys.login) && !authed:
		return navigate(Nav{Route: LoginRoute})
	case key.Matches(msg, s.keys.signup) && !authed:
		return navigate(Nav{Route: SignupRoute})
	case key.Matches(msg, s.keys.logout) && authed:
		e, gen := s.env, s.gen
		return func() tea.Msg {
			return newMsg(MsgLoggedOut, gen, nil, e.Session.Logout(e.ctx))
		}
	}
	return nil
}

func (s *homeScreen) View() string {
	var b strings.Builder

	date := s.now.Format("Monday, January 2, 2006")
	clock := s.now.Format("03:04:05 PM")
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n", styles.title.Render("Sports Hub"), styles.muted.Render(date), styles.ok.Render(clock)))

	heading, sub := welcome(s.session.User)
	b.WriteString(styles.title.Render(heading) + "\n")
	b.WriteString(styles.muted.Render(sub) + "\n\n")
	if s.notice != "" {
		b.WriteString(styles.warn.Render(s.notice) + "\n\n")
	}

	if s.session.Authenticated() {
		switch {
		case s.favErr != nil:
			b.WriteString(styles.err.Render(shared.UserMessage(s.favErr, "Could not load favorites")) + "\n\n")
		case len(s.favorites) > 0:
			b.WriteString(styles.title.Render("Your Favorite Teams") + "\n")
			for _, f := range s.favorites {
				b.WriteString(fmt.Sprintf("  %-28s %s\n", shared.Truncate(f.TeamName, 28), styles.muted.Render(f.League)))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(sportTabs(s.sport) + "\n\n")
	b.WriteString(styles.title.Render("Live Games") + "\n")
	switch {
	case s.loading && s.games == nil:
		b.WriteString(styles.muted.Render("Loading live games...") + "\n")
	case s.gamesErr != nil:
		b.WriteString(styles.err.Render(shared.UserMessage(s.gamesErr, "Could not load live games")) + "\n")
	case len(s.games) == 0:
		b.WriteString(styles.muted.Render("No live games at the moment") + "\n")
	default:
		for _, g := range s.games {
			b.WriteString("  " + formatter.GameLine(g) + "\n")
		}
	}

	b.WriteString("\n")
	bindings := []key.Binding{s.keys.next, s.keys.refresh, s.keys.favorites, s.keys.profile}
	if s.session.Authenticated() {
		bindings = append(bindings, s.keys.logout)
	} else {
		bindings = append(bindings, s.keys.login, s.keys.signup)
	}
	bindings = append(bindings, s.keys.quit)
	b.WriteString(s.helpView(bindings...))
	return b.String()
}

// welcome is the home view greeting.
func welcome(user *models.User) (string, string) {
	if user == nil {
		return "Welcome to Sports Hub", "Please log in to track your favorite teams"
	}
	name := user.FirstName
	if name == "" {
		name = user.DisplayName()
	}
	return fmt.Sprintf("Welcome back, %s!", name), "Track your favorite teams and watch live games"
}
