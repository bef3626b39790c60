package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/sportshub/internal/favorites"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

type pane int

const (
	searchPane pane = iota
	resultsPane
	favoritesPane
)

// searchDone is the payload of [MsgSearchDone].
type searchDone struct {
	sport string
	teams []models.Team
}

type favoritesScreen struct {
	*env
	gen   uint64
	token string
	sport int
	focus pane

	query     textinput.Model
	results   list.Model
	teams     []models.Team
	favs      list.Model
	searching bool
	loading   bool
	confirm   *models.Favorite
	flash     flash
}

func newFavoritesScreen(e *env, gen uint64, nav Nav) *favoritesScreen {
	token, _ := e.Session.RequireToken()

	q := textinput.New()
	q.Placeholder = "Search for a team..."
	q.CharLimit = 64

	return &favoritesScreen{
		env:     e,
		gen:     gen,
		token:   token,
		sport:   sportIndex(nav.Sport),
		query:   q,
		results: newList("Search Results", nil),
		favs:    newList("Your Favorites", favoriteItems(e.Favorites.List())),
		loading: true,
	}
}

func (s *favoritesScreen) currentSport() string { return shared.Sports[s.sport] }

func (s *favoritesScreen) Init() tea.Cmd {
	e, gen, token := s.env, s.gen, s.token
	load := func() tea.Msg {
		favs, err := e.Favorites.Load(e.ctx, token)
		return newMsg(MsgFavoritesLoaded, gen, favs, err)
	}
	return tea.Batch(s.query.Focus(), load)
}

func (s *favoritesScreen) SetSize(width, height int) {
	w := width/2 - 2
	h := height - 12
	if h < 5 {
		h = 5
	}
	s.results.SetSize(w, h)
	s.favs.SetSize(w, h)
	s.query.Width = w
}

func (s *favoritesScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgFavoritesLoaded:
			s.loading = false
			if msg.err != nil {
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Could not load favorites"), false)
			}
			s.refresh()

		case MsgSearchDone:
			res, _ := msg.data.(searchDone)
			if res.sport != s.currentSport() {
				return nil
			}
			s.searching = false
			if msg.err != nil {
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Search failed. Please try again."), false)
			}
			s.teams = res.teams
			if len(s.teams) > s.Config.SearchLimit {
				s.teams = s.teams[:s.Config.SearchLimit]
			}
			s.refresh()
			if len(s.teams) == 0 {
				return s.flash.show(s.gen, "No teams found", false)
			}
			s.setFocus(resultsPane)

		case MsgFavoriteAdded:
			if msg.err != nil {
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Failed to add favorite"), false)
			}
			fav, _ := msg.data.(models.Favorite)
			s.refresh()
			return s.flash.show(s.gen, fmt.Sprintf("%s added to favorites!", fav.TeamName), true)

		case MsgFavoriteRemoved:
			fav, _ := msg.data.(models.Favorite)
			if msg.err != nil {
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Failed to remove favorite"), false)
			}
			s.refresh()
			return s.flash.show(s.gen, fmt.Sprintf("%s removed from favorites", fav.TeamName), true)

		case MsgFlashExpired:
			if id, ok := msg.data.(int); ok {
				s.flash.expire(id)
			}
		}
		return nil
	}

	if s.focus == searchPane {
		var cmd tea.Cmd
		s.query, cmd = s.query.Update(msg)
		return cmd
	}
	return nil
}

// refresh rebuilds both lists from the manager's mirror.
func (s *favoritesScreen) refresh() {
	s.favs.SetItems(favoriteItems(s.Favorites.List()))
	s.results.SetItems(teamItems(s.Favorites.MarkFavorites(s.teams)))
}

func (s *favoritesScreen) setFocus(p pane) tea.Cmd {
	s.focus = p
	if p == searchPane {
		return s.query.Focus()
	}
	s.query.Blur()
	return nil
}

func (s *favoritesScreen) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if s.confirm != nil {
		switch {
		case key.Matches(msg, s.keys.yes):
			fav := *s.confirm
			s.confirm = nil
			return s.remove(fav)
		case key.Matches(msg, s.keys.no):
			s.confirm = nil
		}
		return nil
	}

	switch {
	case key.Matches(msg, s.keys.back):
		return navigate(Nav{Route: HomeRoute, Sport: s.currentSport()})
	case key.Matches(msg, s.keys.next):
		return s.setFocus((s.focus + 1) % 3)
	case key.Matches(msg, s.keys.prev):
		return s.setFocus((s.focus + 2) % 3)
	case key.Matches(msg, s.keys.sport):
		s.sport = (s.sport + 1) % len(shared.Sports)
		s.teams = nil
		s.searching = false
		s.refresh()
		return nil
	}

	switch s.focus {
	case searchPane:
		if key.Matches(msg, s.keys.enter) {
			return s.search()
		}
		var cmd tea.Cmd
		s.query, cmd = s.query.Update(msg)
		return cmd

	case resultsPane:
		item, _ := s.results.SelectedItem().(teamItem)
		switch {
		case key.Matches(msg, s.keys.quit):
			return tea.Quit
		case key.Matches(msg, s.keys.add) && item.result.Team.ID != "":
			return s.add(item.result.Team)
		case key.Matches(msg, s.keys.enter) && item.result.Team.ID != "":
			return navigate(Nav{Route: TeamRoute, Sport: s.currentSport(), TeamID: item.result.Team.ID, Back: FavoritesRoute})
		}
		var cmd tea.Cmd
		s.results, cmd = s.results.Update(msg)
		return cmd

	case favoritesPane:
		item, ok := s.favs.SelectedItem().(favoriteItem)
		switch {
		case key.Matches(msg, s.keys.quit):
			return tea.Quit
		case key.Matches(msg, s.keys.remove) && ok:
			fav := item.fav
			s.confirm = &fav
			return nil
		}
		var cmd tea.Cmd
		s.favs, cmd = s.favs.Update(msg)
		return cmd
	}
	return nil
}

func (s *favoritesScreen) search() tea.Cmd {
	q := strings.TrimSpace(s.query.Value())
	if q == "" {
		return s.flash.show(s.gen, "Please enter a team name", false)
	}

	s.searching = true
	s.teams = nil
	s.refresh()

	e, gen, sport := s.env, s.gen, s.currentSport()
	return func() tea.Msg {
		teams, err := e.Client.Sports.SearchTeams(e.ctx, sport, q)
		return newMsg(MsgSearchDone, gen, searchDone{sport: sport, teams: teams}, err)
	}
}

func (s *favoritesScreen) add(team models.Team) tea.Cmd {
	if s.Favorites.Contains(team.ID) {
		return s.flash.show(s.gen, "Team already in favorites", false)
	}
	e, gen, token, sport := s.env, s.gen, s.token, s.currentSport()
	return func() tea.Msg {
		fav, err := e.Favorites.Add(e.ctx, token, sport, team)
		return newMsg(MsgFavoriteAdded, gen, fav, err)
	}
}

// remove runs after the user answered yes to the prompt.
func (s *favoritesScreen) remove(fav models.Favorite) tea.Cmd {
	e, gen, token := s.env, s.gen, s.token
	return func() tea.Msg {
		err := e.Favorites.Remove(favorites.Confirmed(e.ctx), token, fav.ID)
		return newMsg(MsgFavoriteRemoved, gen, fav, err)
	}
}

func (s *favoritesScreen) View() string {
	var b strings.Builder
	b.WriteString(s.header("Manage Favorites") + "\n\n")
	b.WriteString(sportTabs(s.sport) + "\n\n")

	prompt := "Search: "
	if s.focus == searchPane {
		prompt = styles.ok.Render("> Search: ")
	}
	b.WriteString(prompt + s.query.View() + "\n\n")

	left := s.results.View()
	switch {
	case s.searching:
		left = styles.muted.Render("Searching...")
	case len(s.teams) == 0:
		left = styles.muted.Render("Search for teams to add them to your favorites")
	}

	right := s.favs.View()
	switch {
	case s.loading && len(s.Favorites.List()) == 0:
		right = styles.muted.Render("Loading favorites...")
	case len(s.Favorites.List()) == 0:
		right = styles.muted.Render("No favorites yet")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right) + "\n")

	if s.confirm != nil {
		b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("Remove %s from favorites? (y/n)", s.confirm.TeamName)) + "\n")
	}
	if v := s.flash.View(); v != "" {
		b.WriteString("\n" + v + "\n")
	}

	b.WriteString("\n")
	switch s.focus {
	case resultsPane:
		details := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
		b.WriteString(s.helpView(s.keys.add, details, s.keys.next, s.keys.sport, s.keys.back))
	case favoritesPane:
		b.WriteString(s.helpView(s.keys.remove, s.keys.next, s.keys.sport, s.keys.back))
	default:
		search := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search"))
		b.WriteString(s.helpView(search, s.keys.next, s.keys.sport, s.keys.back))
	}
	return b.String()
}
