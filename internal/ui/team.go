package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/sportshub/internal/favorites"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

type teamScreen struct {
	*env
	gen    uint64
	sport  string
	teamID models.ID
	back   Route

	team     *models.Team
	err      error
	loading  bool
	favorite bool
	busy     bool
	confirm  bool
	flash    flash
}

func newTeamScreen(e *env, gen uint64, nav Nav) *teamScreen {
	return &teamScreen{
		env:      e,
		gen:      gen,
		sport:    nav.Sport,
		teamID:   nav.TeamID,
		back:     nav.Back,
		loading:  true,
		favorite: e.Favorites.Contains(nav.TeamID),
	}
}

func (s *teamScreen) Init() tea.Cmd {
	e, gen, sport, teamID := s.env, s.gen, s.sport, s.teamID
	load := func() tea.Msg {
		team, err := e.Client.Sports.GetTeam(e.ctx, sport, teamID)
		return newMsg(MsgTeamLoaded, gen, team, err)
	}

	token := e.Session.Current().Token
	if token == "" || e.Favorites.Loaded() {
		return load
	}
	loadFavs := func() tea.Msg {
		favs, err := e.Favorites.Load(e.ctx, token)
		return newMsg(MsgFavoritesLoaded, gen, favs, err)
	}
	return tea.Batch(load, loadFavs)
}

func (s *teamScreen) SetSize(int, int) {}

func (s *teamScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgTeamLoaded:
			s.loading = false
			s.err = msg.err
			s.team, _ = msg.data.(*models.Team)

		case MsgFavoritesLoaded:
			s.favorite = s.Favorites.Contains(s.teamID)

		case MsgFavoriteToggled:
			s.busy = false
			s.favorite = s.Favorites.Contains(s.teamID)
			if msg.err != nil {
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Failed to update favorites"), false)
			}
			if s.favorite {
				return s.flash.show(s.gen, "Added to favorites!", true)
			}
			return s.flash.show(s.gen, "Removed from favorites", true)

		case MsgFlashExpired:
			if id, ok := msg.data.(int); ok {
				s.flash.expire(id)
			}
		}
	}
	return nil
}

func (s *teamScreen) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if s.confirm {
		switch {
		case key.Matches(msg, s.keys.yes):
			s.confirm = false
			return s.toggle(true)
		case key.Matches(msg, s.keys.no):
			s.confirm = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, s.keys.quit):
		return tea.Quit
	case key.Matches(msg, s.keys.back):
		return navigate(Nav{Route: s.back, Sport: s.sport})
	case key.Matches(msg, s.keys.toggle):
		if s.team == nil || s.busy {
			return nil
		}
		if !s.Session.Current().Authenticated() {
			return navigate(Nav{Route: LoginRoute, Notice: "Please log in to save favorites"})
		}
		if s.favorite {
			s.confirm = true
			return nil
		}
		return s.toggle(false)
	}
	return nil
}

// toggle adds or removes the team. Without a confirmed y/n prompt it only adds,
// so a stale favorite flag can never turn into a removal.
func (s *teamScreen) toggle(confirmed bool) tea.Cmd {
	s.busy = true
	e, gen, sport, team := s.env, s.gen, s.sport, *s.team
	token := e.Session.Current().Token
	if !confirmed {
		return func() tea.Msg {
			_, err := e.Favorites.Add(e.ctx, token, sport, team)
			return newMsg(MsgFavoriteToggled, gen, err == nil, err)
		}
	}
	return func() tea.Msg {
		isFav, err := e.Favorites.Toggle(favorites.Confirmed(e.ctx), token, sport, team)
		return newMsg(MsgFavoriteToggled, gen, isFav, err)
	}
}

func (s *teamScreen) View() string {
	var b strings.Builder

	switch {
	case s.loading:
		b.WriteString(styles.muted.Render("Loading team details...") + "\n")
		return b.String()
	case s.err != nil || s.team == nil:
		msg := "The team you are looking for could not be found."
		if s.err != nil && !errors.Is(s.err, shared.ErrTeamNotFound) {
			msg = shared.UserMessage(s.err, "Failed to load team details")
		}
		b.WriteString(styles.err.Render("Team not found") + "\n\n" + msg + "\n\n")
		b.WriteString(s.helpView(s.keys.back, s.keys.quit))
		return b.String()
	}

	t := s.team
	title := t.Name
	if s.favorite {
		title = "★ " + title
	}
	b.WriteString(styles.title.Render(title) + "\n")
	if logo := t.LogoURL(); logo != "" {
		b.WriteString(styles.muted.Render(logo) + "\n")
	}
	b.WriteString("\n")

	rows := [][2]string{
		{"Sport", strings.ToUpper(s.sport)},
		{"League", t.League.Name},
		{"Country", t.Country.Name},
		{"Code", t.Code},
	}
	if t.Founded > 0 {
		rows = append(rows, [2]string{"Founded", fmt.Sprintf("%d", t.Founded)})
	}
	if t.Venue.Name != "" {
		venue := t.Venue.Name
		if t.Venue.City != "" {
			venue += ", " + t.Venue.City
		}
		rows = append(rows, [2]string{"Venue", venue})
	}
	if t.Venue.Capacity > 0 {
		rows = append(rows, [2]string{"Capacity", models.FormatThousands(int64(t.Venue.Capacity))})
	}
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("%-9s %s\n", row[0]+":", row[1]))
	}

	b.WriteString("\n" + styles.title.Render("About") + "\n")
	b.WriteString(t.Summary(s.sport) + "\n")

	if s.confirm {
		b.WriteString("\n" + styles.warn.Render(fmt.Sprintf("Remove %s from favorites? (y/n)", t.Name)) + "\n")
	}
	if s.busy {
		b.WriteString("\n" + styles.muted.Render("Saving...") + "\n")
	}
	if v := s.flash.View(); v != "" {
		b.WriteString("\n" + v + "\n")
	}

	toggle := key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "add to favorites"))
	if s.favorite {
		toggle = key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "remove from favorites"))
	}
	b.WriteString("\n" + s.helpView(toggle, s.keys.back, s.keys.quit))
	return b.String()
}
