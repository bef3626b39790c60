package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/sportshub/internal/forms"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

type profileMode int

const (
	profileViewing profileMode = iota
	profileEditing
	profileConfirmDelete
)

type profileScreen struct {
	*env
	gen   uint64
	mode  profileMode
	user  models.User
	token string

	favorites []models.Favorite
	favErr    error
	form      form
	flash     flash
	deleting  bool
}

func newProfileScreen(e *env, gen uint64) *profileScreen {
	cur := e.Session.Current()
	s := &profileScreen{env: e, gen: gen, token: cur.Token, favorites: e.Favorites.List()}
	if cur.User != nil {
		s.user = *cur.User
	}
	return s
}

func (s *profileScreen) Init() tea.Cmd {
	e, gen, token := s.env, s.gen, s.token
	return func() tea.Msg {
		favs, err := e.Favorites.Load(e.ctx, token)
		return newMsg(MsgFavoritesLoaded, gen, favs, err)
	}
}

func (s *profileScreen) SetSize(int, int) {}

func (s *profileScreen) startEditing() tea.Cmd {
	s.mode = profileEditing
	s.form = newForm(
		fieldSpec{key: "username", label: "Username"},
		fieldSpec{key: "email", label: "Email"},
		fieldSpec{key: "first_name", label: "First name"},
		fieldSpec{key: "last_name", label: "Last name"},
		fieldSpec{key: "password", label: "New password (optional)", secret: true},
		fieldSpec{key: "confirm_password", label: "Confirm new password", secret: true},
	)
	s.form.SetValue("username", s.user.Username)
	s.form.SetValue("email", s.user.Email)
	s.form.SetValue("first_name", s.user.FirstName)
	s.form.SetValue("last_name", s.user.LastName)
	return s.form.Focus()
}

func (s *profileScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeys(msg)

	case Msg:
		switch msg.kind {
		case MsgFavoritesLoaded:
			if msg.err != nil {
				s.favErr = msg.err
				return nil
			}
			s.favorites, _ = msg.data.([]models.Favorite)

		case MsgProfileSaved:
			if msg.err != nil {
				s.form.Fail(msg.err, "Failed to update profile")
				return nil
			}
			if u, ok := msg.data.(models.User); ok {
				s.user = u
			}
			s.mode = profileViewing
			return s.flash.show(s.gen, "Profile updated", true)

		case MsgAccountDeleted:
			s.deleting = false
			if msg.err != nil {
				s.mode = profileViewing
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Failed to delete account"), false)
			}
			return nil

		case MsgLoggedOut:
			if msg.err != nil {
				return s.flash.show(s.gen, shared.UserMessage(msg.err, "Could not log out"), false)
			}

		case MsgFlashExpired:
			if id, ok := msg.data.(int); ok {
				s.flash.expire(id)
			}
		}
	}
	return nil
}

func (s *profileScreen) handleKeys(msg tea.KeyMsg) tea.Cmd {
	switch s.mode {
	case profileEditing:
		if key.Matches(msg, s.keys.back) {
			s.mode = profileViewing
			return nil
		}
		submit, cmd := s.form.Update(msg)
		if submit {
			return s.save()
		}
		return cmd

	case profileConfirmDelete:
		switch {
		case key.Matches(msg, s.keys.yes):
			if s.deleting {
				return nil
			}
			s.deleting = true
			return s.deleteAccount()
		case key.Matches(msg, s.keys.no):
			s.mode = profileViewing
		}
		return nil
	}

	switch {
	case key.Matches(msg, s.keys.quit):
		return tea.Quit
	case key.Matches(msg, s.keys.back):
		return navigate(Nav{Route: HomeRoute})
	case key.Matches(msg, s.keys.edit):
		return s.startEditing()
	case key.Matches(msg, s.keys.delete):
		s.mode = profileConfirmDelete
	case key.Matches(msg, s.keys.favorites):
		return navigate(Nav{Route: FavoritesRoute})
	case key.Matches(msg, s.keys.logout):
		e, gen := s.env, s.gen
		return func() tea.Msg {
			return newMsg(MsgLoggedOut, gen, nil, e.Session.Logout(e.ctx))
		}
	}
	return nil
}

func (s *profileScreen) save() tea.Cmd {
	input := forms.ProfileForm{
		Username:        s.form.Value("username"),
		Email:           s.form.Value("email"),
		FirstName:       s.form.Value("first_name"),
		LastName:        s.form.Value("last_name"),
		Password:        s.form.Value("password"),
		ConfirmPassword: s.form.Value("confirm_password"),
	}
	if err := forms.Validate(s.ctx, input); err != nil {
		s.form.Fail(err, "")
		return nil
	}

	s.form.Submitting()
	e, gen, token := s.env, s.gen, s.token
	return func() tea.Msg {
		user, err := e.Client.Accounts.UpdateProfile(e.ctx, token, input.Update())
		if err != nil {
			return newMsg(MsgProfileSaved, gen, nil, err)
		}
		if err := e.Session.UpdateUser(e.ctx, *user); err != nil {
			return newMsg(MsgProfileSaved, gen, nil, err)
		}
		return newMsg(MsgProfileSaved, gen, *user, nil)
	}
}

// deleteAccount deletes the account on the server, then clears the local session.
func (s *profileScreen) deleteAccount() tea.Cmd {
	e, gen, token := s.env, s.gen, s.token
	return func() tea.Msg {
		if err := e.Client.Accounts.DeleteAccount(e.ctx, token); err != nil {
			return newMsg(MsgAccountDeleted, gen, nil, err)
		}
		return newMsg(MsgAccountDeleted, gen, nil, e.Session.Logout(e.ctx))
	}
}

func (s *profileScreen) View() string {
	var b strings.Builder
	b.WriteString(s.header("Profile") + "\n\n")

	switch s.mode {
	case profileEditing:
		b.WriteString(s.form.View() + "\n")
		save := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
		b.WriteString(s.helpView(save, s.keys.next, s.keys.back))
		return b.String()

	case profileConfirmDelete:
		b.WriteString(styles.err.Render("Delete your account? This cannot be undone.") + "\n\n")
		if s.deleting {
			b.WriteString(styles.warn.Render("Deleting account...") + "\n\n")
		}
		b.WriteString(s.helpView(s.keys.yes, s.keys.no))
		return b.String()
	}

	count := fmt.Sprintf("%d", len(s.favorites))
	if s.favErr != nil {
		count = "?"
	}
	stats := fmt.Sprintf("%s\n%s", styles.title.UnsetMarginBottom().Render(count), styles.muted.Render("Favorite Teams"))
	username := fmt.Sprintf("%s\n%s", styles.ok.Render(s.user.Username), styles.muted.Render("Username"))
	b.WriteString(styles.box.Render(stats) + " " + styles.box.Render(username) + "\n\n")

	b.WriteString(fmt.Sprintf("Name:  %s\n", s.user.FullName()))
	b.WriteString(fmt.Sprintf("Email: %s\n", s.user.Email))
	if s.favErr != nil {
		b.WriteString("\n" + styles.err.Render(shared.UserMessage(s.favErr, "Could not load favorites")) + "\n")
	}
	if v := s.flash.View(); v != "" {
		b.WriteString("\n" + v + "\n")
	}

	b.WriteString("\n" + s.helpView(s.keys.edit, s.keys.delete, s.keys.favorites, s.keys.logout, s.keys.back, s.keys.quit))
	return b.String()
}
