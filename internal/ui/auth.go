package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/sportshub/internal/forms"
)

const signupSuccess = "Account created successfully! You can now log in."

type loginScreen struct {
	*env
	gen    uint64
	form   form
	next   Nav
	notice string
}

func newLoginScreen(e *env, gen uint64, nav Nav) *loginScreen {
	next := Nav{Route: HomeRoute}
	if nav.Back.Protected() {
		next = Nav{Route: nav.Back}
	}
	return &loginScreen{
		env:    e,
		gen:    gen,
		next:   next,
		notice: nav.Notice,
		form: newForm(
			fieldSpec{key: "email", label: "Email"},
			fieldSpec{key: "password", label: "Password", secret: true},
		),
	}
}

func (s *loginScreen) Init() tea.Cmd { return s.form.Focus() }

func (s *loginScreen) SetSize(int, int) {}

func (s *loginScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.back):
			return navigate(Nav{Route: HomeRoute})
		case msg.String() == "ctrl+n":
			return navigate(Nav{Route: SignupRoute})
		}
		submit, cmd := s.form.Update(msg)
		if submit {
			return s.submit()
		}
		return cmd

	case Msg:
		if msg.kind != MsgLoggedIn {
			return nil
		}
		if msg.err != nil {
			s.form.Fail(msg.err, "Login failed. Please try again.")
			return nil
		}
		s.form.busy = false
		return navigate(s.next)
	}
	return nil
}

func (s *loginScreen) submit() tea.Cmd {
	input := forms.LoginForm{Email: s.form.Value("email"), Password: s.form.Value("password")}
	if err := forms.Validate(s.ctx, input); err != nil {
		s.form.Fail(err, "")
		return nil
	}

	s.form.Submitting()
	e, gen := s.env, s.gen
	return func() tea.Msg {
		sess, err := e.Session.Login(e.ctx, input.Email, input.Password)
		return newMsg(MsgLoggedIn, gen, sess, err)
	}
}

func (s *loginScreen) View() string {
	out := s.header("Log In") + "\n\n"
	if s.notice != "" {
		out += styles.warn.Render(s.notice) + "\n\n"
	}
	out += s.form.View() + "\n"
	signup := key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sign up"))
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "log in"))
	return out + s.helpView(submit, s.keys.next, signup, s.keys.back)
}

type signupScreen struct {
	*env
	gen  uint64
	form form
}

func newSignupScreen(e *env, gen uint64) *signupScreen {
	return &signupScreen{
		env: e,
		gen: gen,
		form: newForm(
			fieldSpec{key: "username", label: "Username"},
			fieldSpec{key: "email", label: "Email"},
			fieldSpec{key: "first_name", label: "First name"},
			fieldSpec{key: "last_name", label: "Last name"},
			fieldSpec{key: "password", label: "Password", secret: true},
			fieldSpec{key: "confirm_password", label: "Confirm password", secret: true},
		),
	}
}

func (s *signupScreen) Init() tea.Cmd { return s.form.Focus() }

func (s *signupScreen) SetSize(int, int) {}

func (s *signupScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.back):
			return navigate(Nav{Route: HomeRoute})
		case msg.String() == "ctrl+l":
			return navigate(Nav{Route: LoginRoute})
		}
		submit, cmd := s.form.Update(msg)
		if submit {
			return s.submit()
		}
		return cmd

	case Msg:
		if msg.kind != MsgSignedUp {
			return nil
		}
		if msg.err != nil {
			s.form.Fail(msg.err, "An error occurred during signup. Please try again.")
			return nil
		}
		cmd := s.form.Reset()
		s.form.busy = false
		s.form.success = signupSuccess
		return cmd
	}
	return nil
}

func (s *signupScreen) input() forms.SignupForm {
	return forms.SignupForm{
		Username:        s.form.Value("username"),
		Email:           s.form.Value("email"),
		Password:        s.form.Value("password"),
		ConfirmPassword: s.form.Value("confirm_password"),
		FirstName:       s.form.Value("first_name"),
		LastName:        s.form.Value("last_name"),
	}
}

func (s *signupScreen) submit() tea.Cmd {
	input := s.input()
	if err := forms.Validate(s.ctx, input); err != nil {
		s.form.Fail(err, "")
		return nil
	}

	s.form.Submitting()
	e, gen := s.env, s.gen
	return func() tea.Msg {
		err := e.Client.Accounts.Signup(e.ctx, input.Request())
		return newMsg(MsgSignedUp, gen, nil, err)
	}
}

func (s *signupScreen) View() string {
	out := s.header("Create Account") + "\n\n" + s.form.View() + "\n"
	login := key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log in"))
	submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign up"))
	return out + s.helpView(submit, s.keys.next, login, s.keys.back)
}
