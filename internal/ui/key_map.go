package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	next      key.Binding
	prev      key.Binding
	enter     key.Binding
	back      key.Binding
	yes       key.Binding
	no        key.Binding
	sport     key.Binding
	refresh   key.Binding
	favorites key.Binding
	profile   key.Binding
	login     key.Binding
	signup    key.Binding
	logout    key.Binding
	add       key.Binding
	remove    key.Binding
	edit      key.Binding
	delete    key.Binding
	toggle    key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:        key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
		sport:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "sport")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		favorites: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorites")),
		profile:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		login:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "log in")),
		signup:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign up")),
		logout:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "log out")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete account")),
		toggle:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.back, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.next, k.prev},
		{k.favorites, k.profile, k.login, k.signup, k.logout},
		{k.add, k.remove, k.toggle, k.back, k.quit},
	}
}
