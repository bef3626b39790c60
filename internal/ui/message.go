package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/sportshub/internal/session"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents the results of async work in the TUI (Elm-style message union).
//
// Every Msg carries the view generation it was issued under. The root model drops
// messages from generations that are no longer mounted.
type Msg struct {
	kind MsgKind
	gen  uint64
	data any
	err  error
}

var (
	_ tea.Msg = Msg{}
	_ tea.Msg = navigateMsg{}
	_ tea.Msg = sessionEventMsg{}
)

const (
	MsgClockTick MsgKind = iota
	MsgLiveTick
	MsgDashboard
	MsgLiveGames
	MsgLoggedIn
	MsgSignedUp
	MsgProfileSaved
	MsgAccountDeleted
	MsgLoggedOut
	MsgFavoritesLoaded
	MsgSearchDone
	MsgFavoriteAdded
	MsgFavoriteRemoved
	MsgTeamLoaded
	MsgFavoriteToggled
	MsgFlashExpired
)

func (k MsgKind) String() string {
	names := [...]string{
		"clock_tick", "live_tick", "dashboard", "live_games", "logged_in", "signed_up",
		"profile_saved", "account_deleted", "logged_out", "favorites_loaded", "search_done",
		"favorite_added", "favorite_removed", "team_loaded", "favorite_toggled", "flash_expired",
	}
	if int(k) < 0 || int(k) >= len(names) {
		return "unknown"
	}
	return names[k]
}

// newMsg is the constructor for every [Msg]
func newMsg(kind MsgKind, gen uint64, data any, err error) Msg {
	return Msg{kind: kind, gen: gen, data: data, err: err}
}

// tick schedules a [Msg] of kind after d, tagged with gen.
func tick(d time.Duration, kind MsgKind, gen uint64, data any) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		if data != nil {
			return newMsg(kind, gen, data, nil)
		}
		return newMsg(kind, gen, t, nil)
	})
}

// navigateMsg asks the root model to mount a new view.
type navigateMsg struct {
	nav Nav
}

// navigate is the constructor for [navigateMsg] as a command.
func navigate(nav Nav) tea.Cmd {
	return func() tea.Msg { return navigateMsg{nav: nav} }
}

// sessionEventMsg forwards a [session.Event] into the event loop.
type sessionEventMsg struct {
	event session.Event
}
