// Package session owns the client's authentication state.
//
// A [Store] holds the current user and token, persists them through a [Persistence]
// and performs the initialize, login, logout and profile-update transitions. Persisted
// state and memory are identical after every transition: storage is written first and
// memory is swapped only when the write succeeds.
//
// Views and commands receive the store by injection and read it through [Store.Current].
// [Store.Subscribe] lets them react to transitions, for example returning to the login
// screen on [LoggedOut].
package session
