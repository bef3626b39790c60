// Package ui implements the interactive Sports Hub terminal interface using bubbletea's Elm architecture.
//
// Views:
//  1. [HomeRoute] : Clock, sport tabs, live games and the favorites strip
//  2. [LoginRoute], [SignupRoute] : Account forms validated locally before submission
//  3. [ProfileRoute] : Stats, profile editing and account deletion
//  4. [FavoritesRoute] : Team search with add and remove
//  5. [TeamRoute] : Team details with a favorite toggle
//
// The root [Model] mounts one view at a time. Each mount bumps a generation counter and every async
// result ([Msg]) carries the generation it was issued under, so results and ticks that arrive after
// their view was torn down are dropped instead of applied. Profile and favorites require a session
// and redirect to login otherwise.
//
// Session transitions reach the event loop through a channel fed by [session.Store.Subscribe].
// A logout from anywhere mounts the login view.
package ui
