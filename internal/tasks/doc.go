// Package tasks runs the background work behind the views: repeating refreshes and
// concurrent fetches.
//
// # Repeating Work
//
// [Repeater] calls a function immediately and then on every tick until its context is
// cancelled or [Repeater.Stop] is called. Stop returns only after the loop has exited, so
// a torn-down view never receives another call.
//
// # Concurrent Fetches
//
//   - [Dashboard] loads the home screen's favorites and live games at the same time
//   - [LiveAcrossSports] fetches live games for several sports through a bounded worker pool
//
// # Progress Reporting
//
// Fetches emit [ProgressUpdate] values on an optional channel. Sends never block; updates
// are dropped when the channel is full.
package tasks
