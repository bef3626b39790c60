// Package models defines the data transferred between the Sports Hub API and the client.
//
// The package contains two categories of types:
//
// 1. Account state owned by the client session
//   - [User] : profile returned by login and profile updates
//   - [Session] : the user + token pair persisted between runs
//
// 2. API resources
//   - [Favorite] : a team saved by the user, keyed by team_id on the server
//   - [Team] : search and detail results, whose shape varies by sport
//   - [Game] : live game entries, re-fetched on each poll
//
// Provider payloads are loosely shaped: ids may be numbers or strings and nested objects
// such as league or venue may be plain strings. [ID], [Named], [Venue] and [FlexInt] absorb
// those differences so callers never inspect raw JSON.
package models
