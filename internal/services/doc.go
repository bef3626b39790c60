// Package services implements the HTTP client for the Sports Hub REST API.
//
// # Raw Client
//
// [APIService] builds requests against a single base URL, attaches the bearer token when one is
// supplied and reports each call as one of three outcomes:
//   - success: a 2xx [APIResponse]
//   - server-rejected: a non-2xx [APIResponse], converted by [APIResponse.Err] into [shared.ServerError]
//   - transport failure: a [shared.TransportError] (no response at all)
//
// Transport failures are never reported as server rejections.
//
// # Endpoints
//
// Typed wrappers cover each endpoint:
//   - [AccountService] : POST /users, POST /users/login, PUT /users, DELETE /users
//   - [SportsService] : live games, team search and team details per sport
//   - [FavoritesAPI] : GET/POST /favorites, DELETE /favorites/{team_id}
//
// [Client] bundles the three for callers that need all of them.
package services
