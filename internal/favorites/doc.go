// Package favorites keeps a user's favorite teams consistent between the client and the API.
//
// A [Manager] holds a local mirror of the server collection. The mirror changes only after the
// server confirms a request: loads replace it, adds append the server-returned record and
// removes drop the entry by favorite id. Team ids are unique within the mirror, and adds for a
// team that is already present (or being added) fail with [shared.ErrDuplicateFavorite] without
// a request.
//
// # Ordering
//
// Every request takes a sequence number when issued. A load is applied only if its number is
// higher than every number already applied, so a slow load never overwrites a newer add or
// remove. Adds and removes always apply, idempotently, and advance the watermark.
package favorites
