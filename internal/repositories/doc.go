// Package repositories implements SQLite persistence for client-side state.
//
// Key Implementations:
//   - [LocalStorage] : key/value table holding the persisted session under the "token" and "user" keys
//   - [FavoritesCache] : last server-confirmed favorites per user, read by offline listings
//
// Tables are created by the embedded migrations in the shared package.
package repositories
