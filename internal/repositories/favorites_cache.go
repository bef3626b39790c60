package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/sportshub/internal/models"
)

// FavoritesCache stores the last server-confirmed favorites of each user.
//
// The cache is never a source of truth for mutations; it only backs offline listings.
type FavoritesCache struct {
	db *sql.DB
}

// NewFavoritesCache creates a new [FavoritesCache] with the given database connection
func NewFavoritesCache(db *sql.DB) *FavoritesCache {
	return &FavoritesCache{db: db}
}

// Replace swaps the cached favorites of userID for favs, keeping their order.
func (c *FavoritesCache) Replace(ctx context.Context, userID models.ID, favs []models.Favorite) error {
	if userID == "" {
		return fmt.Errorf("cannot cache favorites without a user id")
	}
	now := time.Now()
	return withTx(ctx, c.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM favorites_cache WHERE user_id = ?", userID.String()); err != nil {
			return fmt.Errorf("failed to clear cached favorites: %w", err)
		}

		query := `
			INSERT INTO favorites_cache (user_id, favorite_id, team_id, team_name, team_logo, league, country, position, cached_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for i, f := range favs {
			_, err := tx.ExecContext(ctx, query,
				userID.String(), f.ID.String(), f.TeamID.String(), f.TeamName, f.TeamLogo, f.League, f.Country, i, now,
			)
			if err != nil {
				return fmt.Errorf("failed to cache favorite %s: %w", f.ID, err)
			}
		}
		return nil
	})
}

// List returns the cached favorites of userID and when they were cached.
// The time is zero when nothing is cached.
func (c *FavoritesCache) List(ctx context.Context, userID models.ID) ([]models.Favorite, time.Time, error) {
	query := `
		SELECT favorite_id, team_id, team_name, team_logo, league, country, cached_at
		FROM favorites_cache
		WHERE user_id = ?
		ORDER BY position
	`
	rows, err := c.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query cached favorites: %w", err)
	}
	defer rows.Close()

	var (
		favs     []models.Favorite
		cachedAt time.Time
	)
	for rows.Next() {
		var (
			f  models.Favorite
			id string
			tm string
			at time.Time
		)
		if err := rows.Scan(&id, &tm, &f.TeamName, &f.TeamLogo, &f.League, &f.Country, &at); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan cached favorite: %w", err)
		}
		f.ID, f.TeamID = models.ID(id), models.ID(tm)
		favs = append(favs, f)
		cachedAt = at
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read cached favorites: %w", err)
	}
	return favs, cachedAt, nil
}

// Clear removes the cached favorites of userID.
func (c *FavoritesCache) Clear(ctx context.Context, userID models.ID) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM favorites_cache WHERE user_id = ?", userID.String()); err != nil {
		return fmt.Errorf("failed to clear cached favorites: %w", err)
	}
	return nil
}
