package tasks

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"

	"github.com/desertthunder/sportshub/internal/models"
)

// FavoritesLoader loads the user's favorites.
type FavoritesLoader interface {
	Load(ctx context.Context, token string) ([]models.Favorite, error)
}

// GamesSource lists live games for a sport.
type GamesSource interface {
	LiveGames(ctx context.Context, sport string) ([]models.Game, error)
}

// DashboardResult holds the home screen data. Each half carries its own error.
type DashboardResult struct {
	Sport        string
	Favorites    []models.Favorite
	FavoritesErr error
	Games        []models.Game
	GamesErr     error
}

// Dashboard fetches the home screen's favorites and live games concurrently.
type Dashboard struct {
	favorites FavoritesLoader
	games     GamesSource
}

// NewDashboard creates a [Dashboard].
func NewDashboard(favorites FavoritesLoader, games GamesSource) *Dashboard {
	return &Dashboard{favorites: favorites, games: games}
}

// Load fetches both halves. Favorites are skipped for anonymous sessions (empty token) and
// games are capped at limit when limit is positive.
func (d *Dashboard) Load(ctx context.Context, token, sport string, limit int, progress chan<- ProgressUpdate) DashboardResult {
	result := DashboardResult{Sport: sport}

	var wg conc.WaitGroup
	if token != "" {
		wg.Go(func() {
			sendProgress(progress, ProgressUpdate{Phase: FetchFavorites, Step: 1, Total: 2, Message: "Loading favorites..."})
			result.Favorites, result.FavoritesErr = d.favorites.Load(ctx, token)
		})
	}
	wg.Go(func() {
		sendProgress(progress, fetchGamesUpdate(2, 2, sport))
		games, err := d.games.LiveGames(ctx, sport)
		if limit > 0 && len(games) > limit {
			games = games[:limit]
		}
		result.Games, result.GamesErr = games, err
	})

	if r := wg.WaitAndRecover(); r != nil {
		err := fmt.Errorf("dashboard fetch panicked: %v", r.Value)
		if result.GamesErr == nil && result.Games == nil {
			result.GamesErr = err
		}
		if token != "" && result.FavoritesErr == nil && result.Favorites == nil {
			result.FavoritesErr = err
		}
	}
	return result
}
