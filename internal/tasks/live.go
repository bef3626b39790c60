package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/desertthunder/sportshub/internal/models"
)

// SportGames is the live games result for one sport.
type SportGames struct {
	Sport string
	Games []models.Game
	Err   error
}

// LiveAcrossSports fetches live games for every sport using at most workers goroutines.
// Results are returned in the order of sports; per-sport failures are reported in [SportGames.Err].
func LiveAcrossSports(ctx context.Context, src GamesSource, sports []string, workers int, progress chan<- ProgressUpdate) ([]SportGames, error) {
	if workers <= 0 {
		workers = 4
	}
	if workers > len(sports) {
		workers = len(sports)
	}
	if len(sports) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]SportGames, len(sports))
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		completed int
	)
	for i, sport := range sports {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			sendProgress(progress, fetchGamesUpdate(i+1, len(sports), sport))
			games, err := src.LiveGames(ctx, sport)
			results[i] = SportGames{Sport: sport, Games: games, Err: err}

			mu.Lock()
			completed++
			step := completed
			mu.Unlock()

			if err != nil {
				sendProgress(progress, sportFailedUpdate(step, len(sports), sport, err))
				return
			}
			sendProgress(progress, sportDoneUpdate(step, len(sports), results[i]))
		}); err != nil {
			wg.Done()
			results[i] = SportGames{Sport: sport, Err: fmt.Errorf("submit %s: %w", sport, err)}
		}
	}
	wg.Wait()

	return results, ctx.Err()
}
