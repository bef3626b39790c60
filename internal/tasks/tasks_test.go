package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

type stubGames struct {
	mu      sync.Mutex
	games   map[string][]models.Game
	errs    map[string]error
	calls   []string
	active  int32
	maxSeen int32
	delay   time.Duration
}

func (s *stubGames) LiveGames(ctx context.Context, sport string) ([]models.Game, error) {
	n := atomic.AddInt32(&s.active, 1)
	defer atomic.AddInt32(&s.active, -1)
	for {
		seen := atomic.LoadInt32(&s.maxSeen)
		if n <= seen || atomic.CompareAndSwapInt32(&s.maxSeen, seen, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.calls = append(s.calls, sport)
	s.mu.Unlock()

	if err := s.errs[sport]; err != nil {
		return nil, err
	}
	return s.games[sport], nil
}

type stubFavorites struct {
	favs  []models.Favorite
	err   error
	calls int32
}

func (s *stubFavorites) Load(ctx context.Context, token string) ([]models.Favorite, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.favs, s.err
}

func gamesN(n int) []models.Game {
	games := make([]models.Game, n)
	for i := range games {
		games[i] = models.Game{ID: models.IDFromInt(int64(i + 1))}
	}
	return games
}

func TestLiveAcrossSports(t *testing.T) {
	t.Run("results keep sport order", func(t *testing.T) {
		src := &stubGames{games: map[string][]models.Game{
			"basketball": gamesN(2),
			"baseball":   gamesN(1),
			"nfl":        nil,
			"soccer":     gamesN(3),
		}}

		results, err := LiveAcrossSports(context.Background(), src, shared.Sports, 2, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != len(shared.Sports) {
			t.Fatalf("expected %d results, got %d", len(shared.Sports), len(results))
		}
		for i, sport := range shared.Sports {
			if results[i].Sport != sport {
				t.Errorf("result %d: expected %s, got %s", i, sport, results[i].Sport)
			}
		}
		if len(results[3].Games) != 3 {
			t.Errorf("expected 3 soccer games, got %d", len(results[3].Games))
		}
	})

	t.Run("one failing sport does not fail the rest", func(t *testing.T) {
		src := &stubGames{
			games: map[string][]models.Game{"basketball": gamesN(1), "soccer": gamesN(1)},
			errs:  map[string]error{"nfl": &shared.TransportError{Err: errors.New("connection refused")}},
		}

		results, err := LiveAcrossSports(context.Background(), src, shared.Sports, 4, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !errors.Is(results[2].Err, shared.ErrTransport) {
			t.Errorf("expected transport error for nfl, got %v", results[2].Err)
		}
		if results[0].Err != nil || results[3].Err != nil {
			t.Errorf("expected other sports to succeed, got %v / %v", results[0].Err, results[3].Err)
		}
	})

	t.Run("worker count bounds concurrency", func(t *testing.T) {
		src := &stubGames{delay: 20 * time.Millisecond}

		if _, err := LiveAcrossSports(context.Background(), src, shared.Sports, 2, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := atomic.LoadInt32(&src.maxSeen); got > 2 {
			t.Errorf("expected at most 2 concurrent fetches, saw %d", got)
		}
		if len(src.calls) != len(shared.Sports) {
			t.Errorf("expected %d calls, got %d", len(shared.Sports), len(src.calls))
		}
	})

	t.Run("no sports", func(t *testing.T) {
		results, err := LiveAcrossSports(context.Background(), &stubGames{}, nil, 2, nil)
		if err != nil || results != nil {
			t.Errorf("expected nil results and error, got %v, %v", results, err)
		}
	})

	t.Run("progress updates", func(t *testing.T) {
		src := &stubGames{
			games: map[string][]models.Game{"basketball": gamesN(1)},
			errs:  map[string]error{"baseball": errors.New("boom")},
		}
		progress := make(chan ProgressUpdate, 16)

		if _, err := LiveAcrossSports(context.Background(), src, []string{"basketball", "baseball"}, 1, progress); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		close(progress)

		phases := map[Phase]int{}
		for update := range progress {
			phases[update.Phase]++
			if update.Total != 2 {
				t.Errorf("expected total 2, got %d", update.Total)
			}
		}
		if phases[FetchGames] != 2 || phases[SportDone] != 1 || phases[SportFailed] != 1 {
			t.Errorf("unexpected phase counts: %v", phases)
		}
	})
}

func TestDashboard(t *testing.T) {
	favs := []models.Favorite{{ID: "1", TeamID: "10", TeamName: "Lakers"}}

	t.Run("loads both halves", func(t *testing.T) {
		fl := &stubFavorites{favs: favs}
		src := &stubGames{games: map[string][]models.Game{"basketball": gamesN(15)}}

		result := NewDashboard(fl, src).Load(context.Background(), "tok", "basketball", 10, nil)
		if result.FavoritesErr != nil || result.GamesErr != nil {
			t.Fatalf("unexpected errors: %v / %v", result.FavoritesErr, result.GamesErr)
		}
		if len(result.Favorites) != 1 {
			t.Errorf("expected 1 favorite, got %d", len(result.Favorites))
		}
		if len(result.Games) != 10 {
			t.Errorf("expected games capped at 10, got %d", len(result.Games))
		}
	})

	t.Run("anonymous skips favorites", func(t *testing.T) {
		fl := &stubFavorites{favs: favs}
		src := &stubGames{games: map[string][]models.Game{"nfl": gamesN(2)}}

		result := NewDashboard(fl, src).Load(context.Background(), "", "nfl", 0, nil)
		if atomic.LoadInt32(&fl.calls) != 0 {
			t.Errorf("expected no favorites load without a token")
		}
		if len(result.Games) != 2 {
			t.Errorf("expected 2 games, got %d", len(result.Games))
		}
	})

	t.Run("errors are kept per half", func(t *testing.T) {
		fl := &stubFavorites{err: &shared.ServerError{StatusCode: 500, Message: "down"}}
		src := &stubGames{games: map[string][]models.Game{"soccer": gamesN(1)}}

		result := NewDashboard(fl, src).Load(context.Background(), "tok", "soccer", 10, nil)
		if !errors.Is(result.FavoritesErr, shared.ErrServerRejected) {
			t.Errorf("expected server error for favorites, got %v", result.FavoritesErr)
		}
		if result.GamesErr != nil || len(result.Games) != 1 {
			t.Errorf("expected games to load, got %v / %d", result.GamesErr, len(result.Games))
		}
	})
}

func TestRepeater(t *testing.T) {
	t.Run("runs immediately and on each tick", func(t *testing.T) {
		var runs int32
		r := NewRepeater("test", 10*time.Millisecond, func(ctx context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		}, nil)

		r.Start(context.Background())
		time.Sleep(55 * time.Millisecond)
		r.Stop()

		if got := atomic.LoadInt32(&runs); got < 3 {
			t.Errorf("expected at least 3 runs, got %d", got)
		}
	})

	t.Run("no calls after stop returns", func(t *testing.T) {
		var runs int32
		r := NewRepeater("test", 5*time.Millisecond, func(ctx context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		}, nil)

		r.Start(context.Background())
		time.Sleep(20 * time.Millisecond)
		r.Stop()
		after := atomic.LoadInt32(&runs)
		time.Sleep(20 * time.Millisecond)

		if got := atomic.LoadInt32(&runs); got != after {
			t.Errorf("expected no runs after stop, got %d more", got-after)
		}
	})

	t.Run("context cancel stops loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		r := NewRepeater("test", 5*time.Millisecond, func(ctx context.Context) error { return nil }, nil)

		r.Start(ctx)
		cancel()

		done := make(chan struct{})
		go func() {
			r.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("stop did not return after cancel")
		}
	})

	t.Run("stop without start", func(t *testing.T) {
		r := NewRepeater("test", 0, func(ctx context.Context) error { return nil }, nil)
		r.Stop()
		r.Stop()
	})

	t.Run("status tracks failures", func(t *testing.T) {
		var runs int32
		r := NewRepeater("test", 5*time.Millisecond, func(ctx context.Context) error {
			if n := atomic.AddInt32(&runs, 1); n <= 2 {
				return fmt.Errorf("attempt %d failed", n)
			}
			return nil
		}, nil)

		r.Start(context.Background())
		deadline := time.Now().Add(time.Second)
		for atomic.LoadInt32(&runs) < 3 && time.Now().Before(deadline) {
			time.Sleep(2 * time.Millisecond)
		}
		r.Stop()

		status := r.Status()
		if status.Runs < 3 {
			t.Fatalf("expected at least 3 runs, got %d", status.Runs)
		}
		if status.ConsecutiveFailures != 0 || status.LastError != "" {
			t.Errorf("expected failures reset after success, got %+v", status)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		FetchFavorites: "fetch_favorites",
		FetchGames:     "fetch_games",
		SportDone:      "sport_done",
		SportFailed:    "sport_failed",
		Phase(99):      "",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
