package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/session"
	"github.com/desertthunder/sportshub/internal/shared"
)

var _ session.Persistence = (*LocalStorage)(nil)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	sess := models.Session{
		User:  &models.User{ID: "1", Username: "a", Email: "a@b.com", FirstName: "Ann"},
		Token: "T1",
	}

	t.Run("Get Set Remove", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		if _, ok, err := store.Get(ctx, "theme"); err != nil || ok {
			t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
		}
		if err := store.Set(ctx, "theme", "dark"); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		if err := store.Set(ctx, "theme", "light"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		v, ok, err := store.Get(ctx, "theme")
		if err != nil || !ok || v != "light" {
			t.Errorf("expected light, got %q ok=%v err=%v", v, ok, err)
		}

		if err := store.Remove(ctx, "theme"); err != nil {
			t.Fatalf("failed to remove: %v", err)
		}
		if _, ok, _ := store.Get(ctx, "theme"); ok {
			t.Error("expected key to be removed")
		}
	})

	t.Run("Save And Load", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		if err := store.Save(ctx, sess); err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("failed to load: %v", err)
		}
		if loaded == nil || loaded.Token != "T1" || *loaded.User != *sess.User {
			t.Errorf("expected identical session, got %+v", loaded)
		}

		keys, err := store.Keys(ctx)
		if err != nil || len(keys) != 2 || keys[0] != KeyToken || keys[1] != KeyUser {
			t.Errorf("expected token and user keys, got %v (%v)", keys, err)
		}
	})

	t.Run("Load Incomplete", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		if err := store.Set(ctx, KeyToken, "T1"); err != nil {
			t.Fatalf("failed to set token: %v", err)
		}
		loaded, err := store.Load(ctx)
		if err != nil || loaded != nil {
			t.Errorf("expected no session with token only, got %+v (%v)", loaded, err)
		}
	})

	t.Run("Load Corrupt User", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))
		store.Set(ctx, KeyToken, "T1")
		store.Set(ctx, KeyUser, "{not json")

		if _, err := store.Load(ctx); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("Save Rejects Anonymous", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))

		if err := store.Save(ctx, models.Session{Token: "T1"}); err == nil {
			t.Error("expected error for session without user")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		store := NewLocalStorage(setupTestDB(t))
		store.Save(ctx, sess)
		store.Set(ctx, "theme", "dark")

		if err := store.Clear(ctx); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}

		for _, key := range []string{KeyToken, KeyUser} {
			if _, ok, _ := store.Get(ctx, key); ok {
				t.Errorf("expected %s to be cleared", key)
			}
		}
		if _, ok, _ := store.Get(ctx, "theme"); !ok {
			t.Error("unrelated keys should survive")
		}
	})

	t.Run("Session Store Round Trip", func(t *testing.T) {
		db := setupTestDB(t)
		s := session.NewStore(NewLocalStorage(db), nil, nil)
		if err := s.Initialize(ctx); err != nil {
			t.Fatalf("failed to initialize: %v", err)
		}
		if s.Current().Authenticated() {
			t.Error("expected anonymous store on empty database")
		}
	})
}

func TestFavoritesCache(t *testing.T) {
	ctx := context.Background()
	favs := []models.Favorite{
		{ID: "f2", TeamID: "7", TeamName: "Celtics", League: "NBA"},
		{ID: "f1", TeamID: "5", TeamName: "Lakers", League: "NBA", Country: "USA", TeamLogo: "l.png"},
	}

	t.Run("Replace And List", func(t *testing.T) {
		cache := NewFavoritesCache(setupTestDB(t))

		if err := cache.Replace(ctx, "1", favs); err != nil {
			t.Fatalf("failed to replace: %v", err)
		}

		got, at, err := cache.List(ctx, "1")
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(got) != 2 || got[0] != favs[0] || got[1] != favs[1] {
			t.Errorf("expected cached favorites in order, got %+v", got)
		}
		if at.IsZero() {
			t.Error("expected cached time")
		}

		if err := cache.Replace(ctx, "1", favs[1:]); err != nil {
			t.Fatalf("failed to replace again: %v", err)
		}
		got, _, _ = cache.List(ctx, "1")
		if len(got) != 1 || got[0].ID != "f1" {
			t.Errorf("expected full replace, got %+v", got)
		}
	})

	t.Run("Per User", func(t *testing.T) {
		cache := NewFavoritesCache(setupTestDB(t))
		cache.Replace(ctx, "1", favs)

		got, at, err := cache.List(ctx, "2")
		if err != nil || len(got) != 0 || !at.IsZero() {
			t.Errorf("expected nothing cached for other user, got %+v", got)
		}

		if err := cache.Clear(ctx, "1"); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if got, _, _ := cache.List(ctx, "1"); len(got) != 0 {
			t.Error("expected cache cleared")
		}
	})
}
