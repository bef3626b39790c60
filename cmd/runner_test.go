package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/repositories"
	"github.com/desertthunder/sportshub/internal/services"
	"github.com/desertthunder/sportshub/internal/session"
	"github.com/desertthunder/sportshub/internal/shared"
	tu "github.com/desertthunder/sportshub/internal/testing"
)

const testToken = "tok-1"

var testUser = models.User{ID: "1", Username: "alice", Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"}

type harness struct {
	fake    *tu.FakeAPI
	out     *bytes.Buffer
	persist *session.MemoryPersistence
	runner  *Runner
}

func newHarness(t *testing.T, input string, opts ...func(*RunnerOpts)) *harness {
	t.Helper()
	fake := tu.NewFakeAPI(t)
	fake.AddAccount(testUser, "secret1", testToken)
	fake.SeedFavorites(testToken)
	fake.SetTeams("basketball", lakers(), models.Team{ID: "146", Name: "Clippers", League: models.Named{Name: "NBA"}})

	config := shared.DefaultConfig()
	config.API.BaseURL = fake.URL

	out := &bytes.Buffer{}
	persist := session.NewMemoryPersistence()
	ro := RunnerOpts{
		Config:      config,
		Client:      services.NewClient(services.NewAPIService(fake.URL, nil)),
		Persistence: persist,
		Logger:      shared.NewLogger(&bytes.Buffer{}),
		Output:      out,
		Input:       strings.NewReader(input),
	}
	for _, opt := range opts {
		opt(&ro)
	}

	return &harness{fake: fake, out: out, persist: persist, runner: NewRunner(ro)}
}

func (h *harness) run(args ...string) error {
	return h.runner.app().Run(context.Background(), append([]string{"sportshub"}, args...))
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	if err := h.run("auth", "login", "--email", testUser.Email, "--password", "secret1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	h.out.Reset()
}

func lakers() models.Team {
	return models.Team{
		ID:      "145",
		Name:    "Lakers",
		Logo:    "https://media.example.com/lakers.png",
		League:  models.Named{Name: "NBA"},
		Country: models.Named{Name: "USA"},
		Founded: 1947,
		Venue:   models.Venue{Name: "Crypto.com Arena", City: "Los Angeles", Capacity: 19068},
	}
}

func withCache(t *testing.T) func(*RunnerOpts) {
	t.Helper()
	db, err := shared.OpenStorage(context.Background(), shared.StorageConfig{Path: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return func(o *RunnerOpts) {
		o.Persistence = repositories.NewLocalStorage(db)
		o.Cache = repositories.NewFavoritesCache(db)
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.client == nil {
				t.Error("expected client built from config")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("file input reads passwords as lines", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.txt")
			if err := os.WriteFile(path, []byte("secret1\n"), 0644); err != nil {
				t.Fatalf("failed to write input: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("failed to open input: %v", err)
			}
			defer f.Close()

			runner := NewRunner(RunnerOpts{Input: f, Output: &bytes.Buffer{}})
			got, err := runner.readPassword("Password: ")
			if err != nil || got != "secret1" {
				t.Errorf("expected secret1, got %q, %v", got, err)
			}
		})

		t.Run("starts anonymous", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.session.Current().Authenticated() {
				t.Error("expected anonymous session")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"key": "value"`) {
			t.Errorf("expected formatted JSON, got %s", output.String())
		}
		if !strings.HasSuffix(output.String(), "\n") {
			t.Error("expected output to end with newline")
		}
	})

	t.Run("writeJSON with write error", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("writeJSON fails on newline write", func(t *testing.T) {
		lw := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
		runner := NewRunner(RunnerOpts{Output: &lw})

		err := runner.writeJSON(map[string]string{"key": "value"}, false)
		if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
			t.Errorf("expected newline write error, got %v", err)
		}
	})

	t.Run("writeBytes adds a trailing newline once", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writeBytes([]byte("a"))
		runner.writeBytes([]byte("b\n"))
		if output.String() != "a\nb\n" {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("confirm", func(t *testing.T) {
		tc := []struct {
			name  string
			input string
			yes   bool
			want  bool
		}{
			{name: "yes", input: "y\n", want: true},
			{name: "full word", input: "YES\n", want: true},
			{name: "no", input: "n\n", want: false},
			{name: "blank defaults to no", input: "\n", want: false},
			{name: "end of input is no", input: "", want: false},
			{name: "--yes skips the prompt", input: "", yes: true, want: true},
		}
		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				output := &bytes.Buffer{}
				runner := NewRunner(RunnerOpts{Output: output, Input: strings.NewReader(tt.input)})
				runner.assumeYes = tt.yes

				got, err := runner.confirm(context.Background(), "Remove Lakers from favorites?")
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
				if tt.yes && output.Len() != 0 {
					t.Errorf("expected no prompt, got %q", output.String())
				}
			})
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("login with flags stores the session", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("auth", "login", "--email", testUser.Email, "--password", "secret1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Logged in as alice") {
			t.Errorf("unexpected output %q", h.out.String())
		}

		stored, err := h.persist.Load(context.Background())
		if err != nil || stored == nil {
			t.Fatalf("expected stored session, got %v, %v", stored, err)
		}
		if stored.Token != testToken {
			t.Errorf("expected token %q, got %q", testToken, stored.Token)
		}
	})

	t.Run("login prompts for missing values", func(t *testing.T) {
		h := newHarness(t, testUser.Email+"\nsecret1\n")

		if err := h.run("auth", "login"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		if !strings.Contains(out, "Email: ") || !strings.Contains(out, "Password: ") {
			t.Errorf("expected prompts, got %q", out)
		}
		if !h.runner.session.Current().Authenticated() {
			t.Error("expected authenticated session")
		}
	})

	t.Run("invalid email is rejected before any request", func(t *testing.T) {
		h := newHarness(t, "")

		err := h.run("auth", "login", "--email", "not-an-email", "--password", "secret1")
		if !errors.Is(err, shared.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if calls := h.fake.Calls(tu.RouteLogin); calls != 0 {
			t.Errorf("expected no login request, got %d", calls)
		}
	})

	t.Run("wrong password surfaces the server message", func(t *testing.T) {
		h := newHarness(t, "")

		err := h.run("auth", "login", "--email", testUser.Email, "--password", "nope123")
		if err == nil || !strings.Contains(err.Error(), "Invalid email or password") {
			t.Fatalf("expected server message, got %v", err)
		}
		if h.runner.session.Current().Authenticated() {
			t.Error("expected session to stay anonymous")
		}
	})

	t.Run("signup creates an account that can log in", func(t *testing.T) {
		h := newHarness(t, "")

		err := h.run("auth", "signup",
			"--username", "bob", "--email", "bob@example.com",
			"--first-name", "Bob", "--last-name", "Jones", "--password", "hunter22")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Account created successfully! You can now log in.") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if err := h.run("auth", "login", "--email", "bob@example.com", "--password", "hunter22"); err != nil {
			t.Errorf("expected new account to log in, got %v", err)
		}
	})

	t.Run("signup with mismatched prompted passwords", func(t *testing.T) {
		h := newHarness(t, "hunter22\nhunter23\n")

		err := h.run("auth", "signup",
			"--username", "bob", "--email", "bob@example.com",
			"--first-name", "Bob", "--last-name", "Jones")
		ve, ok := shared.AsValidationError(err)
		if !ok {
			t.Fatalf("expected validation error, got %v", err)
		}
		if ve.Field("confirm_password") == "" {
			t.Errorf("expected confirm_password error, got %v", ve.Fields)
		}
		if calls := h.fake.Calls(tu.RouteSignup); calls != 0 {
			t.Errorf("expected no signup request, got %d", calls)
		}
	})

	t.Run("duplicate signup", func(t *testing.T) {
		h := newHarness(t, "")

		err := h.run("auth", "signup",
			"--username", "alice2", "--email", testUser.Email,
			"--first-name", "A", "--last-name", "S", "--password", "secret1")
		if err == nil || !strings.Contains(err.Error(), "Email already registered") {
			t.Fatalf("expected server message, got %v", err)
		}
	})

	t.Run("status", func(t *testing.T) {
		t.Run("anonymous", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run("auth", "status"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.out.String() != "Not logged in\n" {
				t.Errorf("unexpected output %q", h.out.String())
			}
		})

		t.Run("opaque token", func(t *testing.T) {
			h := newHarness(t, "")
			h.login(t)

			if err := h.run("auth", "status"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out := h.out.String()
			if !strings.Contains(out, "Logged in as alice <alice@example.com>") || !strings.Contains(out, "Token: opaque") {
				t.Errorf("unexpected output %q", out)
			}
		})

		t.Run("jwt expiry", func(t *testing.T) {
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "1",
				"exp": time.Now().Add(-time.Hour).Unix(),
			}).SignedString([]byte("test-key"))
			if err != nil {
				t.Fatalf("failed to sign token: %v", err)
			}

			h := newHarness(t, "")
			h.fake.AddAccount(testUser, "secret1", signed)
			h.login(t)

			if err := h.run("auth", "status"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(h.out.String(), "Token: expired at") {
				t.Errorf("expected expired token, got %q", h.out.String())
			}
		})
	})

	t.Run("logout clears the stored session", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("auth", "logout"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Logged out alice") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		stored, _ := h.persist.Load(context.Background())
		if stored != nil {
			t.Errorf("expected cleared storage, got %+v", stored)
		}

		h.out.Reset()
		if err := h.run("auth", "logout"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h.out.String() != "Not logged in\n" {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})
}

func TestProfileCommands(t *testing.T) {
	t.Run("requires login", func(t *testing.T) {
		h := newHarness(t, "")

		for _, args := range [][]string{{"profile", "show"}, {"profile", "update", "--first-name", "Al"}, {"profile", "delete"}} {
			if err := h.run(args...); !errors.Is(err, shared.ErrUnauthenticated) {
				t.Errorf("%v: expected ErrUnauthenticated, got %v", args, err)
			}
		}
		if total := h.fake.TotalCalls(); total != 0 {
			t.Errorf("expected no requests, got %d", total)
		}
	})

	t.Run("show", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SeedFavorites(testToken, models.FavoriteFromTeam("basketball", lakers()))
		h.login(t)

		if err := h.run("profile", "show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		for _, want := range []string{"alice", "Alice Smith", "alice@example.com", "Favorites: 1"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
	})

	t.Run("update refreshes the stored user", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("profile", "update", "--first-name", "Ally"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := h.runner.currentUser().FirstName; got != "Ally" {
			t.Errorf("expected first name Ally, got %q", got)
		}
		stored, _ := h.persist.Load(context.Background())
		if stored == nil || stored.User.FirstName != "Ally" || stored.Token != testToken {
			t.Errorf("expected persisted update with same token, got %+v", stored)
		}
	})

	t.Run("update without fields", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("profile", "update"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("update with short password", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("profile", "update", "--password", "abc"); !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		if calls := h.fake.Calls(tu.RouteUpdateUser); calls != 0 {
			t.Errorf("expected no update request, got %d", calls)
		}
	})

	t.Run("delete declined", func(t *testing.T) {
		h := newHarness(t, "n\n")
		h.login(t)

		if err := h.run("profile", "delete"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Cancelled") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if calls := h.fake.Calls(tu.RouteDeleteUser); calls != 0 {
			t.Errorf("expected no delete request, got %d", calls)
		}
	})

	t.Run("delete confirmed logs out", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("--yes", "profile", "delete"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if h.runner.session.Current().Authenticated() {
			t.Error("expected session cleared")
		}
		if err := h.run("auth", "login", "--email", testUser.Email, "--password", "secret1"); err == nil {
			t.Error("expected deleted account to be unable to log in")
		}
	})
}

func TestFavoritesCommands(t *testing.T) {
	t.Run("add looks the team up", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("favorites", "add", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Lakers added to favorites!") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		favs := h.fake.Favorites(testToken)
		if len(favs) != 1 || favs[0].TeamID != "145" || favs[0].League != "NBA" {
			t.Errorf("unexpected server favorites %+v", favs)
		}
	})

	t.Run("add duplicate", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SeedFavorites(testToken, models.Favorite{ID: "9", TeamID: "145", TeamName: "Lakers"})
		h.login(t)

		if err := h.run("favorites", "add", "basketball", "145"); !errors.Is(err, shared.ErrDuplicateFavorite) {
			t.Fatalf("expected ErrDuplicateFavorite, got %v", err)
		}
		if calls := h.fake.Calls(tu.RouteAddFavorite); calls != 0 {
			t.Errorf("expected no add request, got %d", calls)
		}
	})

	t.Run("add unknown team", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("favorites", "add", "basketball", "999"); !errors.Is(err, shared.ErrTeamNotFound) {
			t.Errorf("expected ErrTeamNotFound, got %v", err)
		}
	})

	t.Run("bad sport", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("favorites", "add", "curling", "145"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("remove asks first", func(t *testing.T) {
		h := newHarness(t, "n\ny\n")
		h.fake.SeedFavorites(testToken, models.Favorite{ID: "9", TeamID: "145", TeamName: "Lakers"})
		h.login(t)

		if err := h.run("favorites", "remove", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Remove Lakers from favorites? [y/N]") || !strings.Contains(h.out.String(), "Cancelled") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if calls := h.fake.Calls(tu.RouteRemoveFavorite); calls != 0 {
			t.Fatalf("expected no delete request, got %d", calls)
		}

		h.out.Reset()
		if err := h.run("favorites", "remove", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Lakers removed from favorites") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if favs := h.fake.Favorites(testToken); len(favs) != 0 {
			t.Errorf("expected server favorites emptied, got %+v", favs)
		}
	})

	t.Run("remove missing favorite", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("favorites", "remove", "145"); !errors.Is(err, shared.ErrFavoriteNotFound) {
			t.Errorf("expected ErrFavoriteNotFound, got %v", err)
		}
	})

	t.Run("toggle adds then removes", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t)

		if err := h.run("favorites", "toggle", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(h.fake.Favorites(testToken)) != 1 {
			t.Fatal("expected favorite added")
		}
		if err := h.run("--yes", "favorites", "toggle", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(h.fake.Favorites(testToken)) != 0 {
			t.Error("expected favorite removed")
		}
		if !strings.Contains(h.out.String(), "Lakers removed from favorites") {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})

	t.Run("list formats", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SeedFavorites(testToken, models.FavoriteFromTeam("basketball", lakers()))
		h.login(t)

		if err := h.run("favorites", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Favorites: 1") || !strings.Contains(h.out.String(), "Lakers (NBA) - USA") {
			t.Errorf("unexpected text output %q", h.out.String())
		}

		h.out.Reset()
		if err := h.run("favorites", "list", "--format", "csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(h.out.String(), "ID,Team ID,Team,League,Country,Logo\n") {
			t.Errorf("unexpected csv output %q", h.out.String())
		}

		if err := h.run("favorites", "list", "--format", "xml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("export writes a file", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SeedFavorites(testToken, models.FavoriteFromTeam("basketball", lakers()))
		h.login(t)

		path := filepath.Join(t.TempDir(), "out", "favorites.md")
		if err := h.run("favorites", "export", "--format", "md", "--output", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Exported 1 favorites to") {
			t.Errorf("unexpected output %q", h.out.String())
		}
		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "# Alice's Favorite Teams") {
			t.Errorf("unexpected export %q", content)
		}
	})

	t.Run("offline list reads the cache", func(t *testing.T) {
		h := newHarness(t, "", withCache(t))
		h.login(t)

		if err := h.run("favorites", "add", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		listCalls := h.fake.Calls(tu.RouteListFavorites)

		h.out.Reset()
		if err := h.run("favorites", "list", "--offline"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Lakers") {
			t.Errorf("expected cached favorite, got %q", h.out.String())
		}
		if calls := h.fake.Calls(tu.RouteListFavorites); calls != listCalls {
			t.Errorf("expected no list request, got %d more", calls-listCalls)
		}
	})

	t.Run("logout clears the cache", func(t *testing.T) {
		h := newHarness(t, "", withCache(t))
		h.login(t)
		if err := h.run("favorites", "add", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		favs, _, err := h.runner.cache.List(context.Background(), testUser.ID)
		if err != nil || len(favs) != 1 {
			t.Fatalf("expected one cached favorite, got %v, %v", favs, err)
		}
		if err := h.run("auth", "logout"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if favs, _, _ := h.runner.cache.List(context.Background(), testUser.ID); len(favs) != 0 {
			t.Errorf("expected cache cleared, got %+v", favs)
		}
		if h.runner.favorites.Loaded() {
			t.Error("expected favorites mirror reset on logout")
		}
	})

	t.Run("store logout clears the cache", func(t *testing.T) {
		h := newHarness(t, "", withCache(t))
		h.login(t)
		if err := h.runner.cache.Replace(context.Background(), testUser.ID, []models.Favorite{{ID: "f1", TeamID: "145", TeamName: "Lakers"}}); err != nil {
			t.Fatalf("failed to seed cache: %v", err)
		}

		if err := h.runner.session.Logout(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if favs, _, _ := h.runner.cache.List(context.Background(), testUser.ID); len(favs) != 0 {
			t.Errorf("expected cache cleared, got %+v", favs)
		}
	})

	t.Run("account delete clears the cache", func(t *testing.T) {
		h := newHarness(t, "", withCache(t))
		h.login(t)
		if err := h.run("favorites", "add", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := h.run("--yes", "profile", "delete"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if favs, _, _ := h.runner.cache.List(context.Background(), testUser.ID); len(favs) != 0 {
			t.Errorf("expected cache cleared, got %+v", favs)
		}
	})
}

func TestTeamsCommands(t *testing.T) {
	t.Run("search marks favorites", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SeedFavorites(testToken, models.Favorite{ID: "9", TeamID: "145", TeamName: "Lakers"})
		h.login(t)

		if err := h.run("teams", "search", "basketball", "ers"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		if !strings.Contains(out, "* 145") {
			t.Errorf("expected Lakers marked, got %q", out)
		}
		if !strings.Contains(out, "  146") {
			t.Errorf("expected Clippers unmarked, got %q", out)
		}
	})

	t.Run("search without login", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("teams", "search", "--format", "json", "basketball", "lakers"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), `"response"`) {
			t.Errorf("unexpected output %q", h.out.String())
		}
		if calls := h.fake.Calls(tu.RouteListFavorites); calls != 0 {
			t.Errorf("expected no favorites request, got %d", calls)
		}
	})

	t.Run("show prints details and opens the logo", func(t *testing.T) {
		h := newHarness(t, "")
		var opened string
		h.runner.openURL = func(link string) error {
			opened = link
			return nil
		}

		if err := h.run("teams", "show", "--open", "basketball", "145"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		for _, want := range []string{"Lakers", "Crypto.com Arena", "19,068", "Lakers is a professional basketball team competing in the NBA."} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in %q", want, out)
			}
		}
		if opened != "https://media.example.com/lakers.png" {
			t.Errorf("expected logo opened, got %q", opened)
		}
	})

	t.Run("show missing team", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("teams", "show", "basketball", "999"); !errors.Is(err, shared.ErrTeamNotFound) {
			t.Errorf("expected ErrTeamNotFound, got %v", err)
		}
	})
}

func TestGamesCommands(t *testing.T) {
	game := func(home, away string) models.Game {
		var g models.Game
		g.Teams.Home = &models.GameTeam{Name: home}
		g.Teams.Away = &models.GameTeam{Name: away}
		g.Status = models.GameStatus{Long: "Q3"}
		return g
	}

	t.Run("live caps the list", func(t *testing.T) {
		h := newHarness(t, "")
		games := make([]models.Game, 15)
		for i := range games {
			games[i] = game("Lakers", "Celtics")
		}
		h.fake.SetGames("basketball", games...)

		if err := h.run("games", "live", "basketball"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		if !strings.HasPrefix(out, "Live BASKETBALL: 10\n") {
			t.Errorf("unexpected output %q", out)
		}
		if n := strings.Count(out, "Lakers vs Celtics (Q3)"); n != 10 {
			t.Errorf("expected 10 games, got %d", n)
		}
	})

	t.Run("live defaults to the configured sport", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("games", "live"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "Live BASKETBALL: 0") {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})

	t.Run("live across every sport", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SetGames("soccer", game("Arsenal", "Chelsea"))

		if err := h.run("games", "live", "--all", "--workers", "2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		for _, sport := range shared.Sports {
			if !strings.Contains(out, "Live "+strings.ToUpper(sport)) {
				t.Errorf("expected %s section in %q", sport, out)
			}
		}
		if strings.Index(out, "BASKETBALL") > strings.Index(out, "SOCCER") {
			t.Errorf("expected sports in order, got %q", out)
		}
		if !strings.Contains(out, "Arsenal vs Chelsea (Q3)") {
			t.Errorf("expected soccer game, got %q", out)
		}
		if calls := h.fake.Calls(tu.RouteLiveGames); calls != len(shared.Sports) {
			t.Errorf("expected %d requests, got %d", len(shared.Sports), calls)
		}
	})

	t.Run("watch stops after count", func(t *testing.T) {
		h := newHarness(t, "")
		h.fake.SetGames("nfl", game("Bears", "Packers"))

		if err := h.run("games", "watch", "--interval", "10ms", "--count", "2", "nfl"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := strings.Count(h.out.String(), "Bears vs Packers"); n < 2 {
			t.Errorf("expected at least 2 refreshes, got %d in %q", n, h.out.String())
		}
		if calls := h.fake.Calls(tu.RouteLiveGames); calls < 2 {
			t.Errorf("expected at least 2 requests, got %d", calls)
		}
	})
}

func TestSetup(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "sportshub.db")
	configPath := filepath.Join(dir, "config.toml")
	config := "[api]\nbase_url = \"http://127.0.0.1:5000\"\n\n[storage]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	h := newHarness(t, "")
	if err := h.run("setup", "--config", configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tu.AssertFileExists(t, dbPath)
	if !strings.Contains(h.out.String(), "✓ Ready") {
		t.Errorf("unexpected output %q", h.out.String())
	}

	h.out.Reset()
	if err := h.run("setup", "--config", configPath, "--rollback"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := h.out.String()
	if !strings.Contains(out, "Rolled back") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "0000 create_local_storage") || !strings.Contains(out, "0001 create_favorites_cache") {
		t.Errorf("expected migration status lines, got %q", out)
	}
	if !strings.Contains(out, "pending") {
		t.Errorf("expected rolled back migration to be pending, got %q", out)
	}
}

func TestSetupCreatesConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	t.Chdir(dir)

	h := newHarness(t, "")
	if err := h.run("setup", "--config", configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tu.AssertFileExists(t, configPath)
	tu.AssertFileExists(t, filepath.Join(dir, "sportshub.db"))
}
