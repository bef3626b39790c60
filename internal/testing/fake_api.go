package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/sportshub/internal/models"
)

// Route patterns served by [FakeAPI], usable with [FakeAPI.Calls], [FakeAPI.Fail] and [FakeAPI.Hold].
const (
	RouteSignup         = "POST /users"
	RouteLogin          = "POST /users/login"
	RouteUpdateUser     = "PUT /users"
	RouteDeleteUser     = "DELETE /users"
	RouteListFavorites  = "GET /favorites"
	RouteAddFavorite    = "POST /favorites"
	RouteRemoveFavorite = "DELETE /favorites/{team_id}"
	RouteLiveGames      = "GET /sports/{sport}/games/live"
	RouteSearchTeams    = "GET /sports/{sport}/teams/search"
	RouteGetTeam        = "GET /sports/{sport}/teams/{team_id}"
)

type fakeAccount struct {
	user     models.User
	password string
	token    string
}

type fakeHold struct {
	handled chan struct{}
	release chan struct{}
}

type fakeFailure struct {
	status  int
	message string
}

// FakeAPI is an in-memory Sports Hub API served over httptest.
//
// Requests are counted per route so tests can assert that no request was sent.
type FakeAPI struct {
	*httptest.Server

	mu        sync.Mutex
	accounts  map[string]*fakeAccount
	favorites map[string][]models.Favorite
	teams     map[string][]models.Team
	games     map[string][]models.Game
	calls     map[string]int
	failures  map[string][]fakeFailure
	holds     map[string][]*fakeHold
	lastAuth  string
	nextID    int
}

// NewFakeAPI starts a [FakeAPI] that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		accounts:  make(map[string]*fakeAccount),
		favorites: make(map[string][]models.Favorite),
		teams:     make(map[string][]models.Team),
		games:     make(map[string][]models.Game),
		calls:     make(map[string]int),
		failures:  make(map[string][]fakeFailure),
		holds:     make(map[string][]*fakeHold),
	}

	mux := http.NewServeMux()
	f.handle(mux, RouteSignup, f.signup)
	f.handle(mux, RouteLogin, f.login)
	f.handle(mux, RouteUpdateUser, f.authed(f.updateUser))
	f.handle(mux, RouteDeleteUser, f.authed(f.deleteUser))
	f.handle(mux, RouteListFavorites, f.authed(f.listFavorites))
	f.handle(mux, RouteAddFavorite, f.authed(f.addFavorite))
	f.handle(mux, RouteRemoveFavorite, f.authed(f.removeFavorite))
	f.handle(mux, RouteLiveGames, f.liveGames)
	f.handle(mux, RouteSearchTeams, f.searchTeams)
	f.handle(mux, RouteGetTeam, f.getTeam)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// AddAccount registers a user that can log in with email and password and receives token.
func (f *FakeAPI) AddAccount(user models.User, password, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[user.Email] = &fakeAccount{user: user, password: password, token: token}
}

// SeedFavorites replaces the favorites stored for token.
func (f *FakeAPI) SeedFavorites(token string, favs ...models.Favorite) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favorites[token] = append([]models.Favorite(nil), favs...)
}

// Favorites returns the favorites stored for token.
func (f *FakeAPI) Favorites(token string) []models.Favorite {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Favorite(nil), f.favorites[token]...)
}

// SetTeams sets the teams returned for sport.
func (f *FakeAPI) SetTeams(sport string, teams ...models.Team) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.teams[sport] = teams
}

// SetGames sets the live games returned for sport.
func (f *FakeAPI) SetGames(sport string, games ...models.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games[sport] = games
}

// Fail makes the next request on route return status with message as the body's error field.
// An empty message produces a body without an error field.
func (f *FakeAPI) Fail(route string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = append(f.failures[route], fakeFailure{status: status, message: message})
}

// Hold delays the response to the next request on route until release is called.
// The request is handled, and its effects applied, before the response is held.
// handled is closed once that has happened.
func (f *FakeAPI) Hold(route string) (handled <-chan struct{}, release func()) {
	h := &fakeHold{handled: make(chan struct{}), release: make(chan struct{})}
	f.mu.Lock()
	f.holds[route] = append(f.holds[route], h)
	f.mu.Unlock()

	var once sync.Once
	return h.handled, func() { once.Do(func() { close(h.release) }) }
}

// Calls returns how many requests route received.
func (f *FakeAPI) Calls(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

// TotalCalls returns how many requests were received on any route.
func (f *FakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// LastAuthorization returns the Authorization header of the most recent request.
func (f *FakeAPI) LastAuthorization() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

func (f *FakeAPI) handle(mux *http.ServeMux, route string, h http.HandlerFunc) {
	mux.HandleFunc(route, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[route]++
		f.lastAuth = r.Header.Get("Authorization")
		var hold *fakeHold
		if q := f.holds[route]; len(q) > 0 {
			hold, f.holds[route] = q[0], q[1:]
		}
		var failure *fakeFailure
		if q := f.failures[route]; len(q) > 0 {
			failure, f.failures[route] = &q[0], q[1:]
		}
		f.mu.Unlock()

		rec := httptest.NewRecorder()
		if failure != nil {
			body := map[string]string{}
			if failure.message != "" {
				body["error"] = failure.message
			}
			writeJSON(rec, failure.status, body)
		} else {
			h(rec, r)
		}

		if hold != nil {
			close(hold.handled)
			select {
			case <-hold.release:
			case <-r.Context().Done():
				return
			}
		}

		for k, v := range rec.Header() {
			w.Header()[k] = v
		}
		w.WriteHeader(rec.Code)
		w.Write(rec.Body.Bytes())
	})
}

func (f *FakeAPI) authed(h func(http.ResponseWriter, *http.Request, *fakeAccount)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Missing token"})
			return
		}

		f.mu.Lock()
		var account *fakeAccount
		for _, a := range f.accounts {
			if a.token == token {
				account = a
				break
			}
		}
		if account == nil {
			if _, seeded := f.favorites[token]; seeded {
				account = &fakeAccount{token: token}
			}
		}
		f.mu.Unlock()

		if account == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		h(w, r, account)
	}
}

func (f *FakeAPI) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[req.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already registered"})
		return
	}
	f.nextID++
	user := models.User{
		ID:        models.IDFromInt(int64(f.nextID)),
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	f.accounts[req.Email] = &fakeAccount{user: user, password: req.Password, token: fmt.Sprintf("token-%d", f.nextID)}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

func (f *FakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	f.mu.Lock()
	account, ok := f.accounts[req.Email]
	f.mu.Unlock()
	if !ok || account.password != req.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": account.user, "token": account.token})
}

func (f *FakeAPI) updateUser(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	u := &account.user
	if v, ok := req["username"]; ok {
		u.Username = v
	}
	if v, ok := req["first_name"]; ok {
		u.FirstName = v
	}
	if v, ok := req["last_name"]; ok {
		u.LastName = v
	}
	if v, ok := req["password"]; ok {
		account.password = v
	}
	if v, ok := req["email"]; ok && v != u.Email {
		delete(f.accounts, u.Email)
		u.Email = v
		f.accounts[v] = account
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": *u})
}

func (f *FakeAPI) deleteUser(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, account.user.Email)
	delete(f.favorites, account.token)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted"})
}

func (f *FakeAPI) listFavorites(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	f.mu.Lock()
	favs := append([]models.Favorite{}, f.favorites[account.token]...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favs})
}

func (f *FakeAPI) addFavorite(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	var fav models.Favorite
	if err := json.NewDecoder(r.Body).Decode(&fav); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON"})
		return
	}
	if fav.TeamID == "" || fav.TeamName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "team_id and team_name are required"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.favorites[account.token] {
		if existing.TeamID == fav.TeamID {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Team already in favorites"})
			return
		}
	}
	f.nextID++
	fav.ID = models.IDFromInt(int64(f.nextID))
	f.favorites[account.token] = append(f.favorites[account.token], fav)
	writeJSON(w, http.StatusCreated, map[string]any{"favorite": fav})
}

func (f *FakeAPI) removeFavorite(w http.ResponseWriter, r *http.Request, account *fakeAccount) {
	teamID := models.ID(r.PathValue("team_id"))

	f.mu.Lock()
	defer f.mu.Unlock()
	favs := f.favorites[account.token]
	for i, fav := range favs {
		if fav.TeamID == teamID {
			f.favorites[account.token] = append(favs[:i:i], favs[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Favorite removed"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Favorite not found"})
}

func (f *FakeAPI) liveGames(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	games := append([]models.Game{}, f.games[r.PathValue("sport")]...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"response": games})
}

func (f *FakeAPI) searchTeams(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(r.URL.Query().Get("name"))

	f.mu.Lock()
	defer f.mu.Unlock()
	matches := []models.Team{}
	for _, team := range f.teams[r.PathValue("sport")] {
		if strings.Contains(strings.ToLower(team.Name), name) {
			matches = append(matches, team)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": matches})
}

func (f *FakeAPI) getTeam(w http.ResponseWriter, r *http.Request) {
	id := models.ID(r.PathValue("team_id"))

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, team := range f.teams[r.PathValue("sport")] {
		if team.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{"response": []models.Team{team}})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"response": []models.Team{}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
