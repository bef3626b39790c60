package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

// Client bundles the typed endpoint services over one [APIService].
type Client struct {
	API       *APIService
	Accounts  *AccountService
	Sports    *SportsService
	Favorites *FavoritesAPI
}

// NewClient creates the typed services over api.
func NewClient(api *APIService) *Client {
	return &Client{
		API:       api,
		Accounts:  &AccountService{api: api},
		Sports:    &SportsService{api: api},
		Favorites: &FavoritesAPI{api: api},
	}
}

// SignupRequest is the body of POST /users.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ProfileUpdate is the body of PUT /users. Password is omitted from the request when empty.
type ProfileUpdate struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type userResponse struct {
	User *models.User `json:"user"`
}

// AccountService wraps the /users endpoints.
type AccountService struct {
	api *APIService
}

// Signup creates an account.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) error {
	return s.api.call(ctx, http.MethodPost, "/users", "", req, nil, "An error occurred during signup")
}

// Login exchanges credentials for a session.
//
// Every failure wraps [shared.ErrLoginFailed] alongside the underlying category.
func (s *AccountService) Login(ctx context.Context, email, password string) (models.Session, error) {
	var out loginResponse
	err := s.api.call(ctx, http.MethodPost, "/users/login", "", loginRequest{Email: email, Password: password}, &out, "Invalid email or password")
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", shared.ErrLoginFailed, err)
	}
	if out.User == nil || out.Token == "" {
		return models.Session{}, fmt.Errorf("%w: response missing user or token", shared.ErrLoginFailed)
	}
	return models.Session{User: out.User, Token: out.Token}, nil
}

// UpdateProfile updates the authenticated user's profile and returns the stored profile.
func (s *AccountService) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*models.User, error) {
	if token == "" {
		return nil, shared.ErrUnauthenticated
	}
	var out userResponse
	if err := s.api.call(ctx, http.MethodPut, "/users", token, update, &out, "Failed to update profile"); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, fmt.Errorf("%w: response missing user", shared.ErrServerRejected)
	}
	return out.User, nil
}

// DeleteAccount deletes the authenticated user's account.
func (s *AccountService) DeleteAccount(ctx context.Context, token string) error {
	if token == "" {
		return shared.ErrUnauthenticated
	}
	return s.api.call(ctx, http.MethodDelete, "/users", token, nil, nil, "Failed to delete account")
}

type sportsResponse[T any] struct {
	Response []T `json:"response"`
}

// SportsService wraps the public /sports endpoints.
type SportsService struct {
	api *APIService
}

// LiveGames lists games in progress for sport.
func (s *SportsService) LiveGames(ctx context.Context, sport string) ([]models.Game, error) {
	if err := checkSport(sport); err != nil {
		return nil, err
	}
	var out sportsResponse[models.Game]
	if err := s.api.call(ctx, http.MethodGet, "/sports/"+sport+"/games/live", "", nil, &out, "Failed to load live games"); err != nil {
		return nil, err
	}
	return out.Response, nil
}

// SearchTeams searches teams of sport by name.
func (s *SportsService) SearchTeams(ctx context.Context, sport, name string) ([]models.Team, error) {
	if err := checkSport(sport); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name", shared.ErrMissingArgument)
	}

	path := "/sports/" + sport + "/teams/search?name=" + url.QueryEscape(name)
	var out sportsResponse[models.Team]
	if err := s.api.call(ctx, http.MethodGet, path, "", nil, &out, "Search failed. Please try again."); err != nil {
		return nil, err
	}
	return out.Response, nil
}

// GetTeam fetches one team. An empty result or a 404 is reported as [shared.ErrTeamNotFound].
func (s *SportsService) GetTeam(ctx context.Context, sport string, teamID models.ID) (*models.Team, error) {
	if err := checkSport(sport); err != nil {
		return nil, err
	}
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id", shared.ErrMissingArgument)
	}

	path := "/sports/" + sport + "/teams/" + url.PathEscape(teamID.String())
	var out sportsResponse[models.Team]
	if err := s.api.call(ctx, http.MethodGet, path, "", nil, &out, "Failed to load team details"); err != nil {
		if se, ok := shared.AsServerError(err); ok && se.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", shared.ErrTeamNotFound, err)
		}
		return nil, err
	}
	if len(out.Response) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrTeamNotFound, teamID)
	}
	return &out.Response[0], nil
}

func checkSport(sport string) error {
	if !shared.IsSport(sport) {
		return fmt.Errorf("%w: unknown sport %q (want one of %s)", shared.ErrInvalidArgument, sport, strings.Join(shared.Sports, ", "))
	}
	return nil
}

type favoritesResponse struct {
	Favorites []models.Favorite `json:"favorites"`
}

type favoriteResponse struct {
	Favorite *models.Favorite `json:"favorite"`
}

// FavoritesAPI wraps the authenticated /favorites endpoints.
type FavoritesAPI struct {
	api *APIService
}

// List returns the user's favorites.
func (f *FavoritesAPI) List(ctx context.Context, token string) ([]models.Favorite, error) {
	if token == "" {
		return nil, shared.ErrUnauthenticated
	}
	var out favoritesResponse
	if err := f.api.call(ctx, http.MethodGet, "/favorites", token, nil, &out, "Failed to load favorites"); err != nil {
		return nil, err
	}
	if out.Favorites == nil {
		return []models.Favorite{}, nil
	}
	return out.Favorites, nil
}

// Add saves fav and returns the record stored by the server, including its id.
func (f *FavoritesAPI) Add(ctx context.Context, token string, fav models.Favorite) (models.Favorite, error) {
	if token == "" {
		return models.Favorite{}, shared.ErrUnauthenticated
	}
	fav.ID = ""
	var out favoriteResponse
	if err := f.api.call(ctx, http.MethodPost, "/favorites", token, fav, &out, "Failed to add favorite"); err != nil {
		return models.Favorite{}, err
	}
	if out.Favorite == nil {
		return models.Favorite{}, fmt.Errorf("%w: response missing favorite", shared.ErrServerRejected)
	}
	return *out.Favorite, nil
}

// Remove deletes the favorite for teamID. The endpoint is keyed by team id, not favorite id.
func (f *FavoritesAPI) Remove(ctx context.Context, token string, teamID models.ID) error {
	if token == "" {
		return shared.ErrUnauthenticated
	}
	if teamID == "" {
		return fmt.Errorf("%w: team id", shared.ErrMissingArgument)
	}
	return f.api.call(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(teamID.String()), token, nil, nil, "Failed to remove favorite")
}
