package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/sportshub/internal/formatter"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the favorites, from the server or, with --offline, the local cache.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	var favs []models.Favorite
	if cmd.Bool("offline") {
		favs, err = r.cachedFavorites(ctx)
	} else {
		favs, err = r.loadFavorites(ctx)
	}
	if err != nil {
		return err
	}

	data, err := formatter.Favorites(format, r.currentUser().DisplayName(), favs)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// FavoritesAdd looks the team up and adds it to favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}
	sport, team, err := r.lookupTeam(ctx, cmd)
	if err != nil {
		return err
	}
	if _, err := r.favorites.Load(ctx, token); err != nil {
		return err
	}

	fav, err := r.favorites.Add(ctx, token, sport, *team)
	if err != nil {
		return err
	}
	return r.writePlain("✓ %s added to favorites!\n", fav.TeamName)
}

// FavoritesRemove removes a favorite by team id after confirmation.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}
	teamID, err := teamIDFrom(cmd)
	if err != nil {
		return err
	}
	if _, err := r.favorites.Load(ctx, token); err != nil {
		return err
	}

	fav, ok := r.favorites.Find(teamID)
	if !ok {
		return fmt.Errorf("%w: no favorite for team %s", shared.ErrFavoriteNotFound, teamID)
	}

	err = r.favorites.Remove(ctx, token, fav.ID)
	switch {
	case errors.Is(err, shared.ErrCancelled):
		return r.writePlain("Cancelled\n")
	case err != nil:
		return err
	}
	return r.writePlain("✓ %s removed from favorites\n", fav.TeamName)
}

// FavoritesToggle adds the team when absent and removes it, after confirmation, when present.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	token, err := r.requireToken()
	if err != nil {
		return err
	}
	sport, team, err := r.lookupTeam(ctx, cmd)
	if err != nil {
		return err
	}
	if _, err := r.favorites.Load(ctx, token); err != nil {
		return err
	}

	isFavorite, err := r.favorites.Toggle(ctx, token, sport, *team)
	switch {
	case errors.Is(err, shared.ErrCancelled):
		return r.writePlain("Cancelled\n")
	case err != nil:
		return err
	case isFavorite:
		return r.writePlain("✓ %s added to favorites!\n", team.Name)
	default:
		return r.writePlain("✓ %s removed from favorites\n", team.Name)
	}
}

// FavoritesExport renders the favorites in --format and writes them to --output or stdout.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	favs, err := r.loadFavorites(ctx)
	if err != nil {
		return err
	}

	data, err := formatter.Favorites(format, r.currentUser().DisplayName(), favs)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	if output == "" {
		return r.writeBytes(data)
	}

	path, err := formatter.WriteExport(output, data)
	if err != nil {
		return err
	}
	r.logger.Info("exported favorites", "format", format, "path", path)
	return r.writePlain("✓ Exported %d favorites to %s\n", len(favs), path)
}

func (r *Runner) loadFavorites(ctx context.Context) ([]models.Favorite, error) {
	token, err := r.requireToken()
	if err != nil {
		return nil, err
	}
	return r.favorites.Load(ctx, token)
}

func (r *Runner) cachedFavorites(ctx context.Context) ([]models.Favorite, error) {
	user := r.currentUser()
	if user == nil {
		return nil, fmt.Errorf("%w: run `sportshub auth login` first", shared.ErrUnauthenticated)
	}
	if r.cache == nil {
		return nil, fmt.Errorf("%w: local storage is not available", shared.ErrMissingConfig)
	}

	favs, syncedAt, err := r.cache.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if syncedAt.IsZero() {
		r.logger.Warn("favorites have not been synced yet")
	} else {
		r.logger.Info("showing cached favorites", "synced", syncedAt)
	}
	return favs, nil
}

// lookupTeam reads the sport and team id arguments and fetches the team.
func (r *Runner) lookupTeam(ctx context.Context, cmd *cli.Command) (string, *models.Team, error) {
	sport, err := sportFrom(cmd, "")
	if err != nil {
		return "", nil, err
	}
	teamID, err := teamIDFrom(cmd)
	if err != nil {
		return "", nil, err
	}

	team, err := r.client.Sports.GetTeam(ctx, sport, teamID)
	if err != nil {
		return "", nil, err
	}
	return sport, team, nil
}

// sportFrom validates the sport argument, using fallback when it is empty.
func sportFrom(cmd *cli.Command, fallback string) (string, error) {
	sport := strings.ToLower(strings.TrimSpace(cmd.StringArg("sport")))
	if sport == "" {
		sport = fallback
	}
	if sport == "" {
		return "", fmt.Errorf("%w: sport (one of %s)", shared.ErrMissingArgument, strings.Join(shared.Sports, ", "))
	}
	if !shared.IsSport(sport) {
		return "", fmt.Errorf("%w: unknown sport %q", shared.ErrInvalidArgument, sport)
	}
	return sport, nil
}

func teamIDFrom(cmd *cli.Command) (models.ID, error) {
	id := strings.TrimSpace(cmd.StringArg("team-id"))
	if id == "" {
		return "", fmt.Errorf("%w: team id", shared.ErrMissingArgument)
	}
	return models.ID(id), nil
}
