package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/sportshub/internal/formatter"
	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
	"github.com/urfave/cli/v3"
)

// TeamsSearch lists teams matching a name. Favorites are marked when logged in.
func (r *Runner) TeamsSearch(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	sport, err := sportFrom(cmd, "")
	if err != nil {
		return err
	}

	teams, err := r.client.Sports.SearchTeams(ctx, sport, cmd.StringArg("name"))
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = r.config.UI.SearchLimit
	}
	if limit > 0 && len(teams) > limit {
		teams = teams[:limit]
	}

	if token := r.session.Current().Token; token != "" {
		if _, err := r.favorites.Load(ctx, token); err != nil {
			r.logger.Warn("favorites unavailable, results are unmarked", "error", err)
		}
	}

	data, err := formatter.Teams(format, sport, teams, r.favorites.Contains)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}

// TeamsShow prints a team's details and summary.
func (r *Runner) TeamsShow(ctx context.Context, cmd *cli.Command) error {
	sport, team, err := r.lookupTeam(ctx, cmd)
	if err != nil {
		return err
	}

	if token := r.session.Current().Token; token != "" {
		if _, err := r.favorites.Load(ctx, token); err != nil {
			r.logger.Warn("favorites unavailable", "error", err)
		}
	}

	title := team.Name
	if r.favorites.Contains(team.ID) {
		title = "★ " + title
	}
	r.writePlainHeader(title)
	for _, row := range teamRows(team) {
		if row[1] != "" {
			r.writePlain("%-10s %s\n", row[0]+":", row[1])
		}
	}
	r.writePlain("\n%s\n", team.Summary(sport))

	if cmd.Bool("open") {
		logo := team.LogoURL()
		if logo == "" {
			return fmt.Errorf("%w: %s has no logo", shared.ErrInvalidArgument, team.Name)
		}
		if err := r.openURL(logo); err != nil {
			return err
		}
	}
	return nil
}

func teamRows(t *models.Team) [][2]string {
	rows := [][2]string{
		{"ID", t.ID.String()},
		{"Code", t.Code},
		{"League", t.League.Name},
		{"Country", t.Country.Name},
		{"Venue", t.Venue.Name},
		{"City", t.Venue.City},
		{"Logo", t.LogoURL()},
	}
	if t.Founded > 0 {
		rows = append(rows, [2]string{"Founded", fmt.Sprintf("%d", t.Founded)})
	}
	if t.Venue.Capacity > 0 {
		rows = append(rows, [2]string{"Capacity", models.FormatThousands(int64(t.Venue.Capacity))})
	}
	return rows
}
