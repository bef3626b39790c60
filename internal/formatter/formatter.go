// package formatter renders favorites, teams and games as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/sportshub/internal/models"
	"github.com/desertthunder/sportshub/internal/shared"
)

// Format is an output format name accepted by --format.
type Format string

const (
	FormatText     Format = "txt"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
)

// ParseFormat normalizes a format flag value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want txt, csv, md or json)", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// FavoritesToCSV converts favorites to CSV with columns: ID, Team ID, Team, League, Country, Logo
func FavoritesToCSV(favs []models.Favorite) ([]byte, error) {
	records := make([][]string, 0, len(favs))
	for _, f := range favs {
		records = append(records, []string{f.ID.String(), f.TeamID.String(), f.TeamName, f.League, f.Country, f.TeamLogo})
	}
	return writeCSV([]string{"ID", "Team ID", "Team", "League", "Country", "Logo"}, records)
}

// FavoritesToMarkdown renders favorites as a Markdown table under a heading for the owner.
func FavoritesToMarkdown(owner string, favs []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	title := "Favorite Teams"
	if owner != "" {
		title = fmt.Sprintf("%s's Favorite Teams", owner)
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Teams**: %d\n\n", len(favs))

	if len(favs) == 0 {
		buf.WriteString("_No favorites yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Team | League | Country |\n")
	buf.WriteString("|---|------|--------|---------|\n")
	for i, f := range favs {
		team := escapeCell(f.TeamName)
		if f.TeamLogo != "" {
			team = fmt.Sprintf("![](%s) %s", f.TeamLogo, team)
		}
		fmt.Fprintf(&buf, "| %d | %s | %s | %s |\n", i+1, team, escapeCell(f.League), escapeCell(f.Country))
	}
	return buf.Bytes(), nil
}

// FavoritesToText renders favorites one per line.
func FavoritesToText(favs []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Favorites: %d\n\n", len(favs))
	for i, f := range favs {
		fmt.Fprintf(&buf, "%d. %s (%s)", i+1, f.TeamName, f.League)
		if f.Country != "" && f.Country != f.League {
			fmt.Fprintf(&buf, " - %s", f.Country)
		}
		fmt.Fprintf(&buf, " [team %s]\n", f.TeamID)
	}
	return buf.Bytes(), nil
}

// Favorites renders favorites in the given format.
func Favorites(format Format, owner string, favs []models.Favorite) ([]byte, error) {
	switch format {
	case FormatCSV:
		return FavoritesToCSV(favs)
	case FormatMarkdown:
		return FavoritesToMarkdown(owner, favs)
	case FormatJSON:
		return toJSON(map[string]any{"favorites": nonNil(favs)})
	default:
		return FavoritesToText(favs)
	}
}

// TeamsToText renders search results. Favorited teams get a star.
func TeamsToText(sport string, teams []models.Team, isFavorite func(models.ID) bool) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s teams: %d\n\n", strings.ToUpper(sport), len(teams))
	for _, t := range teams {
		mark := " "
		if isFavorite != nil && isFavorite(t.ID) {
			mark = "*"
		}
		fmt.Fprintf(&buf, "%s %-8s %s", mark, t.ID, t.Name)
		if t.League.Name != "" {
			fmt.Fprintf(&buf, " (%s)", t.League.Name)
		}
		if t.Country.Name != "" {
			fmt.Fprintf(&buf, " - %s", t.Country.Name)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Teams renders search results in the given format.
func Teams(format Format, sport string, teams []models.Team, isFavorite func(models.ID) bool) ([]byte, error) {
	switch format {
	case FormatCSV:
		records := make([][]string, 0, len(teams))
		for _, t := range teams {
			records = append(records, []string{t.ID.String(), t.Name, t.League.Name, t.Country.Name, t.LogoURL()})
		}
		return writeCSV([]string{"ID", "Team", "League", "Country", "Logo"}, records)
	case FormatMarkdown:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "# %s Teams\n\n", strings.ToUpper(sport))
		buf.WriteString("| ID | Team | League | Country |\n")
		buf.WriteString("|----|------|--------|---------|\n")
		for _, t := range teams {
			fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n", t.ID, escapeCell(t.Name), escapeCell(t.League.Name), escapeCell(t.Country.Name))
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return toJSON(map[string]any{"response": nonNil(teams)})
	default:
		return TeamsToText(sport, teams, isFavorite)
	}
}

// GameLine renders a single game as "Home vs Away (Status)".
func GameLine(g models.Game) string {
	return fmt.Sprintf("%s vs %s (%s)", g.HomeName(), g.AwayName(), g.StatusText())
}

// Games renders live games in the given format.
func Games(format Format, sport string, games []models.Game) ([]byte, error) {
	switch format {
	case FormatCSV:
		records := make([][]string, 0, len(games))
		for _, g := range games {
			records = append(records, []string{sport, g.ID.String(), g.HomeName(), g.AwayName(), g.StatusText()})
		}
		return writeCSV([]string{"Sport", "ID", "Home", "Away", "Status"}, records)
	case FormatMarkdown:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "## Live %s\n\n", strings.ToUpper(sport))
		if len(games) == 0 {
			buf.WriteString("_No live games._\n")
			return buf.Bytes(), nil
		}
		for _, g := range games {
			fmt.Fprintf(&buf, "- %s\n", GameLine(g))
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return toJSON(map[string]any{"sport": sport, "response": nonNil(games)})
	default:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "Live %s: %d\n", strings.ToUpper(sport), len(games))
		for _, g := range games {
			fmt.Fprintf(&buf, "  %s\n", GameLine(g))
		}
		return buf.Bytes(), nil
	}
}

// WriteExport writes data to path, creating parent directories. An empty path is an error.
func WriteExport(path string, data []byte) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: output path", shared.ErrMissingArgument)
	}
	path, err := shared.ExpandPath(path)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}
	return buf.Bytes(), nil
}

func toJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
