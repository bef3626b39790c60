package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/sportshub/internal/favorites"
	"github.com/desertthunder/sportshub/internal/models"
)

var (
	_ list.Item = favoriteItem{}
	_ list.Item = teamItem{}
)

// favoriteItem wraps [models.Favorite] to implement [list.Item].
type favoriteItem struct {
	fav models.Favorite
}

func (i favoriteItem) FilterValue() string { return i.fav.TeamName }
func (i favoriteItem) Title() string       { return i.fav.TeamName }
func (i favoriteItem) Description() string { return joinNonEmpty(" • ", i.fav.League, i.fav.Country) }

// teamItem wraps a search result to implement [list.Item].
type teamItem struct {
	result favorites.SearchResult
}

func (i teamItem) FilterValue() string { return i.result.Team.Name }
func (i teamItem) Title() string {
	if i.result.Favorite {
		return "★ " + i.result.Team.Name
	}
	return i.result.Team.Name
}
func (i teamItem) Description() string {
	t := i.result.Team
	return joinNonEmpty(" • ", t.League.Name, t.Country.Name, fmt.Sprintf("id %s", t.ID))
}

func favoriteItems(favs []models.Favorite) []list.Item {
	items := make([]list.Item, len(favs))
	for i, f := range favs {
		items[i] = favoriteItem{fav: f}
	}
	return items
}

func teamItems(results []favorites.SearchResult) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = teamItem{result: r}
	}
	return items
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	return l
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
