package models

import (
	"bytes"
	"encoding/json"
)

const (
	defaultHomeName = "Home Team"
	defaultAwayName = "Away Team"
	defaultStatus   = "In Progress"
)

// GameTeam is one side of a game.
type GameTeam struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Logo string `json:"logo,omitempty"`
}

// GameStatus is the provider status. A bare string is treated as the long form.
type GameStatus struct {
	Long  string `json:"long,omitempty"`
	Short string `json:"short,omitempty"`
}

func (s *GameStatus) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type status GameStatus
		var v status
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = GameStatus(v)
		return nil
	}
	text, err := decodeScalar(data)
	if err != nil {
		return err
	}
	*s = GameStatus{Long: text}
	return nil
}

// Game is a live game entry. Providers use either teams.home/teams.away or homeTeam/awayTeam.
type Game struct {
	ID    ID `json:"id,omitempty"`
	Teams struct {
		Home *GameTeam `json:"home,omitempty"`
		Away *GameTeam `json:"away,omitempty"`
	} `json:"teams"`
	HomeTeam *GameTeam  `json:"homeTeam,omitempty"`
	AwayTeam *GameTeam  `json:"awayTeam,omitempty"`
	Status   GameStatus `json:"status"`
}

// HomeName returns the home side's name or "Home Team".
func (g Game) HomeName() string {
	return sideName(defaultHomeName, g.Teams.Home, g.HomeTeam)
}

// AwayName returns the away side's name or "Away Team".
func (g Game) AwayName() string {
	return sideName(defaultAwayName, g.Teams.Away, g.AwayTeam)
}

// StatusText returns the long status or "In Progress".
func (g Game) StatusText() string {
	if g.Status.Long != "" {
		return g.Status.Long
	}
	return defaultStatus
}

func sideName(fallback string, sides ...*GameTeam) string {
	for _, side := range sides {
		if side != nil && side.Name != "" {
			return side.Name
		}
	}
	return fallback
}
