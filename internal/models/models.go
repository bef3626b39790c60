package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a server-assigned identifier that arrives as either a JSON number or a string.
//
// Integer-looking ids marshal back as numbers so values such as team_id round-trip unchanged.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := decodeScalar(data)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = ID(s)
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Int returns the id as an integer when it is numeric.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// IDFromInt builds an [ID] from an integer.
func IDFromInt(n int64) ID { return ID(strconv.FormatInt(n, 10)) }

// FlexInt is an integer that may be encoded as a JSON number or a numeric string.
//
// Zero means the value was absent.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s, err := decodeScalar(data)
	if err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		// Unparseable provider values are treated as missing.
		*n = 0
		return nil
	}
	*n = FlexInt(f)
	return nil
}

// decodeScalar returns the text of a JSON string, number or bool. null decodes to "".
func decodeScalar(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar, got %s", data)
	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			var b bool
			if berr := json.Unmarshal(data, &b); berr == nil {
				return strconv.FormatBool(b), nil
			}
			return "", err
		}
		return num.String(), nil
	}
}

// User is the profile of an authenticated account.
type User struct {
	ID        ID     `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// DisplayName returns the first name, falling back to the username.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Username
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Session is the authenticated identity and token pair.
//
// User is nil exactly when Token is empty.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether the session holds both a user and a token.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// Clone returns a copy that shares no memory with s.
func (s Session) Clone() Session {
	if s.User == nil {
		return Session{Token: s.Token}
	}
	u := *s.User
	return Session{User: &u, Token: s.Token}
}

// Favorite is a team saved by the user. The server keys deletes by TeamID, not ID.
type Favorite struct {
	ID       ID     `json:"id,omitempty"`
	TeamID   ID     `json:"team_id"`
	TeamName string `json:"team_name"`
	TeamLogo string `json:"team_logo"`
	League   string `json:"league"`
	Country  string `json:"country"`
}

// FavoriteFromTeam builds the record sent when adding team to favorites.
//
// The logo falls back to the team image, then "". The league falls back to the country name,
// then the upper-cased sport.
func FavoriteFromTeam(sport string, team Team) Favorite {
	league := team.League.Name
	if league == "" {
		league = team.Country.Name
	}
	if league == "" {
		league = strings.ToUpper(sport)
	}
	return Favorite{
		TeamID:   team.ID,
		TeamName: team.Name,
		TeamLogo: team.LogoURL(),
		League:   league,
		Country:  team.Country.Name,
	}
}
