package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Named is a nested provider object such as a league or country.
// It also accepts a bare string, which becomes the name.
type Named struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Logo string `json:"logo,omitempty"`
}

func (n *Named) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type named Named
		var v named
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*n = Named(v)
		return nil
	}
	s, err := decodeScalar(data)
	if err != nil {
		return err
	}
	*n = Named{Name: s}
	return nil
}

// Venue is where a team plays home games.
type Venue struct {
	Name     string  `json:"name,omitempty"`
	City     string  `json:"city,omitempty"`
	Capacity FlexInt `json:"capacity,omitempty"`
}

func (v *Venue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type venue Venue
		var raw venue
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*v = Venue(raw)
		return nil
	}
	s, err := decodeScalar(data)
	if err != nil {
		return err
	}
	*v = Venue{Name: s}
	return nil
}

// Team is a search or detail result. Field presence varies by sport and provider.
type Team struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Code     string  `json:"code,omitempty"`
	Logo     string  `json:"logo,omitempty"`
	Image    string  `json:"image,omitempty"`
	League   Named   `json:"league"`
	Country  Named   `json:"country"`
	Founded  FlexInt `json:"founded,omitempty"`
	Venue    Venue   `json:"venue"`
	National *bool   `json:"national,omitempty"`
}

// LogoURL returns the logo, falling back to the image.
func (t Team) LogoURL() string {
	if t.Logo != "" {
		return t.Logo
	}
	return t.Image
}

// Summary describes the team in one paragraph for the details view.
func (t Team) Summary(sport string) string {
	league := t.League.Name
	if league == "" {
		league = "league"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is a professional %s team competing in the %s.", t.Name, sport, league)
	if t.Country.Name != "" {
		fmt.Fprintf(&b, " The team is based in %s.", t.Country.Name)
	}
	if t.Founded > 0 {
		fmt.Fprintf(&b, " Founded in %d.", t.Founded)
	}
	if t.Venue.Name != "" {
		fmt.Fprintf(&b, " They play their home games at %s", t.Venue.Name)
		if t.Venue.Capacity > 0 {
			fmt.Fprintf(&b, ", which has a capacity of %s spectators", FormatThousands(int64(t.Venue.Capacity)))
		}
		b.WriteString(".")
	}
	return b.String()
}

// FormatThousands renders n with comma thousands separators.
func FormatThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
