package catalog

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/spigell/studentos/internal/geo"
)

//go:embed data/locations.json
var defaultLocations []byte

type State struct {
	Name   string `json:"state"`
	Cities []City `json:"cities"`
}

type City struct {
	Name      string   `json:"name"`
	Lat       float64  `json:"lat"`
	Lng       float64  `json:"lng"`
	Districts []string `json:"districts"`
}

func (c City) Point() geo.Point {
	return geo.Point{Lat: c.Lat, Lng: c.Lng}
}

// Locations returns the static state/city/district table. Coordinates are
// city centres; there is no geocoding.
func Locations() []State {
	var states []State
	if err := json.Unmarshal(defaultLocations, &states); err != nil {
		return nil
	}
	return states
}

// FindState looks a state up by name, case-insensitively.
func FindState(states []State, name string) *State {
	name = strings.TrimSpace(name)
	for i := range states {
		if strings.EqualFold(states[i].Name, name) {
			return &states[i]
		}
	}
	return nil
}

// FindCity looks a city up by state and city name.
func FindCity(states []State, state, city string) *City {
	s := FindState(states, state)
	if s == nil {
		return nil
	}

	city = strings.TrimSpace(city)
	for i := range s.Cities {
		if strings.EqualFold(s.Cities[i].Name, city) {
			return &s.Cities[i]
		}
	}
	return nil
}

func (s *State) CityNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Cities))
	for _, c := range s.Cities {
		names = append(names, c.Name)
	}
	return names
}

func StateNames(states []State) []string {
	names := make([]string, 0, len(states))
	for _, s := range states {
		names = append(names, s.Name)
	}
	return names
}
