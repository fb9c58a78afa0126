package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/geo"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "trims and drops blanks", input: " React , ,Java,", want: []string{"React", "Java"}},
		{name: "case-insensitive duplicates", input: "SQL, sql, Sql, Excel", want: []string{"SQL", "Excel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.input))
		})
	}
}

func TestMergeSkills(t *testing.T) {
	got := MergeSkills([]string{"React"}, "react", "Figma")
	assert.Equal(t, []string{"React", "Figma"}, got)
}

func TestValidate(t *testing.T) {
	valid := New()
	valid.Skills = []string{"Excel"}
	require.NoError(t, valid.Validate())

	incomplete := New()
	require.NoError(t, incomplete.Validate(), "empty skills is an incomplete profile, not an invalid one")
	assert.True(t, incomplete.Incomplete())

	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{name: "zero radius", mutate: func(p *Profile) { p.RadiusKm = 0 }},
		{name: "negative salary", mutate: func(p *Profile) { p.ExpectedSalary = -1 }},
		{name: "missing background", mutate: func(p *Profile) { p.Background = "" }},
		{name: "unknown background", mutate: func(p *Profile) { p.Background = "Law" }},
		{name: "unknown role type", mutate: func(p *Profile) { p.RoleType = "Apprentice" }},
		{name: "unknown work mode", mutate: func(p *Profile) { p.Mode = "Moon" }},
		{name: "unknown learning style", mutate: func(p *Profile) {
			p.Cognitive = &CognitiveProfile{LearningStyle: "Osmosis"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			tt.mutate(p)
			assert.Error(t, p.Validate())
		})
	}

	var missing *Profile
	assert.Error(t, missing.Validate())
}

func TestSetLocation(t *testing.T) {
	states := catalog.Locations()

	p := New()
	p.SetLocation(states, "Telangana", "Hyderabad", "Rangareddy")
	require.NotNil(t, p.Coordinates)
	assert.InDelta(t, 17.3850, p.Coordinates.Lat, 1e-9)
	assert.Equal(t, "Hyderabad, Telangana", p.Location())

	p.SetLocation(states, "Telangana", "Nowhere", "")
	assert.Nil(t, p.Coordinates)
}

func TestClone(t *testing.T) {
	p := New()
	p.Skills = []string{"Go"}
	p.Coordinates = &geo.Point{Lat: 1, Lng: 2}
	p.Cognitive = &CognitiveProfile{LearningStyle: LearningVisual}

	c := p.Clone()
	c.Skills[0] = "Rust"
	c.Coordinates.Lat = 5
	c.Cognitive.FocusArea = "maths"

	assert.Equal(t, "Go", p.Skills[0])
	assert.Equal(t, float64(1), p.Coordinates.Lat)
	assert.Empty(t, p.Cognitive.FocusArea)

	var nilProfile *Profile
	assert.Nil(t, nilProfile.Clone())
}

func TestCheckExpectedSalary(t *testing.T) {
	assert.Error(t, CheckExpectedSalary(999))
	assert.NoError(t, CheckExpectedSalary(MinExpectedSalary))
	assert.NoError(t, CheckExpectedSalary(MaxExpectedSalary))
	assert.Error(t, CheckExpectedSalary(MaxExpectedSalary+1))
}
