package profile

import (
	"fmt"
	"strings"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/geo"
)

type RoleType string

const (
	RoleInternship RoleType = "Internship"
	RoleFresher    RoleType = "Fresher (Full-time)"
	RoleContract   RoleType = "Contract"
)

var RoleTypes = []RoleType{RoleInternship, RoleFresher, RoleContract}

type WorkMode string

const (
	ModeLocal  WorkMode = "Local/On-site"
	ModeRemote WorkMode = "Remote"
	ModeHybrid WorkMode = "Hybrid"
)

var WorkModes = []WorkMode{ModeLocal, ModeRemote, ModeHybrid}

type LearningStyle string

const (
	LearningVisual      LearningStyle = "Visual"
	LearningPractical   LearningStyle = "Practical/Hands-on"
	LearningTheoretical LearningStyle = "Theoretical/Reading"
)

var LearningStyles = []LearningStyle{LearningVisual, LearningPractical, LearningTheoretical}

const (
	DefaultRadiusKm       = 50
	DefaultExpectedSalary = 400000

	MinExpectedSalary = 1000
	MaxExpectedSalary = 5000000

	MinRadiusKm = 10
	MaxRadiusKm = 200
)

type CognitiveProfile struct {
	LearningStyle LearningStyle `json:"learning_style" validate:"omitempty,learningstyle"`
	FocusArea     string        `json:"focus_area,omitempty"`
	Strength      string        `json:"strength,omitempty"`
}

// Profile describes the student the matching engine scores jobs for.
// Only Skills, Background, Coordinates, RadiusKm and ExpectedSalary take part
// in scoring; the rest feeds prompts and display.
type Profile struct {
	Name      string `json:"name,omitempty"`
	Onboarded bool   `json:"onboarded"`

	Skills         []string           `json:"skills"`
	Background     catalog.Background `json:"background" validate:"required,background"`
	Coordinates    *geo.Point         `json:"coordinates,omitempty"`
	RadiusKm       float64            `json:"radius_km" validate:"gt=0"`
	ExpectedSalary float64            `json:"expected_salary" validate:"gte=0"`

	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	District string `json:"district,omitempty"`

	RoleType  RoleType          `json:"role_type,omitempty" validate:"omitempty,roletype"`
	Mode      WorkMode          `json:"mode,omitempty" validate:"omitempty,workmode"`
	Cognitive *CognitiveProfile `json:"cognitive_profile,omitempty"`
}

// New returns a profile with the onboarding defaults.
func New() *Profile {
	return &Profile{
		Background:     catalog.Engineering,
		RadiusKm:       DefaultRadiusKm,
		ExpectedSalary: DefaultExpectedSalary,
		RoleType:       RoleFresher,
		Mode:           ModeLocal,
	}
}

// Incomplete reports whether the profile cannot be matched yet.
func (p *Profile) Incomplete() bool {
	return p == nil || len(p.Skills) == 0
}

// Location renders "City, State" with whatever parts are known.
func (p *Profile) Location() string {
	parts := make([]string, 0, 2)
	if c := strings.TrimSpace(p.City); c != "" {
		parts = append(parts, c)
	}
	if s := strings.TrimSpace(p.State); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

// SetLocation assigns state/city/district and takes coordinates from the
// static location table. Coordinates are cleared when the city is unknown.
func (p *Profile) SetLocation(states []catalog.State, state, city, district string) {
	p.State = strings.TrimSpace(state)
	p.City = strings.TrimSpace(city)
	p.District = strings.TrimSpace(district)

	p.Coordinates = nil
	if c := catalog.FindCity(states, p.State, p.City); c != nil {
		point := c.Point()
		p.Coordinates = &point
	}
}

// Clone returns a deep copy.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Skills = append([]string(nil), p.Skills...)
	if p.Coordinates != nil {
		point := *p.Coordinates
		out.Coordinates = &point
	}
	if p.Cognitive != nil {
		cognitive := *p.Cognitive
		out.Cognitive = &cognitive
	}
	return &out
}

// ParseSkills splits a comma separated list, trimming entries and dropping
// empty and case-insensitive duplicates. The first spelling wins.
func ParseSkills(s string) []string {
	return MergeSkills(nil, strings.Split(s, ",")...)
}

// MergeSkills appends skills to base with the same rules as ParseSkills.
func MergeSkills(base []string, skills ...string) []string {
	seen := make(map[string]struct{}, len(base)+len(skills))
	out := make([]string, 0, len(base)+len(skills))
	for _, skill := range append(append([]string(nil), base...), skills...) {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}

// CheckExpectedSalary enforces the onboarding salary bounds.
func CheckExpectedSalary(amount float64) error {
	if amount < MinExpectedSalary {
		return fmt.Errorf("minimum salary must be at least ₹%d", MinExpectedSalary)
	}
	if amount > MaxExpectedSalary {
		return fmt.Errorf("maximum salary allowed is ₹%d", MaxExpectedSalary)
	}
	return nil
}
