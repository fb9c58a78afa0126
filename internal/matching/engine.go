package matching

import (
	"math"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/geo"
	"github.com/spigell/studentos/internal/profile"
)

const (
	skillWeight    = 0.40
	degreeWeight   = 0.25
	locationWeight = 0.20
	salaryWeight   = 0.15

	// A job paying 1/3 less than expected scores zero on salary.
	salaryPenalty = 300
)

// PendingExplanation is shown until explanation enrichment completes.
const PendingExplanation = "Synthesizing recommendation..."

type Breakdown struct {
	SkillScore    float64 `json:"skill_score"`
	LocationScore float64 `json:"location_score"`
	SalaryScore   float64 `json:"salary_score"`
	DegreeScore   float64 `json:"degree_score"`
}

// MatchResult is the outcome of scoring one job for one profile.
type MatchResult struct {
	Job            *catalog.Job `json:"job"`
	DistanceKm     float64      `json:"distance_km"`
	Score          int          `json:"score"`
	Breakdown      Breakdown    `json:"breakdown"`
	Probability    Probability  `json:"probability"`
	MatchedSkills  int          `json:"matched_skills"`
	MissingSkills  []string     `json:"missing_skills"`
	Explanation    string       `json:"explanation"`
	TotalEvaluated int          `json:"total_evaluated,omitempty"`
}

// Evaluate scores job for p. It returns nil when the job lies outside the
// profile's search radius; that is an exclusion, not a zero score.
func Evaluate(job *catalog.Job, p *profile.Profile) *MatchResult {
	if job == nil || p == nil {
		return nil
	}

	var distance, locationScore float64
	switch {
	case job.IsRemote:
		locationScore = 100
	case p.Coordinates != nil:
		distance = roundTenth(geo.DistanceKm(*p.Coordinates, job.Point()))
		if distance > p.RadiusKm {
			return nil
		}
		locationScore = proximityScore(distance, p.RadiusKm)
	}

	degreeScore := degreeScore(p.Background, job.Category)

	matched, missing := SkillGap(job.RequiredSkills, p.Skills)
	var skillScore float64
	if len(job.RequiredSkills) > 0 {
		skillScore = math.Min(float64(matched)/float64(len(job.RequiredSkills))*100, 100)
	}

	salaryScore := salaryScore(job.Salary, p.ExpectedSalary)

	total := skillScore*skillWeight +
		degreeScore*degreeWeight +
		locationScore*locationWeight +
		salaryScore*salaryWeight
	score := int(math.Round(math.Min(total, 100)))

	return &MatchResult{
		Job:        job,
		DistanceKm: distance,
		Score:      score,
		Breakdown: Breakdown{
			SkillScore:    skillScore,
			LocationScore: locationScore,
			SalaryScore:   salaryScore,
			DegreeScore:   degreeScore,
		},
		Probability:   Classify(score),
		MatchedSkills: matched,
		MissingSkills: missing,
		Explanation:   PendingExplanation,
	}
}

// EvaluateAll scores jobs in order and drops the radius-excluded ones.
func EvaluateAll(jobs []*catalog.Job, p *profile.Profile) []*MatchResult {
	results := make([]*MatchResult, 0, len(jobs))
	for _, job := range jobs {
		if r := Evaluate(job, p); r != nil {
			results = append(results, r)
		}
	}
	return results
}

// proximityScore decays linearly from 100 at the student's location to 0 at
// the radius boundary.
func proximityScore(distance, radius float64) float64 {
	if distance <= 0 {
		return 100
	}
	if radius <= 0 {
		return 0
	}
	return math.Max(0, 100-(distance/radius)*100)
}

func degreeScore(background, category catalog.Background) float64 {
	switch {
	case background == category:
		return 100
	case background == catalog.Other || category == catalog.Other:
		return 50
	default:
		return 0
	}
}

func salaryScore(offered, expected float64) float64 {
	if offered >= expected {
		return 100
	}
	diff := (expected - offered) / expected
	return math.Max(0, 100-diff*salaryPenalty)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
