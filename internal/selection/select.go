package selection

import (
	"sort"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/profile"
)

// Selection is the outcome of one selection cycle. Selected is nil when no
// job scored at least matching.MediumThreshold.
type Selection struct {
	Selected       *matching.MatchResult
	TotalEvaluated int
	NewLastShownID string
}

// SelectBest picks the single job to surface. Strong matches win outright,
// skipping the job shown last time when an alternative exists. Medium
// matches rotate by hour of day so repeated checks surface variety.
func SelectBest(jobs []*catalog.Job, p *profile.Profile, lastShownID string, currentHour int) Selection {
	results := matching.EvaluateAll(jobs, p)
	sel := Selection{TotalEvaluated: len(results)}

	var strong, medium []*matching.MatchResult
	for _, r := range results {
		switch {
		case r.Score >= matching.StrongThreshold:
			strong = append(strong, r)
		case r.Score >= matching.MediumThreshold:
			medium = append(medium, r)
		}
	}
	byScore(strong)
	byScore(medium)

	switch {
	case len(strong) > 0:
		sel.Selected = strong[0]
		if strong[0].Job.ID == lastShownID && len(strong) > 1 {
			sel.Selected = strong[1]
		}
	case len(medium) > 0:
		n := len(medium)
		i := ((currentHour % n) + n) % n
		sel.Selected = medium[i]
		if medium[i].Job.ID == lastShownID && n > 1 {
			sel.Selected = medium[(i+1)%n]
		}
	}

	if sel.Selected != nil {
		sel.NewLastShownID = sel.Selected.Job.ID
	}
	return sel
}

func byScore(results []*matching.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
