package explain

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/profile"
	"github.com/spigell/studentos/internal/tasks"
	"github.com/spigell/studentos/internal/utils"
)

const (
	NoHintText       = "Keep upskilling to unlock opportunities in the Indian market."
	FallbackHintText = "Most matching roles lean toward positions matching your core skill set."
	FallbackNudge    = "Stay focused on your primary objective today."

	hintMinScore  = 70
	hintMaxJobs   = 3
	nudgeMaxWords = 15
)

// HintTitles picks the titles that feed the career hint: up to three results
// scoring above 70, in the given order.
func HintTitles(results []*matching.MatchResult) []string {
	titles := make([]string, 0, hintMaxJobs)
	for _, r := range results {
		if r == nil || r.Job == nil || r.Score <= hintMinScore {
			continue
		}
		titles = append(titles, r.Job.Title)
		if len(titles) == hintMaxJobs {
			break
		}
	}
	return titles
}

// CareerHint summarizes where the strongest matches point.
func (a *Adapter) CareerHint(ctx context.Context, results []*matching.MatchResult) string {
	titles := HintTitles(results)
	if len(titles) == 0 {
		return NoHintText
	}
	if a.gen == nil {
		return FallbackHintText
	}

	text, err := a.generate(ctx, buildHintPrompt(titles))
	if err != nil {
		a.logger.Warn("career hint generation failed", zap.Error(err))
		return FallbackHintText
	}
	return utils.TruncateForLog(text, maxExplanationRunes)
}

// StudyNudge returns a one line focus message for today's pending tasks.
func (a *Adapter) StudyNudge(ctx context.Context, p *profile.Profile, plan tasks.List) string {
	if a.gen == nil {
		return FallbackNudge
	}

	text, err := a.generate(ctx, buildNudgePrompt(p, plan.PendingToday()))
	if err != nil {
		a.logger.Warn("study nudge generation failed", zap.Error(err))
		return FallbackNudge
	}
	return utils.LimitWords(text, nudgeMaxWords)
}
