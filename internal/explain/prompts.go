package explain

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/profile"
	"github.com/spigell/studentos/internal/tasks"
)

var (
	//go:embed prompts/system.md
	systemPrompt string
	//go:embed prompts/explanation.md
	explanationTemplate string
	//go:embed prompts/hint.md
	hintTemplate string
	//go:embed prompts/nudge.md
	nudgeTemplate string
)

const unknown = "not specified"

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknown
	}
	return s
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func buildExplanationPrompt(m *matching.MatchResult, p *profile.Profile) string {
	job := m.Job

	distance := "remote"
	if !job.IsRemote {
		distance = fmt.Sprintf("%.1f km away", m.DistanceKm)
	}

	return strings.NewReplacer(
		"{{SKILLS}}", joinOrNone(p.Skills),
		"{{ROLE_TYPE}}", orUnknown(string(p.RoleType)),
		"{{LOCATION}}", orUnknown(p.Location()),
		"{{RADIUS_KM}}", fmt.Sprintf("%.0f", p.RadiusKm),
		"{{EXPECTED_SALARY}}", catalog.FormatLakhs(p.ExpectedSalary),
		"{{BACKGROUND}}", orUnknown(string(p.Background)),
		"{{JOB_TITLE}}", job.Title,
		"{{COMPANY}}", job.Company,
		"{{REQUIRED_SKILLS}}", joinOrNone(job.RequiredSkills),
		"{{JOB_LOCATION}}", orUnknown(job.Location),
		"{{DISTANCE}}", distance,
		"{{SALARY}}", catalog.FormatLakhs(job.Salary),
		"{{DESCRIPTION}}", orUnknown(job.Description),
		"{{SCORE}}", fmt.Sprintf("%d", m.Score),
		"{{PROBABILITY}}", string(m.Probability),
		"{{MISSING_SKILLS}}", joinOrNone(m.MissingSkills),
	).Replace(explanationTemplate)
}

func buildHintPrompt(titles []string) string {
	return strings.ReplaceAll(hintTemplate, "{{JOB_TITLES}}", strings.Join(titles, ", "))
}

func buildNudgePrompt(p *profile.Profile, pending tasks.List) string {
	var name, background, style string
	if p != nil {
		name = p.Name
		background = string(p.Background)
		if p.Cognitive != nil {
			style = string(p.Cognitive.LearningStyle)
		}
	}

	return strings.NewReplacer(
		"{{NAME}}", orUnknown(name),
		"{{BACKGROUND}}", orUnknown(background),
		"{{LEARNING_STYLE}}", orUnknown(style),
		"{{TASKS}}", joinOrNone(pending.Titles()),
	).Replace(nudgeTemplate)
}
