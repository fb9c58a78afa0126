package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/tasks"
)

func TestPrintMatch(t *testing.T) {
	m := &matching.MatchResult{
		Job: &catalog.Job{
			Title:    "Junior React Developer",
			Company:  "TechMahindra Innovation",
			Location: "HITEC City, Hyderabad",
			Salary:   450000,
			ApplyURL: "https://example.com/apply",
		},
		DistanceKm:     3.2,
		Score:          80,
		Probability:    matching.High,
		MissingSkills:  []string{"HTML5", "CSS3"},
		TotalEvaluated: 9,
		Breakdown:      matching.Breakdown{SkillScore: 50, DegreeScore: 100, LocationScore: 93.6, SalaryScore: 100},
	}

	var buf bytes.Buffer
	printMatch(&buf, m, false)

	expected := "Junior React Developer\n" +
		"TechMahindra Innovation · HITEC City, Hyderabad\n" +
		"Salary: ₹4.5L  Distance: 3.2 km away\n" +
		"Match: 80/100 (High probability)\n" +
		"Skill gap: HTML5, CSS3\n" +
		"Apply: https://example.com/apply\n" +
		"Evaluated 9 opportunities\n"
	assert.Equal(t, expected, buf.String())

	buf.Reset()
	printMatch(&buf, m, true)
	assert.Contains(t, buf.String(), "skills 50 · degree 100 · location 94 · salary 100")
}

func TestPrintMatchRemote(t *testing.T) {
	m := &matching.MatchResult{
		Job:         &catalog.Job{Title: "Writer", Company: "Pratilipi", IsRemote: true, Salary: 320000},
		Score:       72,
		Probability: matching.Medium,
	}

	var buf bytes.Buffer
	printMatch(&buf, m, false)
	assert.Contains(t, buf.String(), "Pratilipi · Remote\n")
	assert.Contains(t, buf.String(), "Distance: remote\n")
	assert.NotContains(t, buf.String(), "Skill gap")
}

func TestPrintNoMatch(t *testing.T) {
	var buf bytes.Buffer
	printNoMatch(&buf, 4)
	assert.Equal(t, "Zero. No opportunity scored 60 or more.\nEvaluated 4 opportunities\n", buf.String())
}

func TestPrintTasks(t *testing.T) {
	list, err := tasks.Seed().SetStatus("1", tasks.Done)
	assert.NoError(t, err)
	list, err = list.MoveToTomorrow("3")
	assert.NoError(t, err)
	list = append(list, tasks.Task{ID: "0123456789ab", Title: "Mock interview", Duration: "45m", Status: tasks.Partial, Day: tasks.Today})

	var buf bytes.Buffer
	printTasks(&buf, list)

	expected := "Today (3)\n" +
		"  [x] 1        Deep Work: Core Concepts\n" +
		"  [ ] 2        Skill Lab: Practical Exercise\n" +
		"  [~] 01234567 Mock interview (45m)\n" +
		"Tomorrow (1)\n" +
		"  [ ] 3        Review & Retrospection\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintPendingOnlyWhenOnline(t *testing.T) {
	m := &matching.MatchResult{Explanation: matching.PendingExplanation}

	var buf bytes.Buffer
	printPending(&buf, m, false)
	assert.Empty(t, buf.String())

	printPending(&buf, m, true)
	assert.Equal(t, "\n"+matching.PendingExplanation+"\n", buf.String())
}
