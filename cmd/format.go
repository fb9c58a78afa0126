package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/tasks"
)

func jobLocation(job *catalog.Job) string {
	if job.IsRemote {
		return "Remote"
	}
	if job.Location != "" {
		return job.Location
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{job.City, job.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func distanceLabel(m *matching.MatchResult) string {
	if m.Job.IsRemote {
		return "remote"
	}
	return fmt.Sprintf("%.1f km away", m.DistanceKm)
}

func printMatch(w io.Writer, m *matching.MatchResult, breakdown bool) {
	job := m.Job
	fmt.Fprintf(w, "%s\n", job.Title)
	fmt.Fprintf(w, "%s · %s\n", job.Company, jobLocation(job))
	fmt.Fprintf(w, "Salary: %s  Distance: %s\n", catalog.FormatLakhs(job.Salary), distanceLabel(m))
	fmt.Fprintf(w, "Match: %d/100 (%s probability)\n", m.Score, m.Probability)
	if breakdown {
		b := m.Breakdown
		fmt.Fprintf(w, "  skills %.0f · degree %.0f · location %.0f · salary %.0f\n",
			b.SkillScore, b.DegreeScore, b.LocationScore, b.SalaryScore)
	}
	if len(m.MissingSkills) > 0 {
		fmt.Fprintf(w, "Skill gap: %s\n", strings.Join(m.MissingSkills, ", "))
	}
	if job.ApplyURL != "" {
		fmt.Fprintf(w, "Apply: %s\n", job.ApplyURL)
	}
	fmt.Fprintf(w, "Evaluated %d opportunities\n", m.TotalEvaluated)
}

// printPending shows the placeholder while a generated explanation is on its
// way. Offline text is immediate, so nothing is printed.
func printPending(w io.Writer, m *matching.MatchResult, online bool) {
	if !online {
		return
	}
	fmt.Fprintf(w, "\n%s\n", m.Explanation)
}

func printNoMatch(w io.Writer, evaluated int) {
	fmt.Fprintf(w, "Zero. No opportunity scored %d or more.\n", matching.MediumThreshold)
	fmt.Fprintf(w, "Evaluated %d opportunities\n", evaluated)
}

var statusMarks = map[tasks.Status]string{
	tasks.Pending: "[ ]",
	tasks.Done:    "[x]",
	tasks.Partial: "[~]",
	tasks.Missed:  "[!]",
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printTasks(w io.Writer, list tasks.List) {
	groups := []struct {
		label string
		day   tasks.Day
	}{
		{"Today", tasks.Today},
		{"Tomorrow", tasks.Tomorrow},
	}

	for _, g := range groups {
		var items tasks.List
		for _, t := range list {
			if t.Day == g.day {
				items = append(items, t)
			}
		}
		if len(items) == 0 && g.day == tasks.Tomorrow {
			continue
		}

		fmt.Fprintf(w, "%s (%d)\n", g.label, len(items))
		for _, t := range items {
			line := fmt.Sprintf("  %s %-8s %s", statusMarks[t.Status], shortID(t.ID), t.Title)
			if t.Duration != "" {
				line += fmt.Sprintf(" (%s)", t.Duration)
			}
			fmt.Fprintln(w, line)
		}
	}
}
