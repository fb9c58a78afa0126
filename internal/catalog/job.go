package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spigell/studentos/internal/geo"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"
)

// Job is an immutable catalog entry. Computed values such as distance live
// on match results, never here.
type Job struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Company            string     `json:"company"`
	Location           string     `json:"location,omitempty"`
	State              string     `json:"state,omitempty"`
	City               string     `json:"city,omitempty"`
	District           string     `json:"district,omitempty"`
	Lat                float64    `json:"lat"`
	Lng                float64    `json:"lng"`
	IsRemote           bool       `json:"is_remote"`
	Salary             float64    `json:"salary"`
	RequiredSkills     []string   `json:"required_skills"`
	Description        string     `json:"description,omitempty"`
	Category           Background `json:"category"`
	MinExperienceYears int        `json:"min_experience_years,omitempty"`
	PostedDate         string     `json:"posted_date,omitempty"`
	ApplyURL           string     `json:"apply_url,omitempty"`
}

func (j *Job) Point() geo.Point {
	return geo.Point{Lat: j.Lat, Lng: j.Lng}
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobCompanyField:
		return j.Company
	default:
		return ""
	}
}

// Jobs is an ordered job list. Order is meaningful: it breaks score ties
// during selection.
type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Exclude removes jobs whose field matches any of targets and returns the ids
// of the removed jobs. Ids compare exactly, other fields case-insensitively.
// Order of the remaining jobs is preserved.
func (j *Jobs) Exclude(name string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	norm := func(v string) string {
		v = strings.TrimSpace(v)
		if name == JobIDField {
			return v
		}
		return strings.ToLower(v)
	}

	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		set[norm(target)] = struct{}{}
	}

	var excluded []string
	kept := j.Items[:0:0]
	for _, job := range j.Items {
		if _, ok := set[norm(job.GetStringField(name))]; ok {
			excluded = append(excluded, job.ID)
			continue
		}
		kept = append(kept, job)
	}
	j.Items = kept

	return excluded
}

// Clone returns a shallow copy of the list; the jobs themselves are shared.
func (j *Jobs) Clone() *Jobs {
	items := make([]*Job, len(j.Items))
	copy(items, j.Items)
	return &Jobs{Items: items}
}

// ReportByCompany groups a short summary of each job by company.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		report[job.Company] = append(report[job.Company], map[string]string{
			"id":       job.ID,
			"title":    job.Title,
			"location": job.Location,
			"category": job.Category.String(),
			"salary":   FormatLakhs(job.Salary),
			"remote":   fmt.Sprintf("%t", job.IsRemote),
		})
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// FormatLakhs renders an annual rupee amount the way Indian job boards do,
// e.g. 450000 -> "₹4.5L".
func FormatLakhs(amount float64) string {
	return fmt.Sprintf("₹%.1fL", amount/100000)
}
