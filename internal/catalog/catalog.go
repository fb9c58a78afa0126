package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

//go:embed data/jobs.json
var defaultJobs []byte

//go:embed data/skills.json
var defaultSkills []byte

// Default returns the built-in sample catalog.
func Default() (*Jobs, error) {
	return Parse(defaultJobs)
}

// Load reads a catalog from a JSON file. An empty path yields the built-in
// sample catalog.
func Load(path string) (*Jobs, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %q: %w", path, err)
	}

	jobs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %q: %w", path, err)
	}

	return jobs, nil
}

// Parse decodes a JSON array of jobs and validates it.
func Parse(data []byte) (*Jobs, error) {
	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	var jobs []*Job
	cfg := &mapstructure.DecoderConfig{
		Result:  &jobs,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validate(jobs); err != nil {
		return nil, err
	}

	return &Jobs{Items: jobs}, nil
}

func validate(jobs []*Job) error {
	seen := make(map[string]struct{}, len(jobs))
	for idx, job := range jobs {
		if job == nil {
			return fmt.Errorf("job #%d is empty", idx)
		}

		job.ID = strings.TrimSpace(job.ID)
		if job.ID == "" {
			return fmt.Errorf("job #%d has no id", idx)
		}
		if _, ok := seen[job.ID]; ok {
			return fmt.Errorf("duplicate job id %q", job.ID)
		}
		seen[job.ID] = struct{}{}

		if !job.Category.Valid() {
			return fmt.Errorf("job %q: unknown category %q", job.ID, job.Category)
		}
		if job.Salary < 0 {
			return fmt.Errorf("job %q: negative salary", job.ID)
		}
	}

	if len(jobs) == 0 {
		return errors.New("catalog is empty")
	}

	return nil
}

// SuggestedSkills returns the skill chips offered during onboarding.
func SuggestedSkills() []string {
	var skills []string
	if err := json.Unmarshal(defaultSkills, &skills); err != nil {
		return nil
	}
	return skills
}
