package filtering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/catalog"
)

// DismissedJob is a job the student asked not to see again.
type DismissedJob struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Company     string    `json:"company,omitempty"`
	DismissedAt time.Time `json:"dismissed_at"`
}

type Dismissed struct {
	Items []DismissedJob `json:"items"`
}

// LoadDismissed reads a dismissed list. A missing or empty file is an empty
// list.
func LoadDismissed(path string) (*Dismissed, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Dismissed{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return &Dismissed{}, nil
	}

	var d Dismissed
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &d, nil
}

func (d *Dismissed) IDs() []string {
	ids := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Add records job unless it is already dismissed. It reports whether the
// list changed.
func (d *Dismissed) Add(job *catalog.Job, at time.Time) bool {
	for _, item := range d.Items {
		if item.ID == job.ID {
			return false
		}
	}
	d.Items = append(d.Items, DismissedJob{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		DismissedAt: at.UTC(),
	})
	return true
}

func (d *Dismissed) ToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Dismiss appends job to the dismissed list stored at path.
func Dismiss(path string, job *catalog.Job, at time.Time) error {
	d, err := LoadDismissed(path)
	if err != nil {
		return err
	}
	if !d.Add(job, at) {
		return nil
	}
	return d.ToFile(path)
}

type dismissedFilter struct {
	toggle
	path string
}

// NewDismissed creates a filter that removes jobs listed in the dismissed file.
func NewDismissed() Filter {
	return &dismissedFilter{}
}

func (f *dismissedFilter) Name() string { return "dismissed" }

func (f *dismissedFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.DismissedFile)
	}
	return nil
}

func (f *dismissedFilter) Apply(_ context.Context, deps Deps, jobs *catalog.Jobs) (*catalog.Jobs, Step, error) {
	initial := jobs.Len()
	if f.path == "" {
		return jobs, Step{Initial: initial, Left: initial}, nil
	}

	dismissed, err := LoadDismissed(f.path)
	if err != nil {
		return jobs, Step{}, fmt.Errorf("getting dismissed jobs from file: %w", err)
	}

	removed := jobs.Exclude(catalog.JobIDField, dismissed.IDs())
	if len(removed) > 0 {
		deps.log().Info("excluding dismissed jobs",
			zap.String("path", f.path),
			zap.Strings("excluded_jobs", removed),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(removed), Left: jobs.Len()}, nil
}

func (f *dismissedFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
