package tasks

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

type Status string

const (
	Pending Status = "pending"
	Done    Status = "done"
	Partial Status = "partial"
	Missed  Status = "missed"
)

var Statuses = []Status{Pending, Done, Partial, Missed}

type Day string

const (
	Today    Day = "today"
	Tomorrow Day = "tomorrow"
)

var ErrNotFound = errors.New("task not found")

// Task is one item of the daily study plan.
type Task struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Status   Status `json:"status" validate:"oneof=pending done partial missed"`
	Duration string `json:"duration,omitempty"`
	Day      Day    `json:"scheduled_day" validate:"oneof=today tomorrow"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func (t Task) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("task title is required")
	}
	return validate.Struct(t)
}

// ParseStatus accepts a status name in any case.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Seed is the plan a student starts with.
func Seed() List {
	return List{
		{ID: "1", Title: "Deep Work: Core Concepts", Status: Pending, Day: Today},
		{ID: "2", Title: "Skill Lab: Practical Exercise", Status: Pending, Day: Today},
		{ID: "3", Title: "Review & Retrospection", Status: Pending, Day: Today},
	}
}
