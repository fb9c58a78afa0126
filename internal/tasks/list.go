package tasks

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// List is an ordered task plan. Mutating methods return a new list and
// leave the receiver untouched.
type List []Task

func (l List) Clone() List {
	if l == nil {
		return nil
	}
	return append(List(nil), l...)
}

// Find resolves id exactly, or as a unique prefix of a generated id.
func (l List) Find(id string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, ErrNotFound
	}

	for i, t := range l {
		if t.ID == id {
			return i, nil
		}
	}

	found := -1
	for i, t := range l {
		if strings.HasPrefix(t.ID, id) {
			if found != -1 {
				return -1, fmt.Errorf("task id %q is ambiguous", id)
			}
			found = i
		}
	}
	if found == -1 {
		return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}

// Add appends a pending task for today.
func (l List) Add(title, duration string) (List, Task, error) {
	t := Task{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Duration: strings.TrimSpace(duration),
		Status:   Pending,
		Day:      Today,
	}
	if err := t.Validate(); err != nil {
		return l, Task{}, err
	}
	return append(l.Clone(), t), t, nil
}

// Replace changes title and duration, keeping status and day.
func (l List) Replace(id, title, duration string) (List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return l, fmt.Errorf("task title is required")
	}
	return l.update(id, func(t *Task) {
		t.Title = title
		t.Duration = strings.TrimSpace(duration)
	})
}

func (l List) Remove(id string) (List, error) {
	i, err := l.Find(id)
	if err != nil {
		return l, err
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), nil
}

func (l List) MoveToTomorrow(id string) (List, error) {
	return l.update(id, func(t *Task) { t.Day = Tomorrow })
}

func (l List) SetStatus(id string, status Status) (List, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return l, err
	}
	return l.update(id, func(t *Task) { t.Status = status })
}

// Today returns the tasks scheduled for today in plan order.
func (l List) Today() List {
	return l.filter(func(t Task) bool { return t.Day == Today })
}

// PendingToday returns today's tasks that still need doing.
func (l List) PendingToday() List {
	return l.filter(func(t Task) bool { return t.Day == Today && t.Status == Pending })
}

func (l List) Titles() []string {
	out := make([]string, 0, len(l))
	for _, t := range l {
		out = append(out, t.Title)
	}
	return out
}

// Valid reports whether every task passes validation.
func (l List) Valid() error {
	for i, t := range l {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}

func (l List) update(id string, fn func(*Task)) (List, error) {
	i, err := l.Find(id)
	if err != nil {
		return l, err
	}
	out := l.Clone()
	fn(&out[i])
	return out, nil
}

func (l List) filter(keep func(Task) bool) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
