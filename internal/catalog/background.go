package catalog

import (
	"fmt"
	"strings"
)

// Background is the academic stream of a student and the category of a job.
type Background string

const (
	Engineering Background = "Engineering"
	Science     Background = "Science"
	Commerce    Background = "Commerce"
	Arts        Background = "Arts"
	Pharma      Background = "Pharma"
	Diploma     Background = "Diploma"
	Other       Background = "Other"
)

// Backgrounds lists every known background in display order.
var Backgrounds = []Background{Engineering, Science, Commerce, Arts, Pharma, Diploma, Other}

// ParseBackground resolves a background name case-insensitively.
func ParseBackground(s string) (Background, error) {
	s = strings.TrimSpace(s)
	for _, b := range Backgrounds {
		if strings.EqualFold(string(b), s) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown background %q", s)
}

func (b Background) Valid() bool {
	for _, known := range Backgrounds {
		if b == known {
			return true
		}
	}
	return false
}

func (b Background) String() string {
	return string(b)
}
