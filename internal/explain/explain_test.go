package explain

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/profile"
	"github.com/spigell/studentos/internal/tasks"
)

type fakeGenerator struct {
	mu      sync.Mutex
	output  string
	err     error
	delay   time.Duration
	release chan struct{}
	system  []string
	prompts []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, system, message string) (string, error) {
	f.mu.Lock()
	f.system = append(f.system, system)
	f.prompts = append(f.prompts, message)
	release := f.release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.output, f.err
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func sampleMatch() (*matching.MatchResult, *profile.Profile) {
	job := &catalog.Job{
		ID:             "1",
		Title:          "Junior React Developer",
		Company:        "TechMahindra Innovation",
		Location:       "HITEC City, Hyderabad",
		Lat:            17.4435,
		Lng:            78.3772,
		Salary:         450000,
		RequiredSkills: []string{"React", "JavaScript", "HTML5", "CSS3"},
		Category:       catalog.Engineering,
	}
	p := &profile.Profile{
		Name:           "Asha",
		Skills:         []string{"React", "JavaScript"},
		Background:     catalog.Engineering,
		RadiusKm:       50,
		ExpectedSalary: 400000,
		State:          "Telangana",
		City:           "Hyderabad",
	}
	point := job.Point()
	p.Coordinates = &point
	return matching.Evaluate(job, p), p
}

func TestFallback(t *testing.T) {
	t.Parallel()

	m, p := sampleMatch()
	assert.Equal(t,
		"Notified because this role matches 2 of your skills and is within your location preference in Hyderabad.",
		Fallback(m, p))

	p.City = ""
	assert.Equal(t,
		"Notified because this role matches 2 of your skills and is within your location preference.",
		Fallback(m, p))
}

func TestExplainWithoutGeneratorUsesFallback(t *testing.T) {
	t.Parallel()

	m, p := sampleMatch()
	a := New(nil)

	e := a.Explain(context.Background(), m, p)
	assert.False(t, e.Generated)
	assert.Equal(t, Fallback(m, p), e.Text)
	assert.False(t, a.Online())
}

func TestExplainUsesGeneratedText(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{output: "```\nNotified because the commute is short and the pay beats your ask.\n```"}
	m, p := sampleMatch()
	a := New(gen)

	e := a.Explain(context.Background(), m, p)
	require.True(t, e.Generated)
	assert.Equal(t, "Notified because the commute is short and the pay beats your ask.", e.Text)

	prompt := gen.lastPrompt()
	assert.Contains(t, prompt, "Junior React Developer at TechMahindra Innovation")
	assert.Contains(t, prompt, "Missing skills: HTML5, CSS3.")
	assert.Contains(t, prompt, "Calculated match score: 80/100.")
	assert.Contains(t, prompt, "Probability: High.")
	assert.Contains(t, prompt, "Location: Hyderabad, Telangana (radius: 50 km)")
	assert.NotContains(t, prompt, "{{")
	assert.Equal(t, systemPrompt, gen.system[0])
}

func TestExplainFallsBackOnError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	gen := &fakeGenerator{err: errors.New("quota")}
	m, p := sampleMatch()
	a := New(gen, WithLogger(zap.New(core)))

	e := a.Explain(context.Background(), m, p)
	assert.False(t, e.Generated)
	assert.Equal(t, Fallback(m, p), e.Text)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].ContextMap()["job_id"])
}

func TestExplainFallsBackOnEmptyOutput(t *testing.T) {
	t.Parallel()

	m, p := sampleMatch()
	e := New(&fakeGenerator{output: " ``` ``` "}).Explain(context.Background(), m, p)
	assert.False(t, e.Generated)
}

func TestExplainTimeout(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{output: "late", delay: time.Second}
	m, p := sampleMatch()
	a := New(gen, WithTimeout(20*time.Millisecond))

	start := time.Now()
	e := a.Explain(context.Background(), m, p)
	assert.False(t, e.Generated)
	assert.Equal(t, Fallback(m, p), e.Text)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

// blockingGenerator ignores ctx and returns only after delay.
type blockingGenerator struct {
	delay time.Duration
}

func (b blockingGenerator) GenerateContent(context.Context, string, string) (string, error) {
	time.Sleep(b.delay)
	return "too late", nil
}

func TestExplainAbandonsGeneratorIgnoringContext(t *testing.T) {
	t.Parallel()

	m, p := sampleMatch()
	a := New(blockingGenerator{delay: 2 * time.Second}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	e := a.Explain(context.Background(), m, p)
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, e.Generated)
	assert.Equal(t, Fallback(m, p), e.Text)

	start = time.Now()
	e = a.Start(context.Background(), m, p).Wait(context.Background())
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, e.Generated)
	assert.True(t, a.Apply(m, e))
	assert.Equal(t, Fallback(m, p), m.Explanation)
}

func TestCareerHintAbandonsGeneratorIgnoringContext(t *testing.T) {
	t.Parallel()

	m, _ := sampleMatch()
	m.Score = 85
	a := New(blockingGenerator{delay: 2 * time.Second}, WithTimeout(50*time.Millisecond))

	start := time.Now()
	hint := a.CareerHint(context.Background(), []*matching.MatchResult{m})
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, FallbackHintText, hint)
}

func TestExplainDoesNotChangeScore(t *testing.T) {
	t.Parallel()

	m, p := sampleMatch()
	before := *m
	a := New(&fakeGenerator{output: "Notified because it fits."})

	e := a.Explain(context.Background(), m, p)
	require.True(t, a.Apply(m, e))

	assert.Equal(t, "Notified because it fits.", m.Explanation)
	assert.Equal(t, before.Score, m.Score)
	assert.Equal(t, before.Probability, m.Probability)
	assert.Equal(t, before.Breakdown, m.Breakdown)
}

func TestStaleExplanationIsDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	slow := &fakeGenerator{output: "old answer", release: release}
	a := New(slow, WithTimeout(5*time.Second))

	first, p := sampleMatch()
	second, _ := sampleMatch()

	pendingOld := a.Start(context.Background(), first, p)
	pendingNew := a.Start(context.Background(), second, p)
	close(release)

	oldExp := pendingOld.Wait(context.Background())
	newExp := pendingNew.Wait(context.Background())

	assert.Less(t, pendingOld.Ticket(), pendingNew.Ticket())
	assert.False(t, a.Apply(first, oldExp))
	assert.Equal(t, matching.PendingExplanation, first.Explanation)

	assert.True(t, a.Apply(second, newExp))
	assert.Equal(t, "old answer", second.Explanation)
}

func TestPendingWaitHonoursContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)

	m, p := sampleMatch()
	a := New(&fakeGenerator{output: "never", release: release}, WithTimeout(5*time.Second))
	pending := a.Start(context.Background(), m, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := pending.Wait(ctx)
	assert.False(t, e.Generated)
	assert.Equal(t, Fallback(m, p), e.Text)
	assert.True(t, a.Apply(m, e))
}

func TestCareerHint(t *testing.T) {
	t.Parallel()

	mk := func(title string, score int) *matching.MatchResult {
		return &matching.MatchResult{Job: &catalog.Job{Title: title}, Score: score}
	}

	results := []*matching.MatchResult{mk("A", 90), mk("B", 70), mk("C", 71), mk("D", 85), mk("E", 99)}
	assert.Equal(t, []string{"A", "C", "D"}, HintTitles(results))

	assert.Equal(t, NoHintText, New(nil).CareerHint(context.Background(), []*matching.MatchResult{mk("B", 70)}))
	assert.Equal(t, FallbackHintText, New(nil).CareerHint(context.Background(), results))
	assert.Equal(t, FallbackHintText, New(&fakeGenerator{err: errors.New("down")}).CareerHint(context.Background(), results))

	gen := &fakeGenerator{output: "Most matching roles lean toward frontend engineering."}
	assert.Equal(t, gen.output, New(gen).CareerHint(context.Background(), results))
	assert.Contains(t, gen.lastPrompt(), "A, C, D")
}

func TestStudyNudge(t *testing.T) {
	t.Parallel()

	_, p := sampleMatch()
	plan, err := tasks.Seed().SetStatus("1", tasks.Done)
	require.NoError(t, err)

	assert.Equal(t, FallbackNudge, New(nil).StudyNudge(context.Background(), p, plan))
	assert.Equal(t, FallbackNudge, New(&fakeGenerator{err: errors.New("down")}).StudyNudge(context.Background(), p, plan))

	long := strings.Repeat("focus ", 30)
	gen := &fakeGenerator{output: long}
	nudge := New(gen).StudyNudge(context.Background(), p, plan)
	assert.Len(t, strings.Fields(nudge), 15)

	prompt := gen.lastPrompt()
	assert.Contains(t, prompt, "Skill Lab: Practical Exercise, Review & Retrospection")
	assert.NotContains(t, prompt, "Deep Work")
	assert.Contains(t, prompt, "Student: Asha.")
}
