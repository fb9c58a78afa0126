package explain

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/ai"
	"github.com/spigell/studentos/internal/logger"
	"github.com/spigell/studentos/internal/matching"
	"github.com/spigell/studentos/internal/profile"
	"github.com/spigell/studentos/internal/utils"
)

const (
	DefaultTimeout = 1500 * time.Millisecond

	maxExplanationRunes = 600
)

// Explanation is enrichment text for one match. Generated is false when the
// deterministic fallback was used.
type Explanation struct {
	Text      string
	Generated bool

	ticket uint64
}

func (e Explanation) Ticket() uint64 {
	return e.ticket
}

// Adapter turns match results into human readable text. It works offline
// when no generator is configured.
type Adapter struct {
	gen     ai.Generator
	timeout time.Duration
	logger  *zap.Logger

	latest atomic.Uint64
}

type Option func(*Adapter)

func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// New builds an adapter. gen may be nil.
func New(gen ai.Generator, opts ...Option) *Adapter {
	a := &Adapter{
		gen:     gen,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Online reports whether a generator is configured.
func (a *Adapter) Online() bool {
	return a.gen != nil
}

// Explain produces the explanation for m, waiting at most the configured
// timeout even if the generator ignores cancellation. It never fails: any problem yields the fallback text.
func (a *Adapter) Explain(ctx context.Context, m *matching.MatchResult, p *profile.Profile) Explanation {
	ticket := a.latest.Add(1)
	return a.explain(ctx, ticket, m, p)
}

// Pending is an explanation being produced in the background.
type Pending struct {
	ticket uint64
	done   chan Explanation
	// fallback is returned when the caller stops waiting early.
	fallback Explanation
}

// Start begins explaining m in the background. Starting a new explanation
// makes every earlier one stale.
func (a *Adapter) Start(ctx context.Context, m *matching.MatchResult, p *profile.Profile) *Pending {
	ticket := a.latest.Add(1)
	pending := &Pending{
		ticket:   ticket,
		done:     make(chan Explanation, 1),
		fallback: Explanation{Text: Fallback(m, p), ticket: ticket},
	}
	go func() {
		pending.done <- a.explain(ctx, ticket, m, p)
	}()
	return pending
}

func (p *Pending) Ticket() uint64 {
	return p.ticket
}

// Wait blocks until the explanation is ready or ctx is done.
func (p *Pending) Wait(ctx context.Context) Explanation {
	select {
	case e := <-p.done:
		return e
	case <-ctx.Done():
		return p.fallback
	}
}

// Apply writes e into m unless a newer explanation was requested since e
// was started. It reports whether m was updated.
func (a *Adapter) Apply(m *matching.MatchResult, e Explanation) bool {
	if m == nil || e.ticket != a.latest.Load() {
		a.logger.Debug("discarding stale explanation", zap.Uint64("ticket", e.ticket))
		return false
	}
	m.Explanation = e.Text
	return true
}

func (a *Adapter) explain(ctx context.Context, ticket uint64, m *matching.MatchResult, p *profile.Profile) Explanation {
	fallback := Explanation{Text: Fallback(m, p), ticket: ticket}
	if m == nil || m.Job == nil || p == nil {
		return fallback
	}

	log := logger.WithFields(a.logger, logger.JobFields(m.Job.ID, m.Job.Company)...)
	if a.gen == nil {
		log.Debug("no generator configured, using fallback explanation")
		return fallback
	}

	text, err := a.generate(ctx, buildExplanationPrompt(m, p))
	if err != nil {
		log.Warn("explanation generation failed, using fallback", zap.Error(err))
		return fallback
	}

	return Explanation{
		Text:      utils.TruncateForLog(text, maxExplanationRunes),
		Generated: true,
		ticket:    ticket,
	}
}

func (a *Adapter) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	// Buffered so an abandoned call can still finish and exit.
	done := make(chan result, 1)
	go func() {
		text, err := a.gen.GenerateContent(ctx, systemPrompt, prompt)
		done <- result{text: text, err: err}
	}()

	var raw string
	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		raw = r.text
	case <-ctx.Done():
		return "", fmt.Errorf("generation abandoned: %w", ctx.Err())
	}

	text := utils.StripCodeFence(raw)
	if text == "" {
		return "", fmt.Errorf("empty generation")
	}
	return text, nil
}

// Fallback is the deterministic explanation used whenever generation is
// unavailable.
func Fallback(m *matching.MatchResult, p *profile.Profile) string {
	matched := 0
	if m != nil {
		matched = m.MatchedSkills
	}

	var city string
	if p != nil {
		city = strings.TrimSpace(p.City)
	}
	if city == "" {
		return fmt.Sprintf("Notified because this role matches %d of your skills and is within your location preference.", matched)
	}
	return fmt.Sprintf("Notified because this role matches %d of your skills and is within your location preference in %s.", matched, city)
}
