package selection

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/studentos/internal/catalog"
	"github.com/spigell/studentos/internal/profile"
)

// LastShownStore persists the id of the job surfaced by the previous cycle.
type LastShownStore interface {
	Get(ctx context.Context) string
	Set(ctx context.Context, id string) error
}

// Policy runs SelectBest against persisted selection state.
type Policy struct {
	store  LastShownStore
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*Policy)

// WithClock overrides the clock the rotation hour is taken from.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPolicy(store LastShownStore, logger *zap.Logger, opts ...Option) *Policy {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Policy{store: store, now: time.Now, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Select reads the last shown id once, selects, and records the new id.
// Failing to record it is logged and does not affect the result.
func (p *Policy) Select(ctx context.Context, jobs []*catalog.Job, prof *profile.Profile) Selection {
	return p.SelectAt(ctx, jobs, prof, p.now().Hour())
}

// SelectAt is Select with an explicit rotation hour.
func (p *Policy) SelectAt(ctx context.Context, jobs []*catalog.Job, prof *profile.Profile, hour int) Selection {
	var last string
	if p.store != nil {
		last = p.store.Get(ctx)
	}

	sel := SelectBest(jobs, prof, last, hour)
	p.logger.Debug("selection finished",
		zap.Int("evaluated", sel.TotalEvaluated),
		zap.String("last_shown_id", last),
		zap.String("selected_id", sel.NewLastShownID),
		zap.Int("hour", hour),
	)

	if sel.Selected == nil {
		return sel
	}
	sel.Selected.TotalEvaluated = sel.TotalEvaluated

	if p.store != nil {
		if err := p.store.Set(ctx, sel.NewLastShownID); err != nil {
			p.logger.Warn("failed to record last shown job",
				zap.String("job_id", sel.NewLastShownID),
				zap.Error(err),
			)
		}
	}
	return sel
}
