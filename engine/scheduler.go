package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/glyph-rain/rain"
	"github.com/lixenwraith/glyph-rain/render"
)

// Scheduler drives the two periodic triggers: the simulation tick mutating
// the stack field and the display refresh flushing the compositor. Both run
// on the single goroutine inside Run, so no other serialization is needed.
type Scheduler struct {
	field      *rain.StackField
	compositor *render.Compositor
	clock      Clock
	logger     *log.Logger

	tickInterval    time.Duration
	refreshInterval time.Duration

	ticks  atomic.Uint64
	frames atomic.Uint64
}

// NewScheduler wires a scheduler over the field and compositor.
func NewScheduler(field *rain.StackField, compositor *render.Compositor, clock Clock, tickInterval, refreshInterval time.Duration, logger *log.Logger) *Scheduler {
	return &Scheduler{
		field:           field,
		compositor:      compositor,
		clock:           clock,
		logger:          logger,
		tickInterval:    tickInterval,
		refreshInterval: refreshInterval,
	}
}

// Run loops until ctx is cancelled, then issues one final screen wipe and
// returns. Cancellation is checked between ticks; a tick or refresh is never
// interrupted mid-step. A sink failure aborts the run: a torn frame beats a
// simulation blocked on retries.
func (s *Scheduler) Run(ctx context.Context) error {
	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()
	refresh := time.NewTicker(s.refreshInterval)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopping",
				"ticks", s.ticks.Load(), "frames", s.frames.Load(), "stacks", s.field.Len())
			if err := s.compositor.Wipe(); err != nil {
				return fmt.Errorf("final wipe: %w", err)
			}
			return nil

		case <-tick.C:
			s.field.Tick(s.clock.Now())
			s.ticks.Add(1)

		case <-refresh.C:
			if err := s.compositor.Refresh(s.field.Stacks()); err != nil {
				s.logger.Error("display refresh failed", "err", err)
				return err
			}
			s.frames.Add(1)
		}
	}
}

// Ticks returns the number of completed simulation ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Frames returns the number of completed refresh cycles.
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}
