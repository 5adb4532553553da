// service/sweeper.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/smartnest/sentinel/logging"
	"github.com/smartnest/sentinel/util"
)

// Sweeper drives the expiry sweep on a fixed-interval ticker. It polls rather
// than scheduling per-grant timers: each tick is a single linear scan over
// the registry, and a missed tick is self-correcting on the next one.
type Sweeper struct {
	access   IAccessService
	clock    util.Clock
	interval time.Duration
}

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 60 * time.Second

// NewSweeper creates a sweeper. A non-positive interval falls back to
// DefaultSweepInterval.
func NewSweeper(access IAccessService, clock util.Clock, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		access:   access,
		clock:    clock,
		interval: interval,
	}
}

// Start runs the sweep loop until the context is cancelled. It sweeps once
// immediately, then on every tick. Stopping the ticker on exit is what keeps
// a torn-down server from leaking a recurring callback.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("Expiry sweeper started", zap.Duration("interval", s.interval))

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	start := time.Now()
	demoted, err := s.access.SweepExpired(ctx, s.clock.Now())
	if err != nil {
		logger.Error("Sweep pass failed", zap.Error(err))
		return
	}
	if len(demoted) > 0 {
		logger.Info("Sweep pass completed",
			zap.Int("demoted", len(demoted)),
			zap.Duration("duration", time.Since(start)))
	}
}
