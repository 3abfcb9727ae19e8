package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/weekplan/internal/domain"
)

// MaintenanceResult reports what a maintenance pass changed.
type MaintenanceResult struct {
	Rolled      []string   // IDs of tasks rolled onto Day
	Day         domain.Day // Day the pass ran for
	StreakReset bool       // Streak expired during the pass
}

// Maintain runs the daily pass for today: rollover first, then streak expiry.
// It is safe to call any number of times per day.
func Maintain(s *Store, today domain.Day) MaintenanceResult {
	return MaintenanceResult{
		Day:         today,
		Rolled:      s.RunRollover(today),
		StreakReset: s.CheckStreakExpiry(today),
	}
}

// Watcher runs Maintain whenever the calendar day changes.
// Correctness does not depend on a tick landing exactly on midnight: the
// first tick after the boundary picks the new day up.
// Fields are ordered to minimize memory padding.
type Watcher struct {
	store    *Store
	clock    domain.Clock
	logger   domain.Logger
	onPass   func(MaintenanceResult)
	lastDay  domain.Day
	interval time.Duration
}

// NewWatcher creates a Watcher ticking every interval.
// A non-positive interval uses domain.DefaultWatchInterval.
func NewWatcher(store *Store, clock domain.Clock, interval time.Duration, logger domain.Logger) *Watcher {
	if interval <= 0 {
		interval = domain.DefaultWatchInterval
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Watcher{
		store:    store,
		clock:    clock,
		interval: interval,
		logger:   logger,
	}
}

// OnPass registers a callback invoked after each maintenance pass.
func (w *Watcher) OnPass(fn func(MaintenanceResult)) {
	w.onPass = fn
}

// Tick runs a maintenance pass if the day changed since the previous pass.
// The first Tick always runs. It reports whether a pass ran.
func (w *Watcher) Tick() (MaintenanceResult, bool) {
	today := domain.DayOf(w.clock.Now())
	if today == w.lastDay {
		return MaintenanceResult{}, false
	}
	w.lastDay = today

	res := Maintain(w.store, today)
	w.logger.Debug("", "watch", fmt.Sprintf("maintenance for %s: rolled %d, streak reset %t", today, len(res.Rolled), res.StreakReset))
	if w.onPass != nil {
		w.onPass(res)
	}
	return res, true
}

// Run ticks until ctx is cancelled. Cancellation is a normal exit.
func (w *Watcher) Run(ctx context.Context) error {
	w.Tick()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			w.Tick()
		}
	}
}
