package usecase

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
)

// WatchInput contains the parameters for the Watch use case.
type WatchInput struct {
	OnPass   func(planner.MaintenanceResult) // Called after each maintenance pass (optional)
	OnEvent  func(planner.Event)             // Called for every store event (optional)
	Interval time.Duration                   // Tick interval (0 = default)
}

// WatchOutput contains the result of watching.
type WatchOutput struct{}

// Watch keeps the planner current until cancelled: it re-runs maintenance
// when the day changes and reloads the store when another process saves.
type Watch struct {
	store    *planner.Store
	clock    domain.Clock
	notifier domain.ChangeNotifier
	logger   domain.Logger
}

// NewWatch creates a new Watch use case. notifier may be nil.
func NewWatch(store *planner.Store, clock domain.Clock, notifier domain.ChangeNotifier, logger domain.Logger) *Watch {
	return &Watch{
		store:    store,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute blocks until ctx is cancelled. Cancellation is a normal exit.
func (uc *Watch) Execute(ctx context.Context, in WatchInput) (*WatchOutput, error) {
	if in.OnEvent != nil {
		unsubscribe := uc.store.Subscribe(in.OnEvent)
		defer unsubscribe()
	}

	watcher := planner.NewWatcher(uc.store, uc.clock, in.Interval, uc.logger)
	if in.OnPass != nil {
		watcher.OnPass(in.OnPass)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	if uc.notifier != nil {
		g.Go(func() error {
			if err := uc.notifier.Watch(gctx, uc.store.Reload); err != nil {
				return fmt.Errorf("watch snapshot: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &WatchOutput{}, nil
}
