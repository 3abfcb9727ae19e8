package usecase

import (
	"context"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
)

// RunMaintenanceInput contains the input for the RunMaintenance use case.
type RunMaintenanceInput struct{}

// RunMaintenanceOutput reports what the pass changed.
type RunMaintenanceOutput struct {
	Result         planner.MaintenanceResult
	StreakCredited bool // A completion made today was credited by recalculation
}

// RunMaintenance performs the start-up pass: rollover, streak expiry, then
// a streak recalculation from today's completions.
type RunMaintenance struct {
	store *planner.Store
	clock domain.Clock
}

// NewRunMaintenance creates a new RunMaintenance use case.
func NewRunMaintenance(store *planner.Store, clock domain.Clock) *RunMaintenance {
	return &RunMaintenance{store: store, clock: clock}
}

// Execute runs the pass for today. Running it again the same day changes nothing.
func (uc *RunMaintenance) Execute(_ context.Context, _ RunMaintenanceInput) (*RunMaintenanceOutput, error) {
	today := domain.DayOf(uc.clock.Now())
	res := planner.Maintain(uc.store, today)
	credited := uc.store.RecalculateStreak(today)
	return &RunMaintenanceOutput{Result: res, StreakCredited: credited}, nil
}
