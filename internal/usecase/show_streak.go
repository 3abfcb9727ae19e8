package usecase

import (
	"context"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
)

// ShowStreakInput contains the input for the ShowStreak use case.
type ShowStreakInput struct{}

// ShowStreakOutput describes the current streak.
type ShowStreakOutput struct {
	Streak        domain.StreakState
	Today         domain.Day
	CreditedToday bool // Today already counts
	AtRisk        bool // Yesterday counted but today not yet
}

// ShowStreak reports the completion streak.
type ShowStreak struct {
	store *planner.Store
	clock domain.Clock
}

// NewShowStreak creates a new ShowStreak use case.
func NewShowStreak(store *planner.Store, clock domain.Clock) *ShowStreak {
	return &ShowStreak{store: store, clock: clock}
}

// Execute returns the streak as seen today.
func (uc *ShowStreak) Execute(_ context.Context, _ ShowStreakInput) (*ShowStreakOutput, error) {
	today := domain.DayOf(uc.clock.Now())
	s := uc.store.Streak()
	return &ShowStreakOutput{
		Streak:        s,
		Today:         today,
		CreditedToday: s.LastStreakDate == today,
		AtRisk:        s.Streak > 0 && s.LastStreakDate == today.AddDays(-1),
	}, nil
}
