package usecase

import (
	"context"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// ReorderDayInput contains the parameters for reordering a day.
type ReorderDayInput struct {
	Day      string   // Day argument (required)
	TaskRefs []string // Tasks in their new order
}

// ReorderDayOutput contains the day after reordering.
type ReorderDayOutput struct {
	Tasks []domain.Task // Visible tasks of the day in display order
	Day   domain.Day
}

// ReorderDay assigns a new order to the tasks of one day.
type ReorderDay struct {
	store *planner.Store
	clock domain.Clock
}

// NewReorderDay creates a new ReorderDay use case.
func NewReorderDay(store *planner.Store, clock domain.Clock) *ReorderDay {
	return &ReorderDay{store: store, clock: clock}
}

// Execute reorders the day. Every reference must resolve; tasks on other
// days are ignored by the store.
func (uc *ReorderDay) Execute(_ context.Context, in ReorderDayInput) (*ReorderDayOutput, error) {
	day, err := shared.ResolveDay(in.Day, domain.DayOf(uc.clock.Now()), uc.store.WeekLabels())
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(in.TaskRefs))
	for i, ref := range in.TaskRefs {
		task, err := shared.ResolveTask(uc.store, ref)
		if err != nil {
			return nil, err
		}
		ids[i] = task.ID
	}

	uc.store.Reorder(day, ids)
	return &ReorderDayOutput{Day: day, Tasks: uc.store.TasksForDay(day)}, nil
}
