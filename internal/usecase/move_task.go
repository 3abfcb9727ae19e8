package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// MoveTaskInput contains the parameters for moving a task to another day.
type MoveTaskInput struct {
	Order   *int   // Position on the target day (nil = end of list, clamped)
	TaskRef string // Task ID or unique prefix (required)
	Day     string // Target day argument (required)
}

// MoveTaskOutput contains the result of moving a task.
type MoveTaskOutput struct {
	Task domain.Task // Task after the move
}

// MoveTask moves a task to a day, keeping its duration.
type MoveTask struct {
	store *planner.Store
	clock domain.Clock
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(store *planner.Store, clock domain.Clock) *MoveTask {
	return &MoveTask{store: store, clock: clock}
}

// Execute moves the referenced task and renumbers the target day so the
// task sits at the requested position.
func (uc *MoveTask) Execute(_ context.Context, in MoveTaskInput) (*MoveTaskOutput, error) {
	task, err := shared.ResolveTask(uc.store, in.TaskRef)
	if err != nil {
		return nil, err
	}
	day, err := shared.ResolveDay(in.Day, domain.DayOf(uc.clock.Now()), uc.store.WeekLabels())
	if err != nil {
		return nil, err
	}

	ids := slices.DeleteFunc(uc.store.IDsForDay(day), func(id string) bool { return id == task.ID })
	order := len(ids)
	if in.Order != nil {
		order = min(max(0, *in.Order), len(ids))
	}

	if !uc.store.Move(task.ID, day, order) {
		return nil, domain.ErrTaskNotFound
	}
	uc.store.Reorder(day, slices.Insert(ids, order, task.ID))

	moved, _ := uc.store.Get(task.ID)
	return &MoveTaskOutput{Task: moved}, nil
}
