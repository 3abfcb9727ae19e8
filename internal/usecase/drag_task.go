package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// DragTaskInput describes a drop of a task onto a day column or onto another task.
type DragTaskInput struct {
	TaskRef string // Dragged task (required)
	Day     string // Day column dropped on (empty when dropped on a task)
	OverRef string // Task dropped onto (empty when dropped on a column)
}

// DragTaskOutput contains the applied plan.
type DragTaskOutput struct {
	Plan domain.DragPlan // What the drop did
	Task domain.Task     // Dragged task afterwards
}

// DragTask applies a drag gesture the way the week board does.
type DragTask struct {
	store *planner.Store
	clock domain.Clock
}

// NewDragTask creates a new DragTask use case.
func NewDragTask(store *planner.Store, clock domain.Clock) *DragTask {
	return &DragTask{store: store, clock: clock}
}

// Execute resolves source and target, then applies the drop.
// Dropping onto a task targets that task's day.
func (uc *DragTask) Execute(_ context.Context, in DragTaskInput) (*DragTaskOutput, error) {
	if in.Day == "" && in.OverRef == "" {
		return nil, domain.ErrNoDropTarget
	}

	task, err := shared.ResolveTask(uc.store, in.TaskRef)
	if err != nil {
		return nil, err
	}
	sourceDay, ok := uc.store.DayOfTask(task.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not on the board", domain.ErrTaskNotFound, task.ID)
	}

	req := domain.DragRequest{
		TaskID:    task.ID,
		SourceDay: sourceDay,
		SourceIDs: uc.store.IDsForDay(sourceDay),
	}

	if in.OverRef != "" {
		over, err := shared.ResolveTask(uc.store, in.OverRef)
		if err != nil {
			return nil, fmt.Errorf("drop target: %w", err)
		}
		overDay, ok := uc.store.DayOfTask(over.ID)
		if !ok {
			return nil, fmt.Errorf("drop target: %w: %s is not on the board", domain.ErrTaskNotFound, over.ID)
		}
		req.TargetDay = overDay
		req.OverTaskID = over.ID
	} else {
		day, err := shared.ResolveDay(in.Day, domain.DayOf(uc.clock.Now()), uc.store.WeekLabels())
		if err != nil {
			return nil, err
		}
		req.TargetDay = day
	}
	req.TargetIDs = uc.store.IDsForDay(req.TargetDay)

	plan := uc.store.ApplyDrag(req)
	after, _ := uc.store.Get(task.ID)
	return &DragTaskOutput{Plan: plan, Task: after}, nil
}
