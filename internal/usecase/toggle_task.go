package usecase

import (
	"context"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// ToggleTaskInput contains the parameters for toggling task completion.
type ToggleTaskInput struct {
	TaskRef string // Task ID or unique prefix (required)
}

// ToggleTaskOutput contains the result of toggling a task.
type ToggleTaskOutput struct {
	Task     domain.Task        // Task after the toggle
	Streak   domain.StreakState // Streak after the toggle
	Credited bool               // The toggle credited today to the streak
}

// ToggleTask flips completion of a task.
type ToggleTask struct {
	store *planner.Store
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(store *planner.Store) *ToggleTask {
	return &ToggleTask{store: store}
}

// Execute toggles the referenced task.
func (uc *ToggleTask) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	task, err := shared.ResolveTask(uc.store, in.TaskRef)
	if err != nil {
		return nil, err
	}

	before := uc.store.Streak()
	updated, ok := uc.store.ToggleCompleted(task.ID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	after := uc.store.Streak()

	return &ToggleTaskOutput{
		Task:     updated,
		Streak:   after,
		Credited: after != before,
	}, nil
}
