package usecase

import (
	"context"

	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"

	"github.com/runoshun/weekplan/internal/domain"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskRef string // Task ID or unique prefix (required)
}

// ShowTaskOutput contains the result of showing a task.
type ShowTaskOutput struct {
	View TaskView // The task with derived values
}

// ShowTask is the use case for displaying task details.
type ShowTask struct {
	store *planner.Store
	clock domain.Clock
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(store *planner.Store, clock domain.Clock) *ShowTask {
	return &ShowTask{store: store, clock: clock}
}

// Execute retrieves and returns the task details.
func (uc *ShowTask) Execute(_ context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := shared.ResolveTask(uc.store, in.TaskRef)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	return &ShowTaskOutput{View: newTaskView(task, now, domain.DayOf(now).WeekStart())}, nil
}
