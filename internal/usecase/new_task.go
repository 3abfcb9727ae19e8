package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	Title       string // Task title (required)
	Description string // Task description (optional)
	Priority    string // low, medium, high (empty = medium)
	StartDate   string // Day argument (empty = today)
	EndDate     string // Day argument (empty = start date)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	store *planner.Store
	clock domain.Clock
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(store *planner.Store, clock domain.Clock) *NewTask {
	return &NewTask{
		store: store,
		clock: clock,
	}
}

// Execute creates a new task with the given input.
func (uc *NewTask) Execute(_ context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	today := domain.DayOf(uc.clock.Now())

	start, err := shared.ResolveDay(in.StartDate, today, uc.store.WeekLabels())
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}
	end := start
	if in.EndDate != "" {
		end, err = shared.ResolveDay(in.EndDate, today, uc.store.WeekLabels())
		if err != nil {
			return nil, fmt.Errorf("end date: %w", err)
		}
	}

	task, err := uc.store.Add(domain.NewTaskInput{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		StartDate:   start.String(),
		EndDate:     end.String(),
	})
	if err != nil {
		return nil, err
	}

	return &NewTaskOutput{Task: task}, nil
}
