package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// ExportTasksInput contains the parameters for exporting a plan file.
type ExportTasksInput struct {
	Dest io.Writer // Destination (required)
	Date string    // Any day of the week to export (empty = today)
}

// ExportTasksOutput contains the result of an export.
type ExportTasksOutput struct {
	WeekStart domain.Day
	Count     int // Number of exported tasks
}

// ExportTasks writes the visible tasks of a week as a plan file.
type ExportTasks struct {
	store *planner.Store
	codec domain.PlanCodec
	clock domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store *planner.Store, codec domain.PlanCodec, clock domain.Clock) *ExportTasks {
	return &ExportTasks{store: store, codec: codec, clock: clock}
}

// Execute exports the week in board order: by day, then display order.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	date, err := shared.ResolveDay(in.Date, domain.DayOf(uc.clock.Now()), uc.store.WeekLabels())
	if err != nil {
		return nil, err
	}
	weekStart := date.WeekStart()

	var tasks []domain.Task
	for _, col := range uc.store.Week(weekStart, domain.DefaultWeekLabels) {
		tasks = append(tasks, col.Tasks...)
	}

	if err := uc.codec.Encode(in.Dest, tasks); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return &ExportTasksOutput{WeekStart: weekStart, Count: len(tasks)}, nil
}
