package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/usecase"
)

func TestDragTask_Execute_OntoColumn(t *testing.T) {
	// Setup
	f := newFixture(t)
	f.add(t, "A", monday, tuesday)
	f.add(t, "B", monday, monday)
	f.add(t, "W", wednesday, wednesday)
	uc := usecase.NewDragTask(f.store, f.clock)

	// Execute
	out, err := uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-1", Day: "wed"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.DragMove, out.Plan.Kind)
	assert.Equal(t, 1, out.Plan.TargetIndex)
	assert.Equal(t, wednesday, out.Task.StartDate)
	assert.Equal(t, thursday, out.Task.EndDate)
	assert.Equal(t, []string{"B"}, taskTitles(f.store.TasksForDay(monday)))
	assert.Equal(t, []string{"W", "A"}, taskTitles(f.store.TasksForDay(wednesday)))
}

func TestDragTask_Execute_OntoTask(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A", monday, monday)
	f.add(t, "W1", wednesday, wednesday)
	f.add(t, "W2", wednesday, wednesday)
	uc := usecase.NewDragTask(f.store, f.clock)

	out, err := uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-1", OverRef: "task-3"})

	require.NoError(t, err)
	assert.Equal(t, domain.DragMove, out.Plan.Kind)
	assert.Equal(t, wednesday, out.Plan.TargetDay)
	assert.Equal(t, []string{"W1", "A", "W2"}, taskTitles(f.store.TasksForDay(wednesday)))
}

func TestDragTask_Execute_SameDay(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A", monday, monday)
	f.add(t, "B", monday, monday)
	f.add(t, "C", monday, monday)
	uc := usecase.NewDragTask(f.store, f.clock)

	out, err := uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-3", OverRef: "task-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.DragReorder, out.Plan.Kind)
	assert.Equal(t, []string{"C", "A", "B"}, taskTitles(f.store.TasksForDay(monday)))

	// Dropping onto the next slot is not a move.
	out, err = uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-3", OverRef: "task-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.DragNone, out.Plan.Kind)
}

func TestDragTask_Execute_Errors(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A", monday, monday)
	uc := usecase.NewDragTask(f.store, f.clock)

	_, err := uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-1"})
	require.ErrorIs(t, err, domain.ErrNoDropTarget)

	_, err = uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "ghost", Day: "wed"})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-1", OverRef: "ghost"})
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDragTask_Execute_CompletedTaskIsNotOnBoard(t *testing.T) {
	f := newFixture(t)
	f.add(t, "A", monday, monday)
	_, ok := f.store.ToggleCompleted("task-1")
	require.True(t, ok)
	uc := usecase.NewDragTask(f.store, f.clock)

	_, err := uc.Execute(ctx, usecase.DragTaskInput{TaskRef: "task-1", Day: "wed"})

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}
