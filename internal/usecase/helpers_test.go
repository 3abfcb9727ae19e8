package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/testutil"
	"github.com/runoshun/weekplan/internal/usecase"
)

// 2024-06-03 is a Monday.
const (
	sunday    = domain.Day("2024-06-02")
	monday    = domain.Day("2024-06-03")
	tuesday   = domain.Day("2024-06-04")
	wednesday = domain.Day("2024-06-05")
	thursday  = domain.Day("2024-06-06")
)

type fixture struct {
	repo  *testutil.MockSnapshotRepository
	clock *testutil.MockClock
	store *planner.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, nil)
}

func newFixtureWith(t *testing.T, snap *domain.Snapshot) *fixture {
	t.Helper()
	repo := testutil.NewMockSnapshotRepository()
	repo.Snapshot = snap
	clock := testutil.ClockAt(string(monday), 9)
	store := planner.Open(repo, clock, planner.WithIDGenerator(&testutil.SequenceIDs{}))
	return &fixture{repo: repo, clock: clock, store: store}
}

func (f *fixture) add(t *testing.T, title string, start, end domain.Day) domain.Task {
	t.Helper()
	task, err := f.store.Add(domain.NewTaskInput{
		Title:     title,
		StartDate: start.String(),
		EndDate:   end.String(),
	})
	require.NoError(t, err)
	return task
}

func viewTitles(views []usecase.TaskView) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Task.Title
	}
	return out
}

func taskTitles(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

var ctx = context.Background()
