package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/testutil"
)

// 2024-06-03 is a Monday.
const testToday = "2024-06-03"

// newTestContainer creates an app.Container with mock dependencies.
func newTestContainer(t *testing.T, repo *testutil.MockSnapshotRepository) *app.Container {
	t.Helper()
	return app.NewWithDeps(
		app.Config{DataDir: t.TempDir()},
		repo,
		testutil.ClockAt(testToday, 9),
		&testutil.MockLogger{},
		planner.WithIDGenerator(&testutil.SequenceIDs{}),
	)
}

// addTask creates a task directly through the store.
func addTask(t *testing.T, c *app.Container, title, start, end string) domain.Task {
	t.Helper()
	task, err := c.Store.Add(domain.NewTaskInput{Title: title, StartDate: start, EndDate: end})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	return task
}

// execute runs cmd with args and returns what it wrote to stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	return executeContext(context.Background(), cmd, args...)
}

func executeContext(ctx context.Context, cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}
