package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/testutil"
)

func TestNewRootCommand_WithHelp_ShowsHelp(t *testing.T) {
	// Create root command with nil container
	root := NewRootCommand(nil, "test-version")

	stdout, _, err := execute(root, "--help")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Task Management:")
	assert.Contains(t, stdout, "Week and Streak:")
	assert.Contains(t, stdout, "Setup Commands:")
}

func TestNewRootCommand_NoArgs_ShowsWeek(t *testing.T) {
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())
	addTask(t, c, "Report", testToday, testToday)
	root := NewRootCommand(c, "test-version")

	stdout, _, err := execute(root, "--plain")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Week of 2024-06-03")
	assert.Contains(t, stdout, "Report")
}

func TestNewRootCommand_RunsMaintenanceFirst(t *testing.T) {
	// Setup: an unfinished task due today but listed yesterday
	repo := testutil.NewMockSnapshotRepository()
	repo.Snapshot = &domain.Snapshot{
		Tasks: []*domain.Task{
			{ID: "late", Title: "Carried", Priority: domain.PriorityMedium, StartDate: "2024-06-02", EndDate: testToday},
		},
		Streak: domain.StreakState{Streak: 5, LastStreakDate: "2024-05-30"},
	}
	c := newTestContainer(t, repo)
	root := NewRootCommand(c, "test-version")

	// Execute
	stdout, _, err := execute(root, "today")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, stdout, "Carried")
	assert.Equal(t, 0, c.Store.Streak().Streak, "expired streak is reset")
	task, ok := c.Store.Get("late")
	require.True(t, ok)
	assert.Equal(t, domain.Day(testToday), task.StartDate)
}

func TestNewRootCommand_ConfigSkipsMaintenance(t *testing.T) {
	repo := testutil.NewMockSnapshotRepository()
	repo.Snapshot = &domain.Snapshot{
		Tasks: []*domain.Task{
			{ID: "late", Title: "Carried", Priority: domain.PriorityMedium, StartDate: "2024-06-02", EndDate: testToday},
		},
	}
	c := newTestContainer(t, repo)
	root := NewRootCommand(c, "test-version")

	_, _, err := execute(root, "config", "template")

	require.NoError(t, err)
	assert.Zero(t, repo.SaveCalls)
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())
	c.AppConfig.Warnings = []string{"unknown section: colors"}
	root := NewRootCommand(c, "test-version")

	_, stderr, err := execute(root, "streak")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown section: colors")
}

func TestSkipsMaintenance(t *testing.T) {
	root := NewRootCommand(nil, "test-version")

	for _, tt := range []struct {
		args []string
		want bool
	}{
		{args: []string{"config", "show"}, want: true},
		{args: []string{"maintain"}, want: true},
		{args: []string{"watch"}, want: true},
		{args: []string{"add"}, want: false},
		{args: []string{"week"}, want: false},
	} {
		cmd, _, err := root.Find(tt.args)
		require.NoError(t, err)
		assert.Equal(t, tt.want, skipsMaintenance(cmd), tt.args)
	}
}
