package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/testutil"
)

const testPlan = `- title: Draft proposal
  priority: high
  start: 2024-06-03
  end: 2024-06-05
- title: ""
  start: 2024-06-03
  end: 2024-06-03
- title: Send invoices
  start: 2024-06-04
  end: 2024-06-04
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewImportCommand(t *testing.T) {
	// Setup
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())
	path := writePlan(t, testPlan)

	// Execute
	stdout, stderr, err := execute(newImportCommand(c), path)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, stdout, "Added task-1 \"Draft proposal\" on 2024-06-03 (due 2024-06-05)\n")
	assert.Contains(t, stdout, "Imported 2 task(s)\n")
	assert.Contains(t, stderr, "Skipped task 2")
	assert.Len(t, c.Store.Tasks(), 2)
}

func TestNewImportCommand_Strict(t *testing.T) {
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())
	path := writePlan(t, testPlan)

	_, stderr, err := execute(newImportCommand(c), path, "--strict")

	require.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Contains(t, stderr, "Skipped task 2")
	assert.Empty(t, c.Store.Tasks())
}

func TestNewImportCommand_StdinDryRun(t *testing.T) {
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())
	cmd := newImportCommand(c)
	cmd.SetIn(strings.NewReader(testPlan))

	stdout, _, err := execute(cmd, "-", "--dry-run")

	require.NoError(t, err)
	assert.Equal(t, "2 task(s) would be created\n", stdout)
	assert.Empty(t, c.Store.Tasks())
}

func TestNewImportCommand_Errors(t *testing.T) {
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())

	_, _, err := execute(newImportCommand(c), filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(newImportCommand(c), writePlan(t, ""))
	require.ErrorIs(t, err, domain.ErrEmptyPlan)

	_, _, err = execute(newImportCommand(c), writePlan(t, "- title: x\n  color: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse plan file")
}

func TestNewExportCommand_RoundTrip(t *testing.T) {
	// Setup
	c := newTestContainer(t, testutil.NewMockSnapshotRepository())
	addTask(t, c, "Report", testToday, "2024-06-05")
	addTask(t, c, "Later", "2024-06-20", "2024-06-20")

	// Execute: export to stdout
	stdout, _, err := execute(newExportCommand(c))
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: Report")
	assert.NotContains(t, stdout, "Later")

	// Execute: export to a file and import it elsewhere
	path := filepath.Join(t.TempDir(), "week.yaml")
	stdout, _, err = execute(newExportCommand(c), path)
	require.NoError(t, err)
	assert.Equal(t, "Exported 1 task(s) of the week of 2024-06-03 to "+path+"\n", stdout)

	other := newTestContainer(t, testutil.NewMockSnapshotRepository())
	_, _, err = execute(newImportCommand(other), path)
	require.NoError(t, err)
	tasks := other.Store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Report", tasks[0].Title)
	assert.Equal(t, domain.Day("2024-06-05"), tasks[0].EndDate)
}
