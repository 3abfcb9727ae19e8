// Package cli provides the command-line interface for weekplan.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/usecase"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupWeek  = "week"
)

// annotationSkipMaintenance marks commands that must not trigger the
// start-up rollover and streak pass.
const annotationSkipMaintenance = "weekplan/skip-maintenance"

// skipMaintenance returns the annotation map for commands that skip the start-up pass.
func skipMaintenance() map[string]string {
	return map[string]string{annotationSkipMaintenance: "true"}
}

// skipsMaintenance reports whether cmd or one of its parents opted out.
func skipsMaintenance(cmd *cobra.Command) bool {
	for cur := cmd; cur != nil; cur = cur.Parent() {
		if cur.Annotations[annotationSkipMaintenance] == "true" {
			return true
		}
	}
	return false
}

// NewRootCommand creates the root command for weekplan.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var weekOpts weekOptions

	root := &cobra.Command{
		Use:   "weekplan",
		Short: "Weekly task planner",
		Long: `weekplan keeps a Monday to Sunday board of tasks.

Every task is listed under one day and carries a deadline. Unfinished
tasks roll forward onto today, and completing at least one task a day
keeps your streak alive.

Running weekplan without a command shows the current week.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			if skipsMaintenance(cmd) {
				return nil
			}
			_, err := c.RunMaintenanceUseCase().Execute(cmd.Context(), usecase.RunMaintenanceInput{})
			return err
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWeek(cmd, c, weekOpts, "")
		},
	}
	root.Flags().BoolVar(&weekOpts.Plain, "plain", false, "Disable colors")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupWeek, Title: "Week and Streak:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	moveCmd := newMoveCommand(c)
	moveCmd.GroupID = groupTask

	reorderCmd := newReorderCommand(c)
	reorderCmd.GroupID = groupTask

	dragCmd := newDragCommand(c)
	dragCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTask

	// Week and streak commands
	weekCmd := newWeekCommand(c)
	weekCmd.GroupID = groupWeek

	todayCmd := newTodayCommand(c)
	todayCmd.GroupID = groupWeek

	streakCmd := newStreakCommand(c)
	streakCmd.GroupID = groupWeek

	maintainCmd := newMaintainCommand(c)
	maintainCmd.GroupID = groupWeek

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupWeek

	// Add subcommands
	root.AddCommand(
		configCmd,
		addCmd,
		doneCmd,
		moveCmd,
		reorderCmd,
		dragCmd,
		showCmd,
		importCmd,
		exportCmd,
		weekCmd,
		todayCmd,
		streakCmd,
		maintainCmd,
		watchCmd,
	)

	return root
}
