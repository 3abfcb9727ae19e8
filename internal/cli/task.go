package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/usecase"
)

// shortIDLen is the number of ID characters shown in listings.
// Any unique prefix is accepted wherever a task is referenced.
const shortIDLen = 8

// shortID returns the display prefix of a task ID.
func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Priority    string
		Start       string
		End         string
	}

	cmd := &cobra.Command{
		Use:   "add <title>...",
		Short: "Create a new task",
		Long: `Create a new task.

The task is listed under its start day (default: today) and is due on
its end day (default: the start day). Days accept YYYY-MM-DD, "today",
"tomorrow", "yesterday" or a weekday of the current week (mon..sun, or
the labels configured under [week] labels).

Examples:
  # A task for today
  weekplan add Write weekly report

  # A three day task starting tomorrow
  weekplan add "Prepare talk" --start tomorrow --end fri --priority high`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.NewTaskInput{
				Title:       strings.Join(args, " "),
				Description: opts.Description,
				Priority:    opts.Priority,
				StartDate:   opts.Start,
				EndDate:     opts.End,
			})
			if err != nil {
				return err
			}

			t := out.Task
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q on %s (due %s)\n", shortID(t.ID), t.Title, t.StartDate, t.EndDate)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Description, "desc", "d", "", "Task description")
	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "", "Priority: low, medium, high (default medium)")
	cmd.Flags().StringVarP(&opts.Start, "start", "s", "", "Day the task is listed under (default today)")
	cmd.Flags().StringVarP(&opts.End, "end", "e", "", "Deadline day (default the start day)")

	return cmd
}

// newDoneCommand creates the done command that toggles completion.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a task",
		Long: `Toggle completion of a task.

Completing the first task of a day extends the streak. Reopening a task
never takes streak credit back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ToggleTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ToggleTaskInput{TaskRef: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Task.Completed {
				_, _ = fmt.Fprintf(w, "Completed %s %q\n", shortID(out.Task.ID), out.Task.Title)
			} else {
				_, _ = fmt.Fprintf(w, "Reopened %s %q\n", shortID(out.Task.ID), out.Task.Title)
			}
			if out.Credited {
				_, _ = fmt.Fprintf(w, "Streak: %s\n", pluralDays(out.Streak.Streak))
			}
			return nil
		},
	}
}

// newMoveCommand creates the move command.
func newMoveCommand(c *app.Container) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "move <id> <day>",
		Short: "Move a task to another day",
		Long: `Move a task to another day, keeping its duration.

Progress restarts on the new day. Without --order the task is appended
to the end of the day.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.MoveTaskInput{TaskRef: args[0], Day: args[1]}
			if cmd.Flags().Changed("order") {
				in.Order = &order
			}

			uc := c.MoveTaskUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			t := out.Task
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s (position %d, due %s)\n", shortID(t.ID), t.StartDate, t.Order+1, t.EndDate)
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", 0, "Zero-based position on the target day")

	return cmd
}

// newReorderCommand creates the reorder command.
func newReorderCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <day> <id>...",
		Short: "Set the order of a day's tasks",
		Long: `Set the order of a day's tasks.

The listed tasks take positions 0, 1, 2... in the given order. Tasks of
other days are ignored.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ReorderDayUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ReorderDayInput{Day: args[0], TaskRefs: args[1:]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s:\n", out.Day)
			for i, t := range out.Tasks {
				_, _ = fmt.Fprintf(w, "  %d. %s %s\n", i+1, shortID(t.ID), t.Title)
			}
			return nil
		},
	}
}

// newDragCommand creates the drag command.
func newDragCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Day  string
		Over string
	}

	cmd := &cobra.Command{
		Use:   "drag <id>",
		Short: "Drop a task onto a day or another task",
		Long: `Drop a task onto a day column or onto another task, like on the board.

Dropping onto a day appends the task to that day. Dropping onto a task
places it at that task's position, on that task's day.

Examples:
  weekplan drag 3f2a --day thu
  weekplan drag 3f2a --over 9bc1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Day != "" && opts.Over != "" {
				return errors.New("--day and --over cannot be used together")
			}

			uc := c.DragTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DragTaskInput{
				TaskRef: args[0],
				Day:     opts.Day,
				OverRef: opts.Over,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch out.Plan.Kind {
			case domain.DragMove:
				_, _ = fmt.Fprintf(w, "Moved %s from %s to %s (position %d)\n", shortID(out.Task.ID), out.Plan.SourceDay, out.Plan.TargetDay, out.Task.Order+1)
			case domain.DragReorder:
				_, _ = fmt.Fprintf(w, "Reordered %s on %s (position %d)\n", shortID(out.Task.ID), out.Plan.SourceDay, out.Task.Order+1)
			default:
				_, _ = fmt.Fprintln(w, "Nothing to do")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Day, "day", "", "Day column to drop onto")
	cmd.Flags().StringVar(&opts.Over, "over", "", "Task to drop onto")

	return cmd
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{TaskRef: args[0]})
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(newTaskJSON(out.View))
			}
			printTaskDetails(cmd.OutOrStdout(), out.View)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

// taskJSON is the JSON form of a task view.
type taskJSON struct {
	domain.Task
	Band         domain.FillBand `json:"band"`
	Progress     int             `json:"progress"`
	DurationDays int             `json:"durationDays"`
	Overdue      bool            `json:"overdue"`
}

func newTaskJSON(v usecase.TaskView) taskJSON {
	return taskJSON{
		Task:         v.Task,
		Band:         v.Band,
		Progress:     v.Progress,
		DurationDays: v.DurationDays,
		Overdue:      v.Overdue,
	}
}

// printTaskDetails prints a task view in a detailed format.
func printTaskDetails(w io.Writer, v usecase.TaskView) {
	t := v.Task
	_, _ = fmt.Fprintf(w, "ID: %s\n", t.ID)
	_, _ = fmt.Fprintf(w, "Title: %s\n", t.Title)
	_, _ = fmt.Fprintf(w, "Priority: %s\n", t.Priority)
	_, _ = fmt.Fprintf(w, "Day: %s\n", t.StartDate)
	_, _ = fmt.Fprintf(w, "Due: %s (%s)\n", t.EndDate, pluralDays(v.DurationDays))
	if t.ProgressStart() != t.StartDate {
		_, _ = fmt.Fprintf(w, "Progress since: %s\n", t.ProgressStart())
	}

	status := "open"
	switch {
	case t.Completed:
		status = fmt.Sprintf("completed on %s", t.CompletedAt)
	case v.Overdue:
		status = "overdue"
	}
	_, _ = fmt.Fprintf(w, "Status: %s\n", status)
	_, _ = fmt.Fprintf(w, "Progress: %d%%\n", v.Progress)

	if t.Description != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "Description:")
		for line := range strings.SplitSeq(t.Description, "\n") {
			_, _ = fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
