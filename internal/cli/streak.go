package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase"
)

// newStreakCommand creates the streak command.
func newStreakCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the completion streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowStreakUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowStreakInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.Streak.Streak == 0 {
				_, _ = fmt.Fprintln(w, "No streak yet. Complete a task to start one.")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Streak: %s (last %s)\n", pluralDays(out.Streak.Streak), out.Streak.LastStreakDate)
			switch {
			case out.CreditedToday:
				_, _ = fmt.Fprintln(w, "Today is done.")
			case out.AtRisk:
				_, _ = fmt.Fprintln(w, "Complete a task today to keep it.")
			}
			return nil
		},
	}
}

// newMaintainCommand creates the maintain command.
func newMaintainCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Roll over unfinished tasks and refresh the streak",
		Long: `Roll over unfinished tasks onto today and refresh the streak.

This pass runs automatically before every command. Running it again on
the same day changes nothing.`,
		Annotations: skipMaintenance(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.RunMaintenanceUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RunMaintenanceInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printMaintenance(w, out.Result)
			if out.StreakCredited {
				_, _ = fmt.Fprintf(w, "Streak credited for %s\n", out.Result.Day)
			}
			return nil
		},
	}
}

func printMaintenance(w io.Writer, res planner.MaintenanceResult) {
	if len(res.Rolled) == 0 {
		_, _ = fmt.Fprintf(w, "%s: nothing to roll over\n", res.Day)
	} else {
		_, _ = fmt.Fprintf(w, "%s: rolled over %d task(s)\n", res.Day, len(res.Rolled))
	}
	if res.StreakReset {
		_, _ = fmt.Fprintln(w, "Streak expired")
	}
}

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the planner current while running",
		Long: `Keep the planner current until interrupted.

The rollover and streak pass runs again whenever the day changes, and
changes saved by other weekplan processes are reloaded.`,
		Annotations: skipMaintenance(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("interval") {
				interval = c.WatchInterval()
			}
			w := cmd.OutOrStdout()

			uc := c.WatchUseCase()
			_, err := uc.Execute(cmd.Context(), usecase.WatchInput{
				Interval: interval,
				OnPass: func(res planner.MaintenanceResult) {
					printMaintenance(w, res)
				},
				OnEvent: func(ev planner.Event) {
					if ev.Kind == planner.EventReloaded {
						_, _ = fmt.Fprintln(w, "Reloaded changes from disk")
					}
				},
			})
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Tick interval (default from config)")

	return cmd
}
