package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/usecase"
)

// progressBarWidth is the number of cells of a progress bar.
const progressBarWidth = 10

// weekOptions holds flags shared by the week board commands.
type weekOptions struct {
	Plain bool
	JSON  bool
}

// theme styles the board. A plain theme renders text unchanged.
type theme struct {
	header  lipgloss.Style
	today   lipgloss.Style
	dim     lipgloss.Style
	overdue lipgloss.Style
	bands   map[domain.FillBand]lipgloss.Style
	plain   bool
}

func newTheme(w io.Writer, plain bool) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		plain:   plain,
		header:  r.NewStyle().Bold(true),
		today:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		dim:     r.NewStyle().Faint(true),
		overdue: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		bands: map[domain.FillBand]lipgloss.Style{
			domain.FillLow:  r.NewStyle().Foreground(lipgloss.Color("2")),
			domain.FillMid:  r.NewStyle().Foreground(lipgloss.Color("3")),
			domain.FillHigh: r.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

func (th theme) render(style lipgloss.Style, s string) string {
	if th.plain {
		return s
	}
	return style.Render(s)
}

// progressBar draws progress as filled cells of a fixed-width bar.
func (th theme) progressBar(v usecase.TaskView) string {
	filled := min(progressBarWidth, (v.Progress*progressBarWidth+50)/100)
	bar := strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled)
	return "[" + th.render(th.bands[v.Band], bar) + "]"
}

// newWeekCommand creates the week command.
func newWeekCommand(c *app.Container) *cobra.Command {
	var opts weekOptions

	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Show the week board",
		Long: `Show the Monday to Sunday board of the week containing date (default today).

Each task shows how much of its window has elapsed. Completed tasks are hidden.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := ""
			if len(args) == 1 {
				date = args[0]
			}
			return runWeek(cmd, c, opts, date)
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable colors")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// weekJSON is the JSON form of the week board.
type weekJSON struct {
	Today  domain.Day `json:"today"`
	Days   []dayJSON  `json:"days"`
	Streak streakJSON `json:"streak"`
}

type dayJSON struct {
	Label string     `json:"label"`
	Date  domain.Day `json:"date"`
	Tasks []taskJSON `json:"tasks"`
}

type streakJSON struct {
	LastStreakDate domain.Day `json:"lastStreakDate,omitempty"`
	Days           int        `json:"days"`
}

func runWeek(cmd *cobra.Command, c *app.Container, opts weekOptions, date string) error {
	uc := c.ShowWeekUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.ShowWeekInput{Date: date})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if opts.JSON {
		doc := weekJSON{
			Today:  out.Today,
			Days:   make([]dayJSON, len(out.Days)),
			Streak: streakJSON{Days: out.Streak.Streak, LastStreakDate: out.Streak.LastStreakDate},
		}
		for i, d := range out.Days {
			tasks := make([]taskJSON, len(d.Tasks))
			for j, v := range d.Tasks {
				tasks[j] = newTaskJSON(v)
			}
			doc.Days[i] = dayJSON{Label: d.Day.Label, Date: d.Day.Key, Tasks: tasks}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}

	printWeek(w, out, newTheme(w, opts.Plain))
	return nil
}

// printWeek prints the board one day per block.
func printWeek(w io.Writer, out *usecase.ShowWeekOutput, th theme) {
	weekStart := out.Days[0].Day.Key
	_, _ = fmt.Fprintf(w, "%s    Streak: %s\n",
		th.render(th.header, "Week of "+weekStart.String()), pluralDays(out.Streak.Streak))

	for _, d := range out.Days {
		_, _ = fmt.Fprintln(w)
		heading := fmt.Sprintf("%s %s", d.Day.Label, d.Day.Key.String()[5:])
		if d.IsToday {
			_, _ = fmt.Fprintln(w, th.render(th.today, heading+" (today)"))
		} else {
			_, _ = fmt.Fprintln(w, th.render(th.header, heading))
		}

		if len(d.Tasks) == 0 {
			_, _ = fmt.Fprintln(w, "  "+th.render(th.dim, "-"))
			continue
		}
		for _, v := range d.Tasks {
			_, _ = fmt.Fprintf(w, "  %s %s %3d%%  %s%s\n",
				shortID(v.Task.ID), th.progressBar(v), v.Progress, v.Task.Title, taskSuffix(v, th))
		}
	}
}

// taskSuffix describes the deadline of a task relative to its listing.
func taskSuffix(v usecase.TaskView, th theme) string {
	var parts []string
	if v.Task.EndDate != v.Task.StartDate {
		parts = append(parts, "due "+v.Task.EndDate.String()[5:])
	}
	if v.Task.Priority == domain.PriorityHigh {
		parts = append(parts, "high")
	}
	suffix := ""
	if len(parts) > 0 {
		suffix = "  " + th.render(th.dim, "("+strings.Join(parts, ", ")+")")
	}
	if v.Overdue {
		suffix += "  " + th.render(th.overdue, "overdue")
	}
	return suffix
}

// newTodayCommand creates the today command.
func newTodayCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "today [day]",
		Aliases: []string{"day"},
		Short:   "List the tasks of today or another day",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := ""
			if len(args) == 1 {
				day = args[0]
			}

			uc := c.ShowDayUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowDayInput{Date: day})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Tasks) == 0 {
				_, _ = fmt.Fprintf(w, "No tasks on %s\n", out.Day)
				return nil
			}
			printDayTasks(w, out.Tasks)
			return nil
		},
	}
}

// printDayTasks prints tasks of one day in a table format.
func printDayTasks(w io.Writer, tasks []usecase.TaskView) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tPRIORITY\tDUE\tPROGRESS\tTITLE")
	for _, v := range tasks {
		progress := fmt.Sprintf("%d%%", v.Progress)
		if v.Overdue {
			progress += " overdue"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			shortID(v.Task.ID), v.Task.Priority, v.Task.EndDate, progress, v.Task.Title)
	}
	_ = tw.Flush()
}
