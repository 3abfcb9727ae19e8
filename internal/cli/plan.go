package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/runoshun/weekplan/internal/app"
	"github.com/runoshun/weekplan/internal/usecase"
)

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Strict bool
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create tasks from a YAML plan file",
		Long: `Create tasks from a YAML plan file. Use "-" to read standard input.

Invalid entries are reported and skipped. With --strict nothing is
created unless every entry is valid.

File format:
  - title: Draft proposal
    priority: high
    start: 2024-06-03
    end: 2024-06-05
    description: |
      First pass only.
  - title: Send invoices
    start: 2024-06-04
    end: 2024-06-04`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open plan file: %w", err)
				}
				defer func() { _ = f.Close() }()
				src = f
			}

			uc := c.ImportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportTasksInput{
				Source: src,
				Strict: opts.Strict,
				DryRun: opts.DryRun,
			})

			w := cmd.OutOrStdout()
			errW := cmd.ErrOrStderr()
			if out != nil {
				for _, issue := range out.Skipped {
					_, _ = fmt.Fprintf(errW, "Skipped task %d %q: %v\n", issue.Index, issue.Title, issue.Err)
				}
			}
			if err != nil {
				return err
			}

			if opts.DryRun {
				_, _ = fmt.Fprintf(w, "%d task(s) would be created\n", out.Valid)
				return nil
			}
			for _, t := range out.Added {
				_, _ = fmt.Fprintf(w, "Added %s %q on %s (due %s)\n", shortID(t.ID), t.Title, t.StartDate, t.EndDate)
			}
			_, _ = fmt.Fprintf(w, "Imported %d task(s)\n", len(out.Added))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Create nothing unless every entry is valid")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate without creating tasks")

	return cmd
}

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the open tasks of a week as a YAML plan file",
		Long: `Write the open tasks of a week as a YAML plan file.

Without a file the plan is written to standard output. The output can be
fed back to "weekplan import".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create plan file: %w", err)
				}
				defer func() { _ = f.Close() }()
				dest = f
			}

			uc := c.ExportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTasksInput{Dest: dest, Date: week})
			if err != nil {
				return err
			}

			if len(args) == 1 && args[0] != "-" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) of the week of %s to %s\n", out.Count, out.WeekStart, args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any day of the week to export (default today)")

	return cmd
}
