package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
)

// ImportTasksInput contains the parameters for importing a plan file.
type ImportTasksInput struct {
	Source io.Reader // Plan file content (required)
	Strict bool      // Abort without adding anything when any entry is invalid
	DryRun bool      // Validate only
}

// ImportIssue is an entry that could not be imported.
type ImportIssue struct {
	Err   error
	Title string
	Index int // 1-based position in the file
}

// ImportTasksOutput contains the result of an import.
type ImportTasksOutput struct {
	Added   []domain.Task // Created tasks (empty in dry-run mode)
	Skipped []ImportIssue // Invalid entries
	Valid   int           // Number of entries that passed validation
}

// ImportTasks adds the tasks listed in a plan file.
type ImportTasks struct {
	store  *planner.Store
	codec  domain.PlanCodec
	logger domain.Logger
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(store *planner.Store, codec domain.PlanCodec, logger domain.Logger) *ImportTasks {
	return &ImportTasks{store: store, codec: codec, logger: logger}
}

// Execute decodes the plan and adds every valid entry in file order.
func (uc *ImportTasks) Execute(_ context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	inputs, err := uc.codec.Decode(in.Source)
	if err != nil {
		return nil, err
	}

	out := &ImportTasksOutput{}
	valid := make([]domain.NewTaskInput, 0, len(inputs))
	for i, input := range inputs {
		if _, err := input.Validate(); err != nil {
			out.Skipped = append(out.Skipped, ImportIssue{Index: i + 1, Title: input.Title, Err: err})
			continue
		}
		valid = append(valid, input)
	}
	out.Valid = len(valid)

	if in.Strict && len(out.Skipped) > 0 {
		errs := make([]error, len(out.Skipped))
		for i, issue := range out.Skipped {
			errs[i] = fmt.Errorf("task %d: %w", issue.Index, issue.Err)
		}
		return out, errors.Join(errs...)
	}
	if in.DryRun {
		return out, nil
	}

	for _, input := range valid {
		task, err := uc.store.Add(input)
		if err != nil {
			return out, err
		}
		out.Added = append(out.Added, task)
	}

	uc.logger.Info("", "import", fmt.Sprintf("imported %d task(s), skipped %d", len(out.Added), len(out.Skipped)))
	return out, nil
}
