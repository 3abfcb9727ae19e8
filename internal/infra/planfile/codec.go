// Package planfile reads and writes YAML plan files: flat task lists used
// for bulk import and export.
//
//	- title: Prepare release
//	  priority: high
//	  start: 2024-06-03
//	  end: 2024-06-05
//	  description: optional
package planfile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/weekplan/internal/domain"
)

// entry is one task of a plan file.
type entry struct {
	Title       string `yaml:"title"`
	Priority    string `yaml:"priority,omitempty"`
	Start       string `yaml:"start"`
	End         string `yaml:"end"`
	Description string `yaml:"description,omitempty"`
}

// Codec implements domain.PlanCodec with YAML.
type Codec struct{}

// New returns a Codec.
func New() *Codec {
	return &Codec{}
}

// Decode parses a plan file. Unknown keys are rejected.
// Entries are not validated here; that happens when they are added.
func (c *Codec) Decode(r io.Reader) ([]domain.NewTaskInput, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var entries []entry
	if err := dec.Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyPlan
		}
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyPlan
	}

	inputs := make([]domain.NewTaskInput, len(entries))
	for i, e := range entries {
		inputs[i] = domain.NewTaskInput{
			Title:       e.Title,
			Description: e.Description,
			Priority:    e.Priority,
			StartDate:   e.Start,
			EndDate:     e.End,
		}
	}
	return inputs, nil
}

// Encode writes tasks as a plan file.
func (c *Codec) Encode(w io.Writer, tasks []domain.Task) error {
	entries := make([]entry, len(tasks))
	for i, t := range tasks {
		entries[i] = entry{
			Title:       t.Title,
			Priority:    string(t.Priority),
			Start:       t.StartDate.String(),
			End:         t.EndDate.String(),
			Description: t.Description,
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encode plan file: %w", err)
	}
	return enc.Close()
}

// Ensure Codec implements PlanCodec.
var _ domain.PlanCodec = (*Codec)(nil)
