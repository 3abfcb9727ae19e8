// Package domain contains core business entities and interfaces.
package domain

import (
	"cmp"
	"fmt"
	"strings"
)

// Priority is the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when a new task does not specify one.
const DefaultPriority = PriorityMedium

// ParsePriority parses a priority name. Empty input yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPriority, nil
	}
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work scheduled under a day of the week.
// Fields are ordered to minimize memory padding.
type Task struct {
	ID                string   `json:"id"`                          // Opaque unique identifier
	Title             string   `json:"title"`                       // Title (required)
	Description       string   `json:"description,omitempty"`       // Description (optional)
	Priority          Priority `json:"priority"`                    // low, medium, high
	StartDate         Day      `json:"startDate"`                   // Day the task is listed under
	ProgressStartDate Day      `json:"progressStartDate,omitempty"` // Effective start for progress
	EndDate           Day      `json:"endDate"`                     // Deadline day
	CompletedAt       Day      `json:"completedAt,omitempty"`       // Day of completion
	Order             int      `json:"order"`                       // Position within StartDate
	Completed         bool     `json:"completed"`
}

// ProgressStart returns the day progress is measured from.
// Data written before progress starts were tracked falls back to StartDate.
func (t *Task) ProgressStart() Day {
	if t.ProgressStartDate.IsZero() {
		return t.StartDate
	}
	return t.ProgressStartDate
}

// IsActive reports whether the task should appear in day views.
func (t *Task) IsActive() bool {
	return !t.Completed
}

// CompareForDay orders tasks of one day: by Order, then by EndDate.
func CompareForDay(a, b *Task) int {
	if c := cmp.Compare(a.Order, b.Order); c != 0 {
		return c
	}
	return cmp.Compare(a.EndDate, b.EndDate)
}

// NewTaskInput is the payload accepted when creating a task.
type NewTaskInput struct {
	Title       string // Title (required, trimmed)
	Description string // Description (optional)
	Priority    string // low, medium, high (empty = medium)
	StartDate   string // YYYY-MM-DD
	EndDate     string // YYYY-MM-DD, not before StartDate
}

// ValidTaskInput is a NewTaskInput that passed validation.
type ValidTaskInput struct {
	Title       string
	Description string
	Priority    Priority
	StartDate   Day
	EndDate     Day
}

// Validate checks the payload and returns its normalized form.
func (in NewTaskInput) Validate() (ValidTaskInput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return ValidTaskInput{}, ErrEmptyTitle
	}
	priority, err := ParsePriority(in.Priority)
	if err != nil {
		return ValidTaskInput{}, err
	}
	start, err := ParseDay(in.StartDate)
	if err != nil {
		return ValidTaskInput{}, fmt.Errorf("start date: %w", err)
	}
	end, err := ParseDay(in.EndDate)
	if err != nil {
		return ValidTaskInput{}, fmt.Errorf("end date: %w", err)
	}
	if end.Before(start) {
		return ValidTaskInput{}, fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, end, start)
	}
	return ValidTaskInput{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Priority:    priority,
		StartDate:   start,
		EndDate:     end,
	}, nil
}
