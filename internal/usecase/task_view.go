// Package usecase contains the application use cases.
package usecase

import (
	"time"

	"github.com/runoshun/weekplan/internal/domain"
)

// TaskView is a task with the values derived for presentation at one instant.
// Fields are ordered to minimize memory padding.
type TaskView struct {
	Band         domain.FillBand // Progress band
	Task         domain.Task
	Progress     int  // Elapsed share of the window, 0..100
	DurationDays int  // Inclusive length of the window
	WeekSpan     int  // Days of the window inside the displayed week (0 outside)
	Overdue      bool // Incomplete past its deadline day
}

// newTaskView derives the presentation values of t at now.
// weekStart may be empty when no week is displayed.
func newTaskView(t domain.Task, now time.Time, weekStart domain.Day) TaskView {
	progress := domain.Progress(&t, now)
	v := TaskView{
		Task:         t,
		Progress:     progress,
		Band:         domain.FillBandFor(progress),
		Overdue:      domain.IsOverdue(&t, now),
		DurationDays: domain.DurationDays(&t),
	}
	if !weekStart.IsZero() {
		v.WeekSpan = domain.WeekSpan(&t, weekStart)
	}
	return v
}

func newTaskViews(tasks []domain.Task, now time.Time, weekStart domain.Day) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = newTaskView(t, now, weekStart)
	}
	return views
}
