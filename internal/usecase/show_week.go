package usecase

import (
	"context"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase/shared"
)

// DayView is one column of the week board.
type DayView struct {
	Tasks   []TaskView
	Day     domain.WeekDay
	IsToday bool
}

// ShowWeekInput contains the parameters for showing a week.
type ShowWeekInput struct {
	Date string // Any day of the week to show (empty = today)
}

// ShowWeekOutput contains the week board.
type ShowWeekOutput struct {
	Days   []DayView          // Monday to Sunday
	Today  domain.Day         // Today in the configured location
	Streak domain.StreakState // Current streak
}

// ShowWeek builds the week board.
type ShowWeek struct {
	store  *planner.Store
	clock  domain.Clock
	labels [domain.DaysInWeek]string
}

// NewShowWeek creates a new ShowWeek use case using the given column labels.
func NewShowWeek(store *planner.Store, clock domain.Clock, labels [domain.DaysInWeek]string) *ShowWeek {
	return &ShowWeek{store: store, clock: clock, labels: labels}
}

// Execute returns the seven columns of the requested week.
func (uc *ShowWeek) Execute(_ context.Context, in ShowWeekInput) (*ShowWeekOutput, error) {
	now := uc.clock.Now()
	today := domain.DayOf(now)
	date, err := shared.ResolveDay(in.Date, today, uc.labels)
	if err != nil {
		return nil, err
	}

	weekStart := date.WeekStart()
	cols := uc.store.Week(weekStart, uc.labels)
	days := make([]DayView, len(cols))
	for i, col := range cols {
		days[i] = DayView{
			Day:     col.Day,
			IsToday: col.Day.Key == today,
			Tasks:   newTaskViews(col.Tasks, now, weekStart),
		}
	}

	return &ShowWeekOutput{
		Days:   days,
		Today:  today,
		Streak: uc.store.Streak(),
	}, nil
}

// ShowDayInput contains the parameters for showing one day.
type ShowDayInput struct {
	Date string // Day argument (empty = today)
}

// ShowDayOutput contains the visible tasks of one day.
type ShowDayOutput struct {
	Tasks []TaskView
	Day   domain.Day
}

// ShowDay lists the visible tasks of one day.
type ShowDay struct {
	store *planner.Store
	clock domain.Clock
}

// NewShowDay creates a new ShowDay use case.
func NewShowDay(store *planner.Store, clock domain.Clock) *ShowDay {
	return &ShowDay{store: store, clock: clock}
}

// Execute returns the tasks of the day in display order.
func (uc *ShowDay) Execute(_ context.Context, in ShowDayInput) (*ShowDayOutput, error) {
	now := uc.clock.Now()
	day, err := shared.ResolveDay(in.Date, domain.DayOf(now), uc.store.WeekLabels())
	if err != nil {
		return nil, err
	}
	return &ShowDayOutput{
		Day:   day,
		Tasks: newTaskViews(uc.store.TasksForDay(day), now, day.WeekStart()),
	}, nil
}
