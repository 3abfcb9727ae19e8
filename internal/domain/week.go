package domain

import "time"

// DaysInWeek is the number of day columns in a planner week.
const DaysInWeek = 7

// DefaultWeekLabels are the column labels used when none are configured.
var DefaultWeekLabels = [DaysInWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekDay is one column of a planner week.
type WeekDay struct {
	Label string // Short display label
	Key   Day    // Day key of the column
	Index int    // 0 (Monday) .. 6 (Sunday)
}

// WeekStart returns the Monday of the ISO week containing t, evaluated in t's location.
func WeekStart(t time.Time) Day {
	return DayOf(t).WeekStart()
}

// WeekDays enumerates the seven days from Monday to Sunday of the week
// starting at start. start is normalized to its Monday first.
func WeekDays(start Day, labels [DaysInWeek]string) []WeekDay {
	monday := start.WeekStart()
	days := make([]WeekDay, DaysInWeek)
	for i := range days {
		days[i] = WeekDay{
			Index: i,
			Key:   monday.AddDays(i),
			Label: labels[i],
		}
	}
	return days
}

// DurationDays returns the inclusive length of the task window in days, at least 1.
func DurationDays(t *Task) int {
	return max(1, t.StartDate.DaysUntil(t.EndDate)+1)
}

// WeekSpan returns how many days of the task window fall inside the week
// starting at weekStart. It is 0 when the window and the week are disjoint.
func WeekSpan(t *Task, weekStart Day) int {
	weekEnd := weekStart.AddDays(DaysInWeek - 1)
	if t.EndDate.Before(weekStart) || t.StartDate.After(weekEnd) {
		return 0
	}
	spanStart := t.StartDate
	if spanStart.Before(weekStart) {
		spanStart = weekStart
	}
	spanEnd := t.EndDate
	if spanEnd.After(weekEnd) {
		spanEnd = weekEnd
	}
	return max(1, spanStart.DaysUntil(spanEnd)+1)
}
