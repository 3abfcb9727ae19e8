package domain

import (
	"math"
	"time"
)

// FillBand is a coarse classification of progress used by presentation.
type FillBand string

const (
	FillLow  FillBand = "low"  // below 50%
	FillMid  FillBand = "mid"  // 50% to below 80%
	FillHigh FillBand = "high" // 80% and above
)

// Progress band thresholds, in percent.
const (
	fillMidThreshold  = 50
	fillHighThreshold = 80
)

// Progress returns how much of the task window has elapsed at now, in [0,100].
//
// The window runs from the start of the progress start day to the start of
// the deadline day, both in now's location. On the deadline day and after,
// progress is 100.
func Progress(t *Task, now time.Time) int {
	today := DayOf(now)
	if !today.Before(t.EndDate) {
		return 100
	}

	loc := now.Location()
	start := t.ProgressStart().StartOf(loc)
	deadline := t.EndDate.StartOf(loc)

	totalHours := math.Max(1, deadline.Sub(start).Hours())
	hoursLeft := math.Max(0, deadline.Sub(now).Hours())
	value := (1 - hoursLeft/totalHours) * 100

	return int(math.Min(100, math.Max(0, math.Round(value))))
}

// IsOverdue reports whether the task is incomplete past its deadline day.
func IsOverdue(t *Task, now time.Time) bool {
	return !t.Completed && DayOf(now).After(t.EndDate)
}

// FillBandFor classifies a progress percentage.
func FillBandFor(progress int) FillBand {
	switch {
	case progress < fillMidThreshold:
		return FillLow
	case progress < fillHighThreshold:
		return FillMid
	default:
		return FillHigh
	}
}
