package domain

// StreakState counts consecutive days with at least one credited completion.
type StreakState struct {
	LastStreakDate Day `json:"lastStreakDate"` // Most recent credited day (empty = none)
	Streak         int `json:"streak"`
}

// Credit records a completion on today.
// It returns false when today was already credited.
func (s *StreakState) Credit(today Day) bool {
	if s.LastStreakDate == today {
		return false
	}
	if !s.LastStreakDate.IsZero() && s.LastStreakDate == today.AddDays(-1) {
		s.Streak++
	} else {
		s.Streak = 1
	}
	s.LastStreakDate = today
	return true
}

// CheckExpiry resets the streak when neither today nor yesterday was credited.
// It returns true when the state was reset.
func (s *StreakState) CheckExpiry(today Day) bool {
	if s.LastStreakDate.IsZero() {
		return false
	}
	if s.LastStreakDate == today || s.LastStreakDate == today.AddDays(-1) {
		return false
	}
	*s = StreakState{}
	return true
}

// Recalculate credits today when some task was completed today.
// Calling it repeatedly never credits twice.
func (s *StreakState) Recalculate(tasks []*Task, today Day) bool {
	if !HasCompletionOn(tasks, today) {
		return false
	}
	return s.Credit(today)
}

// HasCompletionOn reports whether any task was completed on day.
func HasCompletionOn(tasks []*Task, day Day) bool {
	for _, t := range tasks {
		if t.Completed && t.CompletedAt == day {
			return true
		}
	}
	return false
}
