package domain

// Rollover moves incomplete tasks whose window reaches today onto today.
//
// A task rolls when its deadline is today, or when it started before today
// and ends after today. Rolled tasks are appended to today's column in their
// original relative order. ProgressStartDate is left alone so progress keeps
// counting from the original start. Running Rollover again on the same day
// changes nothing.
//
// It returns the IDs of the tasks that moved.
func Rollover(tasks []*Task, today Day) []string {
	nextOrder := make(map[Day]int)
	for _, t := range tasks {
		nextOrder[t.StartDate] = max(nextOrder[t.StartDate], t.Order+1)
	}

	var rolled []string
	for _, t := range tasks {
		if t.Completed {
			continue
		}

		shouldRoll := t.EndDate == today ||
			(t.StartDate.Before(today) && t.EndDate.After(today))
		if !shouldRoll {
			continue
		}

		daysLeft := max(0, today.DaysUntil(t.EndDate))
		target := t.EndDate.AddDays(-daysLeft)
		if target == t.StartDate {
			continue
		}

		t.StartDate = target
		t.Order = nextOrder[target]
		nextOrder[target]++
		rolled = append(rolled, t.ID)
	}
	return rolled
}
