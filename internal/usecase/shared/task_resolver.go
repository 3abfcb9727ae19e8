// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"
	"strings"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/planner"
)

// ResolveTask resolves a task reference (full ID or unique prefix) and
// returns the task. It returns domain.ErrTaskNotFound or
// domain.ErrAmbiguousTaskID when the reference does not name one task.
// This centralizes the common pattern of:
//
//	id, err := store.Resolve(ref)
//	if err != nil { return err }
//	task, ok := store.Get(id)
//	if !ok { return domain.ErrTaskNotFound }
func ResolveTask(store *planner.Store, ref string) (domain.Task, error) {
	id, err := store.Resolve(ref)
	if err != nil {
		return domain.Task{}, err
	}
	task, ok := store.Get(id)
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return task, nil
}

// ResolveDay parses a day argument. Besides YYYY-MM-DD it accepts
// "today", "tomorrow", "yesterday" and week column labels, which name a
// day of the week containing today. Both the given labels and the
// default mon..sun are matched, case-insensitively.
func ResolveDay(arg string, today domain.Day, labels [domain.DaysInWeek]string) (domain.Day, error) {
	switch s := strings.ToLower(strings.TrimSpace(arg)); s {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "yesterday":
		return today.AddDays(-1), nil
	default:
		for _, set := range [][domain.DaysInWeek]string{labels, domain.DefaultWeekLabels} {
			for i, label := range set {
				if label != "" && s == strings.ToLower(label) {
					return today.WeekStart().AddDays(i), nil
				}
			}
		}
		return domain.ParseDay(s)
	}
}
