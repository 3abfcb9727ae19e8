package domain

import "slices"

// DragRequest describes a finished drag gesture over the week board.
// Fields are ordered to minimize memory padding.
type DragRequest struct {
	SourceIDs  []string // Current ordered IDs of the source day
	TargetIDs  []string // Current ordered IDs of the target day
	TaskID     string   // Dragged task
	SourceDay  Day      // Day the task is dragged from (empty = unknown)
	TargetDay  Day      // Day the task is dropped on (empty = unknown)
	OverTaskID string   // Task dropped onto (empty = dropped on the day column)
}

// DragKind is the effect a resolved drag has on the store.
type DragKind int

const (
	DragNone    DragKind = iota // Nothing to apply
	DragReorder                 // Reorder within one day
	DragMove                    // Move to another day
)

// String returns the name of the kind.
func (k DragKind) String() string {
	switch k {
	case DragReorder:
		return "reorder"
	case DragMove:
		return "move"
	default:
		return "none"
	}
}

// DragPlan is the set of store calls that realize a drag.
// Fields are ordered to minimize memory padding.
type DragPlan struct {
	SourceOrder []string // New ordered IDs of the source day
	TargetOrder []string // New ordered IDs of the target day (DragMove only)
	TaskID      string
	SourceDay   Day
	TargetDay   Day
	TargetIndex int
	Kind        DragKind
}

// ResolveDrag turns a drag gesture into a DragPlan.
//
// A drop on the day column lands at the end of the list; a drop on a task
// lands at that task's index. Within one day, dropping onto the same slot
// or the slot right after it is not a move.
func ResolveDrag(req DragRequest) DragPlan {
	none := DragPlan{Kind: DragNone, TaskID: req.TaskID}
	if req.SourceDay.IsZero() || req.TargetDay.IsZero() {
		return none
	}

	sourceIndex := slices.Index(req.SourceIDs, req.TaskID)
	if sourceIndex < 0 {
		return none
	}

	targetIndex := len(req.TargetIDs)
	if req.OverTaskID != "" {
		if i := slices.Index(req.TargetIDs, req.OverTaskID); i >= 0 {
			targetIndex = i
		}
	}

	if req.SourceDay == req.TargetDay {
		if sourceIndex == targetIndex || sourceIndex == targetIndex-1 {
			return none
		}
		return DragPlan{
			Kind:        DragReorder,
			TaskID:      req.TaskID,
			SourceDay:   req.SourceDay,
			TargetDay:   req.TargetDay,
			TargetIndex: targetIndex,
			SourceOrder: moveItem(req.SourceIDs, sourceIndex, targetIndex),
		}
	}

	nextSource := slices.Delete(slices.Clone(req.SourceIDs), sourceIndex, sourceIndex+1)
	nextTarget := slices.Insert(slices.Clone(req.TargetIDs), targetIndex, req.TaskID)

	return DragPlan{
		Kind:        DragMove,
		TaskID:      req.TaskID,
		SourceDay:   req.SourceDay,
		TargetDay:   req.TargetDay,
		TargetIndex: targetIndex,
		SourceOrder: nextSource,
		TargetOrder: nextTarget,
	}
}

// moveItem removes the element at from and reinserts it at to.
// to is clamped to the bounds of the shortened list.
func moveItem(ids []string, from, to int) []string {
	out := slices.Clone(ids)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	to = min(max(to, 0), len(out))
	return slices.Insert(out, to, item)
}
