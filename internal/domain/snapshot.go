package domain

import (
	"encoding/json"
	"fmt"
)

// StorageKey identifies the planner snapshot in a storage backend.
const StorageKey = "tg-weekly-planner-storage"

// SnapshotVersion is the schema version written by this build.
// Snapshots with any other version are not loaded.
const SnapshotVersion = 4

// Snapshot is the persisted planner state.
type Snapshot struct {
	Tasks  []*Task
	Streak StreakState
}

// NewSnapshot returns the initial, empty state.
func NewSnapshot() *Snapshot {
	return &Snapshot{Tasks: []*Task{}}
}

// snapshotDoc is the wire form of a snapshot: {"state": {...}, "version": N}.
type snapshotDoc struct {
	State   snapshotState `json:"state"`
	Version int           `json:"version"`
}

type snapshotState struct {
	LastStreakDate *Day    `json:"lastStreakDate"`
	Tasks          []*Task `json:"tasks"`
	Streak         int     `json:"streak"`
}

// MarshalSnapshot encodes s in the wire form at SnapshotVersion.
func MarshalSnapshot(s *Snapshot) ([]byte, error) {
	doc := snapshotDoc{
		Version: SnapshotVersion,
		State: snapshotState{
			Tasks:  s.Tasks,
			Streak: s.Streak.Streak,
		},
	}
	if doc.State.Tasks == nil {
		doc.State.Tasks = []*Task{}
	}
	if !s.Streak.LastStreakDate.IsZero() {
		last := s.Streak.LastStreakDate
		doc.State.LastStreakDate = &last
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalSnapshot decodes the wire form.
// It returns ErrSnapshotVersion when the version differs from SnapshotVersion.
// Tasks that lack an ID, carry malformed dates, end before they start or
// repeat an earlier ID are dropped. A progress start outside the task
// window is reset to the start date.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if doc.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, doc.Version)
	}

	s := NewSnapshot()
	seen := make(map[string]bool, len(doc.State.Tasks))
	for _, t := range doc.State.Tasks {
		if t == nil || t.ID == "" || !t.StartDate.Valid() || !t.EndDate.Valid() {
			continue
		}
		if t.EndDate.Before(t.StartDate) || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		if !t.ProgressStartDate.Valid() || t.ProgressStartDate.After(t.EndDate) {
			t.ProgressStartDate = t.StartDate
		}
		if !t.Priority.Valid() {
			t.Priority = DefaultPriority
		}
		if !t.Completed {
			t.CompletedAt = ""
		}
		s.Tasks = append(s.Tasks, t)
	}

	s.Streak.Streak = max(0, doc.State.Streak)
	if doc.State.LastStreakDate != nil && doc.State.LastStreakDate.Valid() {
		s.Streak.LastStreakDate = *doc.State.LastStreakDate
	}
	if s.Streak.LastStreakDate.IsZero() {
		s.Streak.Streak = 0
	}
	return s, nil
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Tasks:  make([]*Task, len(s.Tasks)),
		Streak: s.Streak,
	}
	for i, t := range s.Tasks {
		c := *t
		out.Tasks[i] = &c
	}
	return out
}
