// Package planner holds the authoritative planner state: tasks, their
// per-day ordering and the completion streak.
//
// A Store is the single writer of that state. Every applied mutation is
// saved through the configured SnapshotRepository and then announced to
// subscribers. A failed save is logged and never rolls back memory.
package planner

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/runoshun/weekplan/internal/domain"
)

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventAdded        EventKind = "added"
	EventToggled      EventKind = "toggled"
	EventMoved        EventKind = "moved"
	EventReordered    EventKind = "reordered"
	EventRolledOver   EventKind = "rolled_over"
	EventStreakChange EventKind = "streak_changed"
	EventReloaded     EventKind = "reloaded"
)

// Event is delivered to subscribers after a mutation was applied.
type Event struct {
	Kind    EventKind
	TaskIDs []string
	Day     domain.Day
}

// DayColumn is one day of the week board with its visible tasks.
type DayColumn struct {
	Tasks []domain.Task
	Day   domain.WeekDay
}

// Store owns the task collection and streak state.
// Fields are ordered to minimize memory padding.
type Store struct {
	repo    domain.SnapshotRepository
	clock   domain.Clock
	ids     domain.IDGenerator
	logger  domain.Logger
	state   *domain.Snapshot
	subs    map[int]func(Event)
	labels  [domain.DaysInWeek]string
	nextSub int
	mu      sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings and mutations.
func WithLogger(l domain.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator overrides task ID generation.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithWeekLabels sets the day column labels, Monday first.
func WithWeekLabels(labels [domain.DaysInWeek]string) Option {
	return func(s *Store) {
		s.labels = labels
	}
}

// UUIDGenerator generates random (version 4) UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Open creates a Store initialized from repo.
// A missing, unreadable or incompatible snapshot starts an empty planner.
// repo may be nil for a purely in-memory store.
func Open(repo domain.SnapshotRepository, clock domain.Clock, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		clock:  clock,
		ids:    UUIDGenerator{},
		logger: domain.NopLogger{},
		labels: domain.DefaultWeekLabels,
		subs:   make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.load()
	return s
}

func (s *Store) load() *domain.Snapshot {
	if s.repo == nil {
		return domain.NewSnapshot()
	}
	snap, err := s.repo.Load()
	if err != nil {
		s.logger.Warn("", "store", fmt.Sprintf("load snapshot failed, starting empty: %v", err))
		return domain.NewSnapshot()
	}
	if snap == nil {
		return domain.NewSnapshot()
	}
	return snap
}

// Reload replaces the in-memory state with the stored snapshot.
// It is used when another process rewrote the snapshot.
func (s *Store) Reload() {
	s.mu.Lock()
	s.state = s.load()
	s.mu.Unlock()
	s.notify(Event{Kind: EventReloaded})
}

// Subscribe registers fn to receive events. The returned func unsubscribes.
// fn runs on the mutating goroutine after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	subs := make([]func(Event), 0, len(s.subs))
	keys := make([]int, 0, len(s.subs))
	for k := range s.subs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		subs = append(subs, s.subs[k])
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// saveLocked writes the current state. Must be called with mu held.
func (s *Store) saveLocked() {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(s.state.Clone()); err != nil {
		s.logger.Warn("", "store", fmt.Sprintf("save snapshot failed: %v", err))
	}
}

func (s *Store) today() domain.Day {
	return domain.DayOf(s.clock.Now())
}

func (s *Store) findLocked(id string) *domain.Task {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Add creates a task from in.
// Invalid input is rejected and nothing is applied.
func (s *Store) Add(in domain.NewTaskInput) (domain.Task, error) {
	valid, err := in.Validate()
	if err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	sameDay := 0
	for _, t := range s.state.Tasks {
		if t.StartDate == valid.StartDate {
			sameDay++
		}
	}
	task := &domain.Task{
		ID:                s.ids.NewID(),
		Title:             valid.Title,
		Description:       valid.Description,
		Priority:          valid.Priority,
		StartDate:         valid.StartDate,
		ProgressStartDate: valid.StartDate,
		EndDate:           valid.EndDate,
		Order:             sameDay,
	}
	s.state.Tasks = append(s.state.Tasks, task)
	s.saveLocked()
	out := *task
	s.mu.Unlock()

	s.logger.Info(out.ID, "task", fmt.Sprintf("added %q on %s (order %d)", out.Title, out.StartDate, out.Order))
	s.notify(Event{Kind: EventAdded, TaskIDs: []string{out.ID}, Day: out.StartDate})
	return out, nil
}

// ToggleCompleted flips the completion flag of the task.
// Completing the first task of the day credits the streak.
// It returns false, and changes nothing, when the task is unknown.
func (s *Store) ToggleCompleted(id string) (domain.Task, bool) {
	s.mu.Lock()
	task := s.findLocked(id)
	if task == nil {
		s.mu.Unlock()
		return domain.Task{}, false
	}

	today := s.today()
	hadCompletionToday := domain.HasCompletionOn(s.state.Tasks, today)

	task.Completed = !task.Completed
	if task.Completed {
		task.CompletedAt = today
	} else {
		task.CompletedAt = ""
	}

	credited := false
	if task.Completed && !hadCompletionToday {
		credited = s.state.Streak.Credit(today)
	}
	s.saveLocked()
	out := *task
	streak := s.state.Streak.Streak
	s.mu.Unlock()

	s.logger.Info(out.ID, "task", fmt.Sprintf("completed=%t", out.Completed))
	s.notify(Event{Kind: EventToggled, TaskIDs: []string{out.ID}, Day: out.StartDate})
	if credited {
		s.logger.Info("", "streak", fmt.Sprintf("credited %s, streak %d", today, streak))
		s.notify(Event{Kind: EventStreakChange, Day: today})
	}
	return out, true
}

// Move relocates the task to targetDay at targetOrder, preserving its
// duration. Progress restarts on targetDay.
// It returns false, and changes nothing, when the task is unknown.
func (s *Store) Move(id string, targetDay domain.Day, targetOrder int) bool {
	if !targetDay.Valid() {
		return false
	}
	s.mu.Lock()
	task := s.moveLocked(id, targetDay, targetOrder)
	if task == nil {
		s.mu.Unlock()
		return false
	}
	s.saveLocked()
	out := *task
	s.mu.Unlock()

	s.logger.Info(out.ID, "task", fmt.Sprintf("moved to %s (order %d, ends %s)", out.StartDate, out.Order, out.EndDate))
	s.notify(Event{Kind: EventMoved, TaskIDs: []string{out.ID}, Day: targetDay})
	return true
}

func (s *Store) moveLocked(id string, targetDay domain.Day, targetOrder int) *domain.Task {
	task := s.findLocked(id)
	if task == nil {
		return nil
	}
	duration := task.StartDate.DaysUntil(task.EndDate)
	task.StartDate = targetDay
	task.ProgressStartDate = targetDay
	task.EndDate = targetDay.AddDays(duration)
	task.Order = targetOrder
	return task
}

// Reorder assigns Order = index to each listed task that starts on day.
// IDs of tasks on other days, or unknown IDs, are ignored.
func (s *Store) Reorder(day domain.Day, orderedIDs []string) {
	s.mu.Lock()
	changed := s.reorderLocked(day, orderedIDs)
	if len(changed) > 0 {
		s.saveLocked()
	}
	s.mu.Unlock()

	if len(changed) > 0 {
		s.logger.Debug("", "task", fmt.Sprintf("reordered %d task(s) on %s", len(changed), day))
		s.notify(Event{Kind: EventReordered, TaskIDs: changed, Day: day})
	}
}

func (s *Store) reorderLocked(day domain.Day, orderedIDs []string) []string {
	index := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		index[id] = i
	}
	var changed []string
	for _, t := range s.state.Tasks {
		if t.StartDate != day {
			continue
		}
		if order, ok := index[t.ID]; ok {
			t.Order = order
			changed = append(changed, t.ID)
		}
	}
	return changed
}

// ApplyDrag resolves a drag gesture and applies the resulting plan.
func (s *Store) ApplyDrag(req domain.DragRequest) domain.DragPlan {
	plan := domain.ResolveDrag(req)

	s.mu.Lock()
	switch plan.Kind {
	case domain.DragReorder:
		s.reorderLocked(plan.SourceDay, plan.SourceOrder)
	case domain.DragMove:
		if s.moveLocked(plan.TaskID, plan.TargetDay, plan.TargetIndex) == nil {
			s.mu.Unlock()
			return domain.DragPlan{Kind: domain.DragNone, TaskID: plan.TaskID}
		}
		s.reorderLocked(plan.SourceDay, plan.SourceOrder)
		s.reorderLocked(plan.TargetDay, plan.TargetOrder)
	default:
		s.mu.Unlock()
		return plan
	}
	s.saveLocked()
	s.mu.Unlock()

	s.logger.Info(plan.TaskID, "drag", fmt.Sprintf("%s %s -> %s at %d", plan.Kind, plan.SourceDay, plan.TargetDay, plan.TargetIndex))
	kind := EventReordered
	if plan.Kind == domain.DragMove {
		kind = EventMoved
	}
	s.notify(Event{Kind: kind, TaskIDs: []string{plan.TaskID}, Day: plan.TargetDay})
	return plan
}

// RunRollover carries incomplete tasks whose window reached today onto today.
// It returns the IDs of moved tasks. Calling it again on the same day is a no-op.
func (s *Store) RunRollover(today domain.Day) []string {
	s.mu.Lock()
	rolled := domain.Rollover(s.state.Tasks, today)
	if len(rolled) > 0 {
		s.saveLocked()
	}
	s.mu.Unlock()

	if len(rolled) > 0 {
		s.logger.Info("", "rollover", fmt.Sprintf("rolled %d task(s) onto %s", len(rolled), today))
		s.notify(Event{Kind: EventRolledOver, TaskIDs: rolled, Day: today})
	}
	return rolled
}

// CheckStreakExpiry resets the streak when its last credited day is older
// than yesterday. It returns true when the streak was reset.
func (s *Store) CheckStreakExpiry(today domain.Day) bool {
	s.mu.Lock()
	prev := s.state.Streak
	reset := s.state.Streak.CheckExpiry(today)
	if reset {
		s.saveLocked()
	}
	s.mu.Unlock()

	if reset {
		s.logger.Info("", "streak", fmt.Sprintf("expired (last %s, was %d)", prev.LastStreakDate, prev.Streak))
		s.notify(Event{Kind: EventStreakChange, Day: today})
	}
	return reset
}

// RecalculateStreak credits today when a task was completed today and today
// has not been credited yet. It returns true when the streak changed.
func (s *Store) RecalculateStreak(today domain.Day) bool {
	s.mu.Lock()
	credited := s.state.Streak.Recalculate(s.state.Tasks, today)
	if credited {
		s.saveLocked()
	}
	s.mu.Unlock()

	if credited {
		s.notify(Event{Kind: EventStreakChange, Day: today})
	}
	return credited
}

// Streak returns the current streak state.
func (s *Store) Streak() domain.StreakState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Streak
}

// WeekLabels returns the day column labels, Monday first.
func (s *Store) WeekLabels() [domain.DaysInWeek]string {
	return s.labels
}

// Get returns a copy of the task with the given ID.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.findLocked(id); t != nil {
		return *t, true
	}
	return domain.Task{}, false
}

// Resolve returns the ID of the only task whose ID starts with prefix.
// An exact match always wins.
func (s *Store) Resolve(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", domain.ErrTaskNotFound
	}
	var match string
	for _, t := range s.state.Tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("%w: %s", domain.ErrAmbiguousTaskID, prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrTaskNotFound, prefix)
	}
	return match, nil
}

// Tasks returns copies of all tasks in creation order, completed ones included.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.state.Tasks))
	for i, t := range s.state.Tasks {
		out[i] = *t
	}
	return out
}

// TasksForDay returns the incomplete tasks starting on day, in display order.
func (s *Store) TasksForDay(day domain.Day) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasksForDayLocked(day)
}

func (s *Store) tasksForDayLocked(day domain.Day) []domain.Task {
	var list []*domain.Task
	for _, t := range s.state.Tasks {
		if t.StartDate == day && t.IsActive() {
			list = append(list, t)
		}
	}
	slices.SortStableFunc(list, domain.CompareForDay)
	out := make([]domain.Task, len(list))
	for i, t := range list {
		out[i] = *t
	}
	return out
}

// Week groups the visible tasks of the week containing start by day.
func (s *Store) Week(start domain.Day, labels [domain.DaysInWeek]string) []DayColumn {
	days := domain.WeekDays(start, labels)
	s.mu.Lock()
	defer s.mu.Unlock()
	cols := make([]DayColumn, len(days))
	for i, d := range days {
		cols[i] = DayColumn{Day: d, Tasks: s.tasksForDayLocked(d.Key)}
	}
	return cols
}

// DayOfTask returns the day column a visible task is listed under.
func (s *Store) DayOfTask(id string) (domain.Day, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findLocked(id)
	if t == nil || !t.IsActive() {
		return "", false
	}
	return t.StartDate, true
}

// IDsForDay returns the IDs of the visible tasks of day in display order.
func (s *Store) IDsForDay(day domain.Day) []string {
	tasks := s.TasksForDay(day)
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
