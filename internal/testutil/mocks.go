// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/runoshun/weekplan/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.NowTime = m.NowTime.Add(d)
}

// ClockAt returns a MockClock set to the given day at hour:00 UTC.
func ClockAt(day string, hour int) *MockClock {
	t, err := time.Parse(domain.DayLayout, day)
	if err != nil {
		panic(err)
	}
	return &MockClock{NowTime: t.Add(time.Duration(hour) * time.Hour)}
}

// MockSnapshotRepository is a test double for domain.SnapshotRepository.
// Fields are ordered to minimize memory padding.
type MockSnapshotRepository struct {
	Snapshot  *domain.Snapshot
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// NewMockSnapshotRepository creates an empty MockSnapshotRepository.
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{}
}

// Load returns a copy of the stored snapshot.
func (m *MockSnapshotRepository) Load() (*domain.Snapshot, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Snapshot == nil {
		return nil, nil
	}
	return m.Snapshot.Clone(), nil
}

// Save stores a copy of s.
func (m *MockSnapshotRepository) Save(s *domain.Snapshot) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Snapshot = s.Clone()
	return nil
}

// MockSnapshotInfoRepository is a MockSnapshotRepository that also
// implements domain.SnapshotInfo.
type MockSnapshotInfoRepository struct {
	MockSnapshotRepository
	UpdatedAtTime time.Time
	UpdatedAtErr  error
	FilePath      string
}

// Path returns FilePath.
func (m *MockSnapshotInfoRepository) Path() string {
	return m.FilePath
}

// UpdatedAt returns the configured time or error.
func (m *MockSnapshotInfoRepository) UpdatedAt() (time.Time, error) {
	return m.UpdatedAtTime, m.UpdatedAtErr
}

// SequenceIDs is a deterministic domain.IDGenerator producing task-1, task-2, ...
type SequenceIDs struct {
	Prefix string
	n      int
}

// NewID returns the next ID in the sequence.
func (g *SequenceIDs) NewID() string {
	g.n++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "task"
	}
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

// LogEntry is one entry captured by MockLogger.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// MockLogger records log entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Info records an info entry.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }

// HasLevel reports whether an entry with the given level was recorded.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Entries {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockPlanCodec is a test double for domain.PlanCodec.
type MockPlanCodec struct {
	DecodeErr error
	Inputs    []domain.NewTaskInput
	Encoded   []domain.Task
}

// Decode returns the configured inputs.
func (m *MockPlanCodec) Decode(_ io.Reader) ([]domain.NewTaskInput, error) {
	if m.DecodeErr != nil {
		return nil, m.DecodeErr
	}
	return m.Inputs, nil
}

// Encode records the tasks.
func (m *MockPlanCodec) Encode(_ io.Writer, tasks []domain.Task) error {
	m.Encoded = tasks
	return nil
}

// MockChangeNotifier is a test double for domain.ChangeNotifier.
// It fires onChange Changes times, then blocks until ctx is done.
type MockChangeNotifier struct {
	Changes int
}

// Watch fires the configured number of changes.
func (m *MockChangeNotifier) Watch(ctx context.Context, onChange func()) error {
	for range m.Changes {
		onChange()
	}
	<-ctx.Done()
	return nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitDataErr      error
	InitGlobalErr    error
	InitConfig       *domain.Config
	DataConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitDataCalled   bool
	InitGlobalCalled bool
	InitForce        bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		DataConfigInfo: domain.ConfigInfo{
			Path:   "/test/data/config.toml",
			Exists: false,
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/weekplan/config.toml",
			Exists: false,
		},
	}
}

// GetDataConfigInfo returns the configured data dir config info.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo {
	return m.DataConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitDataConfig records the call and returns the configured error.
func (m *MockConfigManager) InitDataConfig(cfg *domain.Config, force bool) (string, error) {
	m.InitDataCalled = true
	m.InitConfig = cfg
	m.InitForce = force
	if m.InitDataErr != nil {
		return "", m.InitDataErr
	}
	return m.DataConfigInfo.Path, nil
}

// InitGlobalConfig records the call and returns the configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config, force bool) (string, error) {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	m.InitForce = force
	if m.InitGlobalErr != nil {
		return "", m.InitGlobalErr
	}
	return m.GlobalConfigInfo.Path, nil
}

// Compile-time interface checks.
var (
	_ domain.Clock              = (*MockClock)(nil)
	_ domain.SnapshotRepository = (*MockSnapshotRepository)(nil)
	_ domain.SnapshotInfo       = (*MockSnapshotInfoRepository)(nil)
	_ domain.IDGenerator        = (*SequenceIDs)(nil)
	_ domain.Logger             = (*MockLogger)(nil)
	_ domain.PlanCodec          = (*MockPlanCodec)(nil)
	_ domain.ChangeNotifier     = (*MockChangeNotifier)(nil)
	_ domain.ConfigManager      = (*MockConfigManager)(nil)
)
