package domain

import (
	"context"
	"io"
	"time"
)

// SnapshotRepository persists the planner snapshot.
type SnapshotRepository interface {
	// Load returns the stored snapshot.
	// A missing snapshot returns (nil, nil).
	Load() (*Snapshot, error)

	// Save replaces the stored snapshot.
	Save(s *Snapshot) error
}

// SnapshotInfo is implemented by repositories that can describe where and
// when the snapshot was last written.
type SnapshotInfo interface {
	// Path returns the file holding the snapshot.
	Path() string

	// UpdatedAt returns the time of the last save, or the zero time when
	// nothing was saved yet.
	UpdatedAt() (time.Time, error)
}

// PlanCodec reads and writes plan files (task lists for bulk import/export).
type PlanCodec interface {
	// Decode parses a plan file into task inputs.
	Decode(r io.Reader) ([]NewTaskInput, error)

	// Encode writes tasks as a plan file.
	Encode(w io.Writer, tasks []Task) error
}

// ChangeNotifier reports external changes to the persisted snapshot.
type ChangeNotifier interface {
	// Watch calls onChange whenever the snapshot changes on disk, until ctx is done.
	Watch(ctx context.Context, onChange func()) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + data dir).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager manages configuration files.
type ConfigManager interface {
	// GetDataConfigInfo returns information about the data dir config file.
	GetDataConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitDataConfig writes a config template into the data dir.
	InitDataConfig(cfg *Config, force bool) (string, error)

	// InitGlobalConfig writes a config template into the global config dir.
	InitGlobalConfig(cfg *Config, force bool) (string, error)
}

// Logger writes operational log entries.
// taskID is empty for entries not tied to a task.
type Logger interface {
	Debug(taskID, category, msg string)
	Info(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// NopLogger discards all entries.
type NopLogger struct{}

func (NopLogger) Debug(_, _, _ string) {}
func (NopLogger) Info(_, _, _ string) {}
func (NopLogger) Warn(_, _, _ string) {}
func (NopLogger) Error(_, _, _ string) {}

// IDGenerator produces new task identifiers.
type IDGenerator interface {
	NewID() string
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct {
	Location *time.Location // nil = local time
}

// Now returns the current time.
func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
