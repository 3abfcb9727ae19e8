// Package jsonstore provides a JSON file-based implementation of SnapshotRepository.
package jsonstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/runoshun/weekplan/internal/domain"
)

// Store implements domain.SnapshotRepository using a single JSON file.
// Concurrent processes are serialized with an flock on a sibling lock file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first save.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// UpdatedAt returns the modification time of the snapshot file.
// It returns the zero time when the file does not exist yet.
func (s *Store) UpdatedAt() (time.Time, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("stat store file: %w", err)
	}
	return info.ModTime(), nil
}

// Load reads and decodes the snapshot.
// A missing file returns (nil, nil).
func (s *Store) Load() (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := s.withLock(syscall.LOCK_SH, func() error {
		content, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("read store file: %w", err)
		}
		snap, err = domain.UnmarshalSnapshot(content)
		return err
	})
	return snap, err
}

// Save replaces the snapshot file atomically.
func (s *Store) Save(snap *domain.Snapshot) error {
	content, err := domain.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.withLock(syscall.LOCK_EX, func() error {
		return s.write(content)
	})
}

// withLock executes fn while holding a lock of lockType.
func (s *Store) withLock(lockType int, fn func() error) error {
	lock, err := s.acquireLock(lockType)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)
	return fn()
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) write(content []byte) error {
	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements SnapshotRepository and SnapshotInfo.
var (
	_ domain.SnapshotRepository = (*Store)(nil)
	_ domain.SnapshotInfo       = (*Store)(nil)
)
