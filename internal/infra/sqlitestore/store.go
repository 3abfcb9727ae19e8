// Package sqlitestore provides a SQLite implementation of SnapshotRepository.
//
// The snapshot is kept as one row of a key/value table, so the stored
// payload is byte-compatible with the JSON file backend.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/runoshun/weekplan/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	version INTEGER NOT NULL,
	payload TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// Store implements domain.SnapshotRepository on a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("db path is empty")
	}
	if !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored snapshot, or (nil, nil) when none was saved yet.
func (s *Store) Load() (*domain.Snapshot, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE key = ?;`, domain.StorageKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return domain.UnmarshalSnapshot([]byte(payload))
}

// Save upserts the snapshot row.
func (s *Store) Save(snap *domain.Snapshot) error {
	payload, err := domain.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(`
INSERT INTO snapshots (key, version, payload, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
	version = excluded.version,
	payload = excluded.payload,
	updated_at = excluded.updated_at;`,
		domain.StorageKey, domain.SnapshotVersion, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// UpdatedAt returns when the snapshot was last saved.
// It returns the zero time when no snapshot exists.
func (s *Store) UpdatedAt() (time.Time, error) {
	var raw string
	err := s.db.QueryRow(`SELECT updated_at FROM snapshots WHERE key = ?;`, domain.StorageKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query snapshot: %w", err)
	}
	return time.Parse(time.RFC3339, raw)
}

// sqliteDSN builds a file: URL DSN, which modernc.org/sqlite prefers.
func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Ensure Store implements SnapshotRepository and SnapshotInfo.
var (
	_ domain.SnapshotRepository = (*Store)(nil)
	_ domain.SnapshotInfo       = (*Store)(nil)
)
