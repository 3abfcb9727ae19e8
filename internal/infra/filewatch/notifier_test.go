package filewatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
)

func TestNotifier_Relevant(t *testing.T) {
	n := New("/data/planner.json")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: "/data/planner.json", Op: fsnotify.Write}, true},
		{"create by rename", fsnotify.Event{Name: "/data/planner.json", Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: "/data/planner.json", Op: fsnotify.Chmod}, false},
		{"temp file", fsnotify.Event{Name: "/data/planner.json.tmp", Op: fsnotify.Write}, false},
		{"lock file", fsnotify.Event{Name: "/data/planner.json.lock", Op: fsnotify.Create}, false},
		{"other file", fsnotify.Event{Name: "/data/config.toml", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.relevant(tt.event))
		})
	}

	db := New("/data/planner.db")
	assert.True(t, db.relevant(fsnotify.Event{Name: "/data/planner.db-wal", Op: fsnotify.Write}))
}

func TestNotifier_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planner.json")
	n := New(path).WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- n.Watch(ctx, func() { changes <- struct{}{} })
	}()

	// Keep writing until the watcher has been registered and reports a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for got := false; !got; {
		select {
		case <-changes:
			got = true
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
		case <-deadline:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestNotifier_Watch_MissingDir(t *testing.T) {
	n := New(filepath.Join(t.TempDir(), "missing", "planner.json"))

	err := n.Watch(context.Background(), func() {})
	assert.Error(t, err)
}

func TestNotifier_WithDebounce(t *testing.T) {
	n := New("/tmp/planner.json")

	assert.Equal(t, domain.DefaultWatchDebounce, n.debounce)
	assert.Equal(t, 250*time.Millisecond, n.WithDebounce(250*time.Millisecond).debounce)
	assert.Equal(t, domain.DefaultWatchDebounce, n.WithDebounce(0).debounce, "non-positive keeps the window")
	assert.Equal(t, domain.DefaultWatchDebounce, n.debounce, "original is unchanged")
}
