// Package filewatch reports changes to the snapshot file made by other processes.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/runoshun/weekplan/internal/domain"
)

// Notifier implements domain.ChangeNotifier with fsnotify.
//
// It watches the directory holding the file rather than the file itself,
// since atomic saves replace the file by rename.
type Notifier struct {
	path     string
	debounce time.Duration
}

// New creates a Notifier for the file at path.
func New(path string) *Notifier {
	return &Notifier{path: path, debounce: domain.DefaultWatchDebounce}
}

// WithDebounce returns a copy of n using d as the debounce window.
// A non-positive d keeps the current window.
func (n *Notifier) WithDebounce(d time.Duration) *Notifier {
	c := *n
	if d > 0 {
		c.debounce = d
	}
	return &c
}

// Watch calls onChange after the file was created, written or replaced,
// until ctx is done. onChange runs on the watching goroutine.
func (n *Notifier) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(n.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	var fire <-chan time.Time
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !n.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(n.debounce)
			} else {
				timer.Reset(n.debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", n.path, err)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

// relevant reports whether event concerns the watched file.
// SQLite side files (-wal, -journal) count as changes to the database.
func (n *Notifier) relevant(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(n.path)
	name := filepath.Base(event.Name)
	return name == base || name == base+"-wal" || name == base+"-journal"
}

// Ensure Notifier implements ChangeNotifier.
var _ domain.ChangeNotifier = (*Notifier)(nil)

