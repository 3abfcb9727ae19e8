package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/testutil"
	"github.com/runoshun/weekplan/internal/usecase"
)

type failingNotifier struct{ err error }

func (n failingNotifier) Watch(context.Context, func()) error { return n.err }

func TestWatch_Execute_RunsUntilCancelled(t *testing.T) {
	// Setup
	f := newFixture(t)
	uc := usecase.NewWatch(f.store, f.clock, &testutil.MockChangeNotifier{Changes: 1}, &testutil.MockLogger{})

	passes := make(chan planner.MaintenanceResult, 1)
	reloaded := make(chan struct{}, 1)
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := uc.Execute(runCtx, usecase.WatchInput{
			Interval: time.Hour,
			OnPass: func(res planner.MaintenanceResult) {
				select {
				case passes <- res:
				default:
				}
			},
			OnEvent: func(ev planner.Event) {
				if ev.Kind != planner.EventReloaded {
					return
				}
				select {
				case reloaded <- struct{}{}:
				default:
				}
			},
		})
		done <- err
	}()

	// Assert
	select {
	case res := <-passes:
		assert.Equal(t, monday, res.Day)
	case <-time.After(5 * time.Second):
		t.Fatal("no maintenance pass")
	}
	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("store was not reloaded")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_Execute_NotifierError(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")
	uc := usecase.NewWatch(f.store, f.clock, failingNotifier{err: boom}, nil)

	_, err := uc.Execute(context.Background(), usecase.WatchInput{Interval: time.Hour})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "watch snapshot")
}

func TestWatch_Execute_WithoutNotifier(t *testing.T) {
	f := newFixture(t)
	uc := usecase.NewWatch(f.store, f.clock, nil, nil)
	runCtx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := uc.Execute(runCtx, usecase.WatchInput{})

	require.NoError(t, err)
	assert.NotNil(t, out)
}
