package jsonstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "data", "planner.json"))
}

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Tasks: []*domain.Task{
			{
				ID:                "t1",
				Title:             "Plan sprint",
				Description:       "with the team",
				Priority:          domain.PriorityHigh,
				StartDate:         "2024-06-03",
				ProgressStartDate: "2024-06-03",
				EndDate:           "2024-06-04",
				Order:             0,
			},
		},
		Streak: domain.StreakState{Streak: 2, LastStreakDate: "2024-06-02"},
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	snap, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, snap)

	at, err := store.UpdatedAt()
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	want := sampleSnapshot()

	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")

	at, err := store.UpdatedAt()
	require.NoError(t, err)
	assert.False(t, at.IsZero())
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(sampleSnapshot()))
	require.NoError(t, store.Save(domain.NewSnapshot()))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
	assert.Equal(t, domain.StreakState{}, got.Streak)
}

func TestStore_FileFormat(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(sampleSnapshot()))

	content, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), `"version": 4`)
	assert.Contains(t, string(content), `"progressStartDate": "2024-06-03"`)
}

func TestStore_LoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestStore_LoadOldVersion(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o750))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"state":{"tasks":[]},"version":2}`), 0o600))

	_, err := store.Load()
	assert.ErrorIs(t, err, domain.ErrSnapshotVersion)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			snap := sampleSnapshot()
			snap.Streak.Streak = n + 1
			assert.NoError(t, store.Save(snap))
		}(i)
	}
	wg.Wait()

	got, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Tasks, 1)
	assert.Positive(t, got.Streak.Streak)
}
