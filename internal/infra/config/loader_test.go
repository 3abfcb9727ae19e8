package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0644)
	require.NoError(t, err)
}

func TestLoader_Load_Defaults(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_DataConfigOnly(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
backend = "sqlite"
path = "/var/lib/weekplan/planner.db"

[log]
level = "debug"

[watch]
interval = "30s"
debounce = "250ms"

[week]
timezone = "Europe/Berlin"
labels = ["Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"]
`)

	loader := NewLoaderWithGlobalDir(dataDir, t.TempDir())
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/weekplan/planner.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Watch.Interval)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "Europe/Berlin", cfg.Week.Timezone)
	assert.Equal(t, "Mi", cfg.Week.Labels[2])
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_DataOverridesGlobal(t *testing.T) {
	dataDir := t.TempDir()
	globalDir := t.TempDir()

	writeConfig(t, globalDir, `
[log]
level = "warn"

[week]
timezone = "Asia/Tokyo"
`)
	writeConfig(t, dataDir, `
[log]
level = "error"
`)

	loader := NewLoaderWithGlobalDir(dataDir, globalDir)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "Asia/Tokyo", cfg.Week.Timezone, "unset keys keep the global value")
	assert.Equal(t, domain.BackendJSON, cfg.Store.Backend)
	assert.Equal(t, domain.DefaultWeekLabels, cfg.Week.Labels)
}

func TestLoader_Load_Warnings(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[store]
engine = "postgres"

[watch]
interval = "soon"

[week]
labels = ["a", "b"]

[ui]
theme = "dark"
`)

	loader := NewLoaderWithGlobalDir(dataDir, "")
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"invalid [watch].interval: time: invalid duration \"soon\"",
		"invalid [week].labels: want 7 strings",
		"unknown key in [store]: engine",
		"unknown section: ui",
	}, cfg.Warnings)
	assert.Equal(t, domain.DefaultWatchInterval, cfg.Watch.Interval)
	assert.Equal(t, domain.DefaultWeekLabels, cfg.Week.Labels)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[store\nbackend = ")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	assert.Error(t, err)
}

func TestLoader_LoadGlobal(t *testing.T) {
	_, err := NewLoaderWithGlobalDir(t.TempDir(), "").LoadGlobal()
	assert.ErrorIs(t, err, os.ErrNotExist)

	globalDir := t.TempDir()
	writeConfig(t, globalDir, "[log]\nlevel = \"debug\"\n")
	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), globalDir).LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    time.Duration
		wantErr bool
	}{
		{"duration string", "2m", 2 * time.Minute, false},
		{"seconds", int64(45), 45 * time.Second, false},
		{"zero", "0s", 0, true},
		{"negative", int64(-1), 0, true},
		{"bool", true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInterval(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderedTemplateLoadsBack(t *testing.T) {
	dataDir := t.TempDir()
	want := domain.NewDefaultConfig()
	want.Store.Backend = domain.BackendSQLite
	want.Watch.Interval = 5 * time.Minute
	want.Week.Timezone = "UTC"
	writeConfig(t, dataDir, domain.RenderConfigTemplate(want))

	got, err := NewLoaderWithGlobalDir(dataDir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, want, got)
}
