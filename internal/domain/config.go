package domain

import (
	"fmt"
	"strings"
	"time"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DefaultWatchInterval is how often the watcher checks for a day change.
const DefaultWatchInterval = time.Minute

// DefaultWatchDebounce coalesces bursts of file events (write + rename) into one reload.
const DefaultWatchDebounce = 100 * time.Millisecond

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Week     WeekConfig  // [week] settings
	Store    StoreConfig // [store] settings
	Log      LogConfig   // [log] settings
	Warnings []string    // Warnings for unknown keys
	Watch    WatchConfig // [watch] settings
}

// StoreConfig holds persistence settings from [store] section.
type StoreConfig struct {
	Backend string // json or sqlite
	Path    string // Store file path (empty = default under the data dir)
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// WatchConfig holds settings of the day-change watcher from [watch] section.
type WatchConfig struct {
	Interval time.Duration // Tick interval
	Debounce time.Duration // Quiet period before reloading an external change
}

// WeekConfig holds week board settings from [week] section.
type WeekConfig struct {
	Timezone string             // IANA zone used to derive "today" (empty = local)
	Labels   [DaysInWeek]string // Column labels, Monday first
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Backend: BackendJSON},
		Log:   LogConfig{Level: "info"},
		Watch: WatchConfig{Interval: DefaultWatchInterval, Debounce: DefaultWatchDebounce},
		Week:  WeekConfig{Labels: DefaultWeekLabels},
	}
}

// Location resolves the configured timezone.
func (c WeekConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// RenderConfigTemplate renders a commented config file holding cfg's values.
func RenderConfigTemplate(cfg *Config) string {
	labels := make([]string, len(cfg.Week.Labels))
	for i, l := range cfg.Week.Labels {
		labels[i] = fmt.Sprintf("%q", l)
	}

	var b strings.Builder
	b.WriteString("# weekplan configuration\n\n")
	b.WriteString("[store]\n")
	b.WriteString("# Backend: \"json\" (single file) or \"sqlite\"\n")
	fmt.Fprintf(&b, "backend = %q\n", cfg.Store.Backend)
	b.WriteString("# Store path (empty = planner.json or planner.db in the data dir)\n")
	fmt.Fprintf(&b, "path = %q\n\n", cfg.Store.Path)
	b.WriteString("[log]\n")
	b.WriteString("# Level: debug, info, warn, error\n")
	fmt.Fprintf(&b, "level = %q\n\n", cfg.Log.Level)
	b.WriteString("[watch]\n")
	b.WriteString("# How often `weekplan watch` checks for a new day\n")
	fmt.Fprintf(&b, "interval = %q\n", cfg.Watch.Interval.String())
	b.WriteString("# Quiet period before reloading changes written by another process\n")
	fmt.Fprintf(&b, "debounce = %q\n\n", cfg.Watch.Debounce.String())
	b.WriteString("[week]\n")
	b.WriteString("# Column labels, Monday first\n")
	fmt.Fprintf(&b, "labels = [%s]\n", strings.Join(labels, ", "))
	b.WriteString("# IANA timezone for \"today\" (empty = local time)\n")
	fmt.Fprintf(&b, "timezone = %q\n", cfg.Week.Timezone)
	return b.String()
}
