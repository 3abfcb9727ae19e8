// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/weekplan/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/weekplan)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration (global + data dir).
// Data dir config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	// Load global config first
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Load data dir config
	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Values of the wrong type are ignored with a warning; unset values stay zero.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					if s, ok := v.(string); ok {
						res.Store.Backend = s
					}
				case "path":
					if s, ok := v.(string); ok {
						res.Store.Path = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "watch":
			for k, v := range m {
				switch k {
				case "interval":
					d, err := parseInterval(v)
					if err != nil {
						warnings = append(warnings, fmt.Sprintf("invalid [watch].interval: %v", err))
						continue
					}
					res.Watch.Interval = d
				case "debounce":
					d, err := parseInterval(v)
					if err != nil {
						warnings = append(warnings, fmt.Sprintf("invalid [watch].debounce: %v", err))
						continue
					}
					res.Watch.Debounce = d
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [watch]: %s", k))
				}
			}
		case "week":
			for k, v := range m {
				switch k {
				case "timezone":
					if s, ok := v.(string); ok {
						res.Week.Timezone = s
					}
				case "labels":
					labels, ok := parseLabels(v)
					if !ok {
						warnings = append(warnings, fmt.Sprintf("invalid [week].labels: want %d strings", domain.DaysInWeek))
						continue
					}
					res.Week.Labels = labels
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [week]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseInterval accepts a Go duration string ("90s", "5m") or whole seconds.
func parseInterval(v any) (time.Duration, error) {
	var d time.Duration
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return 0, err
		}
		d = parsed
	case int64:
		d = time.Duration(x) * time.Second
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}

func parseLabels(v any) ([domain.DaysInWeek]string, bool) {
	var labels [domain.DaysInWeek]string
	list, ok := v.([]any)
	if !ok || len(list) != domain.DaysInWeek {
		return labels, false
	}
	for i, item := range list {
		s, ok := item.(string)
		if !ok || s == "" {
			return labels, false
		}
		labels[i] = s
	}
	return labels, true
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Store:    base.Store,
		Log:      base.Log,
		Watch:    base.Watch,
		Week:     base.Week,
		Warnings: slices.Concat(base.Warnings, override.Warnings),
	}

	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Watch.Interval > 0 {
		result.Watch.Interval = override.Watch.Interval
	}
	if override.Watch.Debounce > 0 {
		result.Watch.Debounce = override.Watch.Debounce
	}
	if override.Week.Timezone != "" {
		result.Week.Timezone = override.Week.Timezone
	}
	if override.Week.Labels[0] != "" {
		result.Week.Labels = override.Week.Labels
	}

	return result
}
