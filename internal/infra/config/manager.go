// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/weekplan/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/weekplan)
}

// NewManager creates a new Manager.
func NewManager(dataDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(dataDir, globalConfDir string) *Manager {
	return &Manager{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// GetDataConfigInfo returns information about the data dir config file.
func (m *Manager) GetDataConfigInfo() domain.ConfigInfo {
	return m.getConfigInfo(filepath.Join(m.dataDir, domain.ConfigFileName))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitDataConfig writes a config template into the data dir and returns its path.
func (m *Manager) InitDataConfig(cfg *domain.Config, force bool) (string, error) {
	return m.initConfig(m.dataDir, cfg, force)
}

// InitGlobalConfig writes a config template into the global config dir and returns its path.
func (m *Manager) InitGlobalConfig(cfg *domain.Config, force bool) (string, error) {
	if m.globalConfDir == "" {
		return "", errors.New("global config directory not available")
	}
	return m.initConfig(m.globalConfDir, cfg, force)
}

// initConfig creates a config file rendered from cfg.
// An existing file is kept unless force is set.
func (m *Manager) initConfig(dir string, cfg *domain.Config, force bool) (string, error) {
	path := filepath.Join(dir, domain.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !force {
		return path, domain.ErrConfigExists
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}

	content := domain.RenderConfigTemplate(cfg)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return path, fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
