package domain

import (
	"os"
	"path/filepath"
)

// AppName is used for directory names under XDG base directories.
const AppName = "weekplan"

// DataDirEnv overrides the data directory.
const DataDirEnv = "WEEKPLAN_DIR"

// DefaultDataDir returns the data directory: $WEEKPLAN_DIR, else
// $XDG_DATA_HOME/weekplan, else ~/.local/share/weekplan.
func DefaultDataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName)
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppName)
}

// JSONStorePath returns the default JSON snapshot path.
func JSONStorePath(dataDir string) string {
	return filepath.Join(dataDir, "planner.json")
}

// SQLiteStorePath returns the default SQLite database path.
func SQLiteStorePath(dataDir string) string {
	return filepath.Join(dataDir, "planner.db")
}

// LogPath returns the path to the log file.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "weekplan.log")
}

// StorePath returns the snapshot location for cfg, applying defaults.
func StorePath(dataDir string, cfg StoreConfig) string {
	if cfg.Path != "" {
		return cfg.Path
	}
	if cfg.Backend == BackendSQLite {
		return SQLiteStorePath(dataDir)
	}
	return JSONStorePath(dataDir)
}
