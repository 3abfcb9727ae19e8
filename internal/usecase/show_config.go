package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/weekplan/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// StoreStatus describes the snapshot backend in use.
// Fields are ordered to minimize memory padding.
type StoreStatus struct {
	UpdatedAt time.Time // Last save (zero = never saved)
	Backend   string    // json or sqlite
	Path      string    // Snapshot location (empty when the backend has none)
}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective    *domain.Config    // Merged configuration in effect
	GlobalConfig domain.ConfigInfo // Global config file info
	DataConfig   domain.ConfigInfo // Data dir config file info
	Store        StoreStatus       // Snapshot backend status
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	config        *domain.Config
	snapshots     domain.SnapshotRepository
}

// NewShowConfig creates a new ShowConfig use case.
// cfg is the configuration the application runs with.
func NewShowConfig(configManager domain.ConfigManager, cfg *domain.Config, snapshots domain.SnapshotRepository) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		config:        cfg,
		snapshots:     snapshots,
	}
}

// Execute retrieves configuration file information and the store status.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	out := &ShowConfigOutput{
		Effective:    uc.config,
		GlobalConfig: uc.configManager.GetGlobalConfigInfo(),
		DataConfig:   uc.configManager.GetDataConfigInfo(),
		Store:        StoreStatus{Backend: uc.config.Store.Backend},
	}

	if info, ok := uc.snapshots.(domain.SnapshotInfo); ok {
		updatedAt, err := info.UpdatedAt()
		if err != nil {
			return nil, fmt.Errorf("store status: %w", err)
		}
		out.Store.Path = info.Path()
		out.Store.UpdatedAt = updatedAt
	}
	return out, nil
}
