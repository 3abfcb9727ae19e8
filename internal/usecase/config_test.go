package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/testutil"
	"github.com/runoshun/weekplan/internal/usecase"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates data dir config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		cfg := domain.NewDefaultConfig()

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(ctx, usecase.InitConfigInput{Config: cfg})

		require.NoError(t, err)
		assert.Equal(t, "/test/data/config.toml", out.Path)
		assert.True(t, manager.InitDataCalled)
		assert.False(t, manager.InitGlobalCalled)
		assert.Same(t, cfg, manager.InitConfig)
	})

	t.Run("creates global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(ctx, usecase.InitConfigInput{Global: true, Force: true})

		require.NoError(t, err)
		assert.Equal(t, "/home/test/.config/weekplan/config.toml", out.Path)
		assert.True(t, manager.InitGlobalCalled)
		assert.True(t, manager.InitForce)
		require.NotNil(t, manager.InitConfig, "nil config falls back to defaults")
		assert.Equal(t, domain.NewDefaultConfig(), manager.InitConfig)
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitDataErr = domain.ErrConfigExists

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(ctx, usecase.InitConfigInput{})

		require.ErrorIs(t, err, domain.ErrConfigExists)
		assert.Nil(t, out)
	})
}

func TestShowConfig_Execute(t *testing.T) {
	manager := testutil.NewMockConfigManager()
	manager.GlobalConfigInfo = domain.ConfigInfo{
		Path:    "/home/test/.config/weekplan/config.toml",
		Content: "[log]\nlevel = \"debug\"\n",
		Exists:  true,
	}
	cfg := domain.NewDefaultConfig()

	uc := usecase.NewShowConfig(manager, cfg, testutil.NewMockSnapshotRepository())
	out, err := uc.Execute(ctx, usecase.ShowConfigInput{})

	require.NoError(t, err)
	assert.Same(t, cfg, out.Effective)
	assert.True(t, out.GlobalConfig.Exists)
	assert.Contains(t, out.GlobalConfig.Content, "debug")
	assert.False(t, out.DataConfig.Exists)
	assert.Equal(t, "/test/data/config.toml", out.DataConfig.Path)
	assert.Equal(t, usecase.StoreStatus{Backend: domain.BackendJSON}, out.Store, "repository without location")
}

func TestShowConfig_Execute_StoreStatus(t *testing.T) {
	savedAt := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	repo := &testutil.MockSnapshotInfoRepository{FilePath: "/test/data/planner.json", UpdatedAtTime: savedAt}

	uc := usecase.NewShowConfig(testutil.NewMockConfigManager(), domain.NewDefaultConfig(), repo)
	out, err := uc.Execute(ctx, usecase.ShowConfigInput{})

	require.NoError(t, err)
	assert.Equal(t, "/test/data/planner.json", out.Store.Path)
	assert.Equal(t, savedAt, out.Store.UpdatedAt)

	repo.UpdatedAtErr = errors.New("disk gone")
	_, err = uc.Execute(ctx, usecase.ShowConfigInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store status")
}
