// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"io"
	"time"

	"github.com/runoshun/weekplan/internal/domain"
	"github.com/runoshun/weekplan/internal/infra/config"
	"github.com/runoshun/weekplan/internal/infra/filewatch"
	"github.com/runoshun/weekplan/internal/infra/jsonstore"
	"github.com/runoshun/weekplan/internal/infra/logging"
	"github.com/runoshun/weekplan/internal/infra/planfile"
	"github.com/runoshun/weekplan/internal/infra/sqlitestore"
	"github.com/runoshun/weekplan/internal/planner"
	"github.com/runoshun/weekplan/internal/usecase"
)

// Config holds the application configuration paths.
type Config struct {
	DataDir   string // Data directory (snapshot, logs, data dir config)
	StorePath string // Snapshot file or database
	Backend   string // Snapshot backend (json or sqlite)
}

// newConfig derives the paths for dataDir from the loaded configuration.
func newConfig(dataDir string, appConfig *domain.Config) Config {
	return Config{
		DataDir:   dataDir,
		Backend:   appConfig.Store.Backend,
		StorePath: domain.StorePath(dataDir, appConfig.Store),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Snapshots     domain.SnapshotRepository
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Codec         domain.PlanCodec
	Notifier      domain.ChangeNotifier
	Logger        domain.Logger

	// Pointer fields
	Store     *planner.Store
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container rooted at dataDir.
// An empty dataDir uses domain.DefaultDataDir.
func New(dataDir string) (*Container, error) {
	if dataDir == "" {
		dataDir = domain.DefaultDataDir()
	}

	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		// Run with defaults and surface the error as a warning.
		appConfig = domain.NewDefaultConfig()
		appConfig.Warnings = append(appConfig.Warnings, err.Error())
	}

	loc, err := appConfig.Week.Location()
	if err != nil {
		return nil, err
	}
	clock := domain.RealClock{Location: loc}

	cfg := newConfig(dataDir, appConfig)
	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	repo, closer, err := openRepository(cfg)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	c := &Container{
		Snapshots:     repo,
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(dataDir),
		Codec:         planfile.New(),
		Notifier:      filewatch.New(cfg.StorePath).WithDebounce(appConfig.Watch.Debounce),
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
		closers:       []io.Closer{logger},
	}
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	c.Store = planner.Open(repo, clock, planner.WithLogger(logger), planner.WithWeekLabels(c.WeekLabels()))
	return c, nil
}

// openRepository opens the snapshot backend selected by cfg.
// The returned closer is nil when the backend holds no resources.
func openRepository(cfg Config) (domain.SnapshotRepository, io.Closer, error) {
	switch cfg.Backend {
	case "", domain.BackendJSON:
		return jsonstore.New(cfg.StorePath), nil, nil
	case domain.BackendSQLite:
		store, err := sqlitestore.Open(cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.Backend)
	}
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// The config manager points at cfg.DataDir with no global config directory.
func NewWithDeps(cfg Config, repo domain.SnapshotRepository, clock domain.Clock, logger domain.Logger, opts ...planner.Option) *Container {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	appConfig := domain.NewDefaultConfig()
	opts = append([]planner.Option{planner.WithLogger(logger), planner.WithWeekLabels(appConfig.Week.Labels)}, opts...)
	return &Container{
		Snapshots:     repo,
		Clock:         clock,
		ConfigLoader:  config.NewLoaderWithGlobalDir(cfg.DataDir, ""),
		ConfigManager: config.NewManagerWithGlobalDir(cfg.DataDir, ""),
		Codec:         planfile.New(),
		Logger:        logger,
		AppConfig:     appConfig,
		Config:        cfg,
		Store:         planner.Open(repo, clock, opts...),
	}
}

// Close releases the resources held by the container.
func (c *Container) Close() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}

// WeekLabels returns the configured day column labels.
func (c *Container) WeekLabels() [domain.DaysInWeek]string {
	return c.AppConfig.Week.Labels
}

// WatchInterval returns the configured watcher tick interval.
func (c *Container) WatchInterval() time.Duration {
	return c.AppConfig.Watch.Interval
}

// UseCase factory methods

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Store, c.Clock)
}

// ToggleTaskUseCase returns a new ToggleTask use case.
func (c *Container) ToggleTaskUseCase() *usecase.ToggleTask {
	return usecase.NewToggleTask(c.Store)
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.Store, c.Clock)
}

// ReorderDayUseCase returns a new ReorderDay use case.
func (c *Container) ReorderDayUseCase() *usecase.ReorderDay {
	return usecase.NewReorderDay(c.Store, c.Clock)
}

// DragTaskUseCase returns a new DragTask use case.
func (c *Container) DragTaskUseCase() *usecase.DragTask {
	return usecase.NewDragTask(c.Store, c.Clock)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store, c.Clock)
}

// ShowWeekUseCase returns a new ShowWeek use case.
func (c *Container) ShowWeekUseCase() *usecase.ShowWeek {
	return usecase.NewShowWeek(c.Store, c.Clock, c.WeekLabels())
}

// ShowDayUseCase returns a new ShowDay use case.
func (c *Container) ShowDayUseCase() *usecase.ShowDay {
	return usecase.NewShowDay(c.Store, c.Clock)
}

// ShowStreakUseCase returns a new ShowStreak use case.
func (c *Container) ShowStreakUseCase() *usecase.ShowStreak {
	return usecase.NewShowStreak(c.Store, c.Clock)
}

// RunMaintenanceUseCase returns a new RunMaintenance use case.
func (c *Container) RunMaintenanceUseCase() *usecase.RunMaintenance {
	return usecase.NewRunMaintenance(c.Store, c.Clock)
}

// WatchUseCase returns a new Watch use case.
func (c *Container) WatchUseCase() *usecase.Watch {
	return usecase.NewWatch(c.Store, c.Clock, c.Notifier, c.Logger)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store, c.Codec, c.Logger)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, c.Codec, c.Clock)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.AppConfig, c.Snapshots)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
