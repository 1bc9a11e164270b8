package container

import (
	"context"
	"fmt"

	"drafthours/adapters/excel"
	"drafthours/adapters/postgres"
	"drafthours/app"
	"drafthours/domain/estimate"
	"drafthours/internal"
	"drafthours/internal/config"
	"drafthours/ports"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB            *sqlx.DB
	ReferenceRepo ports.ReferenceStore

	// Estimation
	Sources    []ports.ReferenceSource
	Loader     *app.ReferenceLoader
	Estimation *app.EstimationService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// DefaultLogger was built before .env was read; adapters that log
	// through it follow the configured level from here on.
	logger := internal.DefaultLogger
	if level, ok := internal.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	return &Container{Config: cfg, Logger: logger}, nil
}

// Build creates a container with the database (when configured) and the
// estimation service initialized
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Reference.Source == config.SourceDatabase {
		if err := c.InitWithDatabase(ctx); err != nil {
			return nil, err
		}
	}

	if err := c.InitEstimation(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, err
	}
	return c, nil
}

// InitWithDatabase opens the configured database and its repositories
func (c *Container) InitWithDatabase(ctx context.Context) error {
	db, err := postgres.Open(ctx, c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	c.DB = db
	c.ReferenceRepo = postgres.NewReferenceRepository(db)
	c.Logger.Info("[Container] database initialized (%s)", c.Config.Database.Driver)
	return nil
}

// EngineConfig builds the estimation policies from configuration
func (c *Container) EngineConfig() estimate.EngineConfig {
	cfg := estimate.DefaultEngineConfig()
	cfg.Limits = estimate.Limits{
		MaxRevisions:      c.Config.Estimation.MaxRevisions,
		MaxDurationMonths: c.Config.Estimation.MaxDurationMonths,
	}
	if c.Config.Estimation.PFDStandardClass != "" {
		cfg.PFDStandardClass = estimate.ComplexityClass(c.Config.Estimation.PFDStandardClass)
	}
	return cfg
}

// InitEstimation builds the reference sources, loads the table and starts
// the estimation service. A table that cannot be loaded fails startup.
func (c *Container) InitEstimation(ctx context.Context) error {
	switch c.Config.Reference.Source {
	case config.SourceDatabase:
		if c.ReferenceRepo == nil {
			return fmt.Errorf("database reference source requires InitWithDatabase")
		}
		c.Sources = []ports.ReferenceSource{c.ReferenceRepo}
	default:
		c.Sources = FileSources(c.Config.Reference)
	}

	c.Loader = app.NewReferenceLoader(c.Logger, c.Sources...)

	svc, err := app.NewEstimationService(ctx, c.Loader, c.EngineConfig(), c.Logger)
	if err != nil {
		return fmt.Errorf("failed to load reference table: %w", err)
	}
	c.Estimation = svc
	return nil
}

// FileSources returns one spreadsheet source per configured file
func FileSources(cfg config.ReferenceConfig) []ports.ReferenceSource {
	sources := make([]ports.ReferenceSource, 0, len(cfg.Files))
	for _, f := range cfg.Files {
		sources = append(sources, excel.NewReferenceSource(excel.ExcelConfig{FilePath: f, Sheet: cfg.Sheet}))
	}
	return sources
}

// Shutdown closes the database connection, if any
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
