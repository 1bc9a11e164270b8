package app

import (
	"context"
	"sync/atomic"

	"drafthours/domain/core"
	"drafthours/domain/estimate"
	"drafthours/internal"

	"golang.org/x/sync/singleflight"
)

// TableLoader produces a fresh reference table
type TableLoader interface {
	Load(ctx context.Context) (*estimate.Table, error)
}

// EstimationService serves estimates against the current reference table.
// The table is replaced only as a whole, so every estimate sees one
// consistent snapshot.
type EstimationService struct {
	loader TableLoader
	config estimate.EngineConfig
	logger *internal.Logger

	engine atomic.Pointer[estimate.Engine]
	reload singleflight.Group
}

// NewEstimationService loads the reference table once. A load failure is
// returned to the caller and is meant to stop startup.
func NewEstimationService(ctx context.Context, loader TableLoader, cfg estimate.EngineConfig, logger *internal.Logger) (*EstimationService, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &EstimationService{loader: loader, config: cfg, logger: logger}
	if _, err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Estimate runs one estimate against the current table snapshot
func (s *EstimationService) Estimate(ctx context.Context, req estimate.Request, strategy estimate.Strategy) (*estimate.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := s.engine.Load().Estimate(req, strategy)
	if err != nil {
		if core.IsValidationError(err) || core.IsLookupNotFound(err) {
			s.logger.Info("[Estimation] %s %s rejected: %v", strategy, req.DocumentType, err)
		} else {
			s.logger.Error("[Estimation] %s %s failed: %v", strategy, req.DocumentType, err)
		}
		return nil, err
	}

	s.logger.Debug("[Estimation] %s %s %s: drafting=%.2f management=%.2f total=%.2f",
		res.ID, strategy, req.DocumentType, res.DraftingHours, res.ManagementHours, res.TotalHours)
	return res, nil
}

// Table returns the current reference table snapshot
func (s *EstimationService) Table() *estimate.Table {
	return s.engine.Load().Table()
}

// Catalog returns the request choices for the configured limits
func (s *EstimationService) Catalog() estimate.Catalog {
	return estimate.NewCatalog(s.config.Limits)
}

// Reload rebuilds the table from the loader and swaps it in. Concurrent
// calls share one load. On failure the previous table stays in service.
func (s *EstimationService) Reload(ctx context.Context) (*estimate.Table, error) {
	// The shared load outlives whichever caller started it, so one caller
	// cancelling must not fail the others.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.reload.Do("reference", func() (interface{}, error) {
		table, err := s.loader.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		s.engine.Store(estimate.NewEngine(table, s.config))
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*estimate.Table), nil
}
