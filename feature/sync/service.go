package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"

	"catalog-sync/core/source"

	"go.uber.org/zap"
)

// ErrPassInProgress is returned when a sync pass is requested while another
// one is still running. Passes are single-flight by design: the engine and
// cache assume one sequential worker.
var ErrPassInProgress = errors.New("sync: a pass is already in progress")

// Service owns the sync engine, its caches and the pass lifecycle.
type Service struct {
	src    source.Client
	engine *Engine
	cache  *IdentityCache
	assets *AssetCache
	logger *zap.Logger

	mu      gosync.Mutex
	running bool
	last    *Summary
}

// NewService creates the sync service.
func NewService(src source.Client, engine *Engine, cache *IdentityCache, assets *AssetCache, logger *zap.Logger) *Service {
	return &Service{
		src:    src,
		engine: engine,
		cache:  cache,
		assets: assets,
		logger: logger,
	}
}

// RunPass lists the full source catalog and reconciles every record. The
// caches are read once at pass start and persisted by the engine at the end.
// Only a failure to list the source aborts a pass; record failures are
// counted in the summary.
func (s *Service) RunPass(ctx context.Context, opts Options) (*Summary, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrPassInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	products, err := s.src.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list source catalog: %w", err)
	}
	s.logger.Info("Starting sync pass",
		zap.Int("products", len(products)), zap.Bool("dry_run", opts.DryRun))

	s.cache.Load(ctx)
	s.assets.Load(ctx)

	summary := s.engine.Run(ctx, products, opts)

	s.mu.Lock()
	s.last = summary
	s.mu.Unlock()

	s.logger.Info("Sync pass finished",
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("sold", summary.Sold),
		zap.Int("skipped", summary.Skipped),
		zap.Int("skipped_missing", summary.SkippedMissing),
		zap.Int("swept", summary.Swept),
		zap.Int("errors", summary.Errors))

	return summary, nil
}

// Status reports whether a pass is running and the last finished summary.
func (s *Service) Status() (bool, *Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running, s.last
}

// CacheStats loads the persisted documents and returns their entry counts.
func (s *Service) CacheStats(ctx context.Context) (records, assets int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return 0, 0, ErrPassInProgress
	}
	s.cache.Load(ctx)
	s.assets.Load(ctx)
	return s.cache.Len(), s.assets.Len(), nil
}

// ResetState clears both persisted caches. This is always safe: the next pass
// falls back to duplicate-avoidance scans and remote dedup checks.
func (s *Service) ResetState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return ErrPassInProgress
	}
	s.cache.Clear()
	s.assets.Clear()
	s.cache.Save(ctx)
	s.assets.Save(ctx)
	s.logger.Info("Sync state reset")
	return nil
}
