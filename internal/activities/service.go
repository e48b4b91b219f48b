// Package activities serves the activity classification: flat listing, tree view and subtree closure.
package activities

import (
	"context"

	"go.uber.org/zap"

	"github.com/geo-directory/backend/internal/metrics"
	"github.com/geo-directory/backend/internal/models"
	"github.com/geo-directory/backend/internal/pagination"
)

// Store captures the read operations the service needs from persistence.
type Store interface {
	List(ctx context.Context, p pagination.Params, maxDepth int) (models.Page[models.Activity], error)
	ListAll(ctx context.Context, maxDepth int) ([]models.Activity, error)
	SubtreeIDs(ctx context.Context, rootID int64, maxDepth int) ([]int64, error)
}

// Service orchestrates activity queries.
type Service struct {
	store  Store
	cache  TreeCache
	logger *zap.Logger
}

// NewService creates an activities service. A nil cache disables tree caching.
func NewService(store Store, cache TreeCache, logger *zap.Logger) *Service {
	if cache == nil {
		cache = NoopTreeCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, cache: cache, logger: logger}
}

// ClampDepth bounds a depth ceiling to [1, MaxActivityDepth].
func ClampDepth(maxDepth int) int {
	if maxDepth < 1 {
		return 1
	}
	if maxDepth > models.MaxActivityDepth {
		return models.MaxActivityDepth
	}
	return maxDepth
}

// List returns a page of activities no deeper than maxDepth.
func (s *Service) List(ctx context.Context, p pagination.Params, maxDepth int) (models.Page[models.Activity], error) {
	return s.store.List(ctx, p, ClampDepth(maxDepth))
}

// Tree returns the activity forest no deeper than maxDepth.
func (s *Service) Tree(ctx context.Context, maxDepth int) ([]models.ActivityNode, error) {
	maxDepth = ClampDepth(maxDepth)

	tree, ok, err := s.cache.GetTree(ctx, maxDepth)
	switch {
	case err != nil:
		metrics.TreeCacheErrors.Inc()
		s.logger.Warn("activity tree cache read failed", zap.Int("max_depth", maxDepth), zap.Error(err))
	case ok:
		metrics.TreeCacheHits.Inc()
		return tree, nil
	default:
		metrics.TreeCacheMisses.Inc()
	}

	rows, err := s.store.ListAll(ctx, maxDepth)
	if err != nil {
		return nil, err
	}
	tree = BuildTree(rows)

	if err := s.cache.SetTree(ctx, maxDepth, tree); err != nil {
		metrics.TreeCacheErrors.Inc()
		s.logger.Warn("activity tree cache write failed", zap.Int("max_depth", maxDepth), zap.Error(err))
	}
	return tree, nil
}

// SubtreeIDs returns rootID plus its descendants no deeper than maxDepth.
func (s *Service) SubtreeIDs(ctx context.Context, rootID int64, maxDepth int) ([]int64, error) {
	return s.store.SubtreeIDs(ctx, rootID, ClampDepth(maxDepth))
}
