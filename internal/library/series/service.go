// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package series

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/longboxhq/longbox/internal/library/cache"
	"github.com/longboxhq/longbox/internal/platform/apperr"
	"github.com/longboxhq/longbox/internal/platform/constants"
	"github.com/longboxhq/longbox/internal/platform/validate"
	"github.com/longboxhq/longbox/pkg/pagination"
)

type Service struct {
	repo   Repository
	cache  cache.Store
	logger *slog.Logger
}

func NewService(repo Repository, cacheStore cache.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cacheStore,
		logger: logger,
	}
}

// List returns one page of series plus the token resuming after it.
// The token is emitted only when at least one further row exists.
func (service *Service) List(ctx context.Context, f Filter, page pagination.Params) ([]*Series, string, error) {
	fingerprint := f.Fingerprint()

	afterID := int64(0)
	if page.Token != "" {
		cursor, err := pagination.Decode(page.Token, fingerprint)
		if err != nil {
			return nil, "", apperr.InvalidCursor()
		}
		if len(cursor.Keys) != 1 {
			return nil, "", apperr.InvalidCursor()
		}
		afterID, err = strconv.ParseInt(cursor.Keys[0], 10, 64)
		if err != nil {
			return nil, "", apperr.InvalidCursor()
		}
	}

	items, hasMore, err := service.repo.List(ctx, f, afterID, page.Size)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if hasMore {
		nextToken = pagination.Encode(CursorKeys(items[len(items)-1]), fingerprint)
	}

	return items, nextToken, nil
}

// Get fetches a single series, read-through over the resource cache.
func (service *Service) Get(ctx context.Context, id int64) (*Series, error) {
	key := cacheKey(id)

	if payload, err := service.cache.Get(ctx, key); err == nil && payload != nil {
		s := &Series{}
		if err := json.Unmarshal(payload, s); err == nil {
			return s, nil
		}
	}

	s, err := service.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(s); err == nil {
		if err := service.cache.Set(ctx, key, payload, constants.ResourceCacheTTL); err != nil {
			service.logger.Debug("series_cache_set_failed", slog.Int64("series_id", id), slog.Any("error", err))
		}
	}

	return s, nil
}

// Create stores a new series under its caller-supplied identifier.
func (service *Service) Create(ctx context.Context, req CreateRequest) (*Series, error) {
	validator := &validate.Validator{}
	validator.Positive(FieldSeriesID, req.SeriesID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	s := &Series{
		SeriesID:    req.SeriesID,
		Title:       req.Title,
		Publisher:   req.Publisher,
		SeriesGroup: req.SeriesGroup,
		Age:         req.Age,
	}

	if err := service.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	service.logger.Info("series_created", slog.Int64("series_id", s.SeriesID))
	return s, nil
}

// Update applies a sparse patch. Empty patches are rejected rather than
// treated as a no-op.
func (service *Service) Update(ctx context.Context, id int64, p Patch) (*Series, error) {
	if p.IsEmpty() {
		return nil, validate.ErrEmptyPatch
	}

	s, err := service.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	service.invalidate(ctx, id)
	service.logger.Info("series_updated", slog.Int64("series_id", id))
	return s, nil
}

// Delete removes a series and cascades to its descendants. Deleting an
// absent series succeeds so that client retries stay simple.
func (service *Service) Delete(ctx context.Context, id int64) error {
	deleted, err := service.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	service.invalidate(ctx, id)

	if deleted {
		service.logger.Warn("series_deleted", slog.Int64("series_id", id))
	}
	return nil
}

// invalidate drops the cached copy of a series after a write.
func (service *Service) invalidate(ctx context.Context, id int64) {
	if err := service.cache.Delete(ctx, cacheKey(id)); err != nil {
		service.logger.Debug("series_cache_invalidate_failed", slog.Int64("series_id", id), slog.Any("error", err))
	}
}

func cacheKey(id int64) string {
	return constants.RedisPrefixSeries + strconv.FormatInt(id, 10)
}
