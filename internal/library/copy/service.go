// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package copy

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

// List returns one page of an issue's copies plus the token resuming after
// it.
func (service *Service) List(ctx context.Context, issueID int64, page pagination.Params) ([]*Copy, string, error) {
	fingerprint := Fingerprint(issueID)

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

	items, hasMore, err := service.repo.List(ctx, issueID, afterID, page.Size)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if hasMore {
		nextToken = pagination.Encode(CursorKeys(items[len(items)-1]), fingerprint)
	}

	return items, nextToken, nil
}

// Get fetches a single copy, read-through over the resource cache. The key
// carries both identifiers so a wrong issue/copy pair can never hit.
func (service *Service) Get(ctx context.Context, issueID, copyID int64) (*Copy, error) {
	key := cacheKey(issueID, copyID)

	if payload, err := service.cache.Get(ctx, key); err == nil && payload != nil {
		c := &Copy{}
		if err := json.Unmarshal(payload, c); err == nil {
			return c, nil
		}
	}

	c, err := service.repo.Get(ctx, issueID, copyID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(c); err == nil {
		if err := service.cache.Set(ctx, key, payload, constants.ResourceCacheTTL); err != nil {
			service.logger.Debug("copy_cache_set_failed", slog.Int64("copy_id", copyID), slog.Any("error", err))
		}
	}

	return c, nil
}

// Create records a new owned copy of the issue. All attributes are
// optional.
func (service *Service) Create(ctx context.Context, issueID int64, req CreateRequest) (*Copy, error) {
	validator := &validate.Validator{}
	validator.Positive("issue_id", issueID)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	c := &Copy{
		IssueID:    issueID,
		Attributes: req.Attributes,
	}

	if err := service.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	service.logger.Info("copy_created",
		slog.Int64("issue_id", c.IssueID),
		slog.Int64("copy_id", c.CopyID),
	)
	return c, nil
}

// Update applies a sparse patch. Every attribute is nullable, so explicit
// nulls simply clear columns.
func (service *Service) Update(ctx context.Context, issueID, copyID int64, p Patch) (*Copy, error) {
	if p.IsEmpty() {
		return nil, validate.ErrEmptyPatch
	}

	c, err := service.repo.Update(ctx, issueID, copyID, p)
	if err != nil {
		return nil, err
	}

	service.invalidate(ctx, issueID, copyID)
	service.logger.Info("copy_updated",
		slog.Int64("issue_id", issueID),
		slog.Int64("copy_id", copyID),
	)
	return c, nil
}

// Delete removes a copy. Deleting an absent copy succeeds.
func (service *Service) Delete(ctx context.Context, issueID, copyID int64) error {
	deleted, err := service.repo.Delete(ctx, issueID, copyID)
	if err != nil {
		return err
	}

	service.invalidate(ctx, issueID, copyID)

	if deleted {
		service.logger.Warn("copy_deleted",
			slog.Int64("issue_id", issueID),
			slog.Int64("copy_id", copyID),
		)
	}
	return nil
}

// invalidate drops the cached copy record after a write.
func (service *Service) invalidate(ctx context.Context, issueID, copyID int64) {
	if err := service.cache.Delete(ctx, cacheKey(issueID, copyID)); err != nil {
		service.logger.Debug("copy_cache_invalidate_failed", slog.Int64("copy_id", copyID), slog.Any("error", err))
	}
}

func cacheKey(issueID, copyID int64) string {
	return constants.RedisPrefixCopy + strconv.FormatInt(issueID, 10) + ":" + strconv.FormatInt(copyID, 10)
}
