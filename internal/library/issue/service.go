// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package issue

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
	"github.com/longboxhq/longbox/pkg/pointer"
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

// List returns one page of a series' issues plus the token resuming after
// it.
func (service *Service) List(ctx context.Context, seriesID int64, f Filter, page pagination.Params) ([]*Issue, string, error) {
	fingerprint := f.Fingerprint(seriesID)

	var after *Position
	if page.Token != "" {
		cursor, err := pagination.Decode(page.Token, fingerprint)
		if err != nil {
			return nil, "", apperr.InvalidCursor()
		}
		if len(cursor.Keys) != 3 {
			return nil, "", apperr.InvalidCursor()
		}
		issueID, err := strconv.ParseInt(cursor.Keys[2], 10, 64)
		if err != nil {
			return nil, "", apperr.InvalidCursor()
		}
		after = &Position{
			IssueNr: cursor.Keys[0],
			Variant: cursor.Keys[1],
			IssueID: issueID,
		}
	}

	items, hasMore, err := service.repo.List(ctx, seriesID, f, after, page.Size)
	if err != nil {
		return nil, "", err
	}

	nextToken := ""
	if hasMore {
		nextToken = pagination.Encode(CursorKeys(items[len(items)-1]), fingerprint)
	}

	return items, nextToken, nil
}

// Get fetches a single issue, read-through over the resource cache. The key
// carries both identifiers so a wrong series/issue pair can never hit.
func (service *Service) Get(ctx context.Context, seriesID, issueID int64) (*Issue, error) {
	key := cacheKey(seriesID, issueID)

	if payload, err := service.cache.Get(ctx, key); err == nil && payload != nil {
		i := &Issue{}
		if err := json.Unmarshal(payload, i); err == nil {
			return i, nil
		}
	}

	i, err := service.repo.Get(ctx, seriesID, issueID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(i); err == nil {
		if err := service.cache.Set(ctx, key, payload, constants.ResourceCacheTTL); err != nil {
			service.logger.Debug("issue_cache_set_failed", slog.Int64("issue_id", issueID), slog.Any("error", err))
		}
	}

	return i, nil
}

// Create stores a new issue under the series. An absent or null variant
// designates the base printing and collapses to "".
func (service *Service) Create(ctx context.Context, seriesID int64, req CreateRequest) (*Issue, error) {
	validator := &validate.Validator{}
	validator.Positive("series_id", seriesID)
	validator.Required(FieldIssueNr, req.IssueNr)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	i := &Issue{
		SeriesID:  seriesID,
		IssueNr:   req.IssueNr,
		Variant:   pointer.Val(req.Variant),
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		FullTitle: req.FullTitle,
		CoverDate: req.CoverDate,
		CoverYear: req.CoverYear,
		StoryArc:  req.StoryArc,
	}

	if err := service.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	service.logger.Info("issue_created",
		slog.Int64("series_id", i.SeriesID),
		slog.Int64("issue_id", i.IssueID),
		slog.String("issue_nr", i.IssueNr),
	)
	return i, nil
}

// Update applies a sparse patch. A null issue_nr is rejected because every
// issue carries a number; a null variant collapses to the base printing.
func (service *Service) Update(ctx context.Context, seriesID, issueID int64, p Patch) (*Issue, error) {
	if p.IsEmpty() {
		return nil, validate.ErrEmptyPatch
	}
	if p.IssueNr.IsNull() {
		return nil, validate.RequiredError(FieldIssueNr, "Must not be null")
	}

	i, err := service.repo.Update(ctx, seriesID, issueID, p)
	if err != nil {
		return nil, err
	}

	service.invalidate(ctx, seriesID, issueID)
	service.logger.Info("issue_updated",
		slog.Int64("series_id", seriesID),
		slog.Int64("issue_id", issueID),
	)
	return i, nil
}

// Delete removes an issue and cascades to its copies. Deleting an absent
// issue succeeds.
func (service *Service) Delete(ctx context.Context, seriesID, issueID int64) error {
	deleted, err := service.repo.Delete(ctx, seriesID, issueID)
	if err != nil {
		return err
	}

	service.invalidate(ctx, seriesID, issueID)

	if deleted {
		service.logger.Warn("issue_deleted",
			slog.Int64("series_id", seriesID),
			slog.Int64("issue_id", issueID),
		)
	}
	return nil
}

// invalidate drops the cached copy of an issue after a write.
func (service *Service) invalidate(ctx context.Context, seriesID, issueID int64) {
	if err := service.cache.Delete(ctx, cacheKey(seriesID, issueID)); err != nil {
		service.logger.Debug("issue_cache_invalidate_failed", slog.Int64("issue_id", issueID), slog.Any("error", err))
	}
}

func cacheKey(seriesID, issueID int64) string {
	return constants.RedisPrefixIssue + strconv.FormatInt(seriesID, 10) + ":" + strconv.FormatInt(issueID, 10)
}
