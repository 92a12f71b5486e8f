// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package series_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longboxhq/longbox/internal/library/series"
	"github.com/longboxhq/longbox/internal/platform/apperr"
	"github.com/longboxhq/longbox/pkg/pagination"
	"github.com/longboxhq/longbox/pkg/patch"
	"github.com/longboxhq/longbox/pkg/pointer"
)

// fakeRepository keeps series in a map and reimplements the keyset listing
// contract in memory.
type fakeRepository struct {
	rows    map[int64]*series.Series
	getHits int
}

func newFakeRepository(rows ...*series.Series) *fakeRepository {
	repo := &fakeRepository{rows: make(map[int64]*series.Series)}
	for _, row := range rows {
		copied := *row
		repo.rows[row.SeriesID] = &copied
	}
	return repo
}

func (r *fakeRepository) List(_ context.Context, f series.Filter, afterID int64, limit int) ([]*series.Series, bool, error) {
	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		if id <= afterID {
			continue
		}
		s := r.rows[id]
		if f.Publisher != "" && (s.Publisher == nil || *s.Publisher != f.Publisher) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	hasMore := len(ids) > limit
	if hasMore {
		ids = ids[:limit]
	}

	items := make([]*series.Series, 0, len(ids))
	for _, id := range ids {
		copied := *r.rows[id]
		items = append(items, &copied)
	}
	return items, hasMore, nil
}

func (r *fakeRepository) Get(_ context.Context, id int64) (*series.Series, error) {
	r.getHits++
	s, ok := r.rows[id]
	if !ok {
		return nil, apperr.NotFound("Series")
	}
	copied := *s
	return &copied, nil
}

func (r *fakeRepository) Create(_ context.Context, s *series.Series) error {
	if _, ok := r.rows[s.SeriesID]; ok {
		return apperr.Conflict("Series already exists")
	}
	copied := *s
	r.rows[s.SeriesID] = &copied
	return nil
}

func (r *fakeRepository) Update(_ context.Context, id int64, p series.Patch) (*series.Series, error) {
	s, ok := r.rows[id]
	if !ok {
		return nil, apperr.NotFound("Series")
	}
	applyField(&s.Title, p.Title)
	applyField(&s.Publisher, p.Publisher)
	applyField(&s.SeriesGroup, p.SeriesGroup)
	applyField(&s.Age, p.Age)
	copied := *s
	return &copied, nil
}

func (r *fakeRepository) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func applyField(dst **string, f patch.Field[string]) {
	if !f.IsSet() {
		return
	}
	*dst = f.Ptr()
}

// fakeCache is an in-memory cache.Store.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func newService(repo *fakeRepository) (*series.Service, *fakeCache) {
	c := newFakeCache()
	return series.NewService(repo, c, slog.New(slog.NewTextHandler(io.Discard, nil))), c
}

func seedSeries(ids ...int64) []*series.Series {
	rows := make([]*series.Series, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, &series.Series{SeriesID: id, Title: pointer.To("Series")})
	}
	return rows
}

/*
TestService_List_Pagination walks an entire collection one item per page and
verifies the union of all pages equals the collection with no duplicates.
*/
func TestService_List_Pagination(t *testing.T) {
	repo := newFakeRepository(seedSeries(10, 20, 30, 40, 50)...)
	service, _ := newService(repo)

	seen := make([]int64, 0, 5)
	token := ""
	pages := 0

	for {
		items, nextToken, err := service.List(context.Background(), series.Filter{}, pagination.Params{Size: 2, Token: token})
		require.NoError(t, err)
		pages++

		for _, item := range items {
			seen = append(seen, item.SeriesID)
		}
		if nextToken == "" {
			break
		}
		token = nextToken
	}

	assert.Equal(t, 3, pages)
	assert.Equal(t, []int64{10, 20, 30, 40, 50}, seen)
}

/*
TestService_List_ExactFit checks that a page holding the final row does not
emit a resume token.
*/
func TestService_List_ExactFit(t *testing.T) {
	repo := newFakeRepository(seedSeries(1, 2)...)
	service, _ := newService(repo)

	items, nextToken, err := service.List(context.Background(), series.Filter{}, pagination.Params{Size: 2, Token: ""})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Empty(t, nextToken)
}

/*
TestService_List_InvalidToken covers malformed tokens and tokens replayed
under a different filter. Both are client errors, not empty pages.
*/
func TestService_List_InvalidToken(t *testing.T) {
	repo := newFakeRepository(seedSeries(1, 2, 3)...)
	service, _ := newService(repo)

	t.Run("garbage_token", func(t *testing.T) {
		_, _, err := service.List(context.Background(), series.Filter{}, pagination.Params{Size: 2, Token: "not-a-token"})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_CURSOR", ae.Code)
	})

	t.Run("token_from_other_filter", func(t *testing.T) {
		filtered := series.Filter{Publisher: "Marvel"}
		token := pagination.Encode([]string{"1"}, series.Filter{}.Fingerprint())

		_, _, err := service.List(context.Background(), filtered, pagination.Params{Size: 2, Token: token})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_CURSOR", ae.Code)
	})

	t.Run("non_numeric_key", func(t *testing.T) {
		token := pagination.Encode([]string{"abc"}, series.Filter{}.Fingerprint())

		_, _, err := service.List(context.Background(), series.Filter{}, pagination.Params{Size: 2, Token: token})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_CURSOR", ae.Code)
	})
}

/*
TestService_Create validates identifier handling on creation.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service, _ := newService(repo)

	t.Run("valid", func(t *testing.T) {
		created, err := service.Create(context.Background(), series.CreateRequest{
			SeriesID:  42,
			Title:     pointer.To("Saga"),
			Publisher: pointer.To("Image"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), created.SeriesID)
	})

	t.Run("non_positive_id", func(t *testing.T) {
		_, err := service.Create(context.Background(), series.CreateRequest{SeriesID: 0})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("duplicate_id", func(t *testing.T) {
		_, err := service.Create(context.Background(), series.CreateRequest{SeriesID: 42})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})
}

/*
TestService_Update covers sparse patch semantics: untouched fields survive,
explicit nulls clear, and an empty patch is rejected.
*/
func TestService_Update(t *testing.T) {
	base := &series.Series{
		SeriesID:  7,
		Title:     pointer.To("Saga"),
		Publisher: pointer.To("Image"),
		Age:       pointer.To("Modern"),
	}

	t.Run("sparse_fields_survive", func(t *testing.T) {
		repo := newFakeRepository(base)
		service, _ := newService(repo)

		updated, err := service.Update(context.Background(), 7, series.Patch{
			Title: patch.Set("Saga, Volume 2"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Saga, Volume 2", *updated.Title)
		assert.Equal(t, "Image", *updated.Publisher)
		assert.Equal(t, "Modern", *updated.Age)
	})

	t.Run("explicit_null_clears", func(t *testing.T) {
		repo := newFakeRepository(base)
		service, _ := newService(repo)

		updated, err := service.Update(context.Background(), 7, series.Patch{
			Age: patch.Null[string](),
		})
		require.NoError(t, err)
		assert.Nil(t, updated.Age)
		assert.Equal(t, "Saga", *updated.Title)
	})

	t.Run("empty_patch_rejected", func(t *testing.T) {
		repo := newFakeRepository(base)
		service, _ := newService(repo)

		_, err := service.Update(context.Background(), 7, series.Patch{})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("missing_series", func(t *testing.T) {
		repo := newFakeRepository(base)
		service, _ := newService(repo)

		_, err := service.Update(context.Background(), 999, series.Patch{Title: patch.Set("x")})
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})
}

/*
TestService_Delete_Idempotent verifies that deleting twice, or deleting a
series that never existed, still succeeds.
*/
func TestService_Delete_Idempotent(t *testing.T) {
	repo := newFakeRepository(seedSeries(5)...)
	service, _ := newService(repo)

	require.NoError(t, service.Delete(context.Background(), 5))
	require.NoError(t, service.Delete(context.Background(), 5))
	require.NoError(t, service.Delete(context.Background(), 404))

	_, err := service.Get(context.Background(), 5)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Get_CacheReadThrough checks that a second read is served from the
cache and that updates invalidate the cached entry.
*/
func TestService_Get_CacheReadThrough(t *testing.T) {
	repo := newFakeRepository(seedSeries(9)...)
	service, _ := newService(repo)

	_, err := service.Get(context.Background(), 9)
	require.NoError(t, err)
	_, err = service.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getHits)

	_, err = service.Update(context.Background(), 9, series.Patch{Title: patch.Set("Renamed")})
	require.NoError(t, err)

	refreshed, err := service.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", *refreshed.Title)
	assert.Equal(t, 2, repo.getHits)
}
