// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package series

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/longboxhq/longbox/internal/platform/apperr"
	"github.com/longboxhq/longbox/internal/platform/database/schema"
	"github.com/longboxhq/longbox/internal/platform/dberr"
	"github.com/longboxhq/longbox/pkg/textnorm"
)

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List scans series in series_id order, resuming strictly after afterID.
// It fetches one extra row beyond limit to learn whether more rows exist
// without issuing a count query.
func (repository *PostgresRepository) List(ctx context.Context, f Filter, afterID int64, limit int) ([]*Series, bool, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE 1=1
	`,
		schema.Series.SeriesID, schema.Series.Title, schema.Series.Publisher,
		schema.Series.SeriesGroup, schema.Series.Age,
		schema.Series.Table,
	)

	args := []any{}

	if f.Publisher != "" {
		args = append(args, f.Publisher)
		query += fmt.Sprintf(" AND %s = $%d", schema.Series.Publisher, len(args))
	}

	if f.TitleSearch != "" {
		args = append(args, "%"+textnorm.Fold(f.TitleSearch)+"%")
		query += fmt.Sprintf(" AND %s LIKE $%d", schema.Series.TitleNorm, len(args))
	}

	if afterID > 0 {
		args = append(args, afterID)
		query += fmt.Sprintf(" AND %s > $%d", schema.Series.SeriesID, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d", schema.Series.SeriesID, len(args))

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	items := []*Series{}
	for rows.Next() {
		s := &Series{}
		if err := rows.Scan(&s.SeriesID, &s.Title, &s.Publisher, &s.SeriesGroup, &s.Age); err != nil {
			return nil, false, dberr.Wrap(err, "scan_series")
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, false, dberr.Wrap(err, "list_series")
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	return items, hasMore, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, id int64) (*Series, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Series.SeriesID, schema.Series.Title, schema.Series.Publisher,
		schema.Series.SeriesGroup, schema.Series.Age,
		schema.Series.Table, schema.Series.SeriesID,
	)

	s := &Series{}
	err := repository.db.QueryRow(ctx, query, id).Scan(
		&s.SeriesID, &s.Title, &s.Publisher, &s.SeriesGroup, &s.Age,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Series")
		}
		return nil, dberr.Wrap(err, "get_series")
	}

	return s, nil
}

// Create inserts the series row. The unique primary key is the conflict
// guard: a duplicate caller-supplied identifier surfaces as SQLSTATE 23505
// and is translated here, never pre-checked.
func (repository *PostgresRepository) Create(ctx context.Context, s *Series) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.Series.Table, schema.Series.SeriesID, schema.Series.Title,
		schema.Series.TitleNorm, schema.Series.Publisher, schema.Series.SeriesGroup,
		schema.Series.Age,
	)

	titleNorm := ""
	if s.Title != nil {
		titleNorm = textnorm.Fold(*s.Title)
	}

	_, err := repository.db.Exec(ctx, query, s.SeriesID, s.Title, titleNorm, s.Publisher, s.SeriesGroup, s.Age)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict(fmt.Sprintf("Series %d already exists", s.SeriesID))
		}
		return dberr.Wrap(err, "create_series")
	}

	return nil
}

// Update applies the set fields of p in a single UPDATE statement and
// returns the resulting row. Patches to disjoint fields therefore never
// clobber each other; same-field races resolve last-writer-wins.
func (repository *PostgresRepository) Update(ctx context.Context, id int64, p Patch) (*Series, error) {
	assignments := ""
	args := []any{id}

	addAssignment := func(column string, value any) {
		args = append(args, value)
		if assignments != "" {
			assignments += ", "
		}
		assignments += column + " = $" + strconv.Itoa(len(args))
	}

	if p.Title.IsSet() {
		addAssignment(schema.Series.Title, p.Title.Ptr())

		titleNorm := ""
		if title, ok := p.Title.Value(); ok {
			titleNorm = textnorm.Fold(title)
		}
		addAssignment(schema.Series.TitleNorm, titleNorm)
	}
	if p.Publisher.IsSet() {
		addAssignment(schema.Series.Publisher, p.Publisher.Ptr())
	}
	if p.SeriesGroup.IsSet() {
		addAssignment(schema.Series.SeriesGroup, p.SeriesGroup.Ptr())
	}
	if p.Age.IsSet() {
		addAssignment(schema.Series.Age, p.Age.Ptr())
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE %s = $1
		RETURNING %s, %s, %s, %s, %s
	`,
		schema.Series.Table, assignments, schema.Series.SeriesID,
		schema.Series.SeriesID, schema.Series.Title, schema.Series.Publisher,
		schema.Series.SeriesGroup, schema.Series.Age,
	)

	s := &Series{}
	err := repository.db.QueryRow(ctx, query, args...).Scan(
		&s.SeriesID, &s.Title, &s.Publisher, &s.SeriesGroup, &s.Age,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Series")
		}
		return nil, dberr.Wrap(err, "update_series")
	}

	return s, nil
}

// Delete removes the series row and, through ON DELETE CASCADE, all of its
// issues and their copies. A missing row is not an error.
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Series.Table, schema.Series.SeriesID)

	cmd, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return false, dberr.Wrap(err, "delete_series")
	}

	return cmd.RowsAffected() > 0, nil
}
