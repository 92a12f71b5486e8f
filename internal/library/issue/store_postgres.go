// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package issue

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
)

// PostgresRepository implements [Repository] on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func issueColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.Issue.IssueID, schema.Issue.SeriesID, schema.Issue.IssueNr,
		schema.Issue.Variant, schema.Issue.Title, schema.Issue.Subtitle,
		schema.Issue.FullTitle, schema.Issue.CoverDate, schema.Issue.CoverYear,
		schema.Issue.StoryArc,
	)
}

func scanIssue(row pgx.Row) (*Issue, error) {
	i := &Issue{}
	err := row.Scan(
		&i.IssueID, &i.SeriesID, &i.IssueNr, &i.Variant, &i.Title,
		&i.Subtitle, &i.FullTitle, &i.CoverDate, &i.CoverYear, &i.StoryArc,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// List scans issues of one series in (issue_nr, variant, issue_id) order,
// resuming strictly after the given position via a row comparison, which
// Postgres evaluates against the matching composite index.
func (repository *PostgresRepository) List(ctx context.Context, seriesID int64, f Filter, after *Position, limit int) ([]*Issue, bool, error) {
	if err := repository.ensureSeries(ctx, repository.db, seriesID); err != nil {
		return nil, false, err
	}

	args := []any{seriesID}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`, issueColumns(), schema.Issue.Table, schema.Issue.SeriesID)

	if f.StoryArc != "" {
		args = append(args, f.StoryArc)
		query += fmt.Sprintf(" AND %s = $%d", schema.Issue.StoryArc, len(args))
	}

	if after != nil {
		args = append(args, after.IssueNr, after.Variant, after.IssueID)
		query += fmt.Sprintf(" AND (%s, %s, %s) > ($%d, $%d, $%d)",
			schema.Issue.IssueNr, schema.Issue.Variant, schema.Issue.IssueID,
			len(args)-2, len(args)-1, len(args),
		)
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC, %s ASC LIMIT $%d",
		schema.Issue.IssueNr, schema.Issue.Variant, schema.Issue.IssueID, len(args),
	)

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, dberr.Wrap(err, "list_issues")
	}
	defer rows.Close()

	items := []*Issue{}
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, false, dberr.Wrap(err, "scan_issue")
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, false, dberr.Wrap(err, "list_issues")
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	return items, hasMore, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, seriesID, issueID int64) (*Issue, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`, issueColumns(), schema.Issue.Table, schema.Issue.IssueID, schema.Issue.SeriesID)

	i, err := scanIssue(repository.db.QueryRow(ctx, query, issueID, seriesID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Issue")
		}
		return nil, dberr.Wrap(err, "get_issue")
	}

	return i, nil
}

// Create inserts the issue row inside a transaction that first pins the
// parent series. The composite unique index is the conflict guard: a
// duplicate (series_id, issue_nr, variant) surfaces as SQLSTATE 23505 and
// is translated here, never pre-checked.
func (repository *PostgresRepository) Create(ctx context.Context, i *Issue) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "create_issue")
	}
	defer tx.Rollback(ctx)

	if err := repository.ensureSeries(ctx, tx, i.SeriesID); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`,
		schema.Issue.Table, schema.Issue.SeriesID, schema.Issue.IssueNr,
		schema.Issue.Variant, schema.Issue.Title, schema.Issue.Subtitle,
		schema.Issue.FullTitle, schema.Issue.CoverDate, schema.Issue.CoverYear,
		schema.Issue.StoryArc,
		schema.Issue.IssueID,
	)

	err = tx.QueryRow(ctx, query,
		i.SeriesID, i.IssueNr, i.Variant, i.Title, i.Subtitle,
		i.FullTitle, i.CoverDate, i.CoverYear, i.StoryArc,
	).Scan(&i.IssueID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Issue already exists in this series")
		}
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Series")
		}
		return dberr.Wrap(err, "create_issue")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "create_issue")
	}

	return nil
}

// Update applies the set fields of p in a single UPDATE statement and
// returns the resulting row. Moving an issue onto an occupied
// (issue_nr, variant) pair trips the unique index like a create would.
func (repository *PostgresRepository) Update(ctx context.Context, seriesID, issueID int64, p Patch) (*Issue, error) {
	assignments := ""
	args := []any{issueID, seriesID}

	addAssignment := func(column string, value any) {
		args = append(args, value)
		if assignments != "" {
			assignments += ", "
		}
		assignments += column + " = $" + strconv.Itoa(len(args))
	}

	if p.IssueNr.IsSet() {
		addAssignment(schema.Issue.IssueNr, p.IssueNr.Ptr())
	}
	if p.Variant.IsSet() {
		variant, _ := p.Variant.Value()
		addAssignment(schema.Issue.Variant, variant)
	}
	if p.Title.IsSet() {
		addAssignment(schema.Issue.Title, p.Title.Ptr())
	}
	if p.Subtitle.IsSet() {
		addAssignment(schema.Issue.Subtitle, p.Subtitle.Ptr())
	}
	if p.FullTitle.IsSet() {
		addAssignment(schema.Issue.FullTitle, p.FullTitle.Ptr())
	}
	if p.CoverDate.IsSet() {
		addAssignment(schema.Issue.CoverDate, p.CoverDate.Ptr())
	}
	if p.CoverYear.IsSet() {
		addAssignment(schema.Issue.CoverYear, p.CoverYear.Ptr())
	}
	if p.StoryArc.IsSet() {
		addAssignment(schema.Issue.StoryArc, p.StoryArc.Ptr())
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Issue.Table, assignments,
		schema.Issue.IssueID, schema.Issue.SeriesID,
		issueColumns(),
	)

	i, err := scanIssue(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Issue")
		}
		if dberr.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Issue already exists in this series")
		}
		return nil, dberr.Wrap(err, "update_issue")
	}

	return i, nil
}

// Delete removes the issue row and, through ON DELETE CASCADE, its copies.
// A missing row is not an error.
func (repository *PostgresRepository) Delete(ctx context.Context, seriesID, issueID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Issue.Table, schema.Issue.IssueID, schema.Issue.SeriesID,
	)

	cmd, err := repository.db.Exec(ctx, query, issueID, seriesID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_issue")
	}

	return cmd.RowsAffected() > 0, nil
}

// querier covers the pool and an open transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ensureSeries reports the parent series as not found when it is absent.
func (repository *PostgresRepository) ensureSeries(ctx context.Context, q querier, seriesID int64) error {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Series.Table, schema.Series.SeriesID,
	)

	var exists bool
	if err := q.QueryRow(ctx, query, seriesID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_series")
	}
	if !exists {
		return apperr.NotFound("Series")
	}

	return nil
}
