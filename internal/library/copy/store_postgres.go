// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

package copy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

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

func copyColumns() string {
	return strings.Join(schema.Copy.Columns(), ", ")
}

func scanCopy(row pgx.Row) (*Copy, error) {
	c := &Copy{}
	err := row.Scan(
		&c.CopyID, &c.IssueID, &c.ClzComicID, &c.CustomLabel, &c.Format,
		&c.Grade, &c.GraderNotes, &c.GradingCompany, &c.RawSlabbed,
		&c.SignedBy, &c.SlabCertNumber, &c.PurchaseDate, &c.PurchasePrice,
		&c.PurchaseStore, &c.PurchaseYear, &c.DateSold, &c.PriceSold,
		&c.SoldYear, &c.MyValue, &c.CovrPriceValue, &c.Value, &c.Country,
		&c.Language, &c.Age, &c.Barcode, &c.CoverPrice, &c.PageQuality,
		&c.KeyFlag, &c.KeyCategory, &c.KeyReason, &c.LabelType,
		&c.NoOfPages, &c.VariantDescription,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// attributeValues returns the insert arguments for every column after
// copy_id and issue_id, in [schema.CopyTable.Columns] order.
func attributeValues(c *Copy) []any {
	return []any{
		c.ClzComicID, c.CustomLabel, c.Format, c.Grade, c.GraderNotes,
		c.GradingCompany, c.RawSlabbed, c.SignedBy, c.SlabCertNumber,
		c.PurchaseDate, c.PurchasePrice, c.PurchaseStore, c.PurchaseYear,
		c.DateSold, c.PriceSold, c.SoldYear, c.MyValue, c.CovrPriceValue,
		c.Value, c.Country, c.Language, c.Age, c.Barcode, c.CoverPrice,
		c.PageQuality, c.KeyFlag, c.KeyCategory, c.KeyReason, c.LabelType,
		c.NoOfPages, c.VariantDescription,
	}
}

// List scans copies of one issue in copy_id order, resuming strictly after
// afterID.
func (repository *PostgresRepository) List(ctx context.Context, issueID, afterID int64, limit int) ([]*Copy, bool, error) {
	if err := repository.ensureIssue(ctx, repository.db, issueID); err != nil {
		return nil, false, err
	}

	args := []any{issueID}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`, copyColumns(), schema.Copy.Table, schema.Copy.IssueID)

	if afterID > 0 {
		args = append(args, afterID)
		query += fmt.Sprintf(" AND %s > $%d", schema.Copy.CopyID, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d", schema.Copy.CopyID, len(args))

	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, dberr.Wrap(err, "list_copies")
	}
	defer rows.Close()

	items := []*Copy{}
	for rows.Next() {
		c, err := scanCopy(rows)
		if err != nil {
			return nil, false, dberr.Wrap(err, "scan_copy")
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, dberr.Wrap(err, "list_copies")
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	return items, hasMore, nil
}

func (repository *PostgresRepository) Get(ctx context.Context, issueID, copyID int64) (*Copy, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`, copyColumns(), schema.Copy.Table, schema.Copy.CopyID, schema.Copy.IssueID)

	c, err := scanCopy(repository.db.QueryRow(ctx, query, copyID, issueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Copy")
		}
		return nil, dberr.Wrap(err, "get_copy")
	}

	return c, nil
}

// Create inserts the copy row inside a transaction that first pins the
// parent issue. Copies carry no uniqueness constraint beyond their own
// identifier.
func (repository *PostgresRepository) Create(ctx context.Context, c *Copy) error {
	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "create_copy")
	}
	defer tx.Rollback(ctx)

	if err := repository.ensureIssue(ctx, tx, c.IssueID); err != nil {
		return err
	}

	columns := schema.Copy.Columns()[1:]
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s
	`,
		schema.Copy.Table, strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		schema.Copy.CopyID,
	)

	args := append([]any{c.IssueID}, attributeValues(c)...)
	if err := tx.QueryRow(ctx, query, args...).Scan(&c.CopyID); err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Issue")
		}
		return dberr.Wrap(err, "create_copy")
	}

	if err := tx.Commit(ctx); err != nil {
		return dberr.Wrap(err, "create_copy")
	}

	return nil
}

// Update applies the set fields of p in a single UPDATE statement and
// returns the resulting row.
func (repository *PostgresRepository) Update(ctx context.Context, issueID, copyID int64, p Patch) (*Copy, error) {
	assignments := ""
	args := []any{copyID, issueID}

	addAssignment := func(column string, value any) {
		args = append(args, value)
		if assignments != "" {
			assignments += ", "
		}
		assignments += column + " = $" + strconv.Itoa(len(args))
	}

	for _, entry := range patchEntries(p) {
		if entry.set {
			addAssignment(entry.column, entry.value)
		}
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s
		WHERE %s = $1 AND %s = $2
		RETURNING %s
	`,
		schema.Copy.Table, assignments,
		schema.Copy.CopyID, schema.Copy.IssueID,
		copyColumns(),
	)

	c, err := scanCopy(repository.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Copy")
		}
		return nil, dberr.Wrap(err, "update_copy")
	}

	return c, nil
}

// Delete removes the copy row. A missing row is not an error.
func (repository *PostgresRepository) Delete(ctx context.Context, issueID, copyID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.Copy.Table, schema.Copy.CopyID, schema.Copy.IssueID,
	)

	cmd, err := repository.db.Exec(ctx, query, copyID, issueID)
	if err != nil {
		return false, dberr.Wrap(err, "delete_copy")
	}

	return cmd.RowsAffected() > 0, nil
}

type patchEntry struct {
	column string
	set    bool
	value  any
}

// patchEntries pairs every patchable column with its state, in
// [schema.CopyTable.Columns] order.
func patchEntries(p Patch) []patchEntry {
	return []patchEntry{
		{schema.Copy.ClzComicID, p.ClzComicID.IsSet(), p.ClzComicID.Ptr()},
		{schema.Copy.CustomLabel, p.CustomLabel.IsSet(), p.CustomLabel.Ptr()},
		{schema.Copy.Format, p.Format.IsSet(), p.Format.Ptr()},
		{schema.Copy.Grade, p.Grade.IsSet(), p.Grade.Ptr()},
		{schema.Copy.GraderNotes, p.GraderNotes.IsSet(), p.GraderNotes.Ptr()},
		{schema.Copy.GradingCompany, p.GradingCompany.IsSet(), p.GradingCompany.Ptr()},
		{schema.Copy.RawSlabbed, p.RawSlabbed.IsSet(), p.RawSlabbed.Ptr()},
		{schema.Copy.SignedBy, p.SignedBy.IsSet(), p.SignedBy.Ptr()},
		{schema.Copy.SlabCertNumber, p.SlabCertNumber.IsSet(), p.SlabCertNumber.Ptr()},
		{schema.Copy.PurchaseDate, p.PurchaseDate.IsSet(), p.PurchaseDate.Ptr()},
		{schema.Copy.PurchasePrice, p.PurchasePrice.IsSet(), p.PurchasePrice.Ptr()},
		{schema.Copy.PurchaseStore, p.PurchaseStore.IsSet(), p.PurchaseStore.Ptr()},
		{schema.Copy.PurchaseYear, p.PurchaseYear.IsSet(), p.PurchaseYear.Ptr()},
		{schema.Copy.DateSold, p.DateSold.IsSet(), p.DateSold.Ptr()},
		{schema.Copy.PriceSold, p.PriceSold.IsSet(), p.PriceSold.Ptr()},
		{schema.Copy.SoldYear, p.SoldYear.IsSet(), p.SoldYear.Ptr()},
		{schema.Copy.MyValue, p.MyValue.IsSet(), p.MyValue.Ptr()},
		{schema.Copy.CovrPriceValue, p.CovrPriceValue.IsSet(), p.CovrPriceValue.Ptr()},
		{schema.Copy.Value, p.Value.IsSet(), p.Value.Ptr()},
		{schema.Copy.Country, p.Country.IsSet(), p.Country.Ptr()},
		{schema.Copy.Language, p.Language.IsSet(), p.Language.Ptr()},
		{schema.Copy.Age, p.Age.IsSet(), p.Age.Ptr()},
		{schema.Copy.Barcode, p.Barcode.IsSet(), p.Barcode.Ptr()},
		{schema.Copy.CoverPrice, p.CoverPrice.IsSet(), p.CoverPrice.Ptr()},
		{schema.Copy.PageQuality, p.PageQuality.IsSet(), p.PageQuality.Ptr()},
		{schema.Copy.KeyFlag, p.KeyFlag.IsSet(), p.KeyFlag.Ptr()},
		{schema.Copy.KeyCategory, p.KeyCategory.IsSet(), p.KeyCategory.Ptr()},
		{schema.Copy.KeyReason, p.KeyReason.IsSet(), p.KeyReason.Ptr()},
		{schema.Copy.LabelType, p.LabelType.IsSet(), p.LabelType.Ptr()},
		{schema.Copy.NoOfPages, p.NoOfPages.IsSet(), p.NoOfPages.Ptr()},
		{schema.Copy.VariantDescription, p.VariantDescription.IsSet(), p.VariantDescription.Ptr()},
	}
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ensureIssue reports the parent issue as not found when it is absent.
func (repository *PostgresRepository) ensureIssue(ctx context.Context, q querier, issueID int64) error {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`,
		schema.Issue.Table, schema.Issue.IssueID,
	)

	var exists bool
	if err := q.QueryRow(ctx, query, issueID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "check_issue")
	}
	if !exists {
		return apperr.NotFound("Issue")
	}

	return nil
}
