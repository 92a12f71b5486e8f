// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

// Command import loads a CLZ comic collection CSV export into the library
// tables.
//
// The export is flat: one row per owned copy, with the series and issue
// attributes repeated on every row. The loader deduplicates upward —
// distinct series first, then distinct (series, issue_nr, variant) issues,
// then every row as a copy — inside a single transaction, so a partially
// imported library never becomes visible. A duplicate issue key in the
// export aborts the whole load.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/longboxhq/longbox/internal/platform/config"
	"github.com/longboxhq/longbox/internal/platform/constants"
	"github.com/longboxhq/longbox/internal/platform/database/schema"
	"github.com/longboxhq/longbox/internal/platform/migration"
	pgstore "github.com/longboxhq/longbox/internal/platform/postgres"
	"github.com/longboxhq/longbox/pkg/textnorm"
)

func main() {
	csvPath := flag.String("csv", "./data/clz_export.csv", "path to the CLZ CSV export")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", constants.AppName))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	rows, err := readExport(*csvPath)
	must(log, err, "read csv export")
	log.Info("export_loaded", slog.String("path", *csvPath), slog.Int("rows", len(rows)))

	stats, err := load(ctx, pool, rows)
	must(log, err, "load library")

	log.Info("import_finished",
		slog.Int("series", stats.series),
		slog.Int("issues", stats.issues),
		slog.Int("copies", stats.copies),
	)
}

// exportRow is one CSV record keyed by header name.
type exportRow map[string]string

// readExport parses the CSV file into header-keyed rows.
func readExport(path string) ([]exportRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := []exportRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := exportRow{}
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = strings.TrimSpace(value)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

type loadStats struct {
	series int
	issues int
	copies int
}

type issueKey struct {
	seriesID int64
	issueNr  string
	variant  string
}

// load inserts the whole export in one transaction.
func load(ctx context.Context, pool *pgxpool.Pool, rows []exportRow) (loadStats, error) {
	stats := loadStats{}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return stats, err
	}
	defer tx.Rollback(ctx)

	seenSeries := map[int64]bool{}
	issueIDs := map[issueKey]int64{}

	for _, row := range rows {
		seriesID, err := strconv.ParseInt(row["Core SeriesID"], 10, 64)
		if err != nil {
			return stats, fmt.Errorf("parse Core SeriesID %q: %w", row["Core SeriesID"], err)
		}

		if !seenSeries[seriesID] {
			if err := insertSeries(ctx, tx, seriesID, row); err != nil {
				return stats, fmt.Errorf("series %d: %w", seriesID, err)
			}
			seenSeries[seriesID] = true
			stats.series++
		}

		key := issueKey{
			seriesID: seriesID,
			issueNr:  normalizeIssueNr(row["Issue Nr"]),
			variant:  row["Variant"],
		}
		issueID, ok := issueIDs[key]
		if !ok {
			issueID, err = insertIssue(ctx, tx, key, row)
			if err != nil {
				return stats, fmt.Errorf("issue %d/%s/%s: %w", key.seriesID, key.issueNr, key.variant, err)
			}
			issueIDs[key] = issueID
			stats.issues++
		}

		if err := insertCopy(ctx, tx, issueID, row); err != nil {
			return stats, fmt.Errorf("copy for issue %d: %w", issueID, err)
		}
		stats.copies++
	}

	if err := tx.Commit(ctx); err != nil {
		return stats, err
	}

	return stats, nil
}

func insertSeries(ctx context.Context, tx pgx.Tx, seriesID int64, row exportRow) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		schema.Series.Table, schema.Series.SeriesID, schema.Series.Title,
		schema.Series.TitleNorm, schema.Series.Publisher, schema.Series.SeriesGroup,
		schema.Series.Age,
	)

	_, err := tx.Exec(ctx, query,
		seriesID,
		nullString(row["Series"]),
		textnorm.Fold(row["Series"]),
		nullString(row["Publisher"]),
		nullString(row["Series Group"]),
		nullString(row["Age"]),
	)
	return err
}

func insertIssue(ctx context.Context, tx pgx.Tx, key issueKey, row exportRow) (int64, error) {
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

	coverYear, err := nullInt(row["Cover Year"])
	if err != nil {
		return 0, fmt.Errorf("parse Cover Year: %w", err)
	}

	var issueID int64
	err = tx.QueryRow(ctx, query,
		key.seriesID,
		key.issueNr,
		key.variant,
		nullString(row["Title"]),
		nullString(row["Subtitle"]),
		nullString(row["Full Title"]),
		nullString(row["Cover Date"]),
		coverYear,
		nullString(row["Story Arc"]),
	).Scan(&issueID)
	if err != nil {
		return 0, err
	}

	return issueID, nil
}

func insertCopy(ctx context.Context, tx pgx.Tx, issueID int64, row exportRow) error {
	columns := schema.Copy.Columns()[1:]
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
	`,
		schema.Copy.Table, strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	clzComicID, err := nullInt(row["Core ComicID"])
	if err != nil {
		return fmt.Errorf("parse Core ComicID: %w", err)
	}
	purchasePrice, err := nullFloat(row["Purchase Price"])
	if err != nil {
		return fmt.Errorf("parse Purchase Price: %w", err)
	}
	purchaseYear, err := nullInt(row["Purchase Year"])
	if err != nil {
		return fmt.Errorf("parse Purchase Year: %w", err)
	}
	priceSold, err := nullFloat(row["Price Sold"])
	if err != nil {
		return fmt.Errorf("parse Price Sold: %w", err)
	}
	soldYear, err := nullInt(row["Sold Year"])
	if err != nil {
		return fmt.Errorf("parse Sold Year: %w", err)
	}
	myValue, err := nullFloat(row["My Value"])
	if err != nil {
		return fmt.Errorf("parse My Value: %w", err)
	}
	covrPriceValue, err := nullFloat(row["CovrPrice Value"])
	if err != nil {
		return fmt.Errorf("parse CovrPrice Value: %w", err)
	}
	value, err := nullFloat(row["Value"])
	if err != nil {
		return fmt.Errorf("parse Value: %w", err)
	}
	coverPrice, err := nullFloat(row["Cover Price"])
	if err != nil {
		return fmt.Errorf("parse Cover Price: %w", err)
	}
	noOfPages, err := nullInt(row["No. of Pages"])
	if err != nil {
		return fmt.Errorf("parse No. of Pages: %w", err)
	}

	_, err = tx.Exec(ctx, query,
		issueID,
		clzComicID,
		nullString(row["Custom Label"]),
		nullString(row["Format"]),
		nullString(row["Grade"]),
		nullString(row["Grader Notes"]),
		nullString(row["Grading Company"]),
		nullString(row["Raw / Slabbed"]),
		nullString(row["Signed by"]),
		nullString(row["Slab Certification Number"]),
		nullString(row["Purchase Date"]),
		purchasePrice,
		nullString(row["Purchase Store"]),
		purchaseYear,
		nullString(row["Date Sold"]),
		priceSold,
		soldYear,
		myValue,
		covrPriceValue,
		value,
		nullString(row["Country"]),
		nullString(row["Language"]),
		nullString(row["Age"]),
		nullString(row["Barcode"]),
		coverPrice,
		nullString(row["Page Quality"]),
		nullString(row["Key"]),
		nullString(row["Key Category"]),
		nullString(row["Key Reason"]),
		nullString(row["Label Type"]),
		noOfPages,
		nullString(row["Variant Description"]),
	)
	return err
}

// normalizeIssueNr collapses CLZ's numeric issue numbers to their canonical
// string form: "1.0" becomes "1", "0.5" stays "0.5", non-numeric values
// pass through unchanged.
func normalizeIssueNr(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// nullString maps an empty CSV cell to NULL.
func nullString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// nullInt maps an empty CSV cell to NULL. CLZ emits integer columns as
// floats ("2015.0"), so those are accepted too.
func nullInt(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(value, 64)
		if ferr != nil || f != float64(int64(f)) {
			return nil, err
		}
		parsed = int64(f)
	}
	return &parsed, nil
}

// nullFloat maps an empty CSV cell to NULL.
func nullFloat(value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
