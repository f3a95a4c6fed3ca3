package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	"github.com/DjordjeVuckovic/catalog-hunter/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads the content tables. Every source is a table with the same shape.
type Store struct {
	pool *ConnectionPool
	db   *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{pool: pool, db: pool.GetConn()}
}

func (s *Store) Find(ctx context.Context, table string, filter storage.Filter, srt storage.Sort, page storage.Page) ([]domain.ContentRecord, error) {
	sql, args := buildFindSQL(table, filter, srt, page)
	slog.Debug("Executing pg find", "table", table, "sql", sql)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	records := make([]domain.ContentRecord, 0, page.Limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}

	return records, nil
}

func (s *Store) Count(ctx context.Context, table string, filter storage.Filter) (int64, error) {
	sql, args := buildCountSQL(table, filter)

	var count int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (s *Store) FindBySlug(ctx context.Context, table string, slug string) (*domain.ContentRecord, error) {
	sql := "SELECT " + selectColumns + " FROM " + quoteTable(table) + " WHERE slug = $1 LIMIT 1"

	rec, err := scanRecord(s.db.QueryRow(ctx, sql, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("slug %q in %s: %w", slug, table, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

func scanRecord(row pgx.Row) (*domain.ContentRecord, error) {
	var rec domain.ContentRecord
	if err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Slug,
		&rec.Category,
		&rec.PostDate,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan content record: %w", err)
	}
	return &rec, nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS %s (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT        NOT NULL,
	slug       TEXT UNIQUE,
	category   TEXT,
	post_date  TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *Store) EnsureTables(ctx context.Context, tables []string) error {
	for _, t := range tables {
		if _, err := s.db.Exec(ctx, fmt.Sprintf(createTableSQL, quoteTable(t))); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t, err)
		}
	}
	return nil
}

// Seed bulk-inserts records with COPY and moves the id sequence past them.
func (s *Store) Seed(ctx context.Context, table string, records []domain.ContentRecord) error {
	rows := make([][]any, len(records))
	for i, r := range records {
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("record %d of %s: id %q is not numeric: %w", i, table, r.ID, err)
		}
		var slug any
		if r.Slug != "" {
			slug = r.Slug
		}
		rows[i] = []any{id, r.Name, slug, r.Category, r.PostDate, r.CreatedAt, r.UpdatedAt}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{table},
		[]string{"id", "name", "slug", "category", "post_date", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert into %s: %w", table, err)
	}

	seqSQL := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`,
		quoteTable(table), quoteTable(table))
	if _, err := s.db.Exec(ctx, seqSQL); err != nil {
		return fmt.Errorf("failed to advance id sequence of %s: %w", table, err)
	}
	return nil
}

var _ storage.Store = (*Store)(nil)
var _ storage.Seeder = (*Store)(nil)
