package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/catalog-hunter/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLitePersister stores one JSON payload per content type.
type SQLitePersister struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func OpenSQLite(dbPath string) (*SQLitePersister, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	p := &SQLitePersister{readDB: readDB, writeDB: writeDB}
	if err := p.init(); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func (p *SQLitePersister) init() error {
	_, err := p.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			content_type TEXT PRIMARY KEY,
			payload      TEXT NOT NULL,
			fetched_at   DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (p *SQLitePersister) Close() error {
	var firstErr error
	for _, db := range []*sql.DB{p.readDB, p.writeDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (p *SQLitePersister) LoadAll() (map[domain.ContentType]Entry, error) {
	rows, err := p.readDB.Query(`SELECT content_type, payload FROM cache_entries`)
	if err != nil {
		return nil, fmt.Errorf("querying cache entries: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.ContentType]Entry)
	for rows.Next() {
		var key, payload string
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("scanning cache entry: %w", err)
		}
		var e Entry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			// corrupt rows are skipped
			continue
		}
		out[domain.ContentType(key)] = e
	}
	return out, rows.Err()
}

func (p *SQLitePersister) Save(key domain.ContentType, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	_, err = p.writeDB.Exec(`
		INSERT INTO cache_entries (content_type, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(content_type) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, string(key), string(payload), e.FetchedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving cache entry %s: %w", key, err)
	}
	return nil
}

func (p *SQLitePersister) Delete(key domain.ContentType) error {
	if _, err := p.writeDB.Exec(`DELETE FROM cache_entries WHERE content_type = ?`, string(key)); err != nil {
		return fmt.Errorf("deleting cache entry %s: %w", key, err)
	}
	return nil
}
