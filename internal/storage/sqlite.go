package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const recordsSchema = `CREATE TABLE IF NOT EXISTS records (
	name       TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps records in a single SQLite table.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(recordsSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) ([]byte, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM records WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", name, err)
	}
	return payload, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name string, data []byte) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO records (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save record %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
