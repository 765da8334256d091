package optionstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/themekit/internal/ports"

	_ "modernc.org/sqlite"
)

// SQLite keeps options in an options table, one JSON value per name.
type SQLite struct {
	db *sql.DB
}

var _ ports.OptionStore = (*SQLite)(nil)

// NewSQLite opens (or creates) the database at dsn and migrates the schema.
// Use ":memory:" for a throwaway database.
func NewSQLite(dsn string) (*SQLite, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create option database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open option database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate option database: %w", err)
	}
	return s, nil
}

func (s *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS options (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Get implements ports.OptionStore.
func (s *SQLite) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query option %q: %w", key, err)
	}

	value, err := decode([]byte(raw))
	if err != nil {
		return nil, false, fmt.Errorf("option %q: %w", key, err)
	}
	return value, true, nil
}

// Set implements ports.OptionStore.
func (s *SQLite) Set(ctx context.Context, key string, value map[string]any) (bool, error) {
	encoded, err := encode(value)
	if err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin option write: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRowContext(ctx, `SELECT value FROM options WHERE name = ?`, key).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("query option %q: %w", key, err)
	case sameEncoding([]byte(current), encoded):
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO options (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(encoded), time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("store option %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit option %q: %w", key, err)
	}
	return true, nil
}
