package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const historyBlobKey = "history"

// SQLiteStore persists the history blob in a single-row key/value table.
// Same contract as FileStore, useful when the data directory lives on a
// filesystem where atomic whole-file rewrites are a concern.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) history.db in the data directory.
func NewSQLiteStore(dataDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, "history.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS blobs (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, historyBlobKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no history blob stored: %w", fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history blob: %w", err)
	}
	return data, nil
}

func (s *SQLiteStore) Write(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		historyBlobKey, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write history blob: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
