package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/ritual/internal/logger"
)

// SQLiteAdapter stores every key as a JSON blob in a single kv table. It
// implements the same key-value contract as JSONAdapter for users who prefer
// one database file over a directory of JSON files.
type SQLiteAdapter struct {
	path string
	db   *sql.DB
}

func NewSQLiteAdapter(path string) *SQLiteAdapter {
	return &SQLiteAdapter{path: path}
}

func (a *SQLiteAdapter) Init() error {
	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return a.open()
}

func (a *SQLiteAdapter) open() error {
	if a.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", a.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	a.db = db
	return nil
}

func (a *SQLiteAdapter) Load(key string, into any) (bool, error) {
	if err := a.open(); err != nil {
		return false, err
	}

	var data []byte
	err := a.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		logger.Warn("Discarding malformed stored data", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (a *SQLiteAdapter) Save(key string, value any) error {
	if err := a.open(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}

	_, err = a.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (a *SQLiteAdapter) Delete(key string) error {
	if err := a.open(); err != nil {
		return err
	}
	if _, err := a.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (a *SQLiteAdapter) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *SQLiteAdapter) DataPath() string {
	return a.path
}
