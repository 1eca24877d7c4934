// Package sqlitekv persists blobs into a single SQLite table. Same layout as
// the file backend (one value per key), but in one database file.
package sqlitekv

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maiwenn-k/jot/internal/storage"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

type KV struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the state table
// exists.
func Open(path string) (*KV, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &KV{db: db}, nil
}

func (kv *KV) Get(key string) ([]byte, error) {
	var payload []byte
	err := kv.db.QueryRow(`SELECT payload FROM state WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return payload, nil
}

func (kv *KV) Set(key string, value []byte) error {
	_, err := kv.db.Exec(
		`INSERT INTO state (key, payload) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

func (kv *KV) Close() error {
	return kv.db.Close()
}
