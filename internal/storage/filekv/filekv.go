// Package filekv is JSON-file-backed storage. One file per key,
// human-readable, portable. No locking; fine for a local single-user tool.
package filekv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maiwenn-k/jot/internal/storage"
)

type KV struct {
	dir string
}

// New returns a KV rooted at dir. The directory is created lazily on the
// first write, with owner-only permissions.
func New(dir string) *KV {
	return &KV{dir: dir}
}

func (kv *KV) path(key string) string {
	return filepath.Join(kv.dir, key+".json")
}

func (kv *KV) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(kv.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

func (kv *KV) Set(key string, value []byte) error {
	if err := os.MkdirAll(kv.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(kv.path(key), value, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
