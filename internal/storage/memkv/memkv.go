// Package memkv is a map-backed storage implementation used in tests and as
// the throwaway backend. Reads and writes can be made to fail on demand to
// exercise persistence-error paths.
package memkv

import (
	"sync"

	"github.com/maiwenn-k/jot/internal/storage"
)

type KV struct {
	mu   sync.Mutex
	data map[string][]byte

	// FailGet / FailSet, when non-nil, are returned instead of touching the map.
	FailGet error
	FailSet error
}

func New() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (kv *KV) Get(key string) ([]byte, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.FailGet != nil {
		return nil, kv.FailGet
	}
	b, ok := kv.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (kv *KV) Set(key string, value []byte) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	if kv.FailSet != nil {
		return kv.FailSet
	}
	b := make([]byte, len(value))
	copy(b, value)
	kv.data[key] = b
	return nil
}
