// Package storage defines the key-value port the record stores persist
// through. Values are opaque blobs; each key holds one serialized collection.
package storage

import "errors"

// ErrNotFound is returned by Get when no value exists under the key.
// A fresh store hydrates to empty on it instead of failing.
var ErrNotFound = errors.New("storage: key not found")

// KV is the storage port. Implementations: filekv (one JSON file per key),
// sqlitekv (single-table blob store), memkv (tests).
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
