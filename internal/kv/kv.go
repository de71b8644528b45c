// Package kv is the persistent key-value storage behind mode sessions and
// stickers. Values are opaque bytes; callers store JSON documents.
package kv

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sant0-9/companion/internal/config"
)

var (
	// ErrNotFound is returned by Get for a key that was never set or was deleted.
	ErrNotFound = errors.New("kv: key not found")
	// ErrQuotaExceeded is returned by Set when a value is larger than the
	// backend allows.
	ErrQuotaExceeded = errors.New("kv: quota exceeded")
)

// Store is a flat namespace of keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open creates the store described by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		dir := cfg.Path
		if dir == "" {
			d, err := config.DataDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(d, "store")
		}
		return NewFile(dir, cfg.MaxValueBytes)
	case "sqlite":
		path := cfg.Path
		if path == "" {
			d, err := config.DataDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(d, "companion.db")
		}
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}
