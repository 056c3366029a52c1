// Package state provides the key-value backends behind persisted visitor
// flags: in-memory for development and tests, SQLite for durable installs.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Common store errors.
var (
	ErrKeyNotFound   = errors.New("key not found")
	ErrStoreClosed   = errors.New("store is closed")
	ErrInvalidData   = errors.New("invalid data format")
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Store is the interface for state storage backends.
type Store interface {
	// Get retrieves a value by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// Keys returns all keys matching a glob pattern (* and ?).
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Ping reports whether the backend is usable.
	Ping(ctx context.Context) error

	// Close closes the store.
	Close() error
}

// Store drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Open creates a store for the named driver. path is only used by sqlite.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLiteStore(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
