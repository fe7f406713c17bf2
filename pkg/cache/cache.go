// Package cache memoizes composition results by pipeline fingerprint.
package cache

import (
	"context"

	"github.com/ChrisMcGann/TAGKey/pkg/compose"
)

// Cache maps a fingerprint to a computed result.
// Implementations: memory (bounded LRU), badger (on disk or in memory)
type Cache interface {
	// Get returns the result stored under key, if any
	Get(ctx context.Context, key uint64) (*compose.Result, bool, error)

	// Put stores a result under key
	Put(ctx context.Context, key uint64, result *compose.Result) error

	// Close releases the cache's resources
	Close() error
}
