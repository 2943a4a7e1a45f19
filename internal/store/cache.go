package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/snapshot"
	"github.com/perfhelf/FXview/pkg/logger"
	"github.com/perfhelf/FXview/pkg/redis"
)

// SnapshotCache keeps the latest snapshot per symbol in Redis
type SnapshotCache struct {
	cache *redis.Cache
	ttl   time.Duration
}

// NewSnapshotCache creates a snapshot cache. A disabled redis client makes every call a no-op.
func NewSnapshotCache(cache *redis.Cache, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{cache: cache, ttl: ttl}
}

// Enabled reports whether the cache is backed by a live client
func (c *SnapshotCache) Enabled() bool {
	return c != nil && c.cache.Enabled()
}

// Save writes every snapshot in one pipeline
func (c *SnapshotCache) Save(ctx context.Context, snapshots []*contracts.SymbolSnapshot) error {
	entries := make(map[string][]byte, len(snapshots))
	for _, s := range snapshots {
		data, err := json.Marshal(snapshot.Sanitize(s))
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot %s: %w", s.Symbol, err)
		}
		entries[redis.SnapshotKey(s.Symbol)] = data
	}
	return c.cache.SetMany(ctx, entries, c.ttl)
}

// Get returns a cached snapshot. A miss is (nil, false, nil).
func (c *SnapshotCache) Get(ctx context.Context, symbol string) (*contracts.SymbolSnapshot, bool, error) {
	var s contracts.SymbolSnapshot
	found, err := c.cache.Get(ctx, redis.SnapshotKey(symbol), &s)
	if err != nil || !found {
		return nil, false, err
	}
	return &s, true, nil
}

// Put caches one snapshot
func (c *SnapshotCache) Put(ctx context.Context, s *contracts.SymbolSnapshot) error {
	return c.cache.Set(ctx, redis.SnapshotKey(s.Symbol), s, c.ttl)
}

// CachedReader reads through the snapshot cache before the backing reader
type CachedReader struct {
	reader contracts.SnapshotReader
	cache  *SnapshotCache
	logger *logger.Logger
}

// NewCachedReader wraps reader with cache
func NewCachedReader(reader contracts.SnapshotReader, cache *SnapshotCache, log *logger.Logger) *CachedReader {
	return &CachedReader{reader: reader, cache: cache, logger: log.Module("store")}
}

// Get serves from cache, falling back to the reader and populating the cache.
// Cache errors are logged and never fail the read.
func (r *CachedReader) Get(ctx context.Context, symbol string) (*contracts.SymbolSnapshot, error) {
	if r.cache.Enabled() {
		s, found, err := r.cache.Get(ctx, symbol)
		if err != nil {
			r.logger.WithError(err).WithField("symbol", symbol).Warn("Snapshot cache read failed")
		}
		if found {
			return s, nil
		}
	}

	s, err := r.reader.Get(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if r.cache.Enabled() {
		if err := r.cache.Put(ctx, s); err != nil {
			r.logger.WithError(err).WithField("symbol", symbol).Warn("Snapshot cache write failed")
		}
	}
	return s, nil
}

// List always reads the backing reader
func (r *CachedReader) List(ctx context.Context) ([]*contracts.SymbolSnapshot, error) {
	return r.reader.List(ctx)
}
