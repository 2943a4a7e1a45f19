package jobs

import (
	"context"
	"fmt"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/store"
	"github.com/perfhelf/FXview/pkg/logger"
)

// CacheRefreshJob reloads stored snapshots into the Redis cache before their TTL lapses
type CacheRefreshJob struct {
	reader   contracts.SnapshotReader
	cache    *store.SnapshotCache
	schedule string
	logger   *logger.Logger
}

// NewCacheRefreshJob creates a cache refresh job
func NewCacheRefreshJob(reader contracts.SnapshotReader, cache *store.SnapshotCache, schedule string, log *logger.Logger) *CacheRefreshJob {
	return &CacheRefreshJob{
		reader:   reader,
		cache:    cache,
		schedule: schedule,
		logger:   log.Module("cache_refresh"),
	}
}

// Name returns the job name
func (j *CacheRefreshJob) Name() string {
	return "snapshot_cache_refresh"
}

// Schedule returns the cron schedule (with seconds)
func (j *CacheRefreshJob) Schedule() string {
	return j.schedule
}

// Run copies every stored snapshot into the cache
func (j *CacheRefreshJob) Run(ctx context.Context) error {
	if !j.cache.Enabled() {
		return nil
	}

	snapshots, err := j.reader.List(ctx)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if err := j.cache.Save(ctx, snapshots); err != nil {
		return fmt.Errorf("refresh cache: %w", err)
	}

	j.logger.WithField("count", len(snapshots)).Debug("Snapshot cache refreshed")
	return nil
}
