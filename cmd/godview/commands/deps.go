package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/engine"
	"github.com/perfhelf/FXview/internal/engineconfig"
	"github.com/perfhelf/FXview/internal/external/yahoo"
	"github.com/perfhelf/FXview/internal/store"
	"github.com/perfhelf/FXview/pkg/config"
	"github.com/perfhelf/FXview/pkg/database"
	"github.com/perfhelf/FXview/pkg/httputil"
	"github.com/perfhelf/FXview/pkg/logger"
	"github.com/perfhelf/FXview/pkg/redis"
)

const cachePrefix = "godview"

// app holds the process-wide dependencies shared by every command
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	engineCfg *engineconfig.Config
	engine    *engine.Engine
	collector *yahoo.Collector

	db    *database.DB // nil without DATABASE_URL
	repo  *store.SnapshotRepository
	rdb   *redis.Client
	cache *store.SnapshotCache
}

// newApp loads configuration and connects the optional backends.
// withDB=false skips Postgres even when DATABASE_URL is set.
func newApp(ctx context.Context, withDB bool) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if engineConfigPath != "" {
		cfg.Engine.ConfigPath = engineConfigPath
	}
	if runWorkers > 0 {
		cfg.Engine.Workers = runWorkers
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Engine configuration
	engineCfg, err := engineconfig.LoadOrDefault(cfg.Engine.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load engine config: %w", err)
	}
	eng, err := engine.New(engineCfg, engine.WithWorkers(cfg.Engine.Workers), engine.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	log.Infof("Engine config %s loaded: %d symbols, hash %s", engineCfg.Meta.ConfigID, len(engineCfg.Symbols), eng.ConfigHash())

	// 4. Market data
	httpClient := httputil.New(log, cfg.Yahoo.Timeout).WithRateLimit(cfg.Yahoo.RateLimit)
	yahooClient := yahoo.NewClient(httpClient, log, cfg.Yahoo.BaseURL)
	col := yahoo.NewCollector(yahooClient, engineCfg.Fetch.Range, cfg.Engine.Workers, log)

	a := &app{
		cfg:       cfg,
		log:       log,
		engineCfg: engineCfg,
		engine:    eng,
		collector: col,
	}

	// 5. Database (optional)
	if withDB {
		db, err := database.New(ctx, cfg)
		switch {
		case errors.Is(err, database.ErrDisabled):
			log.Info("DATABASE_URL not set, Postgres sink disabled")
		case err != nil:
			return nil, fmt.Errorf("connect to database: %w", err)
		default:
			a.db = db
			a.repo = store.NewSnapshotRepository(db.Pool)
			if err := a.repo.EnsureSchema(ctx); err != nil {
				a.close()
				return nil, err
			}
			log.Info("Connected to database")
		}
	}

	// 6. Redis cache (optional)
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	a.cache = store.NewSnapshotCache(redis.NewCache(rdb, cachePrefix), cfg.Redis.CacheTTL)

	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
}

// sink chooses where a batch goes: the listing writer when w is set or no
// database is configured, otherwise Postgres followed by the cache.
func (a *app) sink(w io.Writer) contracts.SnapshotSink {
	if w != nil || a.repo == nil {
		if w == nil {
			w = io.Discard
		}
		sinks := store.MultiSink{store.NewListingSink(w)}
		if a.cache.Enabled() {
			sinks = append(sinks, a.cache)
		}
		return sinks
	}

	sinks := store.MultiSink{a.repo}
	if a.cache.Enabled() {
		sinks = append(sinks, a.cache)
	}
	return sinks
}

// reader returns the snapshot read path for the API, cache first
func (a *app) reader(fallback contracts.SnapshotReader) contracts.SnapshotReader {
	var backing contracts.SnapshotReader = fallback
	if a.repo != nil {
		backing = a.repo
	}
	return store.NewCachedReader(backing, a.cache, a.log)
}

func elapsed(start time.Time) float64 {
	return time.Since(start).Seconds()
}
