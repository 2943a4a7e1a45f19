package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/engine"
	"github.com/perfhelf/FXview/pkg/logger"
)

// SnapshotJobName is the registered name of the snapshot batch
const SnapshotJobName = "godview_snapshot"

// ErrNoMarketData is returned when the fetch produced no series at all
var ErrNoMarketData = errors.New("no market data fetched")

// SnapshotJob fetches market data, runs the engine and saves the snapshots
// ⭐ SSOT: 스냅샷 배치 흐름은 이 Job에서만
type SnapshotJob struct {
	source   contracts.MarketDataSource
	engine   *engine.Engine
	sink     contracts.SnapshotSink
	schedule string
	symbols  []string
	logger   *logger.Logger
}

// NewSnapshotJob creates the snapshot job. Empty symbols means every configured symbol.
func NewSnapshotJob(
	source contracts.MarketDataSource,
	eng *engine.Engine,
	sink contracts.SnapshotSink,
	schedule string,
	symbols []string,
	log *logger.Logger,
) *SnapshotJob {
	return &SnapshotJob{
		source:   source,
		engine:   eng,
		sink:     sink,
		schedule: schedule,
		symbols:  symbols,
		logger:   log.Module("snapshot_job"),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return SnapshotJobName
}

// Schedule returns the cron schedule (with seconds)
func (j *SnapshotJob) Schedule() string {
	return j.schedule
}

// Run executes one batch
func (j *SnapshotJob) Run(ctx context.Context) error {
	_, err := j.Execute(ctx)
	return err
}

// Execute runs one batch and returns the engine result
func (j *SnapshotJob) Execute(ctx context.Context) (*engine.RunResult, error) {
	tickers := j.engine.Tickers(j.symbols)
	table, failures := j.source.FetchAll(ctx, tickers)
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: %d tickers failed", ErrNoMarketData, len(failures))
	}

	res, err := j.engine.Run(ctx, table, j.symbols)
	if err != nil {
		return nil, err
	}

	if err := j.sink.Save(ctx, res.Snapshots); err != nil {
		return res, fmt.Errorf("save snapshots: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"tickers":         len(tickers),
		"ticker_failures": len(failures),
		"snapshots":       len(res.Snapshots),
		"skipped":         len(res.Skipped),
		"config_hash":     res.ConfigHash,
	}).Info("Snapshot batch completed")
	return res, nil
}
