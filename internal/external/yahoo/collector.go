package yahoo

import (
	"context"
	"sync"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/pkg/logger"
)

// Collector fetches many tickers with a bounded worker pool.
// It implements contracts.MarketDataSource.
type Collector struct {
	client  *Client
	rng     string
	workers int
	logger  *logger.Logger
}

// NewCollector creates a collector over client
func NewCollector(client *Client, rng string, workers int, log *logger.Logger) *Collector {
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		client:  client,
		rng:     rng,
		workers: workers,
		logger:  log.Module("collector"),
	}
}

type fetchResult struct {
	ticker string
	series *contracts.InstrumentSeries
	err    error
}

// FetchAll fetches every ticker. Failed tickers are absent from the table
// and reported in the error map; a partial table is not an error.
func (c *Collector) FetchAll(ctx context.Context, tickers []string) (contracts.RawTable, map[string]error) {
	c.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"workers": c.workers,
		"range":   c.rng,
	}).Info("Starting market data collection")

	tickerCh := make(chan string, len(tickers))
	resultCh := make(chan fetchResult, len(tickers))

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.worker(ctx, tickerCh, resultCh)
		}()
	}

	for _, t := range tickers {
		tickerCh <- t
	}
	close(tickerCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	table := make(contracts.RawTable, len(tickers))
	failures := make(map[string]error)
	for r := range resultCh {
		if r.err != nil {
			failures[r.ticker] = r.err
			continue
		}
		table[r.ticker] = r.series
	}

	c.logger.WithFields(map[string]interface{}{
		"success": len(table),
		"failed":  len(failures),
	}).Info("Market data collection completed")

	return table, failures
}

func (c *Collector) worker(ctx context.Context, tickerCh <-chan string, resultCh chan<- fetchResult) {
	for ticker := range tickerCh {
		if err := ctx.Err(); err != nil {
			resultCh <- fetchResult{ticker: ticker, err: err}
			continue
		}

		series, err := c.client.FetchDaily(ctx, ticker, c.rng)
		if err != nil {
			c.logger.WithError(err).WithField("ticker", ticker).Warn("Data for ticker not found")
		}
		resultCh <- fetchResult{ticker: ticker, series: series, err: err}
	}
}
