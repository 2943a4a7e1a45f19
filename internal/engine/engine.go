// Package engine runs the per-symbol snapshot pipeline over a fetched component table.
package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/perfhelf/FXview/internal/aggregator"
	"github.com/perfhelf/FXview/internal/classifier"
	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/engineconfig"
	"github.com/perfhelf/FXview/internal/indicators"
	"github.com/perfhelf/FXview/internal/snapshot"
	"github.com/perfhelf/FXview/internal/synthetic"
	"github.com/perfhelf/FXview/internal/timeframe"
	"github.com/perfhelf/FXview/pkg/logger"
)

// SkipReason explains why a symbol produced no snapshot
type SkipReason string

const (
	SkipNone              SkipReason = ""
	SkipUnknownSymbol     SkipReason = "unknown_symbol"
	SkipMissingComponents SkipReason = "missing_components"
	SkipInsufficientBars  SkipReason = "insufficient_bars"
)

// Engine computes snapshots. It holds no mutable state after construction.
// ⭐ SSOT: 심볼 단위 계산 흐름은 여기서만
type Engine struct {
	cfg        *engineconfig.Config
	builder    *synthetic.Builder
	classifier *classifier.Classifier
	configHash string
	workers    int
	clock      func() time.Time
	logger     *logger.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the time source used for last_update
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithWorkers bounds concurrent symbol processing
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the engine logger
func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) { e.logger = log.Module("engine") }
}

// New creates an engine for a validated config
func New(cfg *engineconfig.Config, opts ...Option) (*Engine, error) {
	builder, err := synthetic.NewBuilder(cfg.ComponentTickers(), cfg.Formulas())
	if err != nil {
		return nil, fmt.Errorf("failed to build synthetic formulas: %w", err)
	}
	hash, err := engineconfig.Hash(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		builder:    builder,
		classifier: classifier.New(ParamsFromConfig(cfg)),
		configHash: hash,
		workers:    4,
		clock:      time.Now,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ParamsFromConfig maps the engine config onto classifier parameters
func ParamsFromConfig(cfg *engineconfig.Config) classifier.Params {
	return classifier.Params{
		RSILength:          cfg.Indicators.RSILength,
		ADXLength:          cfg.Indicators.ADXLength,
		MACDFast:           cfg.Indicators.MACD.Fast,
		MACDSlow:           cfg.Indicators.MACD.Slow,
		MACDSignal:         cfg.Indicators.MACD.Signal,
		RSIMALengths:       cfg.Votes.RSIMALengths,
		ShortMALengths:     cfg.Votes.ShortMALengths,
		ADXMALengths:       cfg.Votes.ADXMALengths,
		ADXMinBars:         cfg.Votes.ADXMinBars,
		ADXWinQuorum:       cfg.Votes.ADXWinQuorum,
		ADXVoteQuorum:      cfg.Votes.ADXVoteQuorum,
		RSIDailyMinBars:    cfg.FirstWave.RSIDailyMinBars,
		RSIDailyThreshold:  cfg.FirstWave.RSIDailyThreshold,
		RSIWeeklyMinBars:   cfg.FirstWave.RSIWeeklyMinBars,
		RSIWeeklyThreshold: cfg.FirstWave.RSIWeeklyThreshold,
		MACDMinBars:        cfg.FirstWave.MACDMinBars,
	}
}

// Config returns the engine config
func (e *Engine) Config() *engineconfig.Config {
	return e.cfg
}

// ConfigHash returns the hash of the engine config
func (e *Engine) ConfigHash() string {
	return e.configHash
}

// Tickers returns the provider tickers needed by symbols, in configured order.
// Empty symbols means every configured component.
func (e *Engine) Tickers(symbols []string) []string {
	if len(symbols) == 0 {
		return e.cfg.Tickers()
	}
	needed := make(map[string]bool)
	for _, symbol := range symbols {
		f, ok := e.builder.Formula(symbol)
		if !ok {
			continue
		}
		for _, alias := range f.Variables() {
			needed[alias] = true
		}
	}
	var out []string
	for _, comp := range e.cfg.Components {
		if needed[comp.Alias] {
			out = append(out, comp.Ticker)
		}
	}
	return out
}

// ProcessSymbol computes one symbol's snapshot.
// A nil snapshot comes with the reason the symbol was skipped.
func (e *Engine) ProcessSymbol(symbol string, table contracts.RawTable) (*contracts.SymbolSnapshot, SkipReason) {
	log := e.logger.WithField("symbol", symbol)

	if _, ok := e.cfg.Symbol(symbol); !ok {
		log.Warn("Unknown symbol")
		return nil, SkipUnknownSymbol
	}
	if missing := e.builder.Missing(symbol, table); len(missing) > 0 {
		log.WithField("missing", missing).Warn("Component data not found")
		return nil, SkipMissingComponents
	}

	raw, _ := e.builder.Build(symbol, table)
	daily := raw.DropUndefined()

	minBars := e.cfg.MinBarsFor(symbol)
	if daily.Len() < minBars {
		log.WithFields(map[string]interface{}{
			"bars":     daily.Len(),
			"required": minBars,
		}).Warn("Not enough data")
		return nil, SkipInsufficientBars
	}

	parts, trace := e.compute(daily)
	log.WithFields(map[string]interface{}{
		"bars":         daily.Len(),
		"trend_status": int(parts.TrendStatus),
		"fw_status":    int(parts.FWStatus),
		"fw_rules":     trace,
	}).Debug("Symbol processed")

	return snapshot.Assemble(symbol, e.clock(), parts), SkipNone
}

func (e *Engine) compute(daily *contracts.InstrumentSeries) (snapshot.Parts, []string) {
	c := e.classifier
	closes, highs, lows := daily.Closes(), daily.Highs(), daily.Lows()

	var parts snapshot.Parts
	e.fillSlopes(&parts.Slopes, closes, false)

	rsiD := c.RSIVotes(closes, e.cfg.Votes.TrendRSIVotes)
	macdD := c.MACDSign(closes)
	adxD := c.ADXVote(highs, lows, closes)

	var rsiW, macdW, adxW contracts.Signal
	var weeklyFW aggregator.WeeklySignals

	weekly := timeframe.Weekly(daily)
	if weekly.Len() >= e.cfg.Weekly.MinBars {
		wClose, wHigh, wLow := weekly.Closes(), weekly.Highs(), weekly.Lows()
		e.fillSlopes(&parts.Slopes, wClose, true)

		rsiW = c.RSIVotes(wClose, e.cfg.Votes.TrendRSIVotes)
		macdW = c.MACDSign(wClose)
		adxW = c.ADXVote(wHigh, wLow, wClose)

		weeklyFW = aggregator.WeeklyFirstWave(aggregator.WeeklyInput{
			RSI:  c.RSIFirstWaveWeekly(wClose),
			MACD: c.MACDFirstWave(wClose),
			ADX:  c.ADXFirstWave(wHigh, wLow, wClose),
		})
	}

	parts.Signals = contracts.SignalSet{
		RSI:  contracts.SignalPair{D: rsiD, W: rsiW},
		MACD: contracts.SignalPair{D: macdD, W: macdW},
		ADX:  contracts.SignalPair{D: adxD, W: adxW},
	}
	parts.TrendStatus = aggregator.Trend(aggregator.TrendInput{
		RSI:  parts.Signals.RSI,
		MACD: parts.Signals.MACD,
		ADX:  parts.Signals.ADX,
	}).Status

	fw := aggregator.Commander(aggregator.DailyInput{
		RSI:  c.RSIFirstWaveDaily(closes),
		MACD: c.MACDFirstWave(closes),
		ADX:  c.ADXFirstWave(highs, lows, closes),
	}, weeklyFW)
	parts.FWStatus = fw.Status
	parts.FWSignals = fw.Signals

	return parts, fw.Trace
}

func (e *Engine) fillSlopes(dst *contracts.EMASlopes, closes []float64, weekly bool) {
	lengths := e.cfg.Slopes.EMALengths
	windows := e.cfg.Slopes.Windows
	sets := []struct {
		set    *contracts.SlopeSet
		window int
	}{
		{&dst.Short, windows.Short},
		{&dst.Mid, windows.Mid},
		{&dst.Long, windows.Long},
	}
	for _, s := range sets {
		v := indicators.LastSlopes(closes, lengths, s.window)
		if weekly {
			s.set.W = v
		} else {
			s.set.D = v
		}
	}
}

// RunResult is the outcome of one batch
type RunResult struct {
	Snapshots  []*contracts.SymbolSnapshot
	Skipped    map[string]SkipReason
	ConfigHash string
	StartedAt  time.Time
	Duration   time.Duration
}

// Run processes symbols concurrently. Empty symbols means every configured symbol.
// Snapshots keep the requested order; skipped symbols are absent.
func (e *Engine) Run(ctx context.Context, table contracts.RawTable, symbols []string) (*RunResult, error) {
	if len(symbols) == 0 {
		symbols = e.cfg.SymbolNames()
	}

	started := time.Now()
	out := make([]*contracts.SymbolSnapshot, len(symbols))
	reasons := make([]SkipReason, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, symbol := range symbols {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i], reasons[i] = e.ProcessSymbol(symbol, table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("engine run canceled: %w", err)
	}

	res := &RunResult{
		Snapshots:  make([]*contracts.SymbolSnapshot, 0, len(symbols)),
		Skipped:    make(map[string]SkipReason),
		ConfigHash: e.configHash,
		StartedAt:  started,
	}
	for i, symbol := range symbols {
		if out[i] == nil {
			res.Skipped[symbol] = reasons[i]
			continue
		}
		res.Snapshots = append(res.Snapshots, out[i])
	}
	res.Duration = time.Since(started)

	e.logger.WithFields(map[string]interface{}{
		"symbols":     len(symbols),
		"snapshots":   len(res.Snapshots),
		"skipped":     len(res.Skipped),
		"config_hash": e.configHash,
		"duration_ms": res.Duration.Milliseconds(),
	}).Info("Engine run completed")

	return res, nil
}
