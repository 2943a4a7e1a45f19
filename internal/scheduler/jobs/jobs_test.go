package jobs

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/internal/engine"
	"github.com/perfhelf/FXview/internal/engineconfig"
	"github.com/perfhelf/FXview/internal/store"
	"github.com/perfhelf/FXview/pkg/logger"
	"github.com/perfhelf/FXview/pkg/redis"
)

const usdTicker = "DX-Y.NYB"

type fakeSource struct {
	table     contracts.RawTable
	requested []string
}

func (f *fakeSource) FetchAll(_ context.Context, tickers []string) (contracts.RawTable, map[string]error) {
	f.requested = tickers
	failures := make(map[string]error)
	out := make(contracts.RawTable)
	for _, t := range tickers {
		if s, ok := f.table[t]; ok {
			out[t] = s
		} else {
			failures[t] = errors.New("not found")
		}
	}
	return out, failures
}

func dailySeries(n int) *contracts.InstrumentSeries {
	s := &contracts.InstrumentSeries{Symbol: usdTicker}
	d := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; len(s.Bars) < n; i++ {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			v := 95 + 3*math.Sin(float64(i)/11)
			s.Bars = append(s.Bars, contracts.Bar{Date: d, Close: v, High: v + 0.4, Low: v - 0.4})
		}
		d = d.AddDate(0, 0, 1)
	}
	return s
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	cfg, err := engineconfig.Default()
	require.NoError(t, err)
	e, err := engine.New(cfg)
	require.NoError(t, err)
	return e
}

type failingSink struct{}

func (failingSink) Save(context.Context, []*contracts.SymbolSnapshot) error {
	return errors.New("db down")
}

func TestSnapshotJob_Execute(t *testing.T) {
	source := &fakeSource{table: contracts.RawTable{usdTicker: dailySeries(300)}}
	sink := store.NewMemoryStore()
	job := NewSnapshotJob(source, newEngine(t), sink, "0 30 22 * * 1-5", []string{"USD", "AUD"}, logger.Nop())

	assert.Equal(t, SnapshotJobName, job.Name())
	assert.Equal(t, "0 30 22 * * 1-5", job.Schedule())

	res, err := job.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, source.requested, usdTicker)
	assert.Contains(t, source.requested, "AUDUSD=X")
	require.Len(t, res.Snapshots, 1)
	assert.Equal(t, engine.SkipMissingComponents, res.Skipped["AUD"])

	stored, err := sink.Get(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, res.Snapshots[0].TrendStatus, stored.TrendStatus)
}

func TestSnapshotJob_NoData(t *testing.T) {
	job := NewSnapshotJob(&fakeSource{}, newEngine(t), store.NewMemoryStore(), "@every 1h", []string{"USD"}, logger.Nop())

	err := job.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoMarketData)
}

func TestSnapshotJob_SinkFailure(t *testing.T) {
	source := &fakeSource{table: contracts.RawTable{usdTicker: dailySeries(250)}}
	job := NewSnapshotJob(source, newEngine(t), failingSink{}, "@every 1h", []string{"USD"}, logger.Nop())

	res, err := job.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "db down")
	require.NotNil(t, res)
	assert.Len(t, res.Snapshots, 1)
}

func TestCacheRefreshJob(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cache := store.NewSnapshotCache(redis.NewCache(redis.NewFromRedis(rdb), "godview"), time.Hour)

	reader := store.NewMemoryStore()
	require.NoError(t, reader.Save(ctx, []*contracts.SymbolSnapshot{{Symbol: "AUD"}, {Symbol: "EUR"}}))

	job := NewCacheRefreshJob(reader, cache, "0 0 * * * *", logger.Nop())
	require.NoError(t, job.Run(ctx))

	assert.True(t, mr.Exists("godview:cache:snapshot:AUD"))
	assert.True(t, mr.Exists("godview:cache:snapshot:EUR"))
}

func TestCacheRefreshJob_Disabled(t *testing.T) {
	disabled := store.NewSnapshotCache(redis.NewCache(redis.NewFromRedis(nil), "godview"), time.Hour)
	job := NewCacheRefreshJob(store.NewMemoryStore(), disabled, "0 0 * * * *", logger.Nop())

	assert.NoError(t, job.Run(context.Background()))
}
