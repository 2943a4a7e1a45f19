package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perfhelf/FXview/pkg/httputil"
	"github.com/perfhelf/FXview/pkg/logger"
)

// Local (UTC+1) times: 14th 23:00, 15th 12:00 (null close), 15th 22:00, 15th 22:30.
const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AUDUSD=X", "gmtoffset": 3600},
      "timestamp": [1710453600, 1710500400, 1710536400, 1710538200],
      "indicators": {"quote": [{
        "close": [0.66, null, 0.661, 0.662],
        "high":  [0.67, 0.68, 0.671, 0.672],
        "low":   [0.65, 0.64, 0.651, 0.652]
      }]}
    }],
    "error": null
  }
}`

const notFoundBody = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	httpClient := httputil.New(logger.Nop(), 5*time.Second).DisableRetry()
	return NewClient(httpClient, logger.Nop(), srv.URL)
}

func TestFetchDaily(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chartBody)
	})

	series, err := client.FetchDaily(context.Background(), "AUDUSD=X", "2y")
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/AUDUSD=X", gotPath)
	assert.Contains(t, gotQuery, "range=2y")
	assert.Contains(t, gotQuery, "interval=1d")

	require.Equal(t, 2, series.Len())
	assert.Equal(t, time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), series.Bars[0].Date)
	assert.Equal(t, 0.66, series.Bars[0].Close)
	// null row dropped, last row of the 15th wins
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), series.Bars[1].Date)
	assert.Equal(t, 0.662, series.Bars[1].Close)
	assert.Equal(t, 0.652, series.Bars[1].Low)
}

func TestParseChart_Dates(t *testing.T) {
	var r chartResult
	r.Meta.GMTOffset = 3600
	// 2024-03-15 23:30 UTC is already the 16th in UTC+1
	r.Timestamp = []int64{1710545400}
	v := 1.0
	r.Indicators.Quote = append(r.Indicators.Quote, struct {
		Close []*float64 `json:"close"`
		High  []*float64 `json:"high"`
		Low   []*float64 `json:"low"`
	}{Close: []*float64{&v}, High: []*float64{&v}, Low: []*float64{&v}})

	series := parseChart("X", r)
	require.Equal(t, 1, series.Len())
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), series.Bars[0].Date)
}

func TestFetchDaily_NoData(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"404", http.StatusNotFound, notFoundBody},
		{"error payload", http.StatusOK, notFoundBody},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`},
		{"all null", http.StatusOK, `{"chart":{"result":[{"meta":{},"timestamp":[1710453600],"indicators":{"quote":[{"close":[null],"high":[null],"low":[null]}]}}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := client.FetchDaily(context.Background(), "NOPE", "2y")
			assert.ErrorIs(t, err, ErrNoData)
		})
	}
}

func TestFetchDaily_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.FetchDaily(context.Background(), "AUDUSD=X", "2y")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestCollector_FetchAll(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if strings.HasSuffix(r.URL.Path, "/MISSING") {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, notFoundBody)
			return
		}
		fmt.Fprint(w, chartBody)
	})

	collector := NewCollector(client, "2y", 2, logger.Nop())
	table, failures := collector.FetchAll(context.Background(), []string{"AUDUSD=X", "EURUSD=X", "MISSING"})

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Len(t, table, 2)
	_, ok := table.Get("EURUSD=X")
	assert.True(t, ok)
	_, ok = table.Get("MISSING")
	assert.False(t, ok)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures["MISSING"], ErrNoData)
}

func TestCollector_Canceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table, failures := NewCollector(client, "2y", 1, logger.Nop()).FetchAll(ctx, []string{"AUDUSD=X"})
	assert.Empty(t, table)
	assert.ErrorIs(t, failures["AUDUSD=X"], context.Canceled)
}
