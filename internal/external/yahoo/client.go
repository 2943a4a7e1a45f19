// Package yahoo fetches daily history from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/perfhelf/FXview/internal/contracts"
	"github.com/perfhelf/FXview/pkg/httputil"
	"github.com/perfhelf/FXview/pkg/logger"
)

// ErrNoData is returned when the provider has no usable bars for a ticker
var ErrNoData = errors.New("yahoo: no data")

// Client handles communication with the Yahoo chart endpoint
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log.Module("yahoo"),
		baseURL:    baseURL,
	}
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		GMTOffset int64  `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
			High  []*float64 `json:"high"`
			Low   []*float64 `json:"low"`
		} `json:"quote"`
	} `json:"indicators"`
}

// FetchDaily fetches daily bars for ticker over a provider range such as "2y"
func (c *Client) FetchDaily(ctx context.Context, ticker, rng string) (*contracts.InstrumentSeries, error) {
	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", "1d")
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ticker), params.Encode())

	var resp chartResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
		}
		return nil, fmt.Errorf("fetch %s: %w", ticker, err)
	}
	if e := resp.Chart.Error; e != nil {
		return nil, fmt.Errorf("%s: %s: %w", ticker, e.Description, ErrNoData)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}

	series := parseChart(ticker, resp.Chart.Result[0])
	if series.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, ErrNoData)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  series.Len(),
	}).Debug("Fetched daily bars")
	return series, nil
}

// parseChart turns the column arrays into bars. Rows with a null close, high or low
// are dropped; dates are the exchange-local day; a repeated day keeps the last row.
func parseChart(ticker string, r chartResult) *contracts.InstrumentSeries {
	out := &contracts.InstrumentSeries{Symbol: ticker}
	if len(r.Indicators.Quote) == 0 {
		return out
	}
	q := r.Indicators.Quote[0]

	out.Bars = make([]contracts.Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(q.Close) || i >= len(q.High) || i >= len(q.Low) {
			break
		}
		if q.Close[i] == nil || q.High[i] == nil || q.Low[i] == nil {
			continue
		}

		local := time.Unix(ts+r.Meta.GMTOffset, 0).UTC()
		y, m, d := local.Date()
		bar := contracts.Bar{
			Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Close: *q.Close[i],
			High:  *q.High[i],
			Low:   *q.Low[i],
		}

		n := len(out.Bars)
		switch {
		case n > 0 && out.Bars[n-1].Date.Equal(bar.Date):
			out.Bars[n-1] = bar
		case n > 0 && bar.Date.Before(out.Bars[n-1].Date):
			continue
		default:
			out.Bars = append(out.Bars, bar)
		}
	}
	return out
}
