// Package twelvedata reads candle history from the Twelve Data REST API.
// It is the system's candle store: series come back ordered ascending by
// timestamp with duplicates dropped.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/Alias1177/SwingTrader/internal/platform/http"
	"github.com/Alias1177/SwingTrader/models"
)

// Client is the TwelveData API client
type Client struct {
	apiKey      string
	baseURL     string
	candleCount int
	httpClient  *httpclient.Client
	logger      zerolog.Logger
}

// ClientOptions holds options for creating a new TwelveData client
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	CandleCount     int
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new TwelveData API client
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = "https://api.twelvedata.com"
	}
	if options.CandleCount == 0 {
		options.CandleCount = 120
	}

	return &Client{
		apiKey:      options.APIKey,
		baseURL:     options.BaseURL,
		candleCount: options.CandleCount,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

// timeSeriesResponse mirrors the Twelve Data time_series payload.
type timeSeriesResponse struct {
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
	} `json:"meta"`
	Values []struct {
		Datetime string  `json:"datetime"`
		Open     float64 `json:"open,string"`
		High     float64 `json:"high,string"`
		Low      float64 `json:"low,string"`
		Close    float64 `json:"close,string"`
		Volume   int64   `json:"volume,string,omitempty"`
	} `json:"values"`
	Status string `json:"status"`
}

// GetCandles fetches candle data for one (symbol, interval) pair.
func (c *Client) GetCandles(ctx context.Context, symbol string, interval string) ([]models.Candle, error) {
	url := fmt.Sprintf(
		"%s/time_series?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		c.baseURL,
		symbol,
		interval,
		c.candleCount,
		c.apiKey,
	)

	c.logger.Debug().Str("symbol", symbol).Str("interval", interval).Msg("Fetching candles")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		c.logger.Error().Str("response", string(body)).Msg("Twelve Data API error")
		return nil, fmt.Errorf("Twelve Data API error: %s", string(body))
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	if len(data.Values) == 0 {
		c.logger.Warn().Str("response", string(body)).Msg("No candles in response")
		return nil, fmt.Errorf("%w: %s %s", models.ErrNoData, symbol, interval)
	}

	candles := make([]models.Candle, 0, len(data.Values))
	for _, v := range data.Values {
		ts, err := parseDatetime(v.Datetime)
		if err != nil {
			c.logger.Warn().Str("datetime", v.Datetime).Msg("Skipping candle with unparseable datetime")
			continue
		}
		candles = append(candles, models.Candle{
			Timestamp: ts,
			Open:      v.Open,
			High:      v.High,
			Low:       v.Low,
			Close:     v.Close,
			Volume:    v.Volume,
		})
	}

	// Oldest first, duplicates dropped: the classifier requires a strictly
	// ascending series.
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Timestamp < candles[j].Timestamp
	})
	candles = dedupe(candles)

	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: %s %s", models.ErrNoData, symbol, interval)
	}

	c.logger.Debug().Int("count", len(candles)).Msg("Fetched candles")
	return candles, nil
}

// parseDatetime converts the provider's datetime strings to unix
// milliseconds. Daily and larger intervals come back date-only.
func parseDatetime(s string) (int64, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized datetime %q", s)
}

func dedupe(candles []models.Candle) []models.Candle {
	if len(candles) < 2 {
		return candles
	}
	out := candles[:1]
	for _, c := range candles[1:] {
		if c.Timestamp != out[len(out)-1].Timestamp {
			out = append(out, c)
		}
	}
	return out
}
