// Package venue talks to the brokerage execution venue over its REST API.
// The venue owns account state and net positions; this client never caches
// either.
package venue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpclient "github.com/Alias1177/SwingTrader/internal/platform/http"
	"github.com/Alias1177/SwingTrader/models"
)

// Client is the execution venue REST client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new venue client.
type ClientOptions struct {
	APIKey          string
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new venue client.
func NewClient(options ClientOptions) *Client {
	return &Client{
		apiKey:  options.APIKey,
		baseURL: options.BaseURL,
		httpClient: httpclient.NewClient(httpclient.ClientOptions{
			Timeout:         options.RequestTimeout,
			RequestsPerSec:  options.RequestsPerSec,
			MaxRetryTimeout: options.MaxRetryTimeout,
		}),
		logger: log.With().Str("component", "venue_client").Logger(),
	}
}

type accountResponse struct {
	Balance float64 `json:"balance"`
	Equity  float64 `json:"equity"`
}

type positionResponse struct {
	Side       string  `json:"side"`
	Volume     float64 `json:"volume"`
	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
}

type quoteResponse struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

type executionResponse struct {
	Status string    `json:"status"` // FILLED or REJECTED
	Price  float64   `json:"price"`
	Time   time.Time `json:"time"`
	Reason string    `json:"reason,omitempty"`
}

// GetAccountState returns the venue-reported balance and equity.
func (c *Client) GetAccountState(ctx context.Context) (models.AccountState, error) {
	var out accountResponse
	if err := c.get(ctx, "/v1/account", nil, &out); err != nil {
		return models.AccountState{}, fmt.Errorf("%w: account query: %w", models.ErrVenueUnavailable, err)
	}
	return models.AccountState{Balance: out.Balance, Equity: out.Equity}, nil
}

// GetNetPosition returns the net open position for a symbol, or nil when
// flat.
func (c *Client) GetNetPosition(ctx context.Context, symbol string) (*models.Position, error) {
	var out positionResponse
	err := c.get(ctx, "/v1/position", url.Values{"symbol": {symbol}}, &out)
	if err != nil {
		var statusErr *httpclient.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: position query: %w", models.ErrVenueUnavailable, err)
	}
	if out.Side == "" || out.Volume == 0 {
		return nil, nil
	}
	return &models.Position{
		Side:       models.Side(out.Side),
		Volume:     out.Volume,
		EntryPrice: out.EntryPrice,
		StopLoss:   out.StopLoss,
	}, nil
}

// GetQuote returns the current bid/ask for a symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (models.Quote, error) {
	var out quoteResponse
	if err := c.get(ctx, "/v1/quote", url.Values{"symbol": {symbol}}, &out); err != nil {
		return models.Quote{}, fmt.Errorf("%w: quote query: %w", models.ErrVenueUnavailable, err)
	}
	return models.Quote{Bid: out.Bid, Ask: out.Ask}, nil
}

// SubmitOrder submits an opening order and waits for the execution result.
func (c *Client) SubmitOrder(ctx context.Context, order models.OrderRequest) (models.Fill, error) {
	var out executionResponse
	if err := c.post(ctx, "/v1/orders", order, &out); err != nil {
		return models.Fill{}, fmt.Errorf("%w: order submission: %w", models.ErrVenueUnavailable, err)
	}
	if out.Status != "FILLED" {
		return models.Fill{}, fmt.Errorf("%w: %s", models.ErrOrderRejected, out.Reason)
	}
	c.logger.Debug().Str("symbol", order.Symbol).Str("side", string(order.Side)).Float64("price", out.Price).Msg("Order filled")
	return models.Fill{Price: out.Price, Time: out.Time}, nil
}

// ClosePosition submits a closing order for the given net volume.
func (c *Client) ClosePosition(ctx context.Context, symbol string, side models.Side, volume float64) (models.Fill, error) {
	payload := struct {
		Symbol string      `json:"symbol"`
		Side   models.Side `json:"side"`
		Volume float64     `json:"volume"`
	}{symbol, side, volume}

	var out executionResponse
	if err := c.post(ctx, "/v1/positions/close", payload, &out); err != nil {
		return models.Fill{}, fmt.Errorf("%w: position close: %w", models.ErrVenueUnavailable, err)
	}
	if out.Status != "FILLED" {
		return models.Fill{}, fmt.Errorf("%w: %s", models.ErrOrderRejected, out.Reason)
	}
	c.logger.Debug().Str("symbol", symbol).Float64("price", out.Price).Msg("Position closed")
	return models.Fill{Price: out.Price, Time: out.Time}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, out, true)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out, false)
}

func (c *Client) do(req *http.Request, out interface{}, retry bool) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp *http.Response
	var err error
	if retry {
		resp, err = c.httpClient.DoRequest(req.Context(), req)
	} else {
		resp, err = c.httpClient.DoOnce(req.Context(), req)
	}
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
