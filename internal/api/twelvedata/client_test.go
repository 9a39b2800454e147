package twelvedata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Alias1177/SwingTrader/models"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(ClientOptions{
		APIKey:          "test-key",
		BaseURL:         server.URL,
		CandleCount:     50,
		RequestTimeout:  2 * time.Second,
		RequestsPerSec:  100,
		MaxRetryTimeout: 100 * time.Millisecond,
	})
	return client, server
}

func TestGetCandles(t *testing.T) {
	// Values arrive newest-first with one duplicate, as the provider sends
	// them.
	payload := `{
		"meta": {"symbol": "EUR/USD", "interval": "5min"},
		"values": [
			{"datetime": "2026-08-21 12:10:00", "open": "1.1020", "high": "1.1030", "low": "1.1010", "close": "1.1025", "volume": "300"},
			{"datetime": "2026-08-21 12:05:00", "open": "1.1010", "high": "1.1025", "low": "1.1005", "close": "1.1020", "volume": "200"},
			{"datetime": "2026-08-21 12:05:00", "open": "1.1010", "high": "1.1025", "low": "1.1005", "close": "1.1020", "volume": "200"},
			{"datetime": "2026-08-21 12:00:00", "open": "1.1000", "high": "1.1015", "low": "1.0995", "close": "1.1010", "volume": "100"}
		],
		"status": "ok"
	}`

	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("symbol"); got != "EUR/USD" {
			t.Errorf("symbol = %q", got)
		}
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	candles, err := client.GetCandles(context.Background(), "EUR/USD", "5min")
	if err != nil {
		t.Fatalf("GetCandles() error = %v", err)
	}

	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3 after dedupe", len(candles))
	}
	for i := 1; i < len(candles); i++ {
		if candles[i].Timestamp <= candles[i-1].Timestamp {
			t.Fatalf("series not strictly ascending at index %d", i)
		}
	}
	if candles[0].Open != 1.1000 || candles[2].Close != 1.1025 {
		t.Errorf("unexpected ordering: first open %v, last close %v", candles[0].Open, candles[2].Close)
	}
}

func TestGetCandlesEmptyResponse(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"meta": {}, "values": [], "status": "ok"}`)
	}))
	defer server.Close()

	_, err := client.GetCandles(context.Background(), "EUR/USD", "5min")
	if !errors.Is(err, models.ErrNoData) {
		t.Errorf("GetCandles() error = %v, want ErrNoData", err)
	}
}

func TestGetCandlesProviderError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"error","message":"symbol not found"}`)
	}))
	defer server.Close()

	if _, err := client.GetCandles(context.Background(), "XX/YY", "5min"); err == nil {
		t.Error("GetCandles() expected error for provider error status")
	}
}

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2026-08-21 12:00:00", false},
		{"2026-08-21", false},
		{"21/08/2026", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseDatetime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseDatetime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
