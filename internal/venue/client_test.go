package venue

import (
	"context"
	"errors"
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
		RequestTimeout:  2 * time.Second,
		RequestsPerSec:  100,
		MaxRetryTimeout: 100 * time.Millisecond,
	})
	return client, server
}

func TestGetNetPosition(t *testing.T) {
	t.Run("open position", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("Authorization = %q", got)
			}
			w.Write([]byte(`{"side":"BUY","volume":1.5,"entry_price":1.1,"stop_loss":1.09}`))
		}))
		defer server.Close()

		pos, err := client.GetNetPosition(context.Background(), "EUR/USD")
		if err != nil {
			t.Fatalf("GetNetPosition() error = %v", err)
		}
		if pos == nil || pos.Side != models.SideBuy || pos.Volume != 1.5 {
			t.Errorf("GetNetPosition() = %+v", pos)
		}
	})

	t.Run("flat reported as 404", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		pos, err := client.GetNetPosition(context.Background(), "EUR/USD")
		if err != nil {
			t.Fatalf("GetNetPosition() error = %v", err)
		}
		if pos != nil {
			t.Errorf("GetNetPosition() = %+v, want nil for flat", pos)
		}
	})

	t.Run("flat reported as empty side", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"side":"","volume":0}`))
		}))
		defer server.Close()

		pos, err := client.GetNetPosition(context.Background(), "EUR/USD")
		if err != nil || pos != nil {
			t.Errorf("GetNetPosition() = %+v, %v, want nil, nil", pos, err)
		}
	})
}

func TestSubmitOrder(t *testing.T) {
	t.Run("filled", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"FILLED","price":1.1051,"time":"2026-08-21T12:00:00Z"}`))
		}))
		defer server.Close()

		fill, err := client.SubmitOrder(context.Background(), models.OrderRequest{
			Symbol: "EUR/USD", Side: models.SideBuy, Volume: 1, Price: 1.105,
		})
		if err != nil {
			t.Fatalf("SubmitOrder() error = %v", err)
		}
		if fill.Price != 1.1051 {
			t.Errorf("fill price = %v, want 1.1051", fill.Price)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"REJECTED","reason":"insufficient margin"}`))
		}))
		defer server.Close()

		_, err := client.SubmitOrder(context.Background(), models.OrderRequest{Symbol: "EUR/USD"})
		if !errors.Is(err, models.ErrOrderRejected) {
			t.Errorf("SubmitOrder() error = %v, want ErrOrderRejected", err)
		}
	})

	t.Run("transport failure is not a rejection", func(t *testing.T) {
		client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := client.SubmitOrder(context.Background(), models.OrderRequest{Symbol: "EUR/USD"})
		if !errors.Is(err, models.ErrVenueUnavailable) {
			t.Errorf("SubmitOrder() error = %v, want ErrVenueUnavailable", err)
		}
		if errors.Is(err, models.ErrOrderRejected) {
			t.Error("transport failure must not map to ErrOrderRejected")
		}
	})
}

func TestGetAccountState(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"balance":10000,"equity":9800}`))
	}))
	defer server.Close()

	account, err := client.GetAccountState(context.Background())
	if err != nil {
		t.Fatalf("GetAccountState() error = %v", err)
	}
	if account.Balance != 10000 || account.Equity != 9800 {
		t.Errorf("GetAccountState() = %+v", account)
	}
}
