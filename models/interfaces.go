package models

import "context"

// CandleSource provides ordered candle history per (symbol, timeframe).
type CandleSource interface {
	GetCandles(ctx context.Context, symbol string, interval string) ([]Candle, error)
}

// Venue is the brokerage execution venue. Its reported net position is the
// authoritative exposure for a symbol; no shadow ledger is kept locally.
type Venue interface {
	GetAccountState(ctx context.Context) (AccountState, error)
	GetNetPosition(ctx context.Context, symbol string) (*Position, error)
	GetQuote(ctx context.Context, symbol string) (Quote, error)
	SubmitOrder(ctx context.Context, order OrderRequest) (Fill, error)
	ClosePosition(ctx context.Context, symbol string, side Side, volume float64) (Fill, error)
}

// TradeStore persists trade lifecycle records.
type TradeStore interface {
	RecordTradeOpen(ctx context.Context, record TradeRecord) error
	RecordTradeClose(ctx context.Context, symbol string, side Side, exitPrice float64, result float64) error
}

// Notifier delivers human-readable alerts. Best effort: callers log and
// swallow the error, delivery must never fail a tick.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}
