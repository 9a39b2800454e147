package models

import (
	"time"
)

// Direction is the classified trend direction of a candle series.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
	DirectionNone Direction = "NONE"
)

// Side is the side of an open position or order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Verdict is the multi-timeframe alignment result over the slow timeframes.
type Verdict string

const (
	VerdictUp        Verdict = "UP"
	VerdictDown      Verdict = "DOWN"
	VerdictUnaligned Verdict = "UNALIGNED"
)

// Candle represents a single price candle
type Candle struct {
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume,omitempty"`
}

// IsBullish reports whether the candle closed above its open.
func (c Candle) IsBullish() bool { return c.Close > c.Open }

// IsBearish reports whether the candle closed below its open.
func (c Candle) IsBearish() bool { return c.Close < c.Open }

// SwingState is the classification result for one (symbol, timeframe) series.
// RefClose is meaningful only while SwingPending is false.
type SwingState struct {
	Direction    Direction `json:"direction"`
	RefOpen      float64   `json:"ref_open"`
	RefClose     float64   `json:"ref_close,omitempty"`
	SwingPending bool      `json:"swing_pending"`
}

// HasData reports whether the state was produced from a non-empty series.
func (s SwingState) HasData() bool {
	return s.Direction == DirectionUp || s.Direction == DirectionDown
}

// AccountState is the venue-reported account snapshot.
type AccountState struct {
	Balance float64 `json:"balance"`
	Equity  float64 `json:"equity"`
}

// Quote is the venue-reported current bid/ask for a symbol.
type Quote struct {
	Bid float64 `json:"bid"`
	Ask float64 `json:"ask"`
}

// Position is the venue-reported net open exposure for a symbol.
type Position struct {
	Side       Side    `json:"side"`
	Volume     float64 `json:"volume"`
	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
}

// OrderRequest is a request to open a position at the venue.
type OrderRequest struct {
	Symbol   string  `json:"symbol"`
	Side     Side    `json:"side"`
	Volume   float64 `json:"volume"`
	Price    float64 `json:"price"`
	StopLoss float64 `json:"stop_loss"`
}

// Fill is a confirmed execution reported by the venue.
type Fill struct {
	Price float64   `json:"price"`
	Time  time.Time `json:"time"`
}

// TradeRecord is the persisted lifecycle of a single trade. Exit fields are
// nil until the position is closed.
type TradeRecord struct {
	Symbol     string     `json:"symbol"`
	Side       Side       `json:"side"`
	Volume     float64    `json:"volume"`
	EntryPrice float64    `json:"entry_price"`
	StopLoss   float64    `json:"stop_loss"`
	RefOpen    float64    `json:"ref_open"`
	OpenTime   time.Time  `json:"open_time"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
	CloseTime  *time.Time `json:"close_time,omitempty"`
	Result     *float64   `json:"result,omitempty"`
}
