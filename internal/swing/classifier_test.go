package swing

import (
	"math/rand"
	"testing"

	"github.com/Alias1177/SwingTrader/models"
)

func candle(open, close float64) models.Candle {
	high, low := open, close
	if close > high {
		high = close
	}
	if open < low {
		low = open
	}
	return models.Candle{Open: open, High: high, Low: low, Close: close, Volume: 1000}
}

func series(candles ...models.Candle) []models.Candle {
	for i := range candles {
		candles[i].Timestamp = int64(i) * 60_000
	}
	return candles
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		candles  []models.Candle
		expected models.SwingState
	}{
		{
			name:     "empty series",
			candles:  nil,
			expected: models.SwingState{Direction: models.DirectionNone},
		},
		{
			name:    "single bullish candle",
			candles: series(candle(1.00, 1.10)),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.00,
				SwingPending: true,
			},
		},
		{
			name:    "single bearish candle",
			candles: series(candle(1.10, 1.00)),
			expected: models.SwingState{
				Direction:    models.DirectionDown,
				RefOpen:      1.10,
				SwingPending: true,
			},
		},
		{
			name:    "flat first candle counts as bearish seed",
			candles: series(candle(1.00, 1.00)),
			expected: models.SwingState{
				Direction:    models.DirectionDown,
				RefOpen:      1.00,
				SwingPending: true,
			},
		},
		{
			name: "uptrend continuation keeps anchor",
			candles: series(
				candle(1.00, 1.05),
				candle(1.05, 1.10),
				candle(1.10, 1.15),
			),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.00,
				SwingPending: true,
			},
		},
		{
			name: "bearish candle above anchor completes the swing",
			candles: series(
				candle(1.00, 1.05),
				candle(1.05, 1.10),
				candle(1.10, 1.08),
			),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.00,
				RefClose:     1.10,
				SwingPending: false,
			},
		},
		{
			name: "close below anchor reverses to down with fallback anchor",
			candles: series(
				candle(1.00, 1.05),
				candle(1.05, 0.95),
			),
			expected: models.SwingState{
				Direction:    models.DirectionDown,
				RefOpen:      1.05,
				SwingPending: true,
			},
		},
		{
			name: "close above anchor reverses to up with fallback anchor",
			candles: series(
				candle(1.10, 1.05),
				candle(1.05, 1.15),
			),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.05,
				SwingPending: true,
			},
		},
		{
			name: "re-affirmation re-anchors after the last bearish candle",
			candles: series(
				candle(1.00, 1.10),
				candle(1.10, 1.05),
				candle(1.05, 1.12),
			),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.10,
				SwingPending: true,
			},
		},
		{
			name: "reversal after re-affirmation anchors past the bearish candle",
			candles: series(
				candle(1.00, 1.10),
				candle(1.10, 1.05),
				candle(1.05, 1.12),
				candle(1.12, 1.08),
			),
			expected: models.SwingState{
				Direction:    models.DirectionDown,
				RefOpen:      1.05,
				SwingPending: true,
			},
		},
		{
			name: "downtrend swing completion mirrors the up rules",
			candles: series(
				candle(1.20, 1.10),
				candle(1.10, 1.05),
				candle(1.05, 1.08),
			),
			expected: models.SwingState{
				Direction:    models.DirectionDown,
				RefOpen:      1.20,
				RefClose:     1.05,
				SwingPending: false,
			},
		},
		{
			name: "downtrend re-affirmation below reference close",
			candles: series(
				candle(1.20, 1.10),
				candle(1.10, 1.05),
				candle(1.05, 1.08),
				candle(1.08, 1.02),
			),
			expected: models.SwingState{
				Direction:    models.DirectionDown,
				RefOpen:      1.05,
				SwingPending: true,
			},
		},
		{
			name: "close equal to anchor does not reverse",
			candles: series(
				candle(1.00, 1.05),
				candle(1.05, 1.00),
			),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.00,
				SwingPending: true,
			},
		},
		{
			name: "flat candle is a no-op in a pending upswing",
			candles: series(
				candle(1.00, 1.05),
				candle(1.05, 1.05),
			),
			expected: models.SwingState{
				Direction:    models.DirectionUp,
				RefOpen:      1.00,
				SwingPending: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.candles)
			if result != tt.expected {
				t.Errorf("Classify() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	candles := randomSeries(42, 300)

	first := Classify(candles)
	second := Classify(candles)
	if first != second {
		t.Errorf("Classify() not deterministic: %+v vs %+v", first, second)
	}

	// A prefix yields the same result as classifying the prefix directly.
	prefix := candles[:150]
	if Classify(prefix) != Classify(append([]models.Candle(nil), prefix...)) {
		t.Error("Classify() result depends on backing array, not values")
	}
}

func TestClassifyRefOpenIsACandleOpen(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		candles := randomSeries(seed, 250)
		state := Classify(candles)

		found := false
		for _, c := range candles {
			if c.Open == state.RefOpen {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("seed %d: refOpen %v is not the open of any candle", seed, state.RefOpen)
		}
	}
}

func randomSeries(seed int64, n int) []models.Candle {
	rng := rand.New(rand.NewSource(seed))
	candles := make([]models.Candle, n)
	price := 1.1000
	for i := 0; i < n; i++ {
		open := price
		price += (rng.Float64() - 0.5) * 0.004
		candles[i] = candle(open, price)
		candles[i].Timestamp = int64(i) * 60_000
	}
	return candles
}
