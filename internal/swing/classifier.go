package swing

import (
	"github.com/Alias1177/SwingTrader/models"
)

// Classify walks the full candle history and derives the current trend
// direction together with the reference-open anchor of the most recent
// swing. It is a pure function of the series: identical input always yields
// identical output, and it is recomputed from scratch on every evaluation.
//
// A swing is a directional run of candles. While a swing is pending, the
// first counter-colored candle that does not breach the anchor completes the
// swing and records the previous candle's close as the reference close. A
// close breaching the anchor reverses the trend; a close breaching the
// reference close of a completed swing re-affirms the trend. Both cases
// re-anchor the reference open.
func Classify(candles []models.Candle) models.SwingState {
	if len(candles) == 0 {
		return models.SwingState{Direction: models.DirectionNone}
	}

	first := candles[0]
	state := models.SwingState{
		Direction:    models.DirectionDown,
		RefOpen:      first.Open,
		SwingPending: true,
	}
	if first.IsBullish() {
		state.Direction = models.DirectionUp
	}

	for i := 1; i < len(candles); i++ {
		c := candles[i]

		switch state.Direction {
		case models.DirectionUp:
			if c.Close < state.RefOpen {
				// Anchor breached: trend reverses down.
				state.Direction = models.DirectionDown
				state.SwingPending = true
				state.RefClose = 0
				state.RefOpen = reanchorAfterUp(candles, i)
				continue
			}
			if state.SwingPending {
				if c.IsBearish() && c.Close > state.RefOpen {
					// Counter-move without a breach ends the swing.
					state.RefClose = candles[i-1].Close
					state.SwingPending = false
				}
			} else if c.Close > state.RefClose {
				// Close back above the completed swing's reference close
				// re-affirms the uptrend and starts a fresh swing.
				state.SwingPending = true
				state.RefClose = 0
				state.RefOpen = reanchorAfterDown(candles, i)
			}

		case models.DirectionDown:
			if c.Close > state.RefOpen {
				state.Direction = models.DirectionUp
				state.SwingPending = true
				state.RefClose = 0
				state.RefOpen = reanchorAfterDown(candles, i)
				continue
			}
			if state.SwingPending {
				if c.IsBullish() && c.Close < state.RefOpen {
					state.RefClose = candles[i-1].Close
					state.SwingPending = false
				}
			} else if c.Close < state.RefClose {
				state.SwingPending = true
				state.RefClose = 0
				state.RefOpen = reanchorAfterUp(candles, i)
			}
		}
	}

	return state
}

// reanchorAfterUp finds the origin of the new downswing that begins at index
// i: the open of the candle immediately after the nearest earlier bearish
// candle. Falls back to the open of candle i when no bearish candle exists.
func reanchorAfterUp(candles []models.Candle, i int) float64 {
	for j := i - 1; j >= 0; j-- {
		if candles[j].IsBearish() {
			return candles[j+1].Open
		}
	}
	return candles[i].Open
}

// reanchorAfterDown is the mirror of reanchorAfterUp: it scans back for the
// nearest earlier bullish candle.
func reanchorAfterDown(candles []models.Candle, i int) float64 {
	for j := i - 1; j >= 0; j-- {
		if candles[j].IsBullish() {
			return candles[j+1].Open
		}
	}
	return candles[i].Open
}
