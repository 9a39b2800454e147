// Package environment aggregates slow-timeframe classifications into a
// single alignment verdict. Entries are only permitted while every slow
// timeframe agrees on direction.
package environment

import (
	"github.com/Alias1177/SwingTrader/models"
)

// Aggregate returns VerdictUp only when every tracked slow timeframe
// classified Up, VerdictDown only when every one classified Down, and
// VerdictUnaligned otherwise. A missing or empty classification for any
// timeframe yields VerdictUnaligned: never trade on partial data.
func Aggregate(states map[string]models.SwingState, slowTimeframes []string) models.Verdict {
	if len(slowTimeframes) == 0 {
		return models.VerdictUnaligned
	}

	allUp, allDown := true, true
	for _, tf := range slowTimeframes {
		state, ok := states[tf]
		if !ok || !state.HasData() {
			return models.VerdictUnaligned
		}
		if state.Direction != models.DirectionUp {
			allUp = false
		}
		if state.Direction != models.DirectionDown {
			allDown = false
		}
	}

	switch {
	case allUp:
		return models.VerdictUp
	case allDown:
		return models.VerdictDown
	default:
		return models.VerdictUnaligned
	}
}
