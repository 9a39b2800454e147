package controller

import (
	"time"

	"github.com/Alias1177/SwingTrader/models"
)

// Memory is the controller's only carried state between ticks. It is owned
// by the caller and mutated by the single active tick, never shared across
// concurrent evaluations.
type Memory struct {
	PrevFastDirection models.Direction
	DailyTradeCount   int
	DailyTradeDate    time.Time
}

// NewMemory returns empty memory for the first tick. The first tick only
// seeds the previous direction and never signals.
func NewMemory() *Memory {
	return &Memory{PrevFastDirection: models.DirectionNone}
}

// rollover zeroes the daily trade counter whenever the wall-clock date
// changes.
func (m *Memory) rollover(now time.Time) {
	day := now.Truncate(24 * time.Hour)
	if !day.Equal(m.DailyTradeDate) {
		m.DailyTradeCount = 0
		m.DailyTradeDate = day
	}
}
