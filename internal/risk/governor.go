// Package risk gates trade entries on drawdown and daily trade-count
// limits and computes position size from the swing anchor. Exits are never
// gated.
package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/Alias1177/SwingTrader/models"
)

var (
	ErrDrawdownExceeded  = errors.New("drawdown limit exceeded")
	ErrDailyLimitReached = errors.New("daily trade limit reached")
	ErrZeroStopDistance  = errors.New("entry price equals reference open, stop distance is zero")
)

// Governor holds the configured risk parameters.
type Governor struct {
	DailyDrawdownPct   float64
	OverallDrawdownPct float64
	MaxTradesPerDay    int
	RiskPercent        float64
	MinVolumeUnit      float64
	VolumePrecision    int
}

// Sizing is the computed order size for an approved entry.
type Sizing struct {
	Volume       float64
	StopDistance float64
}

// Validate rejects unusable risk parameters. Called once at startup; a
// failure here is fatal, not a per-tick condition.
func (g *Governor) Validate() error {
	if g.DailyDrawdownPct <= 0 || g.DailyDrawdownPct >= 1 {
		return fmt.Errorf("daily drawdown pct %v out of range (0,1)", g.DailyDrawdownPct)
	}
	if g.OverallDrawdownPct <= 0 || g.OverallDrawdownPct >= 1 {
		return fmt.Errorf("overall drawdown pct %v out of range (0,1)", g.OverallDrawdownPct)
	}
	if g.MaxTradesPerDay < 1 {
		return fmt.Errorf("max trades per day %d must be at least 1", g.MaxTradesPerDay)
	}
	if g.RiskPercent <= 0 || g.RiskPercent >= 1 {
		return fmt.Errorf("risk percent %v out of range (0,1)", g.RiskPercent)
	}
	if g.MinVolumeUnit <= 0 {
		return fmt.Errorf("min volume unit %v must be positive", g.MinVolumeUnit)
	}
	if g.VolumePrecision < 0 {
		return fmt.Errorf("volume precision %d must not be negative", g.VolumePrecision)
	}
	return nil
}

// CheckDrawdown rejects entries while equity sits below either drawdown
// threshold. Both thresholds compare against the current account balance,
// not a running equity peak, which understates true historical drawdown;
// that baseline is kept on purpose. See DESIGN.md.
func (g *Governor) CheckDrawdown(account models.AccountState) error {
	if account.Equity < account.Balance*(1-g.DailyDrawdownPct) {
		return fmt.Errorf("%w: equity %.2f below daily floor of balance %.2f", ErrDrawdownExceeded, account.Equity, account.Balance)
	}
	if account.Equity < account.Balance*(1-g.OverallDrawdownPct) {
		return fmt.Errorf("%w: equity %.2f below overall floor of balance %.2f", ErrDrawdownExceeded, account.Equity, account.Balance)
	}
	return nil
}

// CheckDailyLimit rejects entries once the day's opened-trade count reaches
// the cap. The caller owns the counter and its date rollover.
func (g *Governor) CheckDailyLimit(tradesToday int) error {
	if tradesToday >= g.MaxTradesPerDay {
		return fmt.Errorf("%w: %d trades opened today", ErrDailyLimitReached, tradesToday)
	}
	return nil
}

// PositionSize computes order volume from the configured risk fraction of
// balance and a stop distance of twice the entry-to-anchor span. The volume
// is snapped down to the minimum tradable unit and rounded to the venue's
// volume precision.
func (g *Governor) PositionSize(entryPrice, refOpen, balance float64) (Sizing, error) {
	stopDistance := 2 * math.Abs(entryPrice-refOpen)
	if stopDistance == 0 {
		return Sizing{}, ErrZeroStopDistance
	}

	volume := (g.RiskPercent * balance) / stopDistance
	volume = math.Floor(volume/g.MinVolumeUnit) * g.MinVolumeUnit
	if volume < g.MinVolumeUnit {
		volume = g.MinVolumeUnit
	}

	scale := math.Pow(10, float64(g.VolumePrecision))
	volume = math.Round(volume*scale) / scale

	return Sizing{Volume: volume, StopDistance: stopDistance}, nil
}

// StopPrice places the protective stop a full stop distance away from entry
// on the losing side.
func StopPrice(side models.Side, entryPrice, stopDistance float64) float64 {
	if side == models.SideBuy {
		return entryPrice - stopDistance
	}
	return entryPrice + stopDistance
}
