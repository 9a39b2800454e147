// Package controller drives the per-tick trade lifecycle: exits first, then
// at most one entry, gated by the risk governor. The venue's reported net
// position is treated as ground truth for open exposure.
package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SwingTrader/internal/risk"
	"github.com/Alias1177/SwingTrader/models"
)

// Controller evaluates one symbol per tick.
type Controller struct {
	symbol           string
	venue            models.Venue
	store            models.TradeStore
	notifier         models.Notifier
	governor         *risk.Governor
	resultMultiplier float64
	logger           zerolog.Logger
}

// Options holds the collaborators and parameters for a Controller.
type Options struct {
	Symbol           string
	Venue            models.Venue
	Store            models.TradeStore
	Notifier         models.Notifier
	Governor         *risk.Governor
	ResultMultiplier float64
}

// New creates a controller for a single symbol.
func New(opts Options) *Controller {
	return &Controller{
		symbol:           opts.Symbol,
		venue:            opts.Venue,
		store:            opts.Store,
		notifier:         opts.Notifier,
		governor:         opts.Governor,
		resultMultiplier: opts.ResultMultiplier,
		logger:           log.With().Str("component", "controller").Str("symbol", opts.Symbol).Logger(),
	}
}

// TickInput is everything a single evaluation needs besides the memory.
type TickInput struct {
	Verdict   models.Verdict
	Fast      models.SwingState
	LastClose float64 // latest fast-timeframe close, 0 when unavailable
	Now       time.Time
}

// Tick runs one evaluation. Transitions are applied in strict priority
// order: unresolved environment exit, environment-conflict exit, fast-flip
// exit, then entry. The previous fast direction is persisted at the end of
// every tick, including failed ones.
func (c *Controller) Tick(ctx context.Context, in TickInput, mem *Memory) {
	prev := mem.PrevFastDirection
	defer func() {
		mem.PrevFastDirection = in.Fast.Direction
	}()

	mem.rollover(in.Now)
	c.notifyAlignment(ctx, in.Verdict)

	position, err := c.venue.GetNetPosition(ctx, c.symbol)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Position query failed, skipping trading actions this tick")
		return
	}

	// 1. Unresolved environment: close anything open, consider nothing.
	if in.Verdict == models.VerdictUnaligned || !in.Fast.HasData() {
		if position != nil {
			c.closePosition(ctx, position, "environment break")
		}
		return
	}

	// 2. Open position against the environment.
	if position != nil && conflictsWithVerdict(position.Side, in.Verdict) {
		if !c.closePosition(ctx, position, "environment conflict") {
			return
		}
		position = nil
	}

	// 3. Fast timeframe flipped against the open position.
	if position != nil && flippedAgainst(position.Side, prev, in.Fast.Direction) {
		if !c.closePosition(ctx, position, "fast flip") {
			return
		}
		position = nil
	}

	// 4. Entry, only while flat.
	if position == nil {
		if side, ok := entrySignal(in.Verdict, prev, in.Fast.Direction); ok {
			c.tryOpen(ctx, side, in, mem)
		}
	}
}

// conflictsWithVerdict reports whether the open side contradicts the
// aligned environment.
func conflictsWithVerdict(side models.Side, verdict models.Verdict) bool {
	return (side == models.SideBuy && verdict == models.VerdictDown) ||
		(side == models.SideSell && verdict == models.VerdictUp)
}

// flippedAgainst reports whether the fast timeframe just flipped through
// the losing side of the position.
func flippedAgainst(side models.Side, prev, current models.Direction) bool {
	if side == models.SideBuy {
		return prev == models.DirectionUp && current == models.DirectionDown
	}
	return prev == models.DirectionDown && current == models.DirectionUp
}

// entrySignal requires a counter-to-trend flip on the fast timeframe in the
// direction of the aligned environment.
func entrySignal(verdict models.Verdict, prev, current models.Direction) (models.Side, bool) {
	if verdict == models.VerdictUp && prev == models.DirectionDown && current == models.DirectionUp {
		return models.SideBuy, true
	}
	if verdict == models.VerdictDown && prev == models.DirectionUp && current == models.DirectionDown {
		return models.SideSell, true
	}
	return "", false
}

func (c *Controller) tryOpen(ctx context.Context, side models.Side, in TickInput, mem *Memory) {
	if in.LastClose == 0 || in.Fast.RefOpen == 0 {
		c.logger.Debug().Msg("Entry signal without price or anchor, skipping")
		return
	}

	account, err := c.venue.GetAccountState(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Account query failed, skipping entry")
		return
	}

	if err := c.governor.CheckDrawdown(account); err != nil {
		c.logger.Info().Err(err).Msg("Entry blocked by drawdown limit")
		return
	}
	if err := c.governor.CheckDailyLimit(mem.DailyTradeCount); err != nil {
		c.logger.Info().Err(err).Msg("Entry blocked by daily trade limit")
		return
	}

	sizing, err := c.governor.PositionSize(in.LastClose, in.Fast.RefOpen, account.Balance)
	if err != nil {
		c.logger.Info().Err(err).Msg("Entry rejected by position sizing")
		return
	}

	stopLoss := risk.StopPrice(side, in.LastClose, sizing.StopDistance)
	order := models.OrderRequest{
		Symbol:   c.symbol,
		Side:     side,
		Volume:   sizing.Volume,
		Price:    in.LastClose,
		StopLoss: stopLoss,
	}

	fill, err := c.venue.SubmitOrder(ctx, order)
	if err != nil {
		if errors.Is(err, models.ErrOrderRejected) {
			c.logger.Warn().Err(err).Msg("Order rejected, counter untouched")
		} else {
			c.logger.Warn().Err(err).Msg("Order submission failed")
		}
		return
	}

	mem.DailyTradeCount++
	c.logger.Info().
		Str("side", string(side)).
		Float64("volume", sizing.Volume).
		Float64("price", fill.Price).
		Float64("stop_loss", stopLoss).
		Msg("Opened position")

	record := models.TradeRecord{
		Symbol:     c.symbol,
		Side:       side,
		Volume:     sizing.Volume,
		EntryPrice: fill.Price,
		StopLoss:   stopLoss,
		RefOpen:    in.Fast.RefOpen,
		OpenTime:   fill.Time,
	}
	if err := c.store.RecordTradeOpen(ctx, record); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist trade open")
	}
}

// closePosition submits a closing order sized to the venue-reported net
// volume. Returns false when the venue did not confirm the close, in which
// case the position is assumed still open.
func (c *Controller) closePosition(ctx context.Context, position *models.Position, reason string) bool {
	fill, err := c.venue.ClosePosition(ctx, c.symbol, position.Side, position.Volume)
	if err != nil {
		c.logger.Warn().Err(err).Str("reason", reason).Msg("Close failed, retrying next tick")
		return false
	}

	result := c.realizedResult(position, fill.Price)
	c.logger.Info().
		Str("side", string(position.Side)).
		Str("reason", reason).
		Float64("exit_price", fill.Price).
		Float64("result", result).
		Msg("Closed position")

	if err := c.store.RecordTradeClose(ctx, c.symbol, position.Side, fill.Price, result); err != nil {
		c.logger.Error().Err(err).Msg("Failed to persist trade close")
	}
	return true
}

// realizedResult is the signed exit-to-entry move scaled by the configured
// multiplier. The multiplier stands in for instrument contract value and is
// deliberately configuration, not a constant.
func (c *Controller) realizedResult(position *models.Position, exitPrice float64) float64 {
	move := exitPrice - position.EntryPrice
	if position.Side == models.SideSell {
		move = -move
	}
	return move * c.resultMultiplier
}

func (c *Controller) notifyAlignment(ctx context.Context, verdict models.Verdict) {
	if verdict != models.VerdictUp && verdict != models.VerdictDown {
		return
	}
	msg := fmt.Sprintf("%s: slow timeframes aligned %s", c.symbol, verdict)
	if err := c.notifier.Notify(ctx, msg); err != nil {
		c.logger.Warn().Err(err).Msg("Notification failed")
	}
}
