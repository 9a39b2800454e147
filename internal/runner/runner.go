// Package runner drives the evaluation loop. One tick fetches every tracked
// timeframe, classifies them, aggregates the slow set and hands the result
// to the controller. Ticks never overlap: the loop is synchronous and an
// explicit in-flight guard makes an externally triggered evaluation a no-op
// while one is already running.
package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SwingTrader/internal/controller"
	"github.com/Alias1177/SwingTrader/internal/environment"
	"github.com/Alias1177/SwingTrader/internal/swing"
	"github.com/Alias1177/SwingTrader/models"
)

// Runner owns the periodic evaluation of one symbol.
type Runner struct {
	source         models.CandleSource
	ctrl           *controller.Controller
	memory         *controller.Memory
	symbol         string
	fastTimeframe  string
	slowTimeframes []string
	interval       time.Duration
	inFlight       atomic.Bool
	logger         zerolog.Logger
}

// Options holds the collaborators and parameters for a Runner.
type Options struct {
	Source         models.CandleSource
	Controller     *controller.Controller
	Symbol         string
	FastTimeframe  string
	SlowTimeframes []string
	Interval       time.Duration
}

// New creates a runner with fresh controller memory.
func New(opts Options) *Runner {
	return &Runner{
		source:         opts.Source,
		ctrl:           opts.Controller,
		memory:         controller.NewMemory(),
		symbol:         opts.Symbol,
		fastTimeframe:  opts.FastTimeframe,
		slowTimeframes: opts.SlowTimeframes,
		interval:       opts.Interval,
		logger:         log.With().Str("component", "runner").Str("symbol", opts.Symbol).Logger(),
	}
}

// Run evaluates immediately and then on every interval until the context is
// cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.TryTick(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Runner stopped")
			return
		case <-ticker.C:
			r.TryTick(ctx)
		}
	}
}

// TryTick runs one evaluation unless a previous one is still in flight, in
// which case it is skipped entirely. Returns whether the tick ran.
func (r *Runner) TryTick(ctx context.Context) bool {
	if !r.inFlight.CompareAndSwap(false, true) {
		r.logger.Warn().Msg("Previous tick still in flight, skipping")
		return false
	}
	defer r.inFlight.Store(false)

	// A tick must complete well inside the trigger interval; anything
	// slower is treated as a failed operation for this tick.
	tickCtx, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	r.tick(tickCtx)
	return true
}

func (r *Runner) tick(ctx context.Context) {
	started := time.Now()

	states, candles := r.classifyAll(ctx)

	verdict := environment.Aggregate(states, r.slowTimeframes)

	fast, ok := states[r.fastTimeframe]
	if !ok {
		fast = models.SwingState{Direction: models.DirectionNone}
	}

	in := controller.TickInput{
		Verdict: verdict,
		Fast:    fast,
		Now:     time.Now(),
	}
	if fast := candles[r.fastTimeframe]; len(fast) > 0 {
		in.LastClose = fast[len(fast)-1].Close
	}

	r.ctrl.Tick(ctx, in, r.memory)

	r.logger.Debug().
		Str("verdict", string(verdict)).
		Str("fast_direction", string(in.Fast.Direction)).
		Dur("elapsed", time.Since(started)).
		Msg("Tick complete")
}

// classifyAll fetches every tracked timeframe in parallel and classifies
// each series. A failed fetch leaves its timeframe out of the result, which
// the aggregator treats as unaligned.
func (r *Runner) classifyAll(ctx context.Context) (map[string]models.SwingState, map[string][]models.Candle) {
	timeframes := append([]string{r.fastTimeframe}, r.slowTimeframes...)

	var wg sync.WaitGroup
	var mu sync.Mutex
	candles := make(map[string][]models.Candle, len(timeframes))

	for _, tf := range timeframes {
		wg.Add(1)
		go func(tf string) {
			defer wg.Done()

			series, err := r.source.GetCandles(ctx, r.symbol, tf)
			if err != nil {
				r.logger.Warn().Err(err).Str("timeframe", tf).Msg("Candle fetch failed")
				return
			}

			mu.Lock()
			candles[tf] = series
			mu.Unlock()
		}(tf)
	}
	wg.Wait()

	states := make(map[string]models.SwingState, len(candles))
	for tf, series := range candles {
		states[tf] = swing.Classify(series)
	}
	return states, candles
}
