package bot

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/michaelpento.lv/dexwatch/dex"
	"github.com/michaelpento.lv/dexwatch/strategies/arbitrage"
	"github.com/michaelpento.lv/dexwatch/types"
	umath "github.com/michaelpento.lv/dexwatch/utils/math"
	"github.com/michaelpento.lv/dexwatch/utils/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Reporter receives every opportunity a cycle detects
type Reporter interface {
	Report(opp types.Opportunity) error
}

// Config wires the monitor's collaborators
type Config struct {
	Quoters      []dex.Quoter
	Detector     *arbitrage.Detector
	Reporter     Reporter
	Metrics      *metrics.MonitorMetrics
	Path         types.TradePath
	TradeAmount  *big.Int
	OutDecimals  int
	PollInterval time.Duration
	RPCTimeout   time.Duration
}

// Bot represents the price monitor instance
type Bot struct {
	cfg    Config
	logger *zap.Logger
	wg     sync.WaitGroup
}

// New creates a new monitor instance
func New(cfg Config, logger *zap.Logger) (*Bot, error) {
	switch {
	case len(cfg.Quoters) < 2:
		return nil, errors.New("at least two venues are required")
	case cfg.Detector == nil:
		return nil, errors.New("detector is required")
	case cfg.Reporter == nil:
		return nil, errors.New("reporter is required")
	case cfg.Metrics == nil:
		return nil, errors.New("metrics are required")
	case cfg.TradeAmount == nil || cfg.TradeAmount.Sign() <= 0:
		return nil, errors.New("trade amount must be positive")
	case cfg.PollInterval <= 0:
		return nil, errors.New("poll interval must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Bot{cfg: cfg, logger: logger}, nil
}

// Start runs the polling loop in the background until ctx is cancelled
func (b *Bot) Start(ctx context.Context) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.Run(ctx); err != nil {
			b.logger.Error("Price monitor exited with error", zap.Error(err))
		}
	}()
}

// Stop waits for the loop started by Start to return
func (b *Bot) Stop() {
	b.wg.Wait()
	b.logger.Info("Price monitor stopped")
}

// Run polls every venue, one cycle immediately and then one cycle per poll
// interval after the previous one finished. It returns nil once ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting price monitor",
		zap.Int("venues", len(b.cfg.Quoters)),
		zap.String("token_in", b.cfg.Path.TokenIn.Hex()),
		zap.String("token_out", b.cfg.Path.TokenOut.Hex()),
		zap.Duration("poll_interval", b.cfg.PollInterval))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Stopping price monitor...")
			return nil
		case <-timer.C:
			b.RunCycle(ctx)
			timer.Reset(b.cfg.PollInterval)
		}
	}
}

// RunCycle fetches one quote per venue, evaluates both directions of every
// venue pair and reports what clears the threshold. Venue failures are
// logged and skipped, they never abort the cycle.
func (b *Bot) RunCycle(ctx context.Context) types.CycleResult {
	result := types.CycleResult{ID: uuid.NewString()}
	logger := b.logger.With(zap.String("cycle", result.ID))
	b.cfg.Metrics.Cycles.Inc()

	amounts := make([]*big.Int, len(b.cfg.Quoters))
	errs := make([]error, len(b.cfg.Quoters))

	var g errgroup.Group
	for i, q := range b.cfg.Quoters {
		i, q := i, q
		g.Go(func() error {
			amounts[i], errs[i] = b.fetch(ctx, q)
			return nil
		})
	}
	_ = g.Wait()

	for i, q := range b.cfg.Quoters {
		venue := q.Venue()
		if errs[i] != nil {
			logger.Warn("Failed to fetch quote",
				zap.String("venue", venue.Name),
				zap.String("router", venue.Router.Hex()),
				zap.Error(errs[i]))
			b.cfg.Metrics.FetchFailures.WithLabelValues(venue.Name).Inc()
			result.Failed = append(result.Failed, &types.VenueError{Venue: venue, Err: errs[i]})
			continue
		}

		quote := types.Quote{
			Venue:     venue,
			AmountOut: amounts[i],
			Price:     umath.ToFloat(amounts[i], b.cfg.OutDecimals),
		}
		b.cfg.Metrics.Quotes.WithLabelValues(venue.Name).Inc()
		b.cfg.Metrics.QuotePrice.WithLabelValues(venue.Name).Set(quote.Price)
		logger.Debug("Quote",
			zap.String("venue", venue.Name),
			zap.String("amount_out", quote.AmountOut.String()),
			zap.Float64("price", quote.Price))
		result.Quotes = append(result.Quotes, quote)
	}

	if len(result.Quotes) < 2 {
		logger.Info("Not enough quotes to compare, skipping cycle",
			zap.Int("quotes", len(result.Quotes)),
			zap.Int("failed", len(result.Failed)))
		return result
	}

	result.Opportunities = b.cfg.Detector.Evaluate(result.Quotes)
	if len(result.Opportunities) == 0 {
		logger.Debug("No profitable opportunity this cycle")
		return result
	}

	for _, opp := range result.Opportunities {
		logger.Info("Arbitrage opportunity",
			zap.String("buy", opp.Buy.Name),
			zap.String("sell", opp.Sell.Name),
			zap.Float64("buy_price", opp.BuyPrice),
			zap.Float64("sell_price", opp.SellPrice),
			zap.Float64("spread", opp.Spread),
			zap.Float64("profit", opp.Profit))
		b.cfg.Metrics.Opportunities.WithLabelValues(opp.Buy.Name, opp.Sell.Name).Inc()
		b.cfg.Metrics.LastProfit.Set(opp.Profit)

		if err := b.cfg.Reporter.Report(opp); err != nil {
			logger.Error("Failed to report opportunity", zap.Error(err))
		}
	}

	return result
}

func (b *Bot) fetch(ctx context.Context, q dex.Quoter) (*big.Int, error) {
	if b.cfg.RPCTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.RPCTimeout)
		defer cancel()
	}

	start := time.Now()
	amount, err := q.GetAmountsOut(ctx, b.cfg.TradeAmount, b.cfg.Path.Addresses())
	b.cfg.Metrics.FetchLatency.WithLabelValues(q.Venue().Name).Observe(time.Since(start).Seconds())
	return amount, err
}
