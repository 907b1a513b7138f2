package cmd

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/michaelpento.lv/dexwatch/cmd/bot"
	"github.com/michaelpento.lv/dexwatch/config"
	"github.com/michaelpento.lv/dexwatch/dex"
	"github.com/michaelpento.lv/dexwatch/dex/uniswap"
	"github.com/michaelpento.lv/dexwatch/report"
	"github.com/michaelpento.lv/dexwatch/strategies/arbitrage"
	umath "github.com/michaelpento.lv/dexwatch/utils/math"
	"github.com/michaelpento.lv/dexwatch/utils/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// decimalsCacheSize covers both legs of the pair with room for overrides
const decimalsCacheSize = 16

// connect dials the RPC endpoint and confirms it answers eth_chainId
func connect(ctx context.Context, cfg *config.Config) (*ethclient.Client, *big.Int, error) {
	dialCtx, cancel := context.WithTimeout(ctx, cfg.RPCTimeout)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, cfg.RPCEndpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	chainID, err := client.ChainID(dialCtx)
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	return client, chainID, nil
}

// monitor bundles everything a command needs to poll the venues
type monitor struct {
	bot      *bot.Bot
	console  *report.Console
	registry *prometheus.Registry
}

// newMonitor resolves token decimals, scales the trade amount and wires one
// router quoter per venue over a shared rate-limited caller
func newMonitor(ctx context.Context, cfg *config.Config, caller ethereum.ContractCaller, out io.Writer, logger *zap.Logger) (*monitor, error) {
	limited := uniswap.NewRateLimitedCaller(caller, cfg.RPCRateLimit.RequestsPerSecond, cfg.RPCRateLimit.BurstSize)

	resolver, err := uniswap.NewDecimalsResolver(limited, decimalsCacheSize)
	if err != nil {
		return nil, err
	}

	path := cfg.TradePath()
	inDecimals, err := tokenDecimals(ctx, resolver, cfg.TokenIn, path.TokenIn, cfg.RPCTimeout)
	if err != nil {
		return nil, err
	}
	outDecimals, err := tokenDecimals(ctx, resolver, cfg.TokenOut, path.TokenOut, cfg.RPCTimeout)
	if err != nil {
		return nil, err
	}

	amountIn, err := umath.ParseUnits(cfg.TradeAmount, inDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid trade amount %q: %w", cfg.TradeAmount, err)
	}

	var quoters []dex.Quoter
	for _, venue := range cfg.TradeVenues() {
		router, err := uniswap.NewRouter(limited, venue)
		if err != nil {
			return nil, fmt.Errorf("failed to create router for %s: %w", venue.Name, err)
		}
		quoters = append(quoters, router)
	}

	console := report.NewConsole(out, report.Labels{
		TradeAmount: cfg.TradeAmount,
		TokenIn:     cfg.TokenIn.Symbol,
		TokenOut:    cfg.TokenOut.Symbol,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	logger.Info("Monitor configured",
		zap.String("token_in", cfg.TokenIn.Symbol),
		zap.Int("token_in_decimals", inDecimals),
		zap.String("token_out", cfg.TokenOut.Symbol),
		zap.Int("token_out_decimals", outDecimals),
		zap.String("amount_in", amountIn.String()),
		zap.Float64("min_profit_threshold", *cfg.MinProfitThreshold),
		zap.Float64("simulated_gas_cost", *cfg.SimulatedGasCost))

	b, err := bot.New(bot.Config{
		Quoters:      quoters,
		Detector:     arbitrage.NewDetector(*cfg.MinProfitThreshold, *cfg.SimulatedGasCost),
		Reporter:     console,
		Metrics:      metrics.NewMonitorMetrics(metrics.Namespace, registry),
		Path:         path,
		TradeAmount:  amountIn,
		OutDecimals:  outDecimals,
		PollInterval: cfg.PollInterval,
		RPCTimeout:   cfg.RPCTimeout,
	}, logger.Named("bot"))
	if err != nil {
		return nil, fmt.Errorf("failed to create monitor: %w", err)
	}

	return &monitor{bot: b, console: console, registry: registry}, nil
}

// tokenDecimals prefers the configured value and falls back to the token contract
func tokenDecimals(ctx context.Context, resolver *uniswap.DecimalsResolver, token config.TokenConfig, addr common.Address, timeout time.Duration) (int, error) {
	if token.Decimals != nil {
		return *token.Decimals, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	decimals, err := resolver.Decimals(callCtx, addr)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s decimals: %w", token.Symbol, err)
	}
	if decimals > umath.MaxDecimals {
		return 0, fmt.Errorf("%s reports %d decimals: %w", token.Symbol, decimals, umath.ErrBadDecimals)
	}
	return decimals, nil
}
