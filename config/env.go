package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvRPCURL             = "POLYGON_RPC_URL"
	EnvTokenIn            = "WETH_ADDRESS"
	EnvTokenOut           = "USDC_ADDRESS"
	EnvVenueARouter       = "QUICKSWAP_ROUTER"
	EnvVenueBRouter       = "SUSHISWAP_ROUTER"
	EnvTradeAmount        = "TRADE_AMOUNT_WETH"
	EnvMinProfitThreshold = "MIN_PROFIT_THRESHOLD"
	EnvSimulatedGasCost   = "SIMULATED_GAS_COST_USD"

	EnvPollInterval   = "POLL_INTERVAL"
	EnvRPCTimeout     = "RPC_TIMEOUT"
	EnvRPCRateLimit   = "RPC_RATE_LIMIT"
	EnvRPCRateBurst   = "RPC_RATE_BURST"
	EnvTokenInDec     = "TOKEN_IN_DECIMALS"
	EnvTokenOutDec    = "TOKEN_OUT_DECIMALS"
	EnvTokenInSymbol  = "TOKEN_IN_SYMBOL"
	EnvTokenOutSymbol = "TOKEN_OUT_SYMBOL"
	EnvVenueAName     = "VENUE_A_NAME"
	EnvVenueBName     = "VENUE_B_NAME"
	EnvMetricsAddr    = "METRICS_ADDR"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFile        = "LOG_FILE"
)

// LoadEnv loads environment variables from a .env file. A missing file is
// not an error; variables already set in the environment win.
func LoadEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// GetEnvWithDefault gets an environment variable with a default value
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
