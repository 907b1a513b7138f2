package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/michaelpento.lv/dexwatch/types"
	umath "github.com/michaelpento.lv/dexwatch/utils/math"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Chain connection
	RPCEndpoint  string          `yaml:"rpc_endpoint"`
	RPCTimeout   time.Duration   `yaml:"rpc_timeout"`
	RPCRateLimit RateLimitConfig `yaml:"rpc_rate_limit"`

	// Trading pair and venues
	TokenIn  TokenConfig   `yaml:"token_in"`
	TokenOut TokenConfig   `yaml:"token_out"`
	Venues   []VenueConfig `yaml:"venues"`

	// Trade size in input-token units, e.g. "1" or "0.5"
	TradeAmount string `yaml:"trade_amount"`

	// Opportunity policy, both in output-token units. Required.
	MinProfitThreshold *float64 `yaml:"min_profit_threshold"`
	SimulatedGasCost   *float64 `yaml:"simulated_gas_cost"`

	PollInterval time.Duration `yaml:"poll_interval"`

	// Observability
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
}

type TokenConfig struct {
	Address string `yaml:"address"`
	Symbol  string `yaml:"symbol"`
	// Decimals is resolved on-chain when nil
	Decimals *int `yaml:"decimals"`
}

type VenueConfig struct {
	Name   string `yaml:"name"`
	Router string `yaml:"router"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

func (c *Config) ValidateConfig() error {
	var errors []string

	if c.RPCEndpoint == "" {
		errors = append(errors, fmt.Sprintf("rpc_endpoint must be specified (%s)", EnvRPCURL))
	}
	if c.RPCTimeout <= 0 {
		errors = append(errors, "rpc_timeout must be positive")
	}
	if err := c.RPCRateLimit.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("RPC rate limit error: %v", err))
	}

	if err := c.TokenIn.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("token_in (%s): %v", EnvTokenIn, err))
	}
	if err := c.TokenOut.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("token_out (%s): %v", EnvTokenOut, err))
	}
	if c.TokenIn.Address != "" && strings.EqualFold(c.TokenIn.Address, c.TokenOut.Address) {
		errors = append(errors, "token_in and token_out must differ")
	}

	if len(c.Venues) != 2 {
		errors = append(errors, fmt.Sprintf("exactly two venues are required, got %d", len(c.Venues)))
	}
	seen := make(map[common.Address]string, len(c.Venues))
	for i, v := range c.Venues {
		if err := v.Validate(); err != nil {
			errors = append(errors, fmt.Sprintf("venue %d (%s): %v", i, venueEnv(i), err))
			continue
		}
		router := common.HexToAddress(v.Router)
		if other, ok := seen[router]; ok {
			errors = append(errors, fmt.Sprintf("venues %s and %s share router %s", other, v.Name, router.Hex()))
		}
		seen[router] = v.Name
	}

	if err := umath.ValidateAmount(c.TradeAmount); err != nil {
		errors = append(errors, fmt.Sprintf("trade_amount (%s): %v", EnvTradeAmount, err))
	}
	switch {
	case c.MinProfitThreshold == nil:
		errors = append(errors, fmt.Sprintf("min_profit_threshold must be specified (%s)", EnvMinProfitThreshold))
	case math.IsNaN(*c.MinProfitThreshold) || math.IsInf(*c.MinProfitThreshold, 0):
		errors = append(errors, fmt.Sprintf("min_profit_threshold (%s) must be a finite number", EnvMinProfitThreshold))
	}
	switch {
	case c.SimulatedGasCost == nil:
		errors = append(errors, fmt.Sprintf("simulated_gas_cost must be specified (%s)", EnvSimulatedGasCost))
	case math.IsNaN(*c.SimulatedGasCost) || math.IsInf(*c.SimulatedGasCost, 0) || *c.SimulatedGasCost < 0:
		errors = append(errors, fmt.Sprintf("simulated_gas_cost (%s) must be a finite non-negative number", EnvSimulatedGasCost))
	}

	if c.PollInterval <= 0 {
		errors = append(errors, "poll_interval must be positive")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("log_level: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (t *TokenConfig) Validate() error {
	if t.Address == "" {
		return fmt.Errorf("address must be specified")
	}
	if !common.IsHexAddress(t.Address) {
		return fmt.Errorf("invalid address %q", t.Address)
	}
	if t.Decimals != nil && (*t.Decimals < 0 || *t.Decimals > umath.MaxDecimals) {
		return fmt.Errorf("decimals must be between 0 and %d", umath.MaxDecimals)
	}
	return nil
}

func (v *VenueConfig) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("name must be specified")
	}
	if v.Router == "" {
		return fmt.Errorf("router must be specified")
	}
	if !common.IsHexAddress(v.Router) {
		return fmt.Errorf("invalid router address %q", v.Router)
	}
	return nil
}

func (r *RateLimitConfig) Validate() error {
	if math.IsNaN(r.RequestsPerSecond) || r.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative")
	}
	if r.RequestsPerSecond > 0 && r.BurstSize <= 0 {
		return fmt.Errorf("burst size must be positive")
	}
	return nil
}

// TradePath returns the configured input/output pair
func (c *Config) TradePath() types.TradePath {
	return types.TradePath{
		TokenIn:  common.HexToAddress(c.TokenIn.Address),
		TokenOut: common.HexToAddress(c.TokenOut.Address),
	}
}

// TradeVenues returns the configured routers in order
func (c *Config) TradeVenues() []types.Venue {
	venues := make([]types.Venue, 0, len(c.Venues))
	for _, v := range c.Venues {
		venues = append(venues, types.Venue{Name: v.Name, Router: common.HexToAddress(v.Router)})
	}
	return venues
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// the .env file at envFile and the process environment, in that order.
func LoadConfig(cfgFile, envFile string) (*Config, error) {
	config := DefaultConfig()

	if cfgFile != "" {
		data, err := os.ReadFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, config); err != nil {
			return nil, fmt.Errorf("failed to decode config file: %w", err)
		}
	}

	if err := LoadEnv(envFile); err != nil {
		return nil, err
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	if err := config.ValidateConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides fields with any environment variables that are set
func (c *Config) applyEnv() error {
	var errors []string

	c.RPCEndpoint = GetEnvWithDefault(EnvRPCURL, c.RPCEndpoint)
	c.TokenIn.Address = GetEnvWithDefault(EnvTokenIn, c.TokenIn.Address)
	c.TokenOut.Address = GetEnvWithDefault(EnvTokenOut, c.TokenOut.Address)
	c.TokenIn.Symbol = GetEnvWithDefault(EnvTokenInSymbol, c.TokenIn.Symbol)
	c.TokenOut.Symbol = GetEnvWithDefault(EnvTokenOutSymbol, c.TokenOut.Symbol)
	c.TradeAmount = GetEnvWithDefault(EnvTradeAmount, c.TradeAmount)
	c.MetricsAddr = GetEnvWithDefault(EnvMetricsAddr, c.MetricsAddr)
	c.LogLevel = GetEnvWithDefault(EnvLogLevel, c.LogLevel)
	c.LogFile = GetEnvWithDefault(EnvLogFile, c.LogFile)

	for i := 0; i < len(c.Venues) && i < 2; i++ {
		c.Venues[i].Router = GetEnvWithDefault(venueEnv(i), c.Venues[i].Router)
		c.Venues[i].Name = GetEnvWithDefault(venueNameEnv(i), c.Venues[i].Name)
	}

	parseOptionalFloat(EnvMinProfitThreshold, &c.MinProfitThreshold, &errors)
	parseOptionalFloat(EnvSimulatedGasCost, &c.SimulatedGasCost, &errors)
	parseFloat(EnvRPCRateLimit, &c.RPCRateLimit.RequestsPerSecond, &errors)
	parseInt(EnvRPCRateBurst, &c.RPCRateLimit.BurstSize, &errors)
	parseDuration(EnvPollInterval, &c.PollInterval, &errors)
	parseDuration(EnvRPCTimeout, &c.RPCTimeout, &errors)
	parseDecimals(EnvTokenInDec, &c.TokenIn.Decimals, &errors)
	parseDecimals(EnvTokenOutDec, &c.TokenOut.Decimals, &errors)

	if len(errors) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errors, "; "))
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		RPCTimeout: 10 * time.Second,
		RPCRateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			BurstSize:         4,
		},
		TokenIn:      TokenConfig{Symbol: "WETH"},
		TokenOut:     TokenConfig{Symbol: "USDC"},
		Venues:       []VenueConfig{{Name: "QuickSwap"}, {Name: "SushiSwap"}},
		PollInterval: 30 * time.Second,
		LogLevel:     "info",
	}
}

func venueEnv(i int) string {
	if i == 0 {
		return EnvVenueARouter
	}
	return EnvVenueBRouter
}

func venueNameEnv(i int) string {
	if i == 0 {
		return EnvVenueAName
	}
	return EnvVenueBName
}

func parseFloat(key string, dst *float64, errs *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not a number", key, value))
		return
	}
	*dst = f
}

func parseOptionalFloat(key string, dst **float64, errs *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not a number", key, value))
		return
	}
	*dst = &f
}

func parseInt(key string, dst *int, errs *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not an integer", key, value))
		return
	}
	*dst = n
}

func parseDuration(key string, dst *time.Duration, errs *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not a duration", key, value))
		return
	}
	*dst = d
}

func parseDecimals(key string, dst **int, errs *[]string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: %q is not an integer", key, value))
		return
	}
	*dst = &n
}
