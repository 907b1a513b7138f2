package cmd

import (
	"context"

	"github.com/michaelpento.lv/dexwatch/config"
	"github.com/michaelpento.lv/dexwatch/utils"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	debug   bool

	// cfg is loaded once per invocation before any subcommand runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dexwatch",
	Short: "A CLI price monitor for cross-DEX arbitrage",
	Long: `A CLI price monitor that polls getAmountsOut on two Uniswap V2 style
routers, compares the quoted prices for one trading pair and reports any
direction whose spread clears a simulated gas cost and a profit threshold.
It never submits transactions.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "optional YAML config file, overridden by the environment")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.LoadConfig(cfgFile, envFile)
	if err != nil {
		return err
	}
	cfg = loaded

	utils.InitLogger(utils.LogOptions{
		Debug: debug,
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
	return nil
}
