package cmd

import (
	"fmt"

	"github.com/michaelpento.lv/dexwatch/utils"
	"github.com/michaelpento.lv/dexwatch/utils/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start polling the venues until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := utils.GetLogger()
		ctx := cmd.Context()

		client, chainID, err := connect(ctx, cfg)
		if err != nil {
			log.Error("Failed to connect to RPC", zap.Error(err))
			return err
		}
		defer client.Close()

		m, err := newMonitor(ctx, cfg, client, cmd.OutOrStdout(), log)
		if err != nil {
			log.Error("Failed to create monitor", zap.Error(err))
			return err
		}

		if err := m.console.Startup(chainID); err != nil {
			return fmt.Errorf("failed to write startup line: %w", err)
		}
		log.Info("Connected to RPC", zap.String("chain_id", chainID.String()))

		metrics.Serve(ctx, cfg.MetricsAddr, m.registry, log.Named("metrics"))

		m.bot.Start(ctx)
		<-ctx.Done()
		log.Info("Shutting down gracefully...")
		m.bot.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
