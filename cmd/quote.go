package cmd

import (
	"fmt"

	"github.com/michaelpento.lv/dexwatch/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Run a single polling cycle and print every venue's quote",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := utils.GetLogger()
		ctx := cmd.Context()

		client, chainID, err := connect(ctx, cfg)
		if err != nil {
			log.Error("Failed to connect to RPC", zap.Error(err))
			return err
		}
		defer client.Close()
		log.Info("Connected to RPC", zap.String("chain_id", chainID.String()))

		m, err := newMonitor(ctx, cfg, client, cmd.OutOrStdout(), log)
		if err != nil {
			log.Error("Failed to create monitor", zap.Error(err))
			return err
		}

		return runQuote(cmd, m)
	},
}

// runQuote prints one cycle's quotes. Opportunities are reported by the
// cycle itself; failed venues are listed after the quotes.
func runQuote(cmd *cobra.Command, m *monitor) error {
	result := m.bot.RunCycle(cmd.Context())
	if err := m.console.Quotes(result.Quotes); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, failed := range result.Failed {
		if _, err := fmt.Fprintf(out, "%s: unavailable (%v)\n", failed.Venue, failed.Err); err != nil {
			return err
		}
	}
	if len(result.Quotes) >= 2 && len(result.Opportunities) == 0 {
		_, err := fmt.Fprintln(out, "No arbitrage opportunity")
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(quoteCmd)
}
