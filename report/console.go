// Package report renders detected opportunities for humans.
package report

import (
	"fmt"
	"io"
	"math/big"

	"github.com/michaelpento.lv/dexwatch/types"
)

// Labels names the trade in report lines
type Labels struct {
	TradeAmount string
	TokenIn     string
	TokenOut    string
}

// Console writes line-oriented reports to w
type Console struct {
	w      io.Writer
	labels Labels
}

func NewConsole(w io.Writer, labels Labels) *Console {
	return &Console{w: w, labels: labels}
}

// Report writes one opportunity. Prices and profit use two decimals.
func (c *Console) Report(opp types.Opportunity) error {
	_, err := fmt.Fprintf(c.w,
		"\nArbitrage opportunity found\n"+
			"  - Buy %s %s on %s for %.2f %s\n"+
			"  - Sell %s %s on %s for %.2f %s\n"+
			"  - Simulated profit: %.2f %s\n\n",
		c.labels.TradeAmount, c.labels.TokenIn, opp.Buy, opp.BuyPrice, c.labels.TokenOut,
		c.labels.TradeAmount, c.labels.TokenIn, opp.Sell, opp.SellPrice, c.labels.TokenOut,
		opp.Profit, c.labels.TokenOut,
	)
	return err
}

// Quotes writes one line per quote, used by the one-shot quote command
func (c *Console) Quotes(quotes []types.Quote) error {
	for _, q := range quotes {
		if _, err := fmt.Fprintf(c.w, "%s: %s %s = %.2f %s\n",
			q.Venue, c.labels.TradeAmount, c.labels.TokenIn, q.Price, c.labels.TokenOut); err != nil {
			return err
		}
	}
	return nil
}

// Startup confirms the RPC connection is up
func (c *Console) Startup(chainID *big.Int) error {
	_, err := fmt.Fprintf(c.w, "Connected to RPC (chain %s). Monitoring %s/%s prices...\n",
		chainID, c.labels.TokenIn, c.labels.TokenOut)
	return err
}
