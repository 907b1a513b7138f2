package arbitrage

import (
	"github.com/michaelpento.lv/dexwatch/types"
)

// Detector decides whether buying on one venue and selling on another
// clears a fixed simulated cost plus a profit threshold
type Detector struct {
	minProfitThreshold float64
	simulatedCost      float64
}

// NewDetector creates a new arbitrage detector
func NewDetector(minProfitThreshold, simulatedCost float64) *Detector {
	return &Detector{
		minProfitThreshold: minProfitThreshold,
		simulatedCost:      simulatedCost,
	}
}

// Evaluate checks every ordered (buy, sell) pair of quotes from one cycle.
// Fewer than two quotes yields nothing. Results follow quote order.
func (d *Detector) Evaluate(quotes []types.Quote) []types.Opportunity {
	if len(quotes) < 2 {
		return nil
	}

	var opportunities []types.Opportunity
	for i, buy := range quotes {
		for j, sell := range quotes {
			if i == j {
				continue
			}
			if opp, ok := d.check(buy, sell); ok {
				opportunities = append(opportunities, opp)
			}
		}
	}

	return opportunities
}

// check evaluates a single direction. Only a strictly higher sell price can
// pay off, and the net profit must strictly exceed the threshold.
func (d *Detector) check(buy, sell types.Quote) (types.Opportunity, bool) {
	if sell.Price <= buy.Price {
		return types.Opportunity{}, false
	}

	spread := sell.Price - buy.Price
	profit := spread - d.simulatedCost
	if !(profit > d.minProfitThreshold) {
		return types.Opportunity{}, false
	}

	return types.Opportunity{
		Buy:       buy.Venue,
		Sell:      sell.Venue,
		BuyPrice:  buy.Price,
		SellPrice: sell.Price,
		Spread:    spread,
		Profit:    profit,
	}, true
}
