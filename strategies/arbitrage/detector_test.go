package arbitrage

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/michaelpento.lv/dexwatch/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	venueA = types.Venue{Name: "QuickSwap", Router: common.HexToAddress("0xa5E0829CaCEd8fFDD4De3c43696c57F7D7A678ff")}
	venueB = types.Venue{Name: "SushiSwap", Router: common.HexToAddress("0x1b02dA8Cb0d097eB8D57A175b88c7D8b47997506")}
	venueC = types.Venue{Name: "ApeSwap", Router: common.HexToAddress("0xC0788A3aD43d79aa53B09c2EaCc313A787d1d607")}
)

func quotes(pa, pb float64) []types.Quote {
	return []types.Quote{
		{Venue: venueA, Price: pa},
		{Venue: venueB, Price: pb},
	}
}

func TestDetectArbitrage(t *testing.T) {
	detector := NewDetector(1.00, 2.00)

	t.Run("BuyOnAWhenBIsPricier", func(t *testing.T) {
		opps := detector.Evaluate(quotes(3000.00, 3005.00))
		require.Len(t, opps, 1)

		opp := opps[0]
		assert.Equal(t, venueA, opp.Buy)
		assert.Equal(t, venueB, opp.Sell)
		assert.Equal(t, 3000.00, opp.BuyPrice)
		assert.Equal(t, 3005.00, opp.SellPrice)
		assert.InDelta(t, 5.00, opp.Spread, 1e-9)
		assert.InDelta(t, 3.00, opp.Profit, 1e-9)
	})

	t.Run("BuyOnBWhenAIsPricier", func(t *testing.T) {
		opps := detector.Evaluate(quotes(3005.00, 3000.00))
		require.Len(t, opps, 1)
		assert.Equal(t, venueB, opps[0].Buy)
		assert.Equal(t, venueA, opps[0].Sell)
		assert.InDelta(t, 3.00, opps[0].Profit, 1e-9)
	})

	t.Run("SpreadBelowCost", func(t *testing.T) {
		assert.Empty(t, detector.Evaluate(quotes(3000.00, 3000.50)))
	})

	t.Run("EqualPrices", func(t *testing.T) {
		assert.Empty(t, detector.Evaluate(quotes(3000.00, 3000.00)))
	})

	t.Run("ProfitEqualToThresholdIsNotEnough", func(t *testing.T) {
		// spread 3, cost 2, profit 1 == threshold
		assert.Empty(t, detector.Evaluate(quotes(3000.00, 3003.00)))
	})
}

func TestEvaluateNeedsTwoQuotes(t *testing.T) {
	detector := NewDetector(0, 0)

	assert.Nil(t, detector.Evaluate(nil))
	assert.Nil(t, detector.Evaluate([]types.Quote{{Venue: venueB, Price: 3005.00}}))
}

func TestDirectionsAreMutuallyExclusive(t *testing.T) {
	prices := []float64{0, 0.5, 1, 2999.99, 3000, 3000.01, 3005, 1e6}
	settings := []struct{ threshold, cost float64 }{
		{-1e9, 0}, {0, 0}, {1, 2}, {0, -5}, {10, 0},
	}

	for _, s := range settings {
		detector := NewDetector(s.threshold, s.cost)
		for _, pa := range prices {
			for _, pb := range prices {
				opps := detector.Evaluate(quotes(pa, pb))
				assert.LessOrEqual(t, len(opps), 1, "pa=%v pb=%v", pa, pb)
				if pa == pb {
					assert.Empty(t, opps, "equal prices must never report, pa=%v", pa)
				}
				for _, opp := range opps {
					assert.Greater(t, opp.SellPrice, opp.BuyPrice)
				}
			}
		}
	}
}

func TestProfitFormula(t *testing.T) {
	cases := []struct{ pa, pb, cost, threshold float64 }{
		{3000, 3005, 2, 1},
		{3005, 3000, 2, 1},
		{1800.25, 1810.75, 0.5, 0},
		{100, 250, 10, 100},
	}

	for _, c := range cases {
		detector := NewDetector(c.threshold, c.cost)
		opps := detector.Evaluate(quotes(c.pa, c.pb))

		spread := c.pb - c.pa
		if spread < 0 {
			spread = -spread
		}
		want := spread - c.cost

		if want > c.threshold {
			require.Len(t, opps, 1)
			assert.InDelta(t, want, opps[0].Profit, 1e-9)
		} else {
			assert.Empty(t, opps)
		}
	}
}

func TestMonotonicInCostAndThreshold(t *testing.T) {
	pa, pb := 3000.00, 3010.00

	wasReported := true
	for cost := 0.0; cost <= 20; cost += 0.5 {
		reported := len(NewDetector(1, cost).Evaluate(quotes(pa, pb))) > 0
		if reported {
			assert.True(t, wasReported, "raising cost to %v revived an opportunity", cost)
		}
		wasReported = reported
	}
	assert.False(t, wasReported)

	wasReported = true
	for threshold := -5.0; threshold <= 20; threshold += 0.5 {
		reported := len(NewDetector(threshold, 2).Evaluate(quotes(pa, pb))) > 0
		if reported {
			assert.True(t, wasReported, "raising threshold to %v revived an opportunity", threshold)
		}
		wasReported = reported
	}
	assert.False(t, wasReported)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	detector := NewDetector(1, 2)
	in := quotes(3000, 3005)

	first := detector.Evaluate(in)
	second := detector.Evaluate(in)
	assert.Equal(t, first, second)
	assert.Equal(t, quotes(3000, 3005), in)
}

func TestEvaluateAllPairs(t *testing.T) {
	detector := NewDetector(0, 1)
	in := []types.Quote{
		{Venue: venueA, Price: 3000},
		{Venue: venueB, Price: 3005},
		{Venue: venueC, Price: 3010},
	}

	opps := detector.Evaluate(in)
	require.Len(t, opps, 3)

	assert.Equal(t, venueA, opps[0].Buy)
	assert.Equal(t, venueB, opps[0].Sell)
	assert.Equal(t, venueA, opps[1].Buy)
	assert.Equal(t, venueC, opps[1].Sell)
	assert.Equal(t, venueB, opps[2].Buy)
	assert.Equal(t, venueC, opps[2].Sell)
	assert.InDelta(t, 9.0, opps[1].Profit, 1e-9)
}
