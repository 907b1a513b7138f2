package types

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Venue is a DEX router quoted for price comparison
type Venue struct {
	Name   string
	Router common.Address
}

func (v Venue) String() string {
	return fmt.Sprintf("%s (%s)", v.Name, v.Router.Hex())
}

// TradePath is the fixed input/output token pair every quote is requested for
type TradePath struct {
	TokenIn  common.Address
	TokenOut common.Address
}

// Addresses returns the path in the form getAmountsOut expects
func (p TradePath) Addresses() []common.Address {
	return []common.Address{p.TokenIn, p.TokenOut}
}

// Quote is one venue's normalised price for the current cycle.
// Price is AmountOut scaled down by the output token decimals.
type Quote struct {
	Venue     Venue
	AmountOut *big.Int
	Price     float64
}

// Opportunity is a profitable buy/sell direction between two venues
type Opportunity struct {
	Buy       Venue
	Sell      Venue
	BuyPrice  float64
	SellPrice float64
	Spread    float64
	Profit    float64
}

// VenueError records a venue whose quote could not be fetched in a cycle
type VenueError struct {
	Venue Venue
	Err   error
}

func (e *VenueError) Error() string {
	return fmt.Sprintf("%s: %v", e.Venue.Name, e.Err)
}

func (e *VenueError) Unwrap() error {
	return e.Err
}

// CycleResult is everything a single polling cycle produced
type CycleResult struct {
	ID            string
	Quotes        []Quote
	Failed        []*VenueError
	Opportunities []Opportunity
}
