package dex

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/michaelpento.lv/dexwatch/types"
)

// Quote fetch failures. All of them are recoverable: the venue is skipped
// for the current cycle and asked again on the next one.
var (
	ErrCallFailed  = errors.New("router call failed")
	ErrDecode      = errors.New("malformed router response")
	ErrInvalidPath = errors.New("invalid swap path")
)

// Quoter returns the output amount a venue quotes for a swap
type Quoter interface {
	// Venue identifies the router being quoted
	Venue() types.Venue

	// GetAmountsOut returns the final hop output for amountIn along path,
	// in the output token's smallest unit. An empty router result is zero.
	GetAmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) (*big.Int, error)
}
