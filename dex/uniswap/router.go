package uniswap

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/michaelpento.lv/dexwatch/dex"
	"github.com/michaelpento.lv/dexwatch/types"
)

var (
	_ dex.Quoter       = (*Router)(nil)
	_ IUniswapV2Router = (*Router)(nil)
)

// Router quotes swaps through a UniswapV2-style router's getAmountsOut
type Router struct {
	caller    ethereum.ContractCaller
	venue     types.Venue
	routerABI abi.ABI
}

// NewRouter creates a quoter for the router described by venue
func NewRouter(caller ethereum.ContractCaller, venue types.Venue) (*Router, error) {
	parsedABI, err := abi.JSON(strings.NewReader(routerABIJson))
	if err != nil {
		return nil, fmt.Errorf("failed to parse router ABI: %w", err)
	}

	return &Router{
		caller:    caller,
		venue:     venue,
		routerABI: parsedABI,
	}, nil
}

// Venue returns the router this quoter reads from
func (r *Router) Venue() types.Venue {
	return r.venue
}

// AmountsOut returns one output amount per hop of path
func (r *Router) AmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) ([]*big.Int, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 tokens, got %d", dex.ErrInvalidPath, len(path))
	}

	data, err := r.routerABI.Pack("getAmountsOut", amountIn, path)
	if err != nil {
		return nil, fmt.Errorf("%w: pack getAmountsOut: %w", dex.ErrCallFailed, err)
	}

	to := r.venue.Router
	raw, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", dex.ErrCallFailed, r.venue.Name, err)
	}

	out, err := r.routerABI.Unpack("getAmountsOut", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", dex.ErrDecode, r.venue.Name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s: no return values", dex.ErrDecode, r.venue.Name)
	}

	amounts, ok := out[0].([]*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unexpected return type %T", dex.ErrDecode, r.venue.Name, out[0])
	}
	return amounts, nil
}

// GetAmountsOut returns the last hop's output amount, or zero when the
// router returns an empty array
func (r *Router) GetAmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) (*big.Int, error) {
	amounts, err := r.AmountsOut(ctx, amountIn, path)
	if err != nil {
		return nil, err
	}

	if len(amounts) == 0 || amounts[len(amounts)-1] == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(amounts[len(amounts)-1]), nil
}
