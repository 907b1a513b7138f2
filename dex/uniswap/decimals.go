package uniswap

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru"
)

// DecimalsResolver reads ERC-20 decimals and caches them per token
type DecimalsResolver struct {
	caller   ethereum.ContractCaller
	erc20ABI abi.ABI
	cache    *lru.Cache
}

// NewDecimalsResolver creates a resolver holding up to size tokens
func NewDecimalsResolver(caller ethereum.ContractCaller, size int) (*DecimalsResolver, error) {
	parsedABI, err := abi.JSON(strings.NewReader(erc20ABIJson))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC-20 ABI: %w", err)
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create decimals cache: %w", err)
	}

	return &DecimalsResolver{
		caller:   caller,
		erc20ABI: parsedABI,
		cache:    cache,
	}, nil
}

// Decimals returns the token's decimals, calling the contract on a cache miss
func (d *DecimalsResolver) Decimals(ctx context.Context, token common.Address) (int, error) {
	if v, ok := d.cache.Get(token); ok {
		return v.(int), nil
	}

	data, err := d.erc20ABI.Pack("decimals")
	if err != nil {
		return 0, fmt.Errorf("failed to pack decimals call: %w", err)
	}

	raw, err := d.caller.CallContract(ctx, ethereum.CallMsg{To: &token, Data: data}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to call decimals on %s: %w", token.Hex(), err)
	}

	out, err := d.erc20ABI.Unpack("decimals", raw)
	if err != nil || len(out) == 0 {
		return 0, fmt.Errorf("failed to decode decimals of %s: %v", token.Hex(), err)
	}

	var n int
	switch x := out[0].(type) {
	case uint8:
		n = int(x)
	case *big.Int:
		n = int(x.Int64())
	default:
		return 0, fmt.Errorf("unexpected decimals type %T for %s", out[0], token.Hex())
	}

	d.cache.Add(token, n)
	return n, nil
}
