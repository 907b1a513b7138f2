package uniswap

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Router contract ABI, read-only subset shared by UniswapV2 forks
// (QuickSwap, SushiSwap, ...)
const routerABIJson = `[{
	"inputs": [
		{"internalType": "uint256", "name": "amountIn", "type": "uint256"},
		{"internalType": "address[]", "name": "path", "type": "address[]"}
	],
	"name": "getAmountsOut",
	"outputs": [{"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}],
	"stateMutability": "view",
	"type": "function"
}]`

// ERC-20 decimals() ABI
const erc20ABIJson = `[{
	"inputs": [],
	"name": "decimals",
	"outputs": [{"internalType": "uint8", "name": "", "type": "uint8"}],
	"stateMutability": "view",
	"type": "function"
}]`

// IUniswapV2Router represents the read side of a UniswapV2 router contract
type IUniswapV2Router interface {
	AmountsOut(ctx context.Context, amountIn *big.Int, path []common.Address) ([]*big.Int, error)
}
