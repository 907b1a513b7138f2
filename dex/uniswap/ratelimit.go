package uniswap

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"golang.org/x/time/rate"
)

// RateLimitedCaller throttles eth_call requests sent to the RPC endpoint
type RateLimitedCaller struct {
	next    ethereum.ContractCaller
	limiter *rate.Limiter
}

// NewRateLimitedCaller wraps next with a token bucket. A non-positive
// requestsPerSecond disables limiting.
func NewRateLimitedCaller(next ethereum.ContractCaller, requestsPerSecond float64, burst int) *RateLimitedCaller {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimitedCaller{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// CallContract waits for a token, then forwards the call
func (c *RateLimitedCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return c.next.CallContract(ctx, msg, blockNumber)
}
