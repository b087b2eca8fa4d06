package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/counter-harness/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

const checkTimeout = 5 * time.Second

// CheckerAdapter looks recorded counters up on a live network
type CheckerAdapter struct {
	client  *ethclient.Client
	chainID uint64
	counter *bindings.Counter
}

// NewCheckerAdapter creates a new blockchain checker adapter
func NewCheckerAdapter() *CheckerAdapter {
	return &CheckerAdapter{counter: bindings.NewCounter()}
}

// Connect dials rpcURL and verifies the chain. A zero chainID accepts whatever
// chain the node reports.
func (c *CheckerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	c.Close()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	actual, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if chainID != 0 && actual.Uint64() != chainID {
		client.Close()
		return fmt.Errorf("chain ID mismatch: expected %d, got %d", chainID, actual.Uint64())
	}

	c.client = client
	c.chainID = actual.Uint64()
	return nil
}

// ChainID returns the chain ID of the connected network, 0 when not connected
func (c *CheckerAdapter) ChainID() uint64 {
	return c.chainID
}

// CheckCounter reads count() at address. When the address holds no code, or code
// that does not answer count(), the value is nil and reason says why.
func (c *CheckerAdapter) CheckCounter(ctx context.Context, address string) (*big.Int, string, error) {
	if c.client == nil {
		return nil, "", fmt.Errorf("not connected to blockchain")
	}
	if !common.IsHexAddress(address) {
		return nil, "", fmt.Errorf("invalid address %q", address)
	}
	addr := common.HexToAddress(address)

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	code, err := c.client.CodeAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Sprintf("failed to check code: %v", err), nil
	}
	if len(code) == 0 {
		return nil, "no code at address", nil
	}

	out, err := c.client.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: c.counter.PackCount()}, nil)
	if err != nil {
		return nil, fmt.Sprintf("not a counter: count() failed: %v", err), nil
	}
	value, err := c.counter.UnpackCount(out)
	if err != nil {
		return nil, "not a counter: unexpected count() result", nil
	}
	return value, "", nil
}

// Close drops the RPC connection
func (c *CheckerAdapter) Close() {
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	c.chainID = 0
}

var _ usecase.BlockchainChecker = (*CheckerAdapter)(nil)
