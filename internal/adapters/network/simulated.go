package network

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/trebuchet-org/counter-harness/internal/config"
	"github.com/trebuchet-org/counter-harness/internal/domain"
)

// SimulatedLauncher starts ephemeral in-process chains
type SimulatedLauncher struct {
	log *slog.Logger
}

// NewSimulatedLauncher creates a launcher for in-process chains
func NewSimulatedLauncher(log *slog.Logger) *SimulatedLauncher {
	return &SimulatedLauncher{log: log.With("component", "SimulatedLauncher")}
}

// Launch creates a fresh chain with opts.Wallets newly generated, funded wallets.
// Every transaction is mined into its own block as soon as it is sent.
func (l *SimulatedLauncher) Launch(ctx context.Context, opts domain.LaunchOptions) (*Session, error) {
	wallets := max(opts.Wallets, 1)
	balance := opts.Balance
	if balance == nil || balance.Sign() <= 0 {
		balance = new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether))
	}

	signers, err := generateSigners(wallets)
	if err != nil {
		return nil, err
	}

	alloc := make(types.GenesisAlloc, len(signers))
	for _, s := range signers {
		alloc[s.address] = types.Account{Balance: new(big.Int).Set(balance)}
	}

	backend := simulated.NewBackend(alloc)
	client := backend.Client()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	settle := func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
		backend.Commit()
		return client.TransactionReceipt(ctx, tx.Hash())
	}

	info := domain.NetworkInfo{
		Name:    config.SimulatedNetwork,
		Kind:    domain.NetworkKindSimulated,
		ChainID: chainID.Uint64(),
	}
	l.log.Debug("launched simulated chain", "chainId", info.ChainID, "wallets", wallets)

	session, err := newSession(ctx, info, client, signers, settle, backend.Close, l.log)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return session, nil
}
