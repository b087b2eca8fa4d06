package network

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// RPCLauncher connects to an already running node over JSON-RPC
type RPCLauncher struct {
	privateKey string
	log        *slog.Logger
}

// NewRPCLauncher creates a launcher for RPC networks. With no configured
// private key the anvil development accounts are used.
func NewRPCLauncher(cfg *config.RuntimeConfig, log *slog.Logger) *RPCLauncher {
	return &RPCLauncher{
		privateKey: cfg.PrivateKey,
		log:        log.With("component", "RPCLauncher"),
	}
}

// Launch dials network and prepares up to opts.Wallets signers
func (l *RPCLauncher) Launch(ctx context.Context, network *config.Network, opts domain.LaunchOptions) (*Session, error) {
	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to get chain ID from %s: %w", network.Name, err)
	}
	if network.ChainID != 0 && network.ChainID != chainID.Uint64() {
		client.Close()
		return nil, fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, chainID.Uint64())
	}

	signers, err := l.signers(max(opts.Wallets, 1))
	if err != nil {
		client.Close()
		return nil, err
	}

	settle := func(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
		return bind.WaitMined(ctx, client, tx.Hash())
	}

	info := domain.NetworkInfo{
		Name:    network.Name,
		Kind:    domain.NetworkKindRPC,
		ChainID: chainID.Uint64(),
		RPCURL:  network.RPCURL,
	}
	l.log.Debug("connected to network", "name", info.Name, "chainId", info.ChainID, "wallets", len(signers))

	closeFn := func() error {
		client.Close()
		return nil
	}
	session, err := newSession(ctx, info, client, signers, settle, closeFn, l.log)
	if err != nil {
		client.Close()
		return nil, err
	}
	return session, nil
}

func (l *RPCLauncher) signers(n int) ([]signer, error) {
	if l.privateKey != "" {
		key, err := parseKey(l.privateKey)
		if err != nil {
			return nil, err
		}
		return []signer{newSigner(key)}, nil
	}

	if n > len(anvilDevKeys) {
		l.log.Warn("not enough development accounts", "requested", n, "available", len(anvilDevKeys))
		n = len(anvilDevKeys)
	}
	signers := make([]signer, 0, n)
	for _, hex := range anvilDevKeys[:n] {
		key, err := parseKey(hex)
		if err != nil {
			return nil, err
		}
		signers = append(signers, newSigner(key))
	}
	return signers, nil
}
