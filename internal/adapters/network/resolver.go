package network

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	internalconfig "github.com/trebuchet-org/counter-harness/internal/config"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

const chainIDTimeout = 5 * time.Second

// Resolver resolves network names from counter.toml [networks] to live endpoints
type Resolver struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewResolver creates a new network resolver
func NewResolver(cfg *config.RuntimeConfig, log *slog.Logger) *Resolver {
	return &Resolver{
		cfg: cfg,
		log: log.With("component", "NetworkResolver"),
	}
}

// GetNetworks returns all configured network names, sorted
func (r *Resolver) GetNetworks(ctx context.Context) []string {
	names := make([]string, 0, len(r.cfg.Networks))
	for name := range r.cfg.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveNetwork resolves a network by name or RPC URL and fetches its chain ID
func (r *Resolver) ResolveNetwork(ctx context.Context, input string) (*config.Network, error) {
	if input == "" {
		return nil, fmt.Errorf("network not specified")
	}

	var network *config.Network
	if isRPCURL(input) {
		network = &config.Network{Name: "custom", RPCURL: input}
	} else {
		var err error
		network, err = internalconfig.ResolveNetwork(r.cfg, r.lookupName(input))
		if err != nil {
			return nil, err
		}
	}

	chainID, err := fetchChainID(ctx, network.RPCURL)
	if err != nil {
		return nil, err
	}
	network.ChainID = chainID
	r.log.Debug("resolved network", "name", network.Name, "chainId", chainID)

	return network, nil
}

// lookupName maps input onto a configured name, ignoring case
func (r *Resolver) lookupName(input string) string {
	if _, ok := r.cfg.Networks[input]; ok {
		return input
	}
	for name := range r.cfg.Networks {
		if strings.EqualFold(name, input) {
			return name
		}
	}
	return input
}

func isRPCURL(s string) bool {
	for _, prefix := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, chainIDTimeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id.Uint64(), nil
}

var _ usecase.NetworkResolver = (*Resolver)(nil)
