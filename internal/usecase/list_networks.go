package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct{}

// ListNetworksResult lists the networks a counter can run on
type ListNetworksResult struct {
	Networks []NetworkStatus
	Active   string // network selected with --network; the simulated chain when empty
}

// NetworkStatus describes one network and the counters recorded on it
type NetworkStatus struct {
	Name     string
	Kind     string
	RPCURL   string
	ChainID  uint64 // zero for the simulated chain, which is fresh per launch
	Counters int
	Error    error
}

// ListNetworks reports the simulated chain plus every network in counter.toml
type ListNetworks struct {
	config   *config.RuntimeConfig
	resolver NetworkResolver
	repo     DeploymentRepository
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver NetworkResolver, repo DeploymentRepository) *ListNetworks {
	return &ListNetworks{
		config:   cfg,
		resolver: resolver,
		repo:     repo,
	}
}

// Run probes each configured network for its chain id. Unreachable networks are
// reported with their error rather than failing the listing.
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	deployments, err := uc.repo.List(ctx, domain.DeploymentFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	counters := lo.CountValuesBy(deployments, func(d *domain.Deployment) string { return d.Network })

	result := &ListNetworksResult{
		Networks: []NetworkStatus{{Name: "simulated", Kind: domain.NetworkKindSimulated}},
	}
	if uc.config.Network != nil {
		result.Active = uc.config.Network.Name
	}

	for _, name := range uc.resolver.GetNetworks(ctx) {
		status := NetworkStatus{
			Name:     name,
			Kind:     domain.NetworkKindRPC,
			Counters: counters[name],
		}
		if network, err := uc.resolver.ResolveNetwork(ctx, name); err != nil {
			status.Error = err
		} else {
			status.RPCURL = network.RPCURL
			status.ChainID = network.ChainID
		}
		result.Networks = append(result.Networks, status)
	}

	return result, nil
}
