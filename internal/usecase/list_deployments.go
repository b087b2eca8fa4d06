package usecase

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-harness/internal/domain"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	Network string // only deployments on this network
	Check   bool   // read each deployment's count on chain
}

// DeploymentListResult contains the listed deployments and a summary
type DeploymentListResult struct {
	Deployments []*domain.Deployment
	Summary     DeploymentSummary
	// Status maps deployment ID to "" when live, or the reason it is not. Only set with Check.
	Status map[string]string
	// Counts holds the on-chain count of each live deployment. Only set with Check.
	Counts map[string]*big.Int
}

// DeploymentSummary counts deployments per network
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	repo     DeploymentRepository
	resolver NetworkResolver
	checker  BlockchainChecker
	sink     ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, resolver NetworkResolver, checker BlockchainChecker, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo:     repo,
		resolver: resolver,
		checker:  checker,
		sink:     sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	// Report progress
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments from registry",
		Spinner: true,
	})

	deployments, err := uc.repo.List(ctx, domain.DeploymentFilter{Network: params.Network})
	if err != nil {
		return nil, err
	}

	// Sort deployments for consistent output
	sortDeployments(deployments)

	result := &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}

	if params.Check && len(deployments) > 0 {
		result.Status, result.Counts = uc.check(ctx, deployments)
	}

	// Report completion
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return result, nil
}

// check connects to each network once and reads count() at every address on it
func (uc *ListDeployments) check(ctx context.Context, deployments []*domain.Deployment) (map[string]string, map[string]*big.Int) {
	status := make(map[string]string, len(deployments))
	counts := make(map[string]*big.Int, len(deployments))
	byNetwork := lo.GroupBy(deployments, func(d *domain.Deployment) string { return d.Network })

	for _, name := range lo.Keys(byNetwork) {
		group := byNetwork[name]
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Message: fmt.Sprintf("Checking %d deployment(s) on %s", len(group), name),
			Spinner: true,
		})

		reason := ""
		network, err := uc.resolver.ResolveNetwork(ctx, name)
		if err == nil {
			err = uc.checker.Connect(ctx, network.RPCURL, 0)
		}
		if err != nil {
			reason = fmt.Sprintf("network unavailable: %v", err)
		}

		for _, dep := range group {
			if reason != "" {
				status[dep.ID] = reason
				continue
			}
			if uc.checker.ChainID() != dep.ChainID {
				status[dep.ID] = fmt.Sprintf("network is now chain %d", uc.checker.ChainID())
				continue
			}
			value, why, err := uc.checker.CheckCounter(ctx, dep.Address)
			switch {
			case err != nil:
				status[dep.ID] = err.Error()
			case value == nil:
				status[dep.ID] = why
			default:
				status[dep.ID] = ""
				counts[dep.ID] = value
			}
		}

		if reason == "" {
			uc.checker.Close()
		}
	}
	return status, counts
}

// sortDeployments sorts deployments by network, chain, then newest first
func sortDeployments(deployments []*domain.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		if deployments[i].Network != deployments[j].Network {
			return deployments[i].Network < deployments[j].Network
		}
		if deployments[i].ChainID != deployments[j].ChainID {
			return deployments[i].ChainID < deployments[j].ChainID
		}
		return deployments[i].CreatedAt.After(deployments[j].CreatedAt)
	})
}

// calculateSummary calculates summary statistics for deployments
func calculateSummary(deployments []*domain.Deployment) DeploymentSummary {
	return DeploymentSummary{
		Total:     len(deployments),
		ByNetwork: lo.CountValuesBy(deployments, func(d *domain.Deployment) string { return d.Network }),
	}
}
