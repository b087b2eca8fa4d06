package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// InvokeCounterParams contains parameters for a counter call
type InvokeCounterParams struct {
	Operation domain.Operation
	Address   string // empty selects from the registry
}

// InvokeCounterResult contains the result of a counter call
type InvokeCounterResult struct {
	Deployment *domain.Deployment
	Result     *domain.CallResult
	Network    domain.NetworkInfo
}

// InvokeCounter calls one operation on a counter deployed to a persistent network
type InvokeCounter struct {
	config   *config.RuntimeConfig
	launcher NetworkLauncher
	repo     DeploymentRepository
	selector DeploymentSelector
	resolver NetworkResolver
	checker  BlockchainChecker
	progress ProgressSink
}

// NewInvokeCounter creates a new InvokeCounter use case
func NewInvokeCounter(
	cfg *config.RuntimeConfig,
	launcher NetworkLauncher,
	repo DeploymentRepository,
	selector DeploymentSelector,
	resolver NetworkResolver,
	checker BlockchainChecker,
	progress ProgressSink,
) *InvokeCounter {
	return &InvokeCounter{
		config:   cfg,
		launcher: launcher,
		repo:     repo,
		selector: selector,
		resolver: resolver,
		checker:  checker,
		progress: progress,
	}
}

// Run resolves the target counter, checks it still exists and performs the call
func (uc *InvokeCounter) Run(ctx context.Context, params InvokeCounterParams) (*InvokeCounterResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("%s needs a persistent network, use --network (e.g. --network anvil)", params.Operation)
	}
	op, err := domain.ParseOperation(string(params.Operation))
	if err != nil {
		return nil, err
	}

	network, err := uc.resolver.ResolveNetwork(ctx, uc.config.Network.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network: %w", err)
	}

	deployment, err := uc.resolveDeployment(ctx, network, params.Address)
	if err != nil {
		return nil, err
	}

	if err := uc.checker.Connect(ctx, network.RPCURL, network.ChainID); err != nil {
		return nil, err
	}
	current, reason, err := uc.checker.CheckCounter(ctx, deployment.Address)
	uc.checker.Close()
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no counter at %s on %s: %s", deployment.Address, network.Name, reason)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "calling",
		Message: fmt.Sprintf("Calling %s on %s", op, deployment.Address),
		Spinner: true,
	})

	session, err := uc.launcher.Launch(ctx, domain.LaunchOptions{Network: network.Name, Wallets: 1})
	if err != nil {
		return nil, err
	}
	defer session.Close()

	handle := &domain.ContractHandle{
		Name:    deployment.Contract,
		Address: common.HexToAddress(deployment.Address),
		ChainID: deployment.ChainID,
	}
	result, err := session.Call(ctx, handle, op)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: fmt.Sprintf("%s done", op)})

	return &InvokeCounterResult{
		Deployment: deployment,
		Result:     result,
		Network:    session.Info(),
	}, nil
}

// resolveDeployment finds the registry entry for address on network, or asks the
// selector when no address is given. Unregistered addresses are used as-is.
func (uc *InvokeCounter) resolveDeployment(ctx context.Context, network *config.Network, address string) (*domain.Deployment, error) {
	if address != "" {
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
		}
		matches, err := uc.repo.FindByAddress(ctx, address)
		if err != nil {
			return nil, err
		}
		if dep, ok := lo.Find(matches, func(d *domain.Deployment) bool { return d.ChainID == network.ChainID }); ok {
			return dep, nil
		}
		return &domain.Deployment{
			ID:       domain.DeploymentID(network.ChainID, address),
			Network:  network.Name,
			ChainID:  network.ChainID,
			Contract: "Counter",
			Address:  common.HexToAddress(address).Hex(),
		}, nil
	}

	deployments, err := uc.repo.List(ctx, domain.DeploymentFilter{ChainID: network.ChainID})
	if err != nil {
		return nil, err
	}
	if len(deployments) == 0 {
		return nil, fmt.Errorf("%w: no counter deployments on %s (chain %d), run 'counter deploy' first",
			domain.ErrNotFound, network.Name, network.ChainID)
	}

	return uc.selector.SelectDeployment(ctx, deployments,
		fmt.Sprintf("Select a counter on %s", strings.ToLower(network.Name)))
}
