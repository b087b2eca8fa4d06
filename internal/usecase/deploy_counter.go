package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// DeployCounterParams contains parameters for a deployment
type DeployCounterParams struct {
	Artifact string // overrides the configured artifact path
}

// DeployCounterResult contains the result of a deployment
type DeployCounterResult struct {
	Deployment *domain.Deployment
	Handle     *domain.ContractHandle
	Network    domain.NetworkInfo
}

// DeployCounter deploys a counter to a persistent network and records it in the registry
type DeployCounter struct {
	config    *config.RuntimeConfig
	launcher  NetworkLauncher
	artifacts ArtifactLoader
	repo      DeploymentRepository
	progress  ProgressSink
}

// NewDeployCounter creates a new DeployCounter use case
func NewDeployCounter(
	cfg *config.RuntimeConfig,
	launcher NetworkLauncher,
	artifacts ArtifactLoader,
	repo DeploymentRepository,
	progress ProgressSink,
) *DeployCounter {
	return &DeployCounter{
		config:    cfg,
		launcher:  launcher,
		artifacts: artifacts,
		repo:      repo,
		progress:  progress,
	}
}

// Run deploys the counter and saves the deployment
func (uc *DeployCounter) Run(ctx context.Context, params DeployCounterParams) (*DeployCounterResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("deploy needs a persistent network, use --network (e.g. --network anvil)")
	}

	path := params.Artifact
	if path == "" {
		path = uc.config.Harness.Artifact
	}
	artifact, err := uc.artifacts.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract artifact: %w", err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s to %s", artifact.Name, uc.config.Network.Name),
		Spinner: true,
	})

	session, err := uc.launcher.Launch(ctx, domain.LaunchOptions{Network: uc.config.Network.Name, Wallets: 1})
	if err != nil {
		return nil, err
	}
	defer session.Close()

	handle, err := session.Deploy(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", artifact.Name, err)
	}
	info := session.Info()

	deployment := &domain.Deployment{
		ID:          domain.DeploymentID(handle.ChainID, handle.Address.Hex()),
		Network:     info.Name,
		ChainID:     handle.ChainID,
		Contract:    handle.Name,
		Address:     handle.Address.Hex(),
		Deployer:    handle.Deployer.Hex(),
		TxHash:      handle.TxHash.Hex(),
		BlockNumber: handle.BlockNumber,
		Artifact:    artifact.Source,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.repo.Save(ctx, deployment); err != nil {
		return nil, fmt.Errorf("failed to save deployment: %w", err)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: fmt.Sprintf("Deployed %s at %s", artifact.Name, deployment.Address),
	})

	return &DeployCounterResult{
		Deployment: deployment,
		Handle:     handle,
		Network:    info,
	}, nil
}
