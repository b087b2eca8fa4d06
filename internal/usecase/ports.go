package usecase

import (
	"context"
	"io"
	"math/big"

	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// NetworkLauncher brings up a test network for a harness run
type NetworkLauncher interface {
	Launch(ctx context.Context, opts domain.LaunchOptions) (NetworkSession, error)
}

// NetworkSession is a live connection to a test network. It is the external
// collaborator that deploys artifacts and executes counter calls.
type NetworkSession interface {
	Info() domain.NetworkInfo
	Wallets() []domain.Wallet
	Deploy(ctx context.Context, artifact *domain.Artifact) (*domain.ContractHandle, error)
	Call(ctx context.Context, handle *domain.ContractHandle, op domain.Operation) (*domain.CallResult, error)
	Close() error
}

// ArtifactLoader resolves the compiled counter to deploy
type ArtifactLoader interface {
	Load(ctx context.Context, path string) (*domain.Artifact, error)
}

// ScenarioSource loads scenario definitions; an empty path yields the built-in catalogue
type ScenarioSource interface {
	Load(ctx context.Context, path string) ([]domain.Scenario, error)
}

// DeploymentRepository handles persistence of deployments
type DeploymentRepository interface {
	Save(ctx context.Context, deployment *domain.Deployment) error
	Get(ctx context.Context, id string) (*domain.Deployment, error)
	FindByAddress(ctx context.Context, address string) ([]*domain.Deployment, error)
	List(ctx context.Context, filter domain.DeploymentFilter) ([]*domain.Deployment, error)
	Remove(ctx context.Context, id string) error
}

// DeploymentSelector handles interactive selection of deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*domain.Deployment, prompt string) (*domain.Deployment, error)
}

// BlockchainChecker checks on-chain state of networks and contracts
type BlockchainChecker interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	ChainID() uint64
	// CheckCounter reads count() at address; a nil value comes with the reason
	// the address holds no live counter
	CheckCounter(ctx context.Context, address string) (count *big.Int, reason string, err error)
	Close()
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// AnvilManager manages local anvil node instances
type AnvilManager interface {
	Start(ctx context.Context, instance *domain.AnvilInstance) error
	Stop(ctx context.Context, instance *domain.AnvilInstance) error
	GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error)
	StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error
}

// ContractBuilder compiles the project's contracts
type ContractBuilder interface {
	Build(ctx context.Context, opts BuildOptions) error
}

// BuildOptions controls a contract build
type BuildOptions struct {
	Stream io.Writer // when set, compiler output is streamed here
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
