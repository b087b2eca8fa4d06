package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/counter-harness/internal/adapters/anvil"
	"github.com/trebuchet-org/counter-harness/internal/adapters/artifacts"
	"github.com/trebuchet-org/counter-harness/internal/adapters/blockchain"
	"github.com/trebuchet-org/counter-harness/internal/adapters/forge"
	"github.com/trebuchet-org/counter-harness/internal/adapters/interactive"
	"github.com/trebuchet-org/counter-harness/internal/adapters/network"
	"github.com/trebuchet-org/counter-harness/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/counter-harness/internal/adapters/scenarios"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// NetworkSet provides test network implementations
var NetworkSet = wire.NewSet(
	network.NewSimulatedLauncher,
	network.NewRPCLauncher,
	network.NewLauncher,
	wire.Bind(new(usecase.NetworkLauncher), new(*network.Launcher)),

	network.NewResolver,
	wire.Bind(new(usecase.NetworkResolver), new(*network.Resolver)),
)

// ArtifactSet provides contract artifact and scenario loading
var ArtifactSet = wire.NewSet(
	artifacts.NewLoader,
	wire.Bind(new(usecase.ArtifactLoader), new(*artifacts.Loader)),

	scenarios.NewCatalogue,
	wire.Bind(new(usecase.ScenarioSource), new(*scenarios.Catalogue)),
)

// RepositorySet provides file-based persistence
var RepositorySet = wire.NewSet(
	deployments.NewFileRepositoryFromConfig,
	wire.Bind(new(usecase.DeploymentRepository), new(*deployments.FileRepository)),
)

// ForgeSet provides forge-based implementations
var ForgeSet = wire.NewSet(
	forge.NewForgeAdapter,
	wire.Bind(new(usecase.ContractBuilder), new(*forge.ForgeAdapter)),
)

// AnvilSet provides local node management
var AnvilSet = wire.NewSet(
	anvil.NewManager,
	wire.Bind(new(usecase.AnvilManager), new(*anvil.Manager)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelector,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.Selector)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.BlockchainChecker), new(*blockchain.CheckerAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	NetworkSet,
	ArtifactSet,
	RepositorySet,
	ForgeSet,
	AnvilSet,
	InteractiveSet,
	BlockchainSet,
)
