package app

import (
	"log/slog"

	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Progress usecase.ProgressSink

	// Use cases
	RunScenarios    *usecase.RunScenarios
	DeployCounter   *usecase.DeployCounter
	InvokeCounter   *usecase.InvokeCounter
	ListDeployments *usecase.ListDeployments
	ListNetworks    *usecase.ListNetworks
	BuildContracts  *usecase.BuildContracts
	ManageAnvil     *usecase.ManageAnvil
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	progress usecase.ProgressSink,
	runScenarios *usecase.RunScenarios,
	deployCounter *usecase.DeployCounter,
	invokeCounter *usecase.InvokeCounter,
	listDeployments *usecase.ListDeployments,
	listNetworks *usecase.ListNetworks,
	buildContracts *usecase.BuildContracts,
	manageAnvil *usecase.ManageAnvil,
) (*App, error) {
	return &App{
		Config:          cfg,
		Log:             log,
		Progress:        progress,
		RunScenarios:    runScenarios,
		DeployCounter:   deployCounter,
		InvokeCounter:   invokeCounter,
		ListDeployments: listDeployments,
		ListNetworks:    listNetworks,
		BuildContracts:  buildContracts,
		ManageAnvil:     manageAnvil,
	}, nil
}
