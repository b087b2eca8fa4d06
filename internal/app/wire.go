//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/counter-harness/internal/adapters"
	"github.com/trebuchet-org/counter-harness/internal/config"
	"github.com/trebuchet-org/counter-harness/internal/logging"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunScenarios,
		usecase.NewDeployCounter,
		usecase.NewInvokeCounter,
		usecase.NewListDeployments,
		usecase.NewListNetworks,
		usecase.NewBuildContracts,
		usecase.NewManageAnvil,

		// App
		NewApp,
	)
	return nil, nil
}
