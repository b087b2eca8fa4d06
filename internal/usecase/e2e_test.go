package usecase_test

import (
	"context"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-harness/internal/adapters/artifacts"
	"github.com/trebuchet-org/counter-harness/internal/adapters/network"
	"github.com/trebuchet-org/counter-harness/internal/adapters/scenarios"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// TestRunScenarios_SimulatedChain runs the built-in catalogue against real
// in-process chains with the embedded counter artifact.
func TestRunScenarios_SimulatedChain(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping simulated chain run in short mode")
	}

	log := slog.New(slog.DiscardHandler)
	cfg := &config.RuntimeConfig{
		ProjectRoot: t.TempDir(),
		Timeout:     time.Minute,
		Harness: config.HarnessConfig{
			Wallets: 1,
			Balance: new(big.Int).Mul(big.NewInt(1), big.NewInt(params.Ether)),
		},
	}
	launcher := network.NewLauncher(cfg, network.NewSimulatedLauncher(log), network.NewRPCLauncher(cfg, log), log)

	uc := usecase.NewRunScenarios(cfg, launcher, artifacts.NewLoader(cfg, log), scenarios.NewCatalogue(cfg, log), usecase.NopProgress{})
	report, err := uc.Run(context.Background(), usecase.RunScenariosParams{})
	require.NoError(t, err)

	for _, r := range report.Results {
		assert.True(t, r.Passed, "%s: %s", r.Name, r.Error)
		require.NotNil(t, r.Contract, r.Name)
		assert.NotEqual(t, "0x0000000000000000000000000000000000000000", r.Contract.Address.Hex())
	}
	assert.True(t, report.OK())
	assert.Equal(t, "simulated", report.Network.Name)
	assert.Equal(t, uint64(1337), report.Network.ChainID)
}
