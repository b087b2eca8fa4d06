package deployments_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-harness/internal/adapters/repository/deployments"
	"github.com/trebuchet-org/counter-harness/internal/domain"
)

func newDeployment(network string, chainID uint64, address string, created time.Time) *domain.Deployment {
	return &domain.Deployment{
		Network:     network,
		ChainID:     chainID,
		Contract:    "Counter",
		Address:     address,
		Deployer:    "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		TxHash:      "0xabc",
		BlockNumber: 1,
		Artifact:    "embedded",
		CreatedAt:   created,
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("save and get", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".counter")
		repo, err := deployments.NewFileRepository(dir)
		require.NoError(t, err)

		dep := newDeployment("anvil", 31337, "0x5FbDB2315678afecb367f032d93F642f64180aa3", now)
		require.NoError(t, repo.Save(ctx, dep))
		assert.Equal(t, "31337/0x5fbdb2315678afecb367f032d93f642f64180aa3", dep.ID)

		got, err := repo.Get(ctx, "31337/0x5FbDB2315678afecb367f032d93F642f64180aa3")
		require.NoError(t, err)
		assert.Equal(t, dep.Address, got.Address)

		_, err = os.Stat(filepath.Join(dir, deployments.DeploymentsFile))
		assert.NoError(t, err)
	})

	t.Run("persists across instances", func(t *testing.T) {
		dir := t.TempDir()
		repo, err := deployments.NewFileRepository(dir)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, newDeployment("anvil", 31337, "0x01", now)))

		reopened, err := deployments.NewFileRepository(dir)
		require.NoError(t, err)
		got, err := reopened.Get(ctx, "31337/0x01")
		require.NoError(t, err)
		assert.Equal(t, "anvil", got.Network)
		assert.True(t, now.Equal(got.CreatedAt))
	})

	t.Run("find by address and list", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, repo.Save(ctx, newDeployment("anvil", 31337, "0xAA", now)))
		require.NoError(t, repo.Save(ctx, newDeployment("devnet", 1337, "0xaa", now.Add(time.Hour))))
		require.NoError(t, repo.Save(ctx, newDeployment("anvil", 31337, "0xBB", now.Add(2*time.Hour))))

		found, err := repo.FindByAddress(ctx, "0xaA")
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "devnet", found[0].Network)

		all, err := repo.List(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "0xBB", all[0].Address)

		anvil, err := repo.List(ctx, domain.DeploymentFilter{Network: "anvil"})
		require.NoError(t, err)
		assert.Len(t, anvil, 2)

		byChain, err := repo.List(ctx, domain.DeploymentFilter{ChainID: 1337})
		require.NoError(t, err)
		assert.Len(t, byChain, 1)
	})

	t.Run("remove and not found", func(t *testing.T) {
		repo, err := deployments.NewFileRepository(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, newDeployment("anvil", 31337, "0x01", now)))

		require.NoError(t, repo.Remove(ctx, "31337/0x01"))
		_, err = repo.Get(ctx, "31337/0x01")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, repo.Remove(ctx, "31337/0x01"), domain.ErrNotFound)
		_, err = repo.FindByAddress(ctx, "0x01")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("corrupt file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, deployments.DeploymentsFile), []byte("{"), 0644))
		_, err := deployments.NewFileRepository(dir)
		assert.Error(t, err)
	})
}
