package deployments

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeployment(runID string, chainID uint64, name, label, address string) *models.Deployment {
	return &models.Deployment{
		ID:              models.DeploymentID(chainID, name, address),
		RunID:           runID,
		ChainID:         chainID,
		ContractName:    name,
		Label:           label,
		Address:         address,
		TransactionHash: "0x" + "ab",
		CreatedAt:       time.Now(),
	}
}

func TestFileRepository(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{DataDir: "/project/.audc"}

	t.Run("does not touch disk until used", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_ = NewFileRepository(fs, cfg)

		exists, err := afero.DirExists(fs, cfg.DataDir)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("save and reload", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewFileRepository(fs, cfg)

		token := newDeployment("run-1", 1337, "Coin", "token", "0x1111111111111111111111111111111111111111")
		vault := newDeployment("run-1", 1337, "VaultC", "vault", "0x2222222222222222222222222222222222222222")
		require.NoError(t, repo.SaveDeployment(ctx, token))
		require.NoError(t, repo.SaveDeployment(ctx, vault))

		exists, err := afero.Exists(fs, filepath.Join(cfg.DataDir, DeploymentsFile))
		require.NoError(t, err)
		assert.True(t, exists)

		tmpExists, err := afero.Exists(fs, filepath.Join(cfg.DataDir, DeploymentsFile+".tmp"))
		require.NoError(t, err)
		assert.False(t, tmpExists)

		reloaded := NewFileRepository(fs, cfg)
		all, err := reloaded.ListDeployments(ctx, domain.DeploymentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		vaults, err := reloaded.ListDeployments(ctx, domain.DeploymentFilter{ContractName: "VaultC"})
		require.NoError(t, err)
		require.Len(t, vaults, 1)
		assert.Equal(t, "0x2222222222222222222222222222222222222222", vaults[0].Address)
		assert.Equal(t, "vault", vaults[0].Label)
	})

	t.Run("saving the same deployment twice keeps one record", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewFileRepository(fs, cfg)

		dep := newDeployment("run-1", 1, "Coin", "token", "0xAbCdEf0123456789012345678901234567890123")
		require.NoError(t, repo.SaveDeployment(ctx, dep))
		require.NoError(t, repo.SaveDeployment(ctx, dep))

		byRun, err := repo.ListDeployments(ctx, domain.DeploymentFilter{RunID: "run-1"})
		require.NoError(t, err)
		assert.Len(t, byRun, 1)

		byContract, err := repo.ListDeployments(ctx, domain.DeploymentFilter{ContractName: "Coin"})
		require.NoError(t, err)
		assert.Len(t, byContract, 1)
	})

	t.Run("index lookups combine with other filters", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewFileRepository(fs, cfg)

		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-1", 1337, "Coin", "token", "0x1111111111111111111111111111111111111111")))
		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-1", 1337, "VaultC", "vault", "0x2222222222222222222222222222222222222222")))
		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-2", 1, "Coin", "token", "0x3333333333333333333333333333333333333333")))

		got, err := repo.ListDeployments(ctx, domain.DeploymentFilter{RunID: "run-1", ContractName: "Coin"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", got[0].Address)

		got, err = repo.ListDeployments(ctx, domain.DeploymentFilter{ContractName: "Coin", ChainID: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "run-2", got[0].RunID)

		got, err = repo.ListDeployments(ctx, domain.DeploymentFilter{RunID: "run-3"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repeated runs are all kept", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewFileRepository(fs, cfg)

		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-1", 1337, "Coin", "token", "0x1111111111111111111111111111111111111111")))
		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-2", 1337, "Coin", "token", "0x3333333333333333333333333333333333333333")))

		coins, err := repo.ListDeployments(ctx, domain.DeploymentFilter{ContractName: "Coin"})
		require.NoError(t, err)
		assert.Len(t, coins, 2)

		run2, err := repo.ListDeployments(ctx, domain.DeploymentFilter{RunID: "run-2"})
		require.NoError(t, err)
		require.Len(t, run2, 1)
		assert.Equal(t, "0x3333333333333333333333333333333333333333", run2[0].Address)
	})

	t.Run("filters by chain", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		repo := NewFileRepository(fs, cfg)

		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-1", 1, "Coin", "token", "0x1111111111111111111111111111111111111111")))
		require.NoError(t, repo.SaveDeployment(ctx, newDeployment("run-2", 11155111, "Coin", "token", "0x1111111111111111111111111111111111111111")))

		sepolia, err := repo.ListDeployments(ctx, domain.DeploymentFilter{ChainID: 11155111})
		require.NoError(t, err)
		require.Len(t, sepolia, 1)
		assert.Equal(t, "run-2", sepolia[0].RunID)
	})

	t.Run("corrupt registry is an error", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, filepath.Join(cfg.DataDir, DeploymentsFile), []byte("{not json"), 0644))

		repo := NewFileRepository(fs, cfg)
		_, err := repo.ListDeployments(ctx, domain.DeploymentFilter{})
		assert.Error(t, err)
	})
}
