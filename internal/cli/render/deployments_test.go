package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploymentsRenderer(t *testing.T) {
	color.NoColor = true
	created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	coin := &models.Deployment{
		ID:           "1337/Coin:0x5fbdb2315678afecb367f032d93f642f64180aa3",
		RunID:        "0f8c2a6e-9b1d-4e53-8a7c-2d6f0b9e1a34",
		ChainID:      1337,
		ContractName: "Coin",
		Label:        "token",
		Address:      "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		CreatedAt:    created,
	}
	vault := &models.Deployment{
		ID:           "11155111/VaultC:0xe7f1725e7734ce288f8367e1bb143e90bb3f0512",
		RunID:        "6a1e4b27-3c9d-4f08-b5e2-7d3a9c1f8e60",
		ChainID:      11155111,
		ContractName: "VaultC",
		Label:        "vault",
		Address:      "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512",
		CreatedAt:    created,
	}

	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&out).Render(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", out.String())
	})

	t.Run("grouped by chain", func(t *testing.T) {
		var out bytes.Buffer
		err := NewDeploymentsRenderer(&out).Render(&usecase.DeploymentListResult{
			Deployments: []*models.Deployment{vault, coin},
			Summary:     usecase.DeploymentSummary{Total: 2, Runs: 2},
		})
		require.NoError(t, err)

		got := out.String()
		assert.Less(t, strings.Index(got, "1337"), strings.Index(got, "11155111"))
		assert.Contains(t, got, "├─ ⛓ chain:")
		assert.Contains(t, got, "└─ ⛓ chain:")
		assert.Contains(t, got, "Coin (token)")
		assert.Contains(t, got, "VaultC (vault)")
		assert.Contains(t, got, coin.Address)
		assert.Contains(t, got, "0f8c2a6e")
		assert.NotContains(t, got, "0f8c2a6e-9b1d")
		assert.Contains(t, got, "2024-03-01 12:30:00")
		assert.NotContains(t, got, "live")
		assert.Contains(t, got, "Total deployments: 2 across 2 run(s)")
	})

	t.Run("with statuses", func(t *testing.T) {
		var out bytes.Buffer
		err := NewDeploymentsRenderer(&out).Render(&usecase.DeploymentListResult{
			Deployments: []*models.Deployment{coin, vault},
			Statuses: map[string]models.DeploymentStatus{
				coin.ID:  models.StatusLive,
				vault.ID: models.StatusUnknown,
			},
			Summary: usecase.DeploymentSummary{Total: 2, Runs: 2},
		})
		require.NoError(t, err)

		got := out.String()
		assert.Contains(t, got, "✓ live")
		assert.Contains(t, got, "? other chain")
	})
}

func TestFormatStatus(t *testing.T) {
	color.NoColor = true

	assert.Equal(t, "✓ live", formatStatus(models.StatusLive))
	assert.Equal(t, "✗ missing", formatStatus(models.StatusMissing))
	assert.Equal(t, "? other chain", formatStatus(""))
}
