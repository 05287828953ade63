package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFindProjectRoot(t *testing.T) {
	t.Run("foundry project from nested dir", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "foundry.toml", "[profile.default]\n")
		nested := filepath.Join(root, "src", "tokens")
		require.NoError(t, os.MkdirAll(nested, 0755))

		got, err := FindProjectRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, root, got)
		assert.Equal(t, config.ProjectFoundry, DetectProjectKind(got))
	})

	t.Run("hardhat project", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "hardhat.config.ts", "export default {}\n")

		got, err := FindProjectRoot(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
		assert.Equal(t, config.ProjectHardhat, DetectProjectKind(got))
	})

	t.Run("unknown project", func(t *testing.T) {
		assert.Equal(t, config.ProjectUnknown, DetectProjectKind(t.TempDir()))
	})
}

func TestProvider(t *testing.T) {
	t.Run("foundry project with env-backed endpoint", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "foundry.toml", `[profile.default]
src = "src"
out = "build-out"

[rpc_endpoints]
sepolia = "${AUDC_PROVIDER_TEST_SEPOLIA}"
local = "http://localhost:8545"

[etherscan]
sepolia = { key = "x", url = "https://api-sepolia.etherscan.io/api" }
`)
		writeProjectFile(t, root, ".env", "AUDC_PROVIDER_TEST_SEPOLIA=https://sepolia.example/rpc\n")
		t.Cleanup(func() { _ = os.Unsetenv("AUDC_PROVIDER_TEST_SEPOLIA") })

		v := viper.New()
		v.Set("project_root", root)
		v.Set("network", "sepolia")
		v.Set("chain_id", 11155111)
		v.Set("private_key", "0xabc")
		v.Set("timeout", "90s")
		v.Set("record", true)

		cfg, err := Provider(v)
		require.NoError(t, err)

		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, config.ProjectFoundry, cfg.ProjectKind)
		assert.Equal(t, filepath.Join(root, ".audc"), cfg.DataDir)
		assert.Equal(t, "build-out", cfg.ArtifactsDir)
		assert.Equal(t, "0xabc", cfg.PrivateKey)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
		assert.True(t, cfg.Record)
		assert.False(t, cfg.Compile)

		require.NotNil(t, cfg.Network)
		assert.Equal(t, "sepolia", cfg.Network.Name)
		assert.Equal(t, "https://sepolia.example/rpc", cfg.Network.RPCURL)
		assert.Equal(t, uint64(11155111), cfg.Network.ChainID)
		assert.Equal(t, "https://sepolia.etherscan.io", cfg.Network.ExplorerURL)
	})

	t.Run("hardhat project without network", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "hardhat.config.js", "module.exports = {}\n")

		v := viper.New()
		v.Set("project_root", root)

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, config.ProjectHardhat, cfg.ProjectKind)
		assert.Equal(t, "artifacts", cfg.ArtifactsDir)
		assert.Nil(t, cfg.Network)
	})

	t.Run("unknown network", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "foundry.toml", "[rpc_endpoints]\nlocal = \"http://localhost:8545\"\n")

		v := viper.New()
		v.Set("project_root", root)
		v.Set("network", "audc-provider-test-nowhere")

		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrNoNetwork)
	})

	t.Run("malformed foundry.toml", func(t *testing.T) {
		root := t.TempDir()
		writeProjectFile(t, root, "foundry.toml", "[rpc_endpoints\n")

		v := viper.New()
		v.Set("project_root", root)

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "foundry.toml")
	})
}

func TestPrivateKey(t *testing.T) {
	t.Setenv("PRIVATE_KEY", "")
	t.Setenv("DEPLOYER_PRIVATE_KEY", "")

	assert.Equal(t, "", privateKey(viper.New()))

	t.Setenv("DEPLOYER_PRIVATE_KEY", "0x02")
	assert.Equal(t, "0x02", privateKey(viper.New()))

	t.Setenv("PRIVATE_KEY", "0x01")
	assert.Equal(t, "0x01", privateKey(viper.New()))

	v := viper.New()
	v.Set("private_key", "0x03")
	assert.Equal(t, "0x03", privateKey(v))
}

func TestSetupViper(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, ".audc/config.local.json", `{"network": "local", "artifacts_dir": "build"}`)
	t.Setenv("AUDC_TIMEOUT", "2m")

	cmd := &cobra.Command{Use: "deploy"}
	cmd.Flags().String("rpc-url", "", "")
	cmd.Flags().Bool("non-interactive", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--rpc-url", "http://127.0.0.1:8545", "--non-interactive"}))

	v := SetupViper(root, cmd)

	assert.Equal(t, "http://127.0.0.1:8545", v.GetString("rpc_url"))
	assert.True(t, v.GetBool("non_interactive"))
	assert.Equal(t, "local", v.GetString("network"))
	assert.Equal(t, "build", v.GetString("artifacts_dir"))
	assert.Equal(t, 2*time.Minute, v.GetDuration("timeout"))
	assert.Equal(t, root, v.GetString("project_root"))
}
