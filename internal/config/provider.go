package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// DataDirName is the per-project directory for local config and the deployment registry
	DataDirName = ".audc"

	foundryArtifactsDir = "out"
	hardhatArtifactsDir = "artifacts"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		projectRoot = cwd
		if root, err := FindProjectRoot(cwd); err == nil {
			projectRoot = root
		}
	}
	kind := DetectProjectKind(projectRoot)

	// .env must be loaded before any env-backed key is read
	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ProjectKind:    kind,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		ArtifactsDir:   artifactsDir(v, kind, foundryConfig),
		PrivateKey:     privateKey(v),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		Record:         v.GetBool("record"),
		Compile:        v.GetBool("compile"),
	}

	resolver := NewNetworkResolver(foundryConfig, os.LookupEnv)
	network, err := resolver.Resolve(v.GetString("network"), v.GetString("rpc_url"), v.GetUint64("chain_id"))
	if err != nil {
		return nil, err
	}
	cfg.Network = network

	return cfg, nil
}

// FindProjectRoot walks up from dir to the nearest foundry or hardhat project
func FindProjectRoot(dir string) (string, error) {
	for {
		if DetectProjectKind(dir) != config.ProjectUnknown {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Foundry or Hardhat project (foundry.toml or hardhat.config.* not found)")
		}
		dir = parent
	}
}

// DetectProjectKind reports which build system owns dir
func DetectProjectKind(dir string) config.ProjectKind {
	if fileExists(filepath.Join(dir, "foundry.toml")) {
		return config.ProjectFoundry
	}
	for _, name := range []string{"hardhat.config.ts", "hardhat.config.js", "hardhat.config.cjs", "hardhat.config.mjs"} {
		if fileExists(filepath.Join(dir, name)) {
			return config.ProjectHardhat
		}
	}
	return config.ProjectUnknown
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("AUDC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("record", false)
	v.SetDefault("compile", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}

// artifactsDir picks the configured directory, then the foundry profile's out, then the
// build system default
func artifactsDir(v *viper.Viper, kind config.ProjectKind, foundry *FoundryConfig) string {
	if dir := v.GetString("artifacts_dir"); dir != "" {
		return dir
	}
	if kind == config.ProjectFoundry {
		if foundry.OutDir != "" {
			return foundry.OutDir
		}
		return foundryArtifactsDir
	}
	return hardhatArtifactsDir
}

// privateKey reads AUDC_PRIVATE_KEY (or the config file), then the conventional
// PRIVATE_KEY and DEPLOYER_PRIVATE_KEY variables
func privateKey(v *viper.Viper) string {
	if key := v.GetString("private_key"); key != "" {
		return key
	}
	for _, name := range []string{"PRIVATE_KEY", "DEPLOYER_PRIVATE_KEY"} {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
