package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// FoundryTOML is the subset of foundry.toml this tool reads
type FoundryTOML struct {
	RpcEndpoints map[string]string            `toml:"rpc_endpoints"`
	Etherscan    map[string]map[string]string `toml:"etherscan"`
	Profile      map[string]FoundryProfile    `toml:"profile"`
}

// FoundryProfile holds the build paths of a foundry profile
type FoundryProfile struct {
	Src string `toml:"src"`
	Out string `toml:"out"`
}

// FoundryConfig is foundry.toml with environment variables expanded
type FoundryConfig struct {
	RpcEndpoints    map[string]string
	RawRpcEndpoints map[string]string
	ExplorerURLs    map[string]string
	OutDir          string
}

// loadEnvFiles loads .env then .env.local from the project root. Variables already
// present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadFoundryConfig parses foundry.toml. A project without one yields an empty config.
func loadFoundryConfig(projectRoot string) (*FoundryConfig, error) {
	cfg := &FoundryConfig{
		RpcEndpoints:    make(map[string]string),
		RawRpcEndpoints: make(map[string]string),
		ExplorerURLs:    make(map[string]string),
	}

	foundryPath := filepath.Join(projectRoot, "foundry.toml")
	if _, err := os.Stat(foundryPath); os.IsNotExist(err) {
		return cfg, nil
	}

	var raw FoundryTOML
	if _, err := toml.DecodeFile(foundryPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse foundry.toml: %w", err)
	}

	for name, url := range raw.RpcEndpoints {
		cfg.RawRpcEndpoints[name] = url
		cfg.RpcEndpoints[name] = os.ExpandEnv(url)
	}

	for network, ethConfig := range raw.Etherscan {
		if url, ok := ethConfig["url"]; ok {
			cfg.ExplorerURLs[network] = os.ExpandEnv(url)
		}
	}

	if profile, ok := raw.Profile["default"]; ok {
		cfg.OutDir = profile.Out
	}

	return cfg, nil
}
