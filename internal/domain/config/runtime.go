package config

import (
	"strings"
	"time"
)

// ProjectKind identifies the build system of the project
type ProjectKind string

const (
	ProjectFoundry ProjectKind = "foundry"
	ProjectHardhat ProjectKind = "hardhat"
	ProjectUnknown ProjectKind = "unknown"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	ProjectKind  ProjectKind
	DataDir      string
	ArtifactsDir string

	// Network and signer; Network is nil if nothing is configured
	Network    *Network
	PrivateKey string

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Command-specific settings (only populated for relevant commands)
	Record  bool
	Compile bool
}

// Network represents network configuration
type Network struct {
	ChainID     uint64 `json:"chainId"` // 0 means "whatever the endpoint reports"
	Name        string `json:"name"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
}

// DisplayName returns the network name, falling back to the RPC URL
func (n *Network) DisplayName() string {
	if n == nil {
		return ""
	}
	if n.Name != "" {
		return n.Name
	}
	return n.RPCURL
}

// Explorer returns the block explorer base URL: the configured one, else a well-known
// explorer for the chain. Empty when neither is known.
func (n *Network) Explorer() string {
	if n == nil {
		return ""
	}
	if n.ExplorerURL != "" {
		return strings.TrimRight(n.ExplorerURL, "/")
	}
	return knownExplorers[n.ChainID]
}

var knownExplorers = map[uint64]string{
	1:        "https://etherscan.io",
	10:       "https://optimistic.etherscan.io",
	56:       "https://bscscan.com",
	137:      "https://polygonscan.com",
	8453:     "https://basescan.org",
	42161:    "https://arbiscan.io",
	43114:    "https://snowtrace.io",
	84532:    "https://sepolia.basescan.org",
	11155111: "https://sepolia.etherscan.io",
}
