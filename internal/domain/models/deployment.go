package models

import (
	"fmt"
	"strings"
	"time"
)

// Deployment represents a confirmed contract deployment
type Deployment struct {
	// Core identification
	ID           string `json:"id"`    // e.g., "11155111/Coin:0xabc..."
	RunID        string `json:"runId"` // groups the deployments of one invocation
	ChainID      uint64 `json:"chainId"`
	Network      string `json:"network,omitempty"`
	ContractName string `json:"contractName"` // e.g., "Coin"
	Label        string `json:"label"`        // e.g., "token"
	Address      string `json:"address"`

	// Transaction details
	TransactionHash string `json:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber"`
	GasUsed         uint64 `json:"gasUsed"`
	Deployer        string `json:"deployer"`

	// Hex encoded constructor arguments
	ConstructorArgs string `json:"constructorArgs,omitempty"`

	// Contract artifact information
	Artifact ArtifactInfo `json:"artifact"`

	CreatedAt time.Time `json:"createdAt"`
}

// ArtifactInfo contains contract artifact information
type ArtifactInfo struct {
	Path            string `json:"path"` // e.g., "contracts/Coin.sol:Coin"
	CompilerVersion string `json:"compilerVersion,omitempty"`
	BytecodeHash    string `json:"bytecodeHash"`
}

// DeploymentID builds the registry identifier of a deployment
func DeploymentID(chainID uint64, contractName, address string) string {
	return fmt.Sprintf("%d/%s:%s", chainID, contractName, strings.ToLower(address))
}

// GetDisplayName returns a human-friendly name for the deployment
func (d *Deployment) GetDisplayName() string {
	if d.Label != "" {
		return fmt.Sprintf("%s (%s)", d.ContractName, d.Label)
	}
	return d.ContractName
}

// DeploymentStatus is the on-chain state of a recorded deployment
type DeploymentStatus string

const (
	StatusLive    DeploymentStatus = "live"
	StatusMissing DeploymentStatus = "missing"
	StatusUnknown DeploymentStatus = "unknown" // recorded on a chain other than the connected one
)
