package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Contract represents a compiled contract discovered in the build output
type Contract struct {
	Name         string    `json:"name"`
	Path         string    `json:"path"` // source path, e.g. contracts/Coin.sol
	ArtifactPath string    `json:"artifactPath,omitempty"`
	Artifact     *Artifact `json:"artifact,omitempty"`
}

// Key returns the unambiguous "path:Name" identifier
func (c *Contract) Key() string {
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// BytecodeObject represents bytecode information in a compilation artifact.
// Hardhat stores bytecode as a plain hex string, Foundry as an object.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both the Hardhat string form and the Foundry object form.
func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err == nil {
		*b = BytecodeObject{Object: hex}
		return nil
	}

	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BytecodeObject(p)
	return nil
}

// Artifact is a Hardhat or Foundry compilation artifact
type Artifact struct {
	Format           string           `json:"_format,omitempty"`
	ContractName     string           `json:"contractName,omitempty"`
	SourceName       string           `json:"sourceName,omitempty"`
	ABI              json.RawMessage  `json:"abi"`
	Bytecode         BytecodeObject   `json:"bytecode"`
	DeployedBytecode BytecodeObject   `json:"deployedBytecode"`
	LinkReferences   map[string]any   `json:"linkReferences,omitempty"`
	Metadata         ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Language string `json:"language"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// HasBytecode reports whether the artifact carries creation code (interfaces and
// abstract contracts do not).
func (a *Artifact) HasBytecode() bool {
	obj := strings.TrimSpace(a.Bytecode.Object)
	return obj != "" && obj != "0x"
}

// NeedsLinking reports whether the creation code still contains library placeholders
func (a *Artifact) NeedsLinking() bool {
	return len(a.Bytecode.LinkReferences) > 0 || len(a.LinkReferences) > 0 ||
		strings.Contains(a.Bytecode.Object, "__")
}

// CreationCode decodes the creation bytecode
func (a *Artifact) CreationCode() ([]byte, error) {
	if !a.HasBytecode() {
		return nil, fmt.Errorf("artifact has no creation bytecode")
	}
	obj := strings.TrimSpace(a.Bytecode.Object)
	if !strings.HasPrefix(obj, "0x") {
		obj = "0x" + obj
	}
	code, err := hexutil.Decode(obj)
	if err != nil {
		return nil, fmt.Errorf("invalid creation bytecode: %w", err)
	}
	return code, nil
}

// BytecodeHash returns the keccak256 of the creation bytecode
func (a *Artifact) BytecodeHash() string {
	code, err := a.CreationCode()
	if err != nil {
		return ""
	}
	return crypto.Keccak256Hash(code).Hex()
}

// ParseABI parses the artifact's ABI
func (a *Artifact) ParseABI() (*abi.ABI, error) {
	raw := a.ABI
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("[]")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &parsed, nil
}

// PackConstructor ABI-encodes constructor arguments. The result is appended to the
// creation code when deploying.
func (a *Artifact) PackConstructor(args ...any) ([]byte, error) {
	parsed, err := a.ParseABI()
	if err != nil {
		return nil, err
	}
	packed, err := parsed.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return packed, nil
}

// UnpackConstructor decodes ABI-encoded constructor arguments
func (a *Artifact) UnpackConstructor(data []byte) ([]any, error) {
	parsed, err := a.ParseABI()
	if err != nil {
		return nil, err
	}
	values, err := parsed.Constructor.Inputs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode constructor arguments: %w", err)
	}
	return values, nil
}

// CompilerVersion returns the solc version when the artifact records one
func (a *Artifact) CompilerVersion() string {
	return a.Metadata.Compiler.Version
}
