package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// StubInitCode deploys a one-byte runtime (STOP) and ignores constructor arguments.
const StubInitCode = "0x6001600c60003960016000f300"

// RevertingInitCode reverts during construction.
const RevertingInitCode = "0x60006000fd"

const coinABI = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"name_","type":"string","internalType":"string"},{"name":"symbol_","type":"string","internalType":"string"}]}]`

const vaultABI = `[{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"token_","type":"address","internalType":"address"},{"name":"fee_","type":"uint256","internalType":"uint256"}]}]`

// HardhatArtifact renders a Hardhat artifact for a contract in contracts/<name>.sol
func HardhatArtifact(name, abi, bytecode string) string {
	return `{
  "_format": "hh-sol-artifact-1",
  "contractName": "` + name + `",
  "sourceName": "contracts/` + name + `.sol",
  "abi": ` + abi + `,
  "bytecode": "` + bytecode + `",
  "deployedBytecode": "0x00",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`
}

// FoundryArtifact renders a Foundry artifact for a contract in src/<name>.sol
func FoundryArtifact(name, abi, bytecode string) string {
	return `{
  "abi": ` + abi + `,
  "bytecode": {"object": "` + bytecode + `", "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x00", "sourceMap": "", "linkReferences": {}},
  "metadata": {
    "compiler": {"version": "0.8.24+commit.e11b9ed9"},
    "language": "Solidity",
    "settings": {"compilationTarget": {"src/` + name + `.sol": "` + name + `"}}
  }
}`
}

// CoinArtifact is a Hardhat artifact with the Coin(string,string) constructor
func CoinArtifact(bytecode string) string {
	return HardhatArtifact("Coin", coinABI, bytecode)
}

// VaultArtifact is a Hardhat artifact with the VaultC(address,uint256) constructor
func VaultArtifact(bytecode string) string {
	return HardhatArtifact("VaultC", vaultABI, bytecode)
}

// WriteArtifacts writes Hardhat artifacts into <root>/artifacts/contracts on fs.
// Keys are contract names, values the artifact JSON.
func WriteArtifacts(t testing.TB, fs afero.Fs, root string, artifacts map[string]string) {
	t.Helper()
	for name, content := range artifacts {
		path := filepath.Join(root, "artifacts", "contracts", name+".sol", name+".json")
		if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("write artifact: %v", err)
		}
	}
}
