package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrContractNotFound is returned when no compiled artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNotDeployable is returned when an artifact has no creation bytecode or needs linking
	ErrNotDeployable = errors.New("contract not deployable")

	// ErrInvalidPlan is returned when a deployment plan is malformed
	ErrInvalidPlan = errors.New("invalid deployment plan")

	// ErrDeploymentFailed is returned when a deployment transaction was mined but failed
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrNoNetwork is returned when no RPC endpoint is configured
	ErrNoNetwork = errors.New("no network configured")

	// ErrNoSigner is returned when no deployer private key is configured
	ErrNoSigner = errors.New("no deployer private key configured")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain than configured
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// ContractNotFoundError reports an unknown contract name together with close matches.
type ContractNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ContractNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("contract %q not found in compiled artifacts", e.Name)
	}
	return fmt.Sprintf("contract %q not found in compiled artifacts (did you mean %s?)",
		e.Name, strings.Join(e.Suggestions, ", "))
}

func (e *ContractNotFoundError) Unwrap() error {
	return ErrContractNotFound
}

// AmbiguousContractError is returned when a bare contract name matches several artifacts.
type AmbiguousContractError struct {
	Name    string
	Matches []string // "path:Name" keys
}

func (e *AmbiguousContractError) Error() string {
	matches := make([]string, len(e.Matches))
	copy(matches, e.Matches)
	sort.Strings(matches)

	var suggestions []string
	for _, m := range matches {
		suggestions = append(suggestions, "  - "+m)
	}

	return fmt.Sprintf("multiple contracts found matching %q - use full path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}

func (e *AmbiguousContractError) Unwrap() error {
	return ErrContractNotFound
}
