package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
)

// NetworkResolver turns a network name or URL into a network configuration
type NetworkResolver struct {
	foundry *FoundryConfig
	lookup  func(string) (string, bool)
}

// NewNetworkResolver creates a resolver over the project's foundry.toml endpoints
func NewNetworkResolver(foundry *FoundryConfig, lookupEnv func(string) (string, bool)) *NetworkResolver {
	return &NetworkResolver{foundry: foundry, lookup: lookupEnv}
}

// Resolve resolves a network. rpcURL, when set, wins over the endpoint of the named
// network. Order for names: foundry.toml [rpc_endpoints], then <NAME>_RPC_URL.
func (r *NetworkResolver) Resolve(name, rpcURL string, chainID uint64) (*config.Network, error) {
	if name == "" && rpcURL == "" {
		return nil, nil
	}

	network := &config.Network{
		Name:    name,
		RPCURL:  rpcURL,
		ChainID: chainID,
	}

	switch {
	case rpcURL != "":
	case isEndpointURL(name):
		network.Name = ""
		network.RPCURL = name
	default:
		url, err := r.endpoint(name)
		if err != nil {
			return nil, err
		}
		network.RPCURL = url
	}

	network.ExplorerURL = r.explorerURL(name)

	return network, nil
}

func (r *NetworkResolver) endpoint(name string) (string, error) {
	if url, ok := r.foundry.RpcEndpoints[name]; ok {
		if url != "" {
			return url, nil
		}
		if envVar, isVar := DetectEnvVar(r.foundry.RawRpcEndpoints[name]); isVar {
			return "", fmt.Errorf("%w: rpc endpoint for %s references %s, which is not set", domain.ErrNoNetwork, name, envVar)
		}
		return "", fmt.Errorf("%w: rpc endpoint for %s is empty", domain.ErrNoNetwork, name)
	}

	envVar := GenerateEnvVarName(name)
	if url, ok := r.lookup(envVar); ok && url != "" {
		return url, nil
	}

	return "", fmt.Errorf("%w: network '%s' not found in foundry.toml [rpc_endpoints] and %s is not set",
		domain.ErrNoNetwork, name, envVar)
}

// explorerURL returns the explorer of the foundry.toml [etherscan] entry. Those entries
// hold the verification API (https://api-sepolia.etherscan.io/api), so the API host
// prefix and path are dropped to get the browsable site.
func (r *NetworkResolver) explorerURL(name string) string {
	raw, ok := r.foundry.ExplorerURLs[name]
	if !ok || raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := u.Host
	for _, prefix := range []string{"api-", "api."} {
		if strings.HasPrefix(host, prefix) {
			host = strings.TrimPrefix(host, prefix)
			break
		}
	}
	return u.Scheme + "://" + host
}
