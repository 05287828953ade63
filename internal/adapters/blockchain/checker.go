package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const checkTimeout = 5 * time.Second

// Checker verifies recorded deployments against the configured network
type Checker struct {
	cfg *config.RuntimeConfig
	log *slog.Logger

	mu      sync.Mutex
	backend Backend
	closer  func()
	chainID uint64
}

// NewChecker creates a checker that dials the configured RPC endpoint on first use
func NewChecker(cfg *config.RuntimeConfig, log *slog.Logger) *Checker {
	return &Checker{cfg: cfg, log: log}
}

// NewCheckerWithBackend creates a checker bound to an existing backend
func NewCheckerWithBackend(cfg *config.RuntimeConfig, backend Backend, log *slog.Logger) *Checker {
	return &Checker{cfg: cfg, log: log, backend: backend}
}

func (c *Checker) connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != 0 {
		return nil
	}

	if c.backend == nil {
		if c.cfg.Network == nil || c.cfg.Network.RPCURL == "" {
			return domain.ErrNoNetwork
		}
		client, err := ethclient.DialContext(ctx, c.cfg.Network.RPCURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RPC: %w", err)
		}
		c.backend = client
		c.closer = client.Close
	}

	chainID, err := c.backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.cfg.Network != nil && c.cfg.Network.ChainID != 0 && c.cfg.Network.ChainID != chainID.Uint64() {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, c.cfg.Network.ChainID, chainID.Uint64())
	}
	c.chainID = chainID.Uint64()
	return nil
}

// ChainID returns the chain the checker is connected to
func (c *Checker) ChainID(ctx context.Context) (uint64, error) {
	if err := c.connect(ctx); err != nil {
		return 0, err
	}
	return c.chainID, nil
}

// CheckDeployment reports whether the deployment's code and creation transaction are on chain
func (c *Checker) CheckDeployment(ctx context.Context, dep *models.Deployment) (models.DeploymentStatus, error) {
	if err := c.connect(ctx); err != nil {
		return models.StatusUnknown, err
	}
	if dep.ChainID != c.chainID {
		return models.StatusUnknown, nil
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	code, err := c.backend.CodeAt(ctx, common.HexToAddress(dep.Address), nil)
	if err != nil {
		return models.StatusUnknown, fmt.Errorf("failed to check code at %s: %w", dep.Address, err)
	}
	if len(code) == 0 {
		c.log.Debug("no code at address", "id", dep.ID)
		return models.StatusMissing, nil
	}

	if dep.TransactionHash != "" {
		_, err := c.backend.TransactionReceipt(ctx, common.HexToHash(dep.TransactionHash))
		if errors.Is(err, ethereum.NotFound) {
			c.log.Debug("creation transaction not found", "id", dep.ID, "tx", dep.TransactionHash)
			return models.StatusMissing, nil
		}
		if err != nil {
			return models.StatusUnknown, fmt.Errorf("failed to get transaction receipt: %w", err)
		}
	}

	return models.StatusLive, nil
}

// Close releases the RPC connection if this checker dialed it
func (c *Checker) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentChecker = (*Checker)(nil)
