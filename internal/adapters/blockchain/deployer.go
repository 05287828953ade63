package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/audc-labs/audc-deploy/internal/domain"
	"github.com/audc-labs/audc-deploy/internal/domain/config"
	"github.com/audc-labs/audc-deploy/internal/domain/models"
	"github.com/audc-labs/audc-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is the chain access needed to deploy contracts. *ethclient.Client
// satisfies it, as does the simulated backend client.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Deployer implements ContractDeployer on top of go-ethereum's bind package
type Deployer struct {
	cfg *config.RuntimeConfig
	log *slog.Logger

	mu      sync.Mutex
	backend Backend
	closer  func()
	network *config.Network
	chainID *big.Int
	key     *ecdsa.PrivateKey
}

// NewDeployer creates a deployer that dials the configured RPC endpoint on first use
func NewDeployer(cfg *config.RuntimeConfig, log *slog.Logger) *Deployer {
	return &Deployer{
		cfg: cfg,
		log: log,
	}
}

// NewDeployerWithBackend creates a deployer bound to an existing backend
func NewDeployerWithBackend(cfg *config.RuntimeConfig, backend Backend, log *slog.Logger) *Deployer {
	return &Deployer{
		cfg:     cfg,
		log:     log,
		backend: backend,
	}
}

// connect establishes the connection, verifies the chain ID and loads the signer
func (d *Deployer) connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.network != nil {
		return nil
	}

	network := config.Network{}
	if d.cfg.Network != nil {
		network = *d.cfg.Network
	}

	if d.backend == nil {
		if network.RPCURL == "" {
			return domain.ErrNoNetwork
		}
		client, err := ethclient.DialContext(ctx, network.RPCURL)
		if err != nil {
			return fmt.Errorf("failed to connect to RPC: %w", err)
		}
		d.backend = client
		d.closer = client.Close
	}

	chainID, err := d.backend.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && network.ChainID != chainID.Uint64() {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, network.ChainID, chainID.Uint64())
	}
	network.ChainID = chainID.Uint64()

	key, err := ParsePrivateKey(d.cfg.PrivateKey)
	if err != nil {
		return err
	}

	d.key = key
	d.chainID = chainID
	d.network = &network

	d.log.Debug("connected to network", "network", network.DisplayName(), "chainId", network.ChainID,
		"deployer", crypto.PubkeyToAddress(key.PublicKey).Hex())
	return nil
}

// Network returns the connected network, connecting if necessary
func (d *Deployer) Network(ctx context.Context) (*config.Network, error) {
	if err := d.connect(ctx); err != nil {
		return nil, err
	}
	n := *d.network
	return &n, nil
}

// Deploy submits a contract creation transaction and blocks until it is mined
func (d *Deployer) Deploy(ctx context.Context, req usecase.DeployRequest) (*models.ContractCreation, error) {
	if err := d.connect(ctx); err != nil {
		return nil, err
	}

	opts := newTransactor(ctx, d.key, d.chainID)

	address, tx, err := bind.DeployContract(opts, req.Bytecode, d.backend, req.ConstructorInput)
	if err != nil {
		return nil, fmt.Errorf("failed to submit deployment transaction: %w", err)
	}
	d.log.Debug("deployment submitted", "contract", req.Name, "tx", tx.Hash().Hex(), "nonce", tx.Nonce())

	receipt, err := bind.WaitMined(ctx, d.backend, tx.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s reverted in block %s", domain.ErrDeploymentFailed, tx.Hash().Hex(), receipt.BlockNumber)
	}
	if receipt.ContractAddress != (common.Address{}) {
		address = receipt.ContractAddress
	}

	code, err := d.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: no code at %s after transaction %s", domain.ErrDeploymentFailed, address.Hex(), tx.Hash().Hex())
	}

	creation := &models.ContractCreation{
		Address: address,
		TxHash:  tx.Hash(),
		From:    opts.From,
		GasUsed: receipt.GasUsed,
	}
	if receipt.BlockNumber != nil {
		creation.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return creation, nil
}

// Close releases the RPC connection if this deployer dialed it
func (d *Deployer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closer != nil {
		d.closer()
		d.closer = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*Deployer)(nil)
