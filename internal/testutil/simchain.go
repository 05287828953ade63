// Package testutil provides an in-process chain and artifact fixtures for tests.
package testutil

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
)

// SimChain is a simulated chain with one funded deployer account
type SimChain struct {
	Sim     *simulated.Backend
	Client  *AutoCommitClient
	Key     *ecdsa.PrivateKey
	KeyHex  string
	Address common.Address
}

// AutoCommitClient mines a block after every accepted transaction so receipts are
// available immediately.
type AutoCommitClient struct {
	simulated.Client
	sim *simulated.Backend
}

// SendTransaction submits tx and commits a block
func (c *AutoCommitClient) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := c.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	c.sim.Commit()
	return nil
}

// NewSimChain starts a simulated chain; it is closed when the test ends.
func NewSimChain(t testing.TB) *SimChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)

	balance := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	sim := simulated.NewBackend(types.GenesisAlloc{
		addr: {Balance: balance},
	})
	t.Cleanup(func() { _ = sim.Close() })

	return &SimChain{
		Sim:     sim,
		Client:  &AutoCommitClient{Client: sim.Client(), sim: sim},
		Key:     key,
		KeyHex:  hex.EncodeToString(crypto.FromECDSA(key)),
		Address: addr,
	}
}
