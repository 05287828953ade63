package models

import "github.com/ethereum/go-ethereum/common"

// ContractCreation is the on-chain outcome of a confirmed deployment transaction
type ContractCreation struct {
	Address     common.Address
	TxHash      common.Hash
	From        common.Address
	BlockNumber uint64
	GasUsed     uint64
}
